package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Citation is a web source the model grounded its answer on.
type Citation struct {
	URI   string
	Title string
}

// TextResult is the text of the first candidate plus any grounding sources.
type TextResult struct {
	Text      string
	Citations []Citation
}

// Schema is an OpenAPI-style response schema.
type Schema struct {
	Type       string            `json:"type"`
	Items      *Schema           `json:"items,omitempty"`
	Properties map[string]Schema `json:"properties,omitempty"`
	Required   []string          `json:"required,omitempty"`
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type tool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *Schema `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	Tools            []tool            `json:"tools,omitempty"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

func userPrompt(prompt string) []content {
	return []content{{Role: "user", Parts: []part{{Text: prompt}}}}
}

// GenerateText asks model for free text. With grounding set, the Google
// Search tool is enabled and web citations are returned.
func (c *Client) GenerateText(ctx context.Context, model, prompt string, grounding bool) (TextResult, error) {
	req := generateRequest{Contents: userPrompt(prompt)}
	if grounding {
		req.Tools = []tool{{GoogleSearch: &struct{}{}}}
	}
	body, err := c.post(ctx, c.url(model, "generateContent"), req)
	if err != nil {
		return TextResult{}, err
	}

	text := candidateText(body)
	if text == "" {
		return TextResult{}, fmt.Errorf("generateContent: %w", ErrEmptyResponse)
	}
	res := TextResult{Text: text}
	gjson.GetBytes(body, "candidates.0.groundingMetadata.groundingChunks").ForEach(func(_, chunk gjson.Result) bool {
		res.Citations = append(res.Citations, Citation{
			URI:   chunk.Get("web.uri").String(),
			Title: chunk.Get("web.title").String(),
		})
		return true
	})
	return res, nil
}

// GenerateJSON asks model for a JSON document conforming to schema and
// decodes it into out.
func (c *Client) GenerateJSON(ctx context.Context, model, prompt string, schema Schema, out interface{}) error {
	req := generateRequest{
		Contents: userPrompt(prompt),
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   &schema,
		},
	}
	body, err := c.post(ctx, c.url(model, "generateContent"), req)
	if err != nil {
		return err
	}
	text := candidateText(body)
	if text == "" {
		return fmt.Errorf("generateContent: %w", ErrEmptyResponse)
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("decode model JSON: %w", err)
	}
	return nil
}

// candidateText joins the text parts of the first candidate.
func candidateText(body []byte) string {
	var sb strings.Builder
	for _, p := range gjson.GetBytes(body, "candidates.0.content.parts.#.text").Array() {
		sb.WriteString(p.String())
	}
	return strings.TrimSpace(sb.String())
}
