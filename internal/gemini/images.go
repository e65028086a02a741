package gemini

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/tidwall/gjson"
)

// ImageOptions controls an image generation request.
type ImageOptions struct {
	Count       int
	AspectRatio string // e.g. "9:16"
	MimeType    string // e.g. "image/jpeg"
}

// Image is one generated picture.
type Image struct {
	MimeType string
	Data     []byte
}

type predictRequest struct {
	Instances  []predictInstance `json:"instances"`
	Parameters predictParameters `json:"parameters"`
}

type predictInstance struct {
	Prompt string `json:"prompt"`
}

type predictParameters struct {
	SampleCount    int    `json:"sampleCount"`
	AspectRatio    string `json:"aspectRatio,omitempty"`
	OutputMimeType string `json:"outputMimeType,omitempty"`
}

// GenerateImages asks an Imagen model for opts.Count images. An
// undecodable prediction fails the whole call.
func (c *Client) GenerateImages(ctx context.Context, model, prompt string, opts ImageOptions) ([]Image, error) {
	if opts.Count <= 0 {
		opts.Count = 1
	}
	req := predictRequest{
		Instances: []predictInstance{{Prompt: prompt}},
		Parameters: predictParameters{
			SampleCount:    opts.Count,
			AspectRatio:    opts.AspectRatio,
			OutputMimeType: opts.MimeType,
		},
	}
	body, err := c.post(ctx, c.url(model, "predict"), req)
	if err != nil {
		return nil, err
	}

	var images []Image
	for i, p := range gjson.GetBytes(body, "predictions").Array() {
		encoded := p.Get("bytesBase64Encoded").String()
		if encoded == "" {
			// Filtered predictions carry a reason instead of bytes.
			continue
		}
		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("prediction %d: decode image: %w", i, err)
		}
		mime := p.Get("mimeType").String()
		if mime == "" {
			mime = opts.MimeType
		}
		images = append(images, Image{MimeType: mime, Data: data})
	}
	return images, nil
}
