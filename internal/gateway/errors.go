package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/blackwell-systems/inspirehub/internal/gemini"
)

// Kind names a gateway operation.
type Kind string

const (
	KindDailyQuote Kind = "daily-quote"
	KindSearch     Kind = "search"
	KindGenerate   Kind = "generate"
)

// Class categorizes a failure.
type Class string

const (
	ClassConfig     Class = "config"     // missing credential
	ClassTransport  Class = "transport"  // network or non-2xx
	ClassQuota      Class = "quota"      // rate or quota exhaustion
	ClassMalformed  Class = "malformed"  // response did not have the expected shape
	ClassSuperseded Class = "superseded" // a newer search replaced this one
	ClassBusy       Class = "busy"       // a generation is already running
	ClassInvalid    Class = "invalid"    // empty query or prompt
)

// User-facing messages.
const (
	MsgDailyQuote = "Could not fetch today's inspiration. Please try again later."
	MsgSearch     = "Sorry, we couldn't find recommendations. Try a different search."
	MsgGenerate   = "Sorry, we couldn't create your wallpaper. Please try a different prompt."
	MsgQuota      = "You've reached your generation quota."
	MsgBusy       = "A generation is already in progress."
	MsgEmptyQuery = "Please enter something to search for."
	MsgEmptyIdea  = "Please describe the wallpaper you want."
)

// QuotaLinks point the user at quota documentation.
var QuotaLinks = []string{
	"https://ai.dev/usage?tab=rate-limit",
	"https://ai.google.dev/gemini-api/docs/rate-limits",
}

// Failure is the classified, user-presentable outcome of a failed
// operation. Cause is for logs only.
type Failure struct {
	Kind    Kind
	Class   Class
	Message string
	Links   []string
	Cause   error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Cause
}

// Sentinel causes for failures raised before any network call.
var (
	ErrEmptyQuery  = errors.New("empty query")
	ErrEmptyPrompt = errors.New("empty prompt")
	ErrBusy        = errors.New("generation already in flight")
	ErrSuperseded  = errors.New("superseded by a newer search")
	ErrNoImages    = errors.New("service returned no images")
)

// IsQuotaError reports whether err carries one of the known quota markers.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gemini.ErrRateLimited) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(strings.ToUpper(msg), "RESOURCE_EXHAUSTED") ||
		strings.Contains(msg, "exceeded your current quota")
}

func genericMessage(kind Kind) string {
	switch kind {
	case KindDailyQuote:
		return MsgDailyQuote
	case KindSearch:
		return MsgSearch
	default:
		return MsgGenerate
	}
}

// classify maps a service error to a Failure for kind. Only generation
// distinguishes quota errors; the other operations show their generic text.
func classify(kind Kind, err error) *Failure {
	f := &Failure{Kind: kind, Class: ClassTransport, Message: genericMessage(kind), Cause: err}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, gemini.ErrNoAPIKey):
		f.Class = ClassConfig
	case kind == KindGenerate && IsQuotaError(err):
		f.Class = ClassQuota
		f.Message = MsgQuota
		f.Links = append([]string(nil), QuotaLinks...)
	case IsQuotaError(err):
		f.Class = ClassQuota
	case errors.Is(err, gemini.ErrEmptyResponse), errors.Is(err, ErrNoImages),
		errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		f.Class = ClassMalformed
	case errors.Is(err, context.DeadlineExceeded):
		f.Class = ClassTransport
	}
	return f
}
