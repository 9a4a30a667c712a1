// Package extract wraps the LLM-backed field extraction collaborator. The
// validation engine only depends on the Extractor interface; the Anthropic
// implementation lives here so the engine itself never touches a model API.
package extract

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/LucasDotTrade/lucas-brain/internal/model"
	"github.com/LucasDotTrade/lucas-brain/internal/resilience"
	"github.com/LucasDotTrade/lucas-brain/pkg/anthropic"
)

// Extraction is the collaborator's structured output for one document.
type Extraction struct {
	Verdict       model.Verdict       `json:"verdict"`
	Issues        []model.Issue       `json:"issues"`
	ExtractedData model.ExtractedData `json:"extracted_data"`
	Analysis      string              `json:"analysis"`
}

// Extractor turns one document's raw text into structured fields.
type Extractor interface {
	Extract(ctx context.Context, docType model.DocumentType, text string) (*Extraction, error)
}

// ErrMalformed marks collaborator output the engine could not decode. Callers
// recover locally (WAIT fallback) instead of failing the package.
var ErrMalformed = eris.New("extract: malformed collaborator output")

// Opts configures the Anthropic-backed extractor.
type Opts struct {
	Model     string
	MaxTokens int64
	Timeout   time.Duration
	RateLimit rate.Limit // calls per second; 0 = unlimited
}

// AnthropicExtractor implements Extractor on the Anthropic Messages API.
type AnthropicExtractor struct {
	client  anthropic.Client
	limiter *rate.Limiter
	retry   resilience.Config
	opts    Opts
}

// NewAnthropic creates an extractor backed by the given client.
func NewAnthropic(client anthropic.Client, opts Opts) *AnthropicExtractor {
	if opts.Model == "" {
		opts.Model = "claude-sonnet-4-5-20250929"
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 8192
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	limit := opts.RateLimit
	if limit == 0 {
		limit = rate.Inf
	}
	return &AnthropicExtractor{
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
		retry:   resilience.Config{OnRetry: resilience.Logged("extraction")},
		opts:    opts,
	}
}

// Extract calls the model with a document-type-specific prompt and decodes
// the JSON body of its reply. Transport errors are returned as-is; replies
// that are not decodable JSON return ErrMalformed.
func (e *AnthropicExtractor) Extract(ctx context.Context, docType model.DocumentType, text string) (*Extraction, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "extract: rate limit wait")
	}

	ctx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	temp := 0.0
	resp, err := resilience.Retry(ctx, e.retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return e.client.CreateMessage(ctx, anthropic.MessageRequest{
			Model:       e.opts.Model,
			MaxTokens:   e.opts.MaxTokens,
			System:      extractionSystemPrompt,
			Temperature: &temp,
			Messages: []anthropic.Message{
				{Role: "user", Content: buildExtractionPrompt(docType, text)},
			},
		})
	})
	if err != nil {
		return nil, eris.Wrapf(err, "extract: %s", docType)
	}
	resp.Usage.LogCost(resp.Model, "extraction")

	extraction, err := decodeExtraction(resp.Text())
	if err != nil {
		return nil, err
	}
	return extraction, nil
}

// decodeExtraction defensively parses model output: strips code fences,
// tolerates leading prose, and validates the verdict value.
func decodeExtraction(raw string) (*Extraction, error) {
	body := stripCodeFences(raw)
	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")
	if start < 0 || end <= start {
		return nil, eris.Wrap(ErrMalformed, "no JSON object in reply")
	}

	var out Extraction
	if err := json.Unmarshal([]byte(body[start:end+1]), &out); err != nil {
		return nil, eris.Wrap(ErrMalformed, err.Error())
	}

	switch out.Verdict {
	case model.VerdictGo, model.VerdictWait, model.VerdictNoGo:
	default:
		out.Verdict = model.VerdictWait
	}
	return &out, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if i := strings.Index(s, "\n"); i >= 0 {
			s = s[i+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return s
}
