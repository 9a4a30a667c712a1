// Package semantic wraps the LLM-backed goods-description comparator used by
// the goods-description cross-reference rule. Any transport or parse failure
// is reported as a mismatch with a manual-review reason: silently passing a
// real mismatch is the costlier error in documentary-credit review.
package semantic

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/LucasDotTrade/lucas-brain/internal/model"
	"github.com/LucasDotTrade/lucas-brain/internal/resilience"
	"github.com/LucasDotTrade/lucas-brain/pkg/anthropic"
)

// Strictness selects which UCP 600 examination standard applies.
type Strictness string

const (
	// Strict requires the compared description to cover every descriptor of
	// the credit's description (invoice rule, UCP Art. 18(c) analogue).
	Strict Strictness = "strict"
	// Lenient accepts general terms not inconsistent with the credit
	// (transport/packing documents, UCP Art. 19 analogue).
	Lenient Strictness = "lenient"
)

// CompareRequest asks whether a document's goods description conforms to the
// credit's description under the given strictness.
type CompareRequest struct {
	CreditDescription   string
	DocumentDescription string
	DocumentType        model.DocumentType
	Strictness          Strictness
}

// CompareResult is the comparator's answer.
type CompareResult struct {
	Matches bool   `json:"matches"`
	Reason  string `json:"reason"`
}

// Comparator decides goods-description conformity.
type Comparator interface {
	Compare(ctx context.Context, req CompareRequest) (CompareResult, error)
}

// FailClosed is the result substituted when the comparator cannot answer.
func FailClosed(req CompareRequest) CompareResult {
	return CompareResult{
		Matches: false,
		Reason: "goods description could not be verified against the credit for " +
			req.DocumentType.Display() + "; manual review recommended",
	}
}

// Opts configures the Anthropic-backed comparator.
type Opts struct {
	Model     string
	Timeout   time.Duration
	RateLimit rate.Limit
}

// AnthropicComparator implements Comparator on the Anthropic Messages API.
type AnthropicComparator struct {
	client  anthropic.Client
	limiter *rate.Limiter
	retry   resilience.Config
	opts    Opts
}

// NewAnthropic creates a comparator backed by the given client.
func NewAnthropic(client anthropic.Client, opts Opts) *AnthropicComparator {
	if opts.Model == "" {
		opts.Model = "claude-haiku-4-5-20251001"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	limit := opts.RateLimit
	if limit == 0 {
		limit = rate.Inf
	}
	return &AnthropicComparator{
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
		retry:   resilience.Config{OnRetry: resilience.Logged("goods_comparison")},
		opts:    opts,
	}
}

const comparatorSystemPrompt = `You compare goods descriptions on trade documents against the description in a
letter of credit. Answer ONLY with JSON: {"matches": true|false, "reason": "..."}.

Under "strict" the document must reflect every descriptor of the credit's
description (grade, specification, origin). Under "lenient" the document may
use general terms as long as nothing contradicts the credit.`

// Compare asks the model whether the descriptions conform. Errors are
// returned to the caller; rule code converts them with FailClosed.
func (c *AnthropicComparator) Compare(ctx context.Context, req CompareRequest) (CompareResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return CompareResult{}, eris.Wrap(err, "semantic: rate limit wait")
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	temp := 0.0
	resp, err := resilience.Retry(ctx, c.retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return c.client.CreateMessage(ctx, anthropic.MessageRequest{
			Model:       c.opts.Model,
			MaxTokens:   512,
			System:      comparatorSystemPrompt,
			Temperature: &temp,
			Messages: []anthropic.Message{
				{Role: "user", Content: buildComparePrompt(req)},
			},
		})
	})
	if err != nil {
		return CompareResult{}, eris.Wrap(err, "semantic: compare")
	}
	resp.Usage.LogCost(resp.Model, "goods_comparison")

	result, err := decodeResult(resp.Text())
	if err != nil {
		zap.L().Warn("semantic: undecodable comparator reply",
			zap.String("document_type", string(req.DocumentType)),
			zap.Error(err),
		)
		return CompareResult{}, err
	}
	return result, nil
}

func buildComparePrompt(req CompareRequest) string {
	var b strings.Builder
	b.WriteString("Strictness: " + string(req.Strictness) + "\n")
	b.WriteString("Document type: " + req.DocumentType.Display() + "\n\n")
	b.WriteString("Credit description:\n" + req.CreditDescription + "\n\n")
	b.WriteString("Document description:\n" + req.DocumentDescription + "\n")
	return b.String()
}

func decodeResult(raw string) (CompareResult, error) {
	body := strings.TrimSpace(raw)
	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")
	if start < 0 || end <= start {
		return CompareResult{}, eris.New("semantic: no JSON object in reply")
	}
	var out CompareResult
	if err := json.Unmarshal([]byte(body[start:end+1]), &out); err != nil {
		return CompareResult{}, eris.Wrap(err, "semantic: decode reply")
	}
	return out, nil
}
