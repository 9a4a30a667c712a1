package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasDotTrade/lucas-brain/internal/model"
	"github.com/LucasDotTrade/lucas-brain/pkg/anthropic"
)

// mockClient returns canned responses for CreateMessage.
type mockClient struct {
	reply string
	err   error
	calls int
}

func (m *mockClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: m.reply}},
	}, nil
}

func TestExtract_DecodesFencedJSON(t *testing.T) {
	t.Parallel()

	client := &mockClient{reply: "```json\n" + `{
		"verdict": "GO",
		"extracted_data": {"amount": 150000, "currency": "USD", "beneficiary": "Acme Trading LLC"},
		"analysis": "clean LC"
	}` + "\n```"}

	e := NewAnthropic(client, Opts{})
	got, err := e.Extract(context.Background(), model.DocLetterOfCredit, "raw text")
	require.NoError(t, err)
	assert.Equal(t, model.VerdictGo, got.Verdict)
	require.NotNil(t, got.ExtractedData.Amount)
	assert.Equal(t, 150000.0, *got.ExtractedData.Amount)
	assert.Equal(t, "USD", model.Str(got.ExtractedData.Currency))
}

func TestExtract_MalformedReply(t *testing.T) {
	t.Parallel()

	e := NewAnthropic(&mockClient{reply: "I could not read this document, sorry."}, Opts{})
	_, err := e.Extract(context.Background(), model.DocBillOfLading, "text")
	require.Error(t, err)
	assert.ErrorContains(t, err, "malformed")
}

func TestExtract_UnknownVerdictFallsBackToWait(t *testing.T) {
	t.Parallel()

	e := NewAnthropic(&mockClient{reply: `{"verdict": "MAYBE", "extracted_data": {}}`}, Opts{})
	got, err := e.Extract(context.Background(), model.DocCommercialInvoice, "text")
	require.NoError(t, err)
	assert.Equal(t, model.VerdictWait, got.Verdict)
}

func TestDecodeExtraction_LeadingProse(t *testing.T) {
	t.Parallel()

	got, err := decodeExtraction(`Here is the extraction: {"verdict":"WAIT","extracted_data":{}}`)
	require.NoError(t, err)
	assert.Equal(t, model.VerdictWait, got.Verdict)
}

func TestBuildExtractionPrompt_IncludesTypeHint(t *testing.T) {
	t.Parallel()

	p := buildExtractionPrompt(model.DocLetterOfCredit, "LC BODY")
	assert.Contains(t, p, "Letter of Credit")
	assert.Contains(t, p, "quantity_tolerance")
	assert.Contains(t, p, "LC BODY")
}
