package semantic

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasDotTrade/lucas-brain/internal/model"
	"github.com/LucasDotTrade/lucas-brain/pkg/anthropic"
)

type mockClient struct {
	reply string
	err   error
}

func (m *mockClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: m.reply}},
	}, nil
}

func TestCompare_Match(t *testing.T) {
	t.Parallel()

	c := NewAnthropic(&mockClient{reply: `{"matches": true, "reason": "descriptions agree"}`}, Opts{})
	got, err := c.Compare(context.Background(), CompareRequest{
		CreditDescription:   "500 MT polyethylene resin",
		DocumentDescription: "polyethylene resin, 500 metric tons",
		DocumentType:        model.DocCommercialInvoice,
		Strictness:          Strict,
	})
	require.NoError(t, err)
	assert.True(t, got.Matches)
}

func TestCompare_TransportError(t *testing.T) {
	t.Parallel()

	c := NewAnthropic(&mockClient{err: eris.New("connection refused")}, Opts{})
	_, err := c.Compare(context.Background(), CompareRequest{DocumentType: model.DocBillOfLading})
	require.Error(t, err)
}

func TestCompare_UndecodableReply(t *testing.T) {
	t.Parallel()

	c := NewAnthropic(&mockClient{reply: "they look similar to me"}, Opts{})
	_, err := c.Compare(context.Background(), CompareRequest{DocumentType: model.DocPackingList})
	require.Error(t, err)
}

func TestFailClosed(t *testing.T) {
	t.Parallel()

	got := FailClosed(CompareRequest{DocumentType: model.DocCommercialInvoice})
	assert.False(t, got.Matches)
	assert.Contains(t, got.Reason, "manual review recommended")
}
