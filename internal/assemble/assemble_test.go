package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasDotTrade/lucas-brain/internal/extract"
	"github.com/LucasDotTrade/lucas-brain/internal/model"
)

func TestAssemble_NilExtractionFallsBackToWait(t *testing.T) {
	t.Parallel()

	got := Assemble(model.DocBillOfLading, "Shipped on Board: 10/03/2026", nil)
	assert.Equal(t, model.VerdictWait, got.Verdict)
	assert.Empty(t, got.Issues)
	// Deterministic date extraction still recovers what it can.
	require.NotNil(t, got.ExtractedData.ShipmentDate)
	assert.Equal(t, "2026-03-10", *got.ExtractedData.ShipmentDate)
}

func TestAssemble_RegexDateOverridesCollaborator(t *testing.T) {
	t.Parallel()

	extraction := &extract.Extraction{
		Verdict: model.VerdictGo,
		ExtractedData: model.ExtractedData{
			// The collaborator mis-transcribed the expiry date.
			ExpiryDate: model.StrPtr("2026-12-31"),
		},
	}
	got := Assemble(model.DocLetterOfCredit, "Date of Expiry: 2026-03-31", extraction)
	require.NotNil(t, got.ExtractedData.ExpiryDate)
	assert.Equal(t, "2026-03-31", *got.ExtractedData.ExpiryDate)
	assert.Equal(t, model.VerdictGo, got.Verdict)
}

func TestAssemble_CollaboratorDateKeptWhenNoLabelMatch(t *testing.T) {
	t.Parallel()

	extraction := &extract.Extraction{
		Verdict: model.VerdictGo,
		ExtractedData: model.ExtractedData{
			ShipmentDate: model.StrPtr("10 March 2026"),
		},
	}
	got := Assemble(model.DocBillOfLading, "no labeled dates in this text", extraction)
	require.NotNil(t, got.ExtractedData.ShipmentDate)
	// Collaborator value survives but is canonicalized.
	assert.Equal(t, "2026-03-10", *got.ExtractedData.ShipmentDate)
}

func TestAssemble_UnparseableDateDropped(t *testing.T) {
	t.Parallel()

	extraction := &extract.Extraction{
		Verdict: model.VerdictGo,
		ExtractedData: model.ExtractedData{
			IssueDate: model.StrPtr("sometime last week"),
		},
	}
	got := Assemble(model.DocCommercialInvoice, "", extraction)
	assert.Nil(t, got.ExtractedData.IssueDate)
}
