// Package assemble turns one document's extraction output into an immutable
// DocumentResult, recovering locally from collaborator failures and
// overriding the three governed date fields with deterministic regex
// extraction. Language models are not trusted with date transcription;
// whenever the label scan succeeds its value wins.
package assemble

import (
	"go.uber.org/zap"

	"github.com/LucasDotTrade/lucas-brain/internal/dates"
	"github.com/LucasDotTrade/lucas-brain/internal/extract"
	"github.com/LucasDotTrade/lucas-brain/internal/model"
)

// Assemble wraps an extraction into a DocumentResult. A nil extraction (the
// collaborator failed or returned malformed output) yields an empty-but-valid
// result with verdict WAIT so one bad document never aborts the package.
func Assemble(docType model.DocumentType, rawText string, extraction *extract.Extraction) model.DocumentResult {
	result := model.DocumentResult{
		Type:    docType,
		Verdict: model.VerdictWait,
		RawText: rawText,
	}

	if extraction != nil {
		result.Verdict = extraction.Verdict
		result.Issues = extraction.Issues
		result.ExtractedData = extraction.ExtractedData
		result.Analysis = extraction.Analysis
	} else {
		zap.L().Warn("assemble: falling back to deterministic fields only",
			zap.String("document_type", string(docType)),
		)
	}

	applyDateOverrides(&result.ExtractedData, rawText)
	normalizeDates(&result.ExtractedData)

	return result
}

// applyDateOverrides replaces collaborator-supplied dates with regex-derived
// ones for the three governed fields. Once set here they are never
// re-overridden by a later stage.
func applyDateOverrides(data *model.ExtractedData, rawText string) {
	found := dates.ExtractFields(rawText)
	if v, ok := found[dates.FieldLatestShipment]; ok {
		data.LatestShipmentDate = model.StrPtr(v)
	}
	if v, ok := found[dates.FieldExpiry]; ok {
		data.ExpiryDate = model.StrPtr(v)
	}
	if v, ok := found[dates.FieldShippedOnBoard]; ok {
		data.ShipmentDate = model.StrPtr(v)
	}
}

// normalizeDates canonicalizes any remaining collaborator-supplied date
// fields to YYYY-MM-DD. Unparseable values are dropped rather than compared
// as free text.
func normalizeDates(data *model.ExtractedData) {
	for _, p := range []**string{
		&data.IssueDate, &data.ExpiryDate, &data.LatestShipmentDate, &data.ShipmentDate,
	} {
		if *p == nil {
			continue
		}
		if iso, ok := dates.Normalize(**p); ok {
			*p = model.StrPtr(iso)
		} else {
			*p = nil
		}
	}
	if data.ExportLicense != nil && data.ExportLicense.ExpiryDate != nil {
		if iso, ok := dates.Normalize(*data.ExportLicense.ExpiryDate); ok {
			data.ExportLicense.ExpiryDate = model.StrPtr(iso)
		} else {
			data.ExportLicense.ExpiryDate = nil
		}
	}
	if data.TankCleanliness != nil && data.TankCleanliness.InspectionDate != nil {
		if iso, ok := dates.Normalize(*data.TankCleanliness.InspectionDate); ok {
			data.TankCleanliness.InspectionDate = model.StrPtr(iso)
		} else {
			data.TankCleanliness.InspectionDate = nil
		}
	}
}
