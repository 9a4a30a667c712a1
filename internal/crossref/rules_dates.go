package crossref

import (
	"context"
	"fmt"
	"time"

	"github.com/LucasDotTrade/lucas-brain/internal/model"
)

func checkLCExpiryPast(_ context.Context, in Input) []model.CrossRefIssue {
	lc := docByType(in.Docs, model.DocLetterOfCredit)
	if lc == nil {
		return nil
	}
	expiry, ok := parseISO(model.Str(lc.ExtractedData.ExpiryDate))
	if !ok {
		return nil
	}
	today := in.Now.UTC().Truncate(24 * time.Hour)
	if !expiry.Before(today) {
		return nil
	}
	return []model.CrossRefIssue{{
		Field:       "lcExpiry",
		Documents:   []string{model.DocLetterOfCredit.Display()},
		Values:      []string{expiry.Format("2006-01-02")},
		Severity:    model.SeverityCritical,
		Description: fmt.Sprintf("credit expired on %s; documents can no longer be presented", expiry.Format("2006-01-02")),
	}}
}

func checkShipmentAfterExpiry(_ context.Context, in Input) []model.CrossRefIssue {
	lc := docByType(in.Docs, model.DocLetterOfCredit)
	bl := docByType(in.Docs, model.DocBillOfLading)
	if lc == nil || bl == nil {
		return nil
	}
	expiry, ok1 := parseISO(model.Str(lc.ExtractedData.ExpiryDate))
	shipped, ok2 := parseISO(model.Str(bl.ExtractedData.ShipmentDate))
	if !ok1 || !ok2 || !shipped.After(expiry) {
		return nil
	}
	return []model.CrossRefIssue{{
		Field:     "shipmentDate",
		Documents: []string{model.DocBillOfLading.Display(), model.DocLetterOfCredit.Display()},
		Values:    []string{shipped.Format("2006-01-02"), expiry.Format("2006-01-02")},
		Severity:  model.SeverityCritical,
		Description: fmt.Sprintf("goods shipped on %s, after the credit expired on %s",
			shipped.Format("2006-01-02"), expiry.Format("2006-01-02")),
	}}
}

func checkShipmentAfterLatest(_ context.Context, in Input) []model.CrossRefIssue {
	lc := docByType(in.Docs, model.DocLetterOfCredit)
	bl := docByType(in.Docs, model.DocBillOfLading)
	if lc == nil || bl == nil {
		return nil
	}
	latest, ok1 := parseISO(model.Str(lc.ExtractedData.LatestShipmentDate))
	shipped, ok2 := parseISO(model.Str(bl.ExtractedData.ShipmentDate))
	if !ok1 || !ok2 || !shipped.After(latest) {
		return nil
	}
	return []model.CrossRefIssue{{
		Field:     "shipmentDate",
		Documents: []string{model.DocBillOfLading.Display(), model.DocLetterOfCredit.Display()},
		Values:    []string{shipped.Format("2006-01-02"), latest.Format("2006-01-02")},
		Severity:  model.SeverityCritical,
		Description: fmt.Sprintf("goods shipped on %s, after the latest shipment date %s",
			shipped.Format("2006-01-02"), latest.Format("2006-01-02")),
	}}
}

// datedCertTypes lists the certificates whose issue date must track the B/L.
var datedCertTypes = []model.DocumentType{
	model.DocInspectionCertificate,
	model.DocCertificateOfOrigin,
	model.DocCertificateOfQuality,
}

// checkDocumentDating flags certificates dated more than one day after the
// B/L shipment date: a quality certificate issued long after loading cannot
// attest the shipped cargo.
func checkDocumentDating(_ context.Context, in Input) []model.CrossRefIssue {
	bl := docByType(in.Docs, model.DocBillOfLading)
	if bl == nil {
		return nil
	}
	blDate, ok := parseISO(model.Str(bl.ExtractedData.ShipmentDate))
	if !ok {
		return nil
	}

	values := collect(in.Docs, datedCertTypes,
		func(d *model.ExtractedData) *string { return d.IssueDate })

	var late []fieldValue
	for _, v := range values {
		certDate, ok := parseISO(v.value)
		if !ok {
			continue
		}
		if certDate.Sub(blDate).Hours() > 24 {
			late = append(late, v)
		}
	}
	if len(late) == 0 {
		return nil
	}
	ref := fieldValue{doc: model.DocBillOfLading, value: blDate.Format("2006-01-02")}
	desc := fmt.Sprintf("%s dated %s, more than one day after the B/L date %s",
		joinDisplay(late), late[0].value, ref.value)
	return []model.CrossRefIssue{*mismatchIssue("documentDating", model.SeverityMajor, ref, late, desc)}
}
