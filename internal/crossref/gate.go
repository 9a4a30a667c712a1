package crossref

import (
	"context"
	"fmt"

	"github.com/LucasDotTrade/lucas-brain/internal/model"
)

// Mode decides whether a package is an LC-backed presentation or a
// customs-only shipment: lc iff a letter of credit is present.
func Mode(docs []model.DocumentResult) model.PaymentMode {
	if docByType(docs, model.DocLetterOfCredit) != nil {
		return model.PaymentModeLC
	}
	return model.PaymentModeNoLC
}

// requiredDocRule builds a customs-readiness check: an absent document type
// raises an issue at the given severity. Critical documents block cargo release.
func requiredDocRule(docType model.DocumentType, severity model.Severity) CheckFunc {
	return func(_ context.Context, in Input) []model.CrossRefIssue {
		if docByType(in.Docs, docType) != nil {
			return nil
		}
		verb := "is required for customs clearance; cargo cannot be released without it"
		if severity == model.SeverityMajor {
			verb = "is expected for customs clearance"
		}
		return []model.CrossRefIssue{{
			Field:       "customsReadiness",
			Documents:   []string{docType.Display()},
			Values:      []string{"absent"},
			Severity:    severity,
			Description: fmt.Sprintf("%s %s", docType.Display(), verb),
		}}
	}
}
