// Package verdict rolls document verdicts and cross-reference issues up into
// one package-level verdict. The rollup is deterministic and self-explaining:
// the recommendation string names the issues that produced the verdict.
package verdict

import (
	"strings"

	"github.com/LucasDotTrade/lucas-brain/internal/model"
)

// Aggregate computes the package verdict and recommendation.
//
// NO_GO when any issue (document-level or cross-reference) is critical or any
// document's own verdict is NO_GO. WAIT when any issue is major, any document
// verdict is WAIT, or any cross-reference issue exists at all. GO otherwise.
func Aggregate(docs []model.DocumentResult, crossRef []model.CrossRefIssue) (model.Verdict, string) {
	var critical, major []string

	for _, doc := range docs {
		for _, issue := range doc.Issues {
			switch issue.Severity {
			case model.SeverityCritical:
				critical = append(critical, issue.Description)
			case model.SeverityMajor:
				major = append(major, issue.Description)
			}
		}
	}
	for _, issue := range crossRef {
		switch issue.Severity {
		case model.SeverityCritical:
			critical = append(critical, issue.Description)
		case model.SeverityMajor:
			major = append(major, issue.Description)
		}
	}

	anyNoGo, anyWait := false, false
	for _, doc := range docs {
		switch doc.Verdict {
		case model.VerdictNoGo:
			anyNoGo = true
		case model.VerdictWait:
			anyWait = true
		}
	}

	if len(critical) > 0 || anyNoGo {
		return model.VerdictNoGo, recommendation(model.VerdictNoGo, critical)
	}
	if len(major) > 0 || anyWait || len(crossRef) > 0 {
		return model.VerdictWait, recommendation(model.VerdictWait, major)
	}
	return model.VerdictGo, "All documents are consistent. The presentation is ready to proceed."
}

func recommendation(v model.Verdict, reasons []string) string {
	var b strings.Builder
	switch v {
	case model.VerdictNoGo:
		b.WriteString("Do not proceed. Critical discrepancies must be resolved before presentation")
	default:
		b.WriteString("Hold for review. Discrepancies need attention before presentation")
	}
	if len(reasons) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(reasons, "; "))
	} else {
		b.WriteString(".")
	}
	return b.String()
}
