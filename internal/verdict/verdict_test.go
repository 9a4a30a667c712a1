package verdict

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LucasDotTrade/lucas-brain/internal/model"
)

func cleanDoc(t model.DocumentType) model.DocumentResult {
	return model.DocumentResult{Type: t, Verdict: model.VerdictGo}
}

func TestAggregate_CleanPackageIsGo(t *testing.T) {
	t.Parallel()

	docs := []model.DocumentResult{cleanDoc(model.DocLetterOfCredit), cleanDoc(model.DocBillOfLading)}
	v, rec := Aggregate(docs, nil)
	assert.Equal(t, model.VerdictGo, v)
	assert.NotEmpty(t, rec)
}

func TestAggregate_CriticalAlwaysWins(t *testing.T) {
	t.Parallel()

	// A critical issue flips to NO_GO no matter how many majors/minors coexist.
	docs := []model.DocumentResult{cleanDoc(model.DocLetterOfCredit)}
	crossRef := []model.CrossRefIssue{
		{Field: "portOfDischarge", Severity: model.SeverityMajor, Description: "port mismatch"},
		{Field: "quantity", Severity: model.SeverityMinor, Description: "minor variance"},
		{Field: "amount", Severity: model.SeverityCritical, Description: "invoice exceeds credit"},
	}
	v, rec := Aggregate(docs, crossRef)
	assert.Equal(t, model.VerdictNoGo, v)
	assert.Contains(t, rec, "invoice exceeds credit")
	assert.NotContains(t, rec, "port mismatch")
}

func TestAggregate_DocumentNoGoPropagates(t *testing.T) {
	t.Parallel()

	docs := []model.DocumentResult{
		cleanDoc(model.DocLetterOfCredit),
		{Type: model.DocBillOfLading, Verdict: model.VerdictNoGo},
	}
	v, _ := Aggregate(docs, nil)
	assert.Equal(t, model.VerdictNoGo, v)
}

func TestAggregate_MajorIssueIsWait(t *testing.T) {
	t.Parallel()

	docs := []model.DocumentResult{cleanDoc(model.DocLetterOfCredit)}
	crossRef := []model.CrossRefIssue{
		{Field: "portOfDischarge", Severity: model.SeverityMajor, Description: "discharge port differs"},
	}
	v, rec := Aggregate(docs, crossRef)
	assert.Equal(t, model.VerdictWait, v)
	assert.Contains(t, rec, "discharge port differs")
}

func TestAggregate_AnyCrossRefIssueIsAtLeastWait(t *testing.T) {
	t.Parallel()

	docs := []model.DocumentResult{cleanDoc(model.DocCommercialInvoice)}
	crossRef := []model.CrossRefIssue{
		{Field: "quantity", Severity: model.SeverityMinor, Description: "small variance"},
	}
	v, _ := Aggregate(docs, crossRef)
	assert.Equal(t, model.VerdictWait, v)
}

func TestAggregate_DocumentWaitPropagates(t *testing.T) {
	t.Parallel()

	docs := []model.DocumentResult{
		cleanDoc(model.DocLetterOfCredit),
		{Type: model.DocPackingList, Verdict: model.VerdictWait},
	}
	v, _ := Aggregate(docs, nil)
	assert.Equal(t, model.VerdictWait, v)
}

func TestAggregate_DocumentLevelCriticalIssue(t *testing.T) {
	t.Parallel()

	docs := []model.DocumentResult{
		{
			Type:    model.DocBillOfLading,
			Verdict: model.VerdictGo,
			Issues: []model.Issue{
				{Type: "missing_clause", Severity: model.SeverityCritical, Description: "no on-board notation"},
			},
		},
	}
	v, rec := Aggregate(docs, nil)
	assert.Equal(t, model.VerdictNoGo, v)
	assert.Contains(t, rec, "no on-board notation")
}

func TestSeverityOrdering(t *testing.T) {
	t.Parallel()

	assert.Greater(t, model.SeverityCritical.Rank(), model.SeverityMajor.Rank())
	assert.Greater(t, model.SeverityMajor.Rank(), model.SeverityMinor.Rank())
	assert.Equal(t, model.SeverityCritical, model.MaxSeverity(model.SeverityMinor, model.SeverityCritical))
}
