package model

// Severity ranks how serious a discrepancy is.
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

// severityRank gives severities a total order: critical > major > minor.
var severityRank = map[Severity]int{
	SeverityMinor:    1,
	SeverityMajor:    2,
	SeverityCritical: 3,
}

// Rank returns the numeric position of s in the severity order.
// Unknown severities rank below minor.
func (s Severity) Rank() int {
	return severityRank[s]
}

// MaxSeverity returns the higher-ranked of a and b.
func MaxSeverity(a, b Severity) Severity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// Verdict is the outcome of validating a document or a whole package.
type Verdict string

const (
	VerdictGo   Verdict = "GO"
	VerdictWait Verdict = "WAIT"
	VerdictNoGo Verdict = "NO_GO"
)

// Issue is a discrepancy found within a single document.
type Issue struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// DocumentResult wraps one document's extraction outcome. It is immutable
// once assembled; the cross-reference stage only reads it.
type DocumentResult struct {
	Type          DocumentType  `json:"type"`
	Verdict       Verdict       `json:"verdict"`
	Issues        []Issue       `json:"issues"`
	ExtractedData ExtractedData `json:"extracted_data"`
	Analysis      string        `json:"analysis"`
	RawText       string        `json:"raw_text"`
}

// CrossRefIssue is a discrepancy found when comparing the same logical field
// across two or more documents. Documents and Values are parallel arrays
// naming which documents disagreed and what each one said.
type CrossRefIssue struct {
	Field       string   `json:"field"`
	Documents   []string `json:"documents"`
	Values      []string `json:"values"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// PaymentMode distinguishes LC-backed presentations from customs-only shipments.
type PaymentMode string

const (
	PaymentModeLC   PaymentMode = "lc"
	PaymentModeNoLC PaymentMode = "no_lc"
)

// PackageVerdict is the terminal artifact of package validation.
type PackageVerdict struct {
	PackageID            string           `json:"package_id"`
	ClientIdentifier     string           `json:"client_identifier"`
	OverallVerdict       Verdict          `json:"overall_verdict"`
	DocumentResults      []DocumentResult `json:"document_results"`
	CrossReferenceIssues []CrossRefIssue  `json:"cross_reference_issues"`
	Recommendation       string           `json:"recommendation"`
	PaymentMode          PaymentMode      `json:"payment_mode"`
}
