package crossref

import (
	"strings"
	"time"

	"github.com/LucasDotTrade/lucas-brain/internal/dates"
	"github.com/LucasDotTrade/lucas-brain/internal/model"
	"github.com/LucasDotTrade/lucas-brain/internal/normalize"
)

// docByType returns the first document of the given type, or nil.
func docByType(docs []model.DocumentResult, t model.DocumentType) *model.DocumentResult {
	for i := range docs {
		if docs[i].Type == t {
			return &docs[i]
		}
	}
	return nil
}

// fieldValue is one document's contribution to a compared field.
type fieldValue struct {
	doc   model.DocumentType
	value string
}

// collect gathers the specified (non-sentinel) values of a field across the
// given document types, in declaration order.
func collect(docs []model.DocumentResult, types []model.DocumentType, get func(*model.ExtractedData) *string) []fieldValue {
	var out []fieldValue
	for _, t := range types {
		d := docByType(docs, t)
		if d == nil {
			continue
		}
		v := model.Str(get(&d.ExtractedData))
		if !normalize.IsSpecified(v) {
			continue
		}
		out = append(out, fieldValue{doc: t, value: v})
	}
	return out
}

// pickReference returns the declared reference value for a field: the value
// from the first type in refOrder that contributed one. The second return is
// the remaining values to compare against it.
func pickReference(values []fieldValue, refOrder ...model.DocumentType) (fieldValue, []fieldValue) {
	for _, rt := range refOrder {
		for i, v := range values {
			if v.doc == rt {
				rest := make([]fieldValue, 0, len(values)-1)
				rest = append(rest, values[:i]...)
				rest = append(rest, values[i+1:]...)
				return v, rest
			}
		}
	}
	return values[0], values[1:]
}

// mismatchIssue builds one issue naming the reference and every disagreeing
// document, with parallel documents/values arrays.
func mismatchIssue(field string, severity model.Severity, ref fieldValue, mismatched []fieldValue, description string) *model.CrossRefIssue {
	issue := &model.CrossRefIssue{
		Field:       field,
		Documents:   []string{ref.doc.Display()},
		Values:      []string{ref.value},
		Severity:    severity,
		Description: description,
	}
	for _, m := range mismatched {
		issue.Documents = append(issue.Documents, m.doc.Display())
		issue.Values = append(issue.Values, m.value)
	}
	return issue
}

// parseISO parses a canonical YYYY-MM-DD field value. Assembled documents
// only carry canonical dates, but parse defensively anyway.
func parseISO(s string) (time.Time, bool) {
	return dates.Parse(strings.TrimSpace(s))
}

// normalizeRef canonicalizes a document reference number: uppercase, no
// spaces or internal separators.
func normalizeRef(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "/", "").Replace(s)
}

// joinDisplay lists document display names for issue descriptions.
func joinDisplay(vals []fieldValue) string {
	names := make([]string, len(vals))
	for i, v := range vals {
		names[i] = v.doc.Display()
	}
	return strings.Join(names, ", ")
}
