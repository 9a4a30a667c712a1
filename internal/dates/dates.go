// Package dates normalizes the date formats found in trade documents and
// extracts labeled date fields from raw document text. Document dates are
// never compared as free text; everything funnels through Parse so that
// downstream comparisons are absolute-date arithmetic.
package dates

import (
	"regexp"
	"strings"
	"time"
)

// ISO is the canonical layout all dates normalize to.
const ISO = "2006-01-02"

// layouts is tried in order; the first successful parse wins. Numeric
// slash/dash dates follow the DD/MM/YYYY convention used on shipping
// documents: ambiguous inputs like 03/04/2026 are read day-first.
var layouts = []string{
	ISO,
	"02/01/2006",
	"02-01-2006",
	"2 January 2006",
	"02 January 2006",
	"2 January, 2006",
	"02 January, 2006",
	"January 2, 2006",
	"January 02, 2006",
	"January 2 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"2 Jan, 2006",
	"02 Jan, 2006",
	"Jan 2, 2006",
	"Jan 02, 2006",
	"Jan 2 2006",
}

// Parse converts free text to a calendar date. The second return is false
// when the text matches none of the supported formats.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Normalize returns the canonical YYYY-MM-DD form of s, or ("", false) when
// s is not a recognizable date. Already-canonical input round-trips unchanged.
func Normalize(s string) (string, bool) {
	t, ok := Parse(s)
	if !ok {
		return "", false
	}
	return t.Format(ISO), true
}

// dateToken matches the date-shaped text that follows a field label.
const dateToken = `([0-9]{4}-[0-9]{2}-[0-9]{2}|[0-9]{1,2}[/-][0-9]{1,2}[/-][0-9]{4}|[A-Za-z]{3,9}\.?\s+[0-9]{1,2},?\s+[0-9]{4}|[0-9]{1,2}\s+[A-Za-z]{3,9}\.?,?\s+[0-9]{4})`

// Field names the three date fields governed by deterministic extraction.
type Field string

const (
	FieldLatestShipment Field = "latestShipmentDate"
	FieldExpiry         Field = "expiryDate"
	FieldShippedOnBoard Field = "shipmentDate"
)

// labelPatterns is the ordered cascade of label phrasings per field. Adding a
// new phrasing is a data change, not new control flow. First match wins.
var labelPatterns = []struct {
	field    Field
	patterns []*regexp.Regexp
}{
	{
		field: FieldLatestShipment,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)latest\s+(?:date\s+of\s+)?shipment\s*(?:date)?\s*[:\-]?\s*` + dateToken),
			regexp.MustCompile(`(?i)latest\s+shipment\s*[:\-]?\s*` + dateToken),
			regexp.MustCompile(`(?i)shipment\s+not\s+later\s+than\s*[:\-]?\s*` + dateToken),
			regexp.MustCompile(`(?i)44C\s*[:\-]?\s*` + dateToken),
		},
	},
	{
		field: FieldExpiry,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:date\s+of\s+)?expiry\s*(?:date)?\s*[:\-]?\s*` + dateToken),
			regexp.MustCompile(`(?i)expires?\s+on\s*[:\-]?\s*` + dateToken),
			regexp.MustCompile(`(?i)valid\s+until\s*[:\-]?\s*` + dateToken),
			regexp.MustCompile(`(?i)31D\s*[:\-]?\s*` + dateToken),
		},
	},
	{
		field: FieldShippedOnBoard,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)shipped\s+on\s+board\s*(?:date)?\s*[:\-]?\s*` + dateToken),
			regexp.MustCompile(`(?i)on\s+board\s+date\s*[:\-]?\s*` + dateToken),
			regexp.MustCompile(`(?i)date\s+of\s+shipment\s*[:\-]?\s*` + dateToken),
			regexp.MustCompile(`(?im)^shipment\s+date\s*[:\-]?\s*` + dateToken),
			regexp.MustCompile(`(?i)laden\s+on\s+board\s*[:\-]?\s*` + dateToken),
		},
	},
}

// ExtractFields scans raw document text for the three governed date fields.
// The returned map holds canonical YYYY-MM-DD values for each field whose
// label cascade matched and parsed. Results are authoritative over any
// extractor-supplied value for the same field.
func ExtractFields(text string) map[Field]string {
	found := make(map[Field]string)
	for _, entry := range labelPatterns {
		for _, re := range entry.patterns {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			if iso, ok := Normalize(m[1]); ok {
				found[entry.field] = iso
				break
			}
		}
	}
	return found
}
