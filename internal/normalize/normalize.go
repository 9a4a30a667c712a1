// Package normalize canonicalizes the entity names, ports, vessels, and
// numeric values that cross-reference rules compare. Matching is
// intentionally permissive: in documentary-credit review a false mismatch
// costs more user trust than a missed one.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// unspecified values the extraction collaborator uses when a field is absent.
var unspecified = map[string]bool{
	"":               true,
	"n/a":            true,
	"na":             true,
	"not specified":  true,
	"not applicable": true,
	"none":           true,
	"-":              true,
}

// IsSpecified reports whether s carries an actual value rather than one of
// the "field is absent" sentinels. Rules must only compare specified values.
func IsSpecified(s string) bool {
	return !unspecified[strings.ToLower(strings.TrimSpace(s))]
}

// portCountries is the allow-list of trailing country names stripped during
// port canonicalization.
var portCountries = []string{
	"united arab emirates", "uae", "usa", "united states", "u.s.a.",
	"saudi arabia", "singapore", "netherlands", "india", "china",
	"south korea", "korea", "japan", "malaysia", "indonesia", "nigeria",
	"angola", "egypt", "turkey", "greece", "italy", "spain", "belgium",
	"germany", "france", "united kingdom", "uk", "brazil", "mexico",
	"qatar", "kuwait", "oman", "bahrain", "iraq", "pakistan",
}

// portSuffixes is the trailing facility-type words stripped during port
// canonicalization.
var portSuffixes = []string{
	"terminal", "port", "harbour", "harbor", "anchorage", "berth",
	"jetty", "wharf", "dock", "oil terminal",
}

var whitespace = regexp.MustCompile(`\s+`)

// CanonicalPort reduces a port string to its comparable core: truncate at the
// first comma, strip a trailing country from the allow-list, strip a trailing
// facility suffix, collapse whitespace, lowercase.
func CanonicalPort(s string) string {
	p := strings.ToLower(strings.TrimSpace(s))
	if i := strings.Index(p, ","); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimSpace(p)
	for _, c := range portCountries {
		p = strings.TrimSuffix(p, " "+c)
	}
	for _, suf := range portSuffixes {
		p = strings.TrimSuffix(p, " "+suf)
	}
	return whitespace.ReplaceAllString(strings.TrimSpace(p), " ")
}

// PortsMatch reports whether two port strings refer to the same place. Match
// when canonical forms are equal, one contains the other, or the first two
// words agree and span at least four characters. Symmetric by construction.
func PortsMatch(a, b string) bool {
	ca, cb := CanonicalPort(a), CanonicalPort(b)
	if ca == "" || cb == "" {
		return false
	}
	if ca == cb {
		return true
	}
	if strings.Contains(ca, cb) || strings.Contains(cb, ca) {
		return true
	}
	fa, fb := firstWords(ca, 2), firstWords(cb, 2)
	return len(fa) >= 4 && fa == fb
}

func firstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

// legalSuffixes matches a trailing legal-entity suffix plus surrounding
// punctuation, the same cascade used for party names on all documents.
var legalSuffixes = regexp.MustCompile(
	`(?i)\s*,?\s*(LLC|L\.?L\.?C\.?|INC\.?|INCORPORATED|CORP\.?|CORPORATION|` +
		`CO\.?|COMPANY|LTD\.?|LIMITED|L\.?P\.?|LLP|PLC|GMBH|AG|S\.?A\.?|` +
		`B\.?V\.?|N\.?V\.?|PTE\.?|PVT\.?|FZE|FZCO|DMCC|W\.?L\.?L\.?)\s*\.?\s*$`)

var punctuation = regexp.MustCompile(`[^\p{L}\p{N} ]+`)

// asciiFold strips diacritics so "Société" and "Societe" compare equal.
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CanonicalName reduces an organization name to its comparable core: fold
// accents, strip a trailing legal-entity suffix and trailing punctuation,
// collapse whitespace, lowercase.
func CanonicalName(s string) string {
	n := strings.TrimSpace(s)
	if folded, _, err := transform.String(asciiFold, n); err == nil {
		n = folded
	}
	n = strings.ToLower(n)
	n = legalSuffixes.ReplaceAllString(n, "")
	n = strings.TrimRight(n, " .,;:")
	return whitespace.ReplaceAllString(strings.TrimSpace(n), " ")
}

// NamesMatch reports whether two organization names refer to the same party:
// canonical equality, containment, or punctuation-stripped exact match.
// Symmetric by construction.
func NamesMatch(a, b string) bool {
	ca, cb := CanonicalName(a), CanonicalName(b)
	if ca == "" || cb == "" {
		return false
	}
	if ca == cb {
		return true
	}
	if strings.Contains(ca, cb) || strings.Contains(cb, ca) {
		return true
	}
	pa := whitespace.ReplaceAllString(punctuation.ReplaceAllString(ca, ""), " ")
	pb := whitespace.ReplaceAllString(punctuation.ReplaceAllString(cb, ""), " ")
	return strings.TrimSpace(pa) == strings.TrimSpace(pb)
}

// vesselPrefixes is the common hull-type prefixes stripped before comparing
// vessel names.
var vesselPrefixes = regexp.MustCompile(`(?i)^(M[/.]?V|M[/.]?T|S[/.]?S)\.?\s+`)

// CanonicalVessel strips hull-type prefixes and normalizes case/whitespace.
func CanonicalVessel(s string) string {
	v := strings.TrimSpace(s)
	v = vesselPrefixes.ReplaceAllString(v, "")
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(v)), " ")
}

// VesselsMatch reports whether two vessel names refer to the same ship after
// prefix normalization.
func VesselsMatch(a, b string) bool {
	ca, cb := CanonicalVessel(a), CanonicalVessel(b)
	return ca != "" && ca == cb
}

var thousandsSep = strings.NewReplacer(",", "", "_", "")

var floatToken = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// ExtractNumber pulls the first floating-point-looking token from a labeled
// amount or quantity string ("USD 150,000.00", "500 MT"). The second return
// is false when no number is present; callers must suppress their rule
// rather than default to zero.
func ExtractNumber(s string) (float64, bool) {
	if !IsSpecified(s) {
		return 0, false
	}
	cleaned := thousandsSep.Replace(s)
	token := floatToken.FindString(cleaned)
	if token == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
