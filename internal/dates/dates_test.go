package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SupportedFormats(t *testing.T) {
	t.Parallel()

	want := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
	}{
		{"iso", "2026-02-15"},
		{"slash day first", "15/02/2026"},
		{"dash day first", "15-02-2026"},
		{"long month day first", "15 February 2026"},
		{"long month day first with comma", "15 February, 2026"},
		{"long month first with comma", "February 15, 2026"},
		{"long month first no comma", "February 15 2026"},
		{"abbrev day first", "15 Feb 2026"},
		{"abbrev day first with comma", "15 Feb, 2026"},
		{"abbrev month first", "Feb 15, 2026"},
		{"leading whitespace", "  2026-02-15 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			require.True(t, ok)
			assert.Equal(t, want, got)
		})
	}
}

func TestParse_NotADate(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "not a date", "tomorrow", "15th of never", "2026-15-99"} {
		_, ok := Parse(input)
		assert.False(t, ok, "input %q", input)
	}
}

func TestParse_AmbiguousNumericIsDayFirst(t *testing.T) {
	t.Parallel()

	// 03/04/2026 is April 3rd under the DD/MM/YYYY convention.
	got, ok := Parse("03/04/2026")
	require.True(t, ok)
	assert.Equal(t, time.April, got.Month())
	assert.Equal(t, 3, got.Day())
}

func TestNormalize_RoundTrip(t *testing.T) {
	t.Parallel()

	// parse(format(d)) == d for every supported input format.
	inputs := []string{
		"2026-02-15", "15/02/2026", "15 February 2026", "February 15, 2026", "15 Feb 2026",
	}
	for _, input := range inputs {
		iso, ok := Normalize(input)
		require.True(t, ok, "input %q", input)
		again, ok := Normalize(iso)
		require.True(t, ok)
		assert.Equal(t, iso, again)
	}
}

func TestNormalize_ISOIdempotent(t *testing.T) {
	t.Parallel()

	iso, ok := Normalize("2026-02-15")
	require.True(t, ok)
	assert.Equal(t, "2026-02-15", iso)
}

func TestExtractFields(t *testing.T) {
	t.Parallel()

	text := `IRREVOCABLE DOCUMENTARY CREDIT
31D: Date of Expiry: 2026-03-31
44C: Latest Shipment Date: 15/03/2026
Goods to be shipped from Houston.
Shipped on Board: March 10, 2026`

	got := ExtractFields(text)
	assert.Equal(t, "2026-03-31", got[FieldExpiry])
	assert.Equal(t, "2026-03-15", got[FieldLatestShipment])
	assert.Equal(t, "2026-03-10", got[FieldShippedOnBoard])
}

func TestExtractFields_AlternativeLabels(t *testing.T) {
	t.Parallel()

	text := `This credit expires on 30 April 2026.
Shipment not later than 20 April 2026.
LADEN ON BOARD: 18/04/2026`

	got := ExtractFields(text)
	assert.Equal(t, "2026-04-30", got[FieldExpiry])
	assert.Equal(t, "2026-04-20", got[FieldLatestShipment])
	assert.Equal(t, "2026-04-18", got[FieldShippedOnBoard])
}

func TestExtractFields_DayFirstCommaDates(t *testing.T) {
	t.Parallel()

	// Day-first dates with a trailing comma after the month must parse, not
	// just match the label pattern; otherwise the field is silently dropped.
	text := `Date of Expiry: 30 April, 2026
Latest Shipment: 20 Apr, 2026`

	got := ExtractFields(text)
	assert.Equal(t, "2026-04-30", got[FieldExpiry])
	assert.Equal(t, "2026-04-20", got[FieldLatestShipment])
}

func TestExtractFields_NoLabels(t *testing.T) {
	t.Parallel()

	got := ExtractFields("COMMERCIAL INVOICE\n500 MT polyethylene resin")
	assert.Empty(t, got)
}

func TestExtractFields_FirstMatchWins(t *testing.T) {
	t.Parallel()

	// Two expiry phrasings present; the higher-priority label wins.
	text := "Date of Expiry: 2026-03-31\nvalid until 2026-05-01"
	got := ExtractFields(text)
	assert.Equal(t, "2026-03-31", got[FieldExpiry])
}
