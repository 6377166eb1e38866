package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"meesho-recon/internal/domain"
)

var (
	minusVariants = strings.NewReplacer(
		"\u2212", "-",
		"\u2012", "-",
		"\u2013", "-",
		"\u2014", "-",
		"\ufe63", "-",
		"\uff0d", "-",
	)
	currencyTokens = strings.NewReplacer(
		"\u20b9", "",
		"INR", "",
		"Rs.", "",
		"Rs", "",
		",", "",
		" ", "",
		"\u00a0", "",
	)
	numericPattern = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)$`)

	nullTokens = map[string]bool{
		"nan":  true,
		"none": true,
		"null": true,
		"nat":  true,
	}
)

// ParseAmount coerces marketplace amount text: currency symbols, thousands
// separators, parenthesised negatives and unicode minus signs.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(minusVariants.Replace(s))
	if s == "" {
		return decimal.Zero, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = currencyTokens.Replace(s)
	s = strings.TrimPrefix(s, "+")
	if strings.HasPrefix(s, "-") && negative {
		return decimal.Zero, false
	}
	if !numericPattern.MatchString(s) {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// CoerceCell turns raw text into a typed cell. Text that is not numeric is kept.
func CoerceCell(raw string) domain.Value {
	s := strings.TrimSpace(raw)
	if s == "" || nullTokens[strings.ToLower(s)] {
		return domain.Null()
	}
	if d, ok := ParseAmount(s); ok {
		return domain.NumberWithRaw(d, s)
	}
	return domain.Text(s)
}

// AmountOf reads a cell as money. Non-numeric cells report false.
func AmountOf(v domain.Value) (decimal.Decimal, bool) {
	if d, ok := v.Decimal(); ok {
		return d, true
	}
	if v.IsBlank() {
		return decimal.Zero, false
	}
	return ParseAmount(v.Raw)
}

var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006",
	"02/01/2006 15:04",
	"02/01/2006 15:04:05",
	"01/02/2006",
	"2006/01/02",
	"02-01-2006",
	"02-01-2006 15:04:05",
	"02-Jan-2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"01-02-06",
	time.RFC3339,
}

// excelEpoch is day zero of the 1900 spreadsheet date system.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// ParseDate accepts the date spellings seen in marketplace exports and
// spreadsheet serial day numbers.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	if d, err := decimal.NewFromString(s); err == nil {
		days := d.IntPart()
		if days > 20000 && days < 80000 {
			return excelEpoch.AddDate(0, 0, int(days)), true
		}
	}
	return time.Time{}, false
}

// DateOf reads a cell as a calendar date truncated to the day.
func DateOf(v domain.Value) (time.Time, bool) {
	if v.IsBlank() {
		return time.Time{}, false
	}
	t, ok := ParseDate(v.Raw)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}
