// Package normalize canonicalizes the identity and money fields shared by the
// lead, disposition and sales inputs.
package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PhoneDigits is the number of trailing digits kept from a phone number.
const PhoneDigits = 10

// Email lower-cases and trims an address.
func Email(raw string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(raw))
}

// Phone strips every non-digit and keeps the trailing PhoneDigits digits.
// It is best effort: country-code prefixes are dropped and short numbers are
// kept as they are.
func Phone(raw string) string {
	raw = strings.TrimSpace(raw)
	// spreadsheet exports often render numeric phones as floats
	raw = strings.TrimSuffix(raw, ".0")

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if len(digits) > PhoneDigits {
		digits = digits[len(digits)-PhoneDigits:]
	}
	return digits
}

// Name trims, collapses inner whitespace and upper-cases a name part.
func Name(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	return cases.Upper(language.Und).String(strings.Join(fields, " "))
}

// NameKey builds the first/last lookup key, or "" when either part is missing.
func NameKey(first, last string) string {
	first, last = Name(first), Name(last)
	if first == "" || last == "" {
		return ""
	}
	return first + "|" + last
}

// CustomerKey builds the "FIRST LAST" key used by sales ledgers that identify
// buyers by name. Missing parts are dropped.
func CustomerKey(first, last string) string {
	return Name(strings.TrimSpace(first + " " + last))
}

// Money parses a currency amount, ignoring symbols and thousands separators.
// It reports false when no number could be read.
func Money(raw string) (decimal.Decimal, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '$', ',', ' ', '\u00a0':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
	if cleaned == "" {
		return decimal.Zero, false
	}

	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		value = value.Neg()
	}
	return value, true
}

// NonNegativeMoney parses an amount and coerces unparsable or negative values
// to zero.
func NonNegativeMoney(raw string) decimal.Decimal {
	value, ok := Money(raw)
	if !ok || value.IsNegative() {
		return decimal.Zero
	}
	return value
}

// Label trims a free-text label such as a milestone or agent name.
func Label(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// SameLabel compares two labels ignoring case and surrounding whitespace.
func SameLabel(a, b string) bool {
	return strings.EqualFold(Label(a), Label(b))
}
