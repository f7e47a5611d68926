// Package validation holds the field checks the quote engine, the catalog
// and the client registry run before accepting input.
package validation

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gedeza/business-consulting/core/types"
	qerrors "github.com/gedeza/business-consulting/internal/errors"
)

// Bounds on user-entered amounts, in base currency.
var (
	MinHourlyRate   = decimal.NewFromInt(100)
	MaxHourlyRate   = decimal.NewFromInt(10000)
	MinFundingValue = decimal.NewFromInt(10000)
	MaxFundingValue = decimal.NewFromInt(10_000_000_000)
	MaxAmount       = decimal.NewFromInt(999_999_999)
	hundred         = decimal.NewFromInt(100)
)

// Complexities are the accepted complexity multipliers
var Complexities = []decimal.Decimal{
	decimal.NewFromInt(1),
	decimal.NewFromFloat(1.5),
	decimal.NewFromInt(2),
}

var (
	emailRe     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe     = regexp.MustCompile(`^(\+27|0)[1-9]\d{8}$`)
	vatNumberRe = regexp.MustCompile(`^[4-7]\d{9}$`)
	scriptRe    = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	spaceRe     = regexp.MustCompile(`\s`)
)

// HourlyRate checks the rate is within [100, 10000]
func HourlyRate(rate decimal.Decimal) error {
	if rate.LessThan(MinHourlyRate) || rate.GreaterThan(MaxHourlyRate) {
		return qerrors.Validationf("hourlyRate", "must be between %s and %s, got %s", MinHourlyRate, MaxHourlyRate, rate)
	}
	return nil
}

// FundingValue checks the funding amount is within [10000, 10000000000]
func FundingValue(v decimal.Decimal) error {
	if v.LessThan(MinFundingValue) || v.GreaterThan(MaxFundingValue) {
		return qerrors.Validationf("fundingValue", "must be between %s and %s, got %s", MinFundingValue, MaxFundingValue, v)
	}
	return nil
}

// Complexity checks the multiplier is one of 1, 1.5 or 2
func Complexity(c decimal.Decimal) error {
	for _, v := range Complexities {
		if c.Equal(v) {
			return nil
		}
	}
	return qerrors.Validationf("complexity", "must be one of 1, 1.5, 2, got %s", c)
}

// PolishingPercentage checks the discount percentage is within [0, 100]
func PolishingPercentage(p decimal.Decimal) error {
	if p.IsNegative() || p.GreaterThan(hundred) {
		return qerrors.Validationf("polishingPercentage", "must be between 0 and 100, got %s", p)
	}
	return nil
}

// NumDocuments checks the document count is at least one
func NumDocuments(n int) error {
	if n < 1 {
		return qerrors.Validationf("numDocuments", "must be at least 1, got %d", n)
	}
	return nil
}

// SupportType checks the support type is full or admin
func SupportType(s types.SupportType) error {
	if !s.IsValid() {
		return qerrors.Validationf("supportType", "must be %q or %q, got %q", types.SupportFull, types.SupportAdmin, s)
	}
	return nil
}

// Amount checks a generic currency amount is within [0, 999999999]
func Amount(field string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(MaxAmount) {
		return qerrors.Validationf(field, "must be between 0 and %s", MaxAmount)
	}
	return nil
}

// Required checks a text field is not blank
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return qerrors.Validation(field, "is required")
	}
	return nil
}

// IsEmail reports whether s looks like an email address
func IsEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsPhone reports whether s is a South African phone number. Whitespace is ignored.
func IsPhone(s string) bool {
	return phoneRe.MatchString(spaceRe.ReplaceAllString(s, ""))
}

// IsVATNumber reports whether s is a South African VAT number
func IsVATNumber(s string) bool {
	return vatNumberRe.MatchString(s)
}

// Sanitize strips script elements from free text
func Sanitize(s string) string {
	return scriptRe.ReplaceAllString(s, "")
}

// ParseNumber parses user-entered numbers. Blank or invalid input is zero.
func ParseNumber(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
