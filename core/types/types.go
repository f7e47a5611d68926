// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions and
// copy helpers.
package types

import "strings"

// Currency represents a currency code
type Currency string

const (
	CurrencyZAR Currency = "ZAR"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// BaseCurrency is the currency every engine amount is expressed in
const BaseCurrency = CurrencyZAR

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Normalize upper-cases the code and defaults empty to the base currency
func (c Currency) Normalize() Currency {
	if c == "" {
		return BaseCurrency
	}
	return Currency(strings.ToUpper(string(c)))
}

// PricingModel selects how a quote is priced
type PricingModel string

const (
	// PricingHourly derives cost from summed task hours
	PricingHourly PricingModel = "hourly"

	// PricingPercentage derives cost from a share of a funding amount
	PricingPercentage PricingModel = "percentage"
)

// String returns the string representation
func (m PricingModel) String() string {
	return string(m)
}

// IsValid checks if the pricing model is known
func (m PricingModel) IsValid() bool {
	switch m {
	case PricingHourly, PricingPercentage:
		return true
	default:
		return false
	}
}

// SupportType selects the percentage-model support rate
type SupportType string

const (
	SupportFull  SupportType = "full"
	SupportAdmin SupportType = "admin"
)

// String returns the string representation
func (s SupportType) String() string {
	return string(s)
}

// IsValid checks if the support type is known
func (s SupportType) IsValid() bool {
	switch s {
	case SupportFull, SupportAdmin:
		return true
	default:
		return false
	}
}
