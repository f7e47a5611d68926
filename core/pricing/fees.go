// Package pricing holds the business rates applied by the quote engine and
// the exchange-rate snapshots used to display amounts in other currencies.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/gedeza/business-consulting/core/types"
)

// SupportDuration describes the percentage-model engagement
const SupportDuration = "12 months, as-needed consultancy"

var (
	// VATRate is the South African VAT rate
	VATRate = decimal.RequireFromString("0.15")

	// SecurityFeeBase is the fixed percentage-model fee before its 15% addition
	SecurityFeeBase = decimal.NewFromInt(25000)

	// SecurityFee is SecurityFeeBase with the fixed 15% addition folded in.
	// It does not follow the VAT toggle.
	SecurityFee = SecurityFeeBase.Mul(decimal.NewFromInt(1).Add(VATRate))

	// FullSupportRate is the share of funding charged for full support
	FullSupportRate = decimal.RequireFromString("0.03")

	// AdminSupportRate is the share of funding charged for admin support
	AdminSupportRate = decimal.RequireFromString("0.015")

	hundred = decimal.NewFromInt(100)
)

// ApplyVAT returns the VAT portion and the gross amount for a net amount.
// When disabled the VAT is zero and gross equals net.
func ApplyVAT(net decimal.Decimal, enabled bool) (vat, gross decimal.Decimal) {
	if !enabled {
		return decimal.Zero, net
	}
	vat = net.Mul(VATRate)
	return vat, net.Add(vat)
}

// SupportRate returns the funding share for a support type
func SupportRate(st types.SupportType) decimal.Decimal {
	if st == types.SupportFull {
		return FullSupportRate
	}
	return AdminSupportRate
}

// Polish scales hours by a polishing percentage (0-100)
func Polish(hours, percentage decimal.Decimal) decimal.Decimal {
	return hours.Mul(percentage).Div(hundred)
}
