// Package types - Quote types
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricingParameters are the per-request inputs to the quote engine
type PricingParameters struct {
	// PricingModel selects hourly or percentage pricing
	PricingModel PricingModel `json:"pricing_model"`

	// Currency is the display currency; amounts are computed in BaseCurrency
	Currency Currency `json:"currency"`

	// VATEnabled adds VAT to hourly quotes
	VATEnabled bool `json:"vat_enabled"`

	// Hourly model
	HourlyRate          decimal.Decimal `json:"hourly_rate"`
	Complexity          decimal.Decimal `json:"complexity"`
	NumDocuments        int             `json:"num_documents"`
	PartialGroundwork   bool            `json:"partial_groundwork"`
	CompletedTasks      []string        `json:"completed_tasks,omitempty"`
	PolishingPercentage decimal.Decimal `json:"polishing_percentage"`

	// Percentage model
	FundingValue decimal.Decimal `json:"funding_value"`
	SupportType  SupportType     `json:"support_type"`

	// Identity carried onto the quote
	Consultant   ConsultantProfile `json:"consultant"`
	BusinessName string            `json:"business_name"`
	ClientName   string            `json:"client_name"`
	ProjectName  string            `json:"project_name"`
}

// IsCompleted reports whether the named task was marked completed
func (p *PricingParameters) IsCompleted(name string) bool {
	for _, n := range p.CompletedTasks {
		if n == name {
			return true
		}
	}
	return false
}

// QuoteTask is a catalog task copied onto a quote with its completion flag.
// Hours is the undiscounted base value and is the field callers edit.
type QuoteTask struct {
	Task
	Completed bool `json:"completed"`
}

// Quote is the computed artifact
type Quote struct {
	ID           string       `json:"id"`
	CreatedAt    time.Time    `json:"created_at"`
	PricingModel PricingModel `json:"pricing_model"`
	Service      string       `json:"service"`

	// Tasks is nil for percentage quotes
	Tasks []QuoteTask `json:"tasks"`

	// FinalHours is nil for percentage quotes
	FinalHours *decimal.Decimal `json:"final_hours"`
	FinalCost  decimal.Decimal  `json:"final_cost"`
	VATAmount  decimal.Decimal  `json:"vat_amount"`

	// Percentage model outputs, nil for hourly quotes
	SecurityFee     *decimal.Decimal `json:"security_fee"`
	SupportFee      *decimal.Decimal `json:"support_fee"`
	FundingValue    *decimal.Decimal `json:"funding_value"`
	SupportType     *SupportType     `json:"support_type"`
	SupportDuration string           `json:"support_duration,omitempty"`

	// Hourly inputs kept for recalculation
	HourlyRate          decimal.Decimal `json:"hourly_rate"`
	Complexity          decimal.Decimal `json:"complexity"`
	NumDocuments        int             `json:"num_documents"`
	RequiresDocCount    bool            `json:"requires_doc_count"`
	PartialGroundwork   bool            `json:"partial_groundwork"`
	GroundworkReduction bool            `json:"groundwork_reduction"`
	PolishingPercentage decimal.Decimal `json:"polishing_percentage"`
	VATEnabled          bool            `json:"vat_enabled"`
	Currency            Currency        `json:"currency"`

	Consultant   ConsultantProfile `json:"consultant"`
	BusinessName string            `json:"business_name"`
	ClientName   string            `json:"client_name"`
	ProjectName  string            `json:"project_name"`
	Client       *Client           `json:"client,omitempty"`

	// Lineage records how each figure was derived
	Lineage []string `json:"lineage,omitempty"`
}

// Hours returns FinalHours, or zero for percentage quotes
func (q *Quote) Hours() decimal.Decimal {
	if q.FinalHours == nil {
		return decimal.Zero
	}
	return *q.FinalHours
}

// NetCost returns the cost before VAT
func (q *Quote) NetCost() decimal.Decimal {
	return q.FinalCost.Sub(q.VATAmount)
}

// Clone returns a deep copy so callers can edit tasks without touching the original
func (q *Quote) Clone() *Quote {
	out := *q
	if q.Tasks != nil {
		out.Tasks = make([]QuoteTask, len(q.Tasks))
		copy(out.Tasks, q.Tasks)
	}
	if q.Lineage != nil {
		out.Lineage = append([]string(nil), q.Lineage...)
	}
	out.FinalHours = cloneDecimal(q.FinalHours)
	out.SecurityFee = cloneDecimal(q.SecurityFee)
	out.SupportFee = cloneDecimal(q.SupportFee)
	out.FundingValue = cloneDecimal(q.FundingValue)
	if q.SupportType != nil {
		st := *q.SupportType
		out.SupportType = &st
	}
	if q.Client != nil {
		c := *q.Client
		out.Client = &c
	}
	return &out
}

// EditableTasks returns a copy of the task list for editing
func (q *Quote) EditableTasks() []QuoteTask {
	if q.Tasks == nil {
		return nil
	}
	out := make([]QuoteTask, len(q.Tasks))
	copy(out, q.Tasks)
	return out
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
