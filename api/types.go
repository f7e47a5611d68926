// Package api - API types for the quote service
package api

import (
	"time"

	"github.com/gedeza/business-consulting/core/catalog"
	"github.com/gedeza/business-consulting/core/types"
)

// QuoteRequest is the input to POST /quotes
type QuoteRequest struct {
	// Service is the catalog service name; may be empty for percentage pricing
	Service string `json:"service"`

	// Params are the pricing inputs
	Params types.PricingParameters `json:"params"`

	// Save stores the quote in the quote history
	Save bool `json:"save,omitempty"`
}

// RecalculateRequest is the input to POST /quotes/recalculate.
// Either Tasks (the full edited list) or Edits (task name -> hours) is used.
type RecalculateRequest struct {
	Quote *types.Quote      `json:"quote"`
	Tasks []types.QuoteTask `json:"tasks,omitempty"`
	Edits map[string]string `json:"edits,omitempty"`
	Save  bool              `json:"save,omitempty"`
}

// QuoteResponse wraps a computed quote with display totals
type QuoteResponse struct {
	Quote   *types.Quote `json:"quote"`
	Display *Display     `json:"display,omitempty"`
}

// Display carries amounts converted to the quote currency
type Display struct {
	Currency  string `json:"currency"`
	RateHash  string `json:"rate_hash"`
	FinalCost string `json:"final_cost"`
	VATAmount string `json:"vat_amount"`
}

// ServiceResponse is a catalog entry with its tier
type ServiceResponse struct {
	types.Service
	Custom bool `json:"custom"`
}

// ServiceListResponse is the output of GET /services
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Stats    catalog.Stats     `json:"stats"`
}

// HealthResponse is the output of GET /health
type HealthResponse struct {
	Status  string    `json:"status"`
	Version string    `json:"version"`
	Time    time.Time `json:"time"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes a failed request
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}
