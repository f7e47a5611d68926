// Package output provides quote formatting.
// This package produces human and machine-readable outputs.
package output

import (
	"io"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/gedeza/business-consulting/core/pricing"
	"github.com/gedeza/business-consulting/core/types"
	"github.com/gedeza/business-consulting/core/validation"
	qerrors "github.com/gedeza/business-consulting/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given quote
	Render(w io.Writer, q *types.Quote) error
}

// Options control rendering
type Options struct {
	// Rates converts amounts to the quote currency; nil shows base currency
	Rates *pricing.RateSnapshot

	// ShowLineage adds the derivation of each figure
	ShowLineage bool
}

// Registry manages formatter registration
type Registry struct {
	mu         sync.RWMutex
	formatters map[Format]Formatter
}

// NewRegistry creates a registry holding the built-in formatters
func NewRegistry(opts Options) *Registry {
	r := &Registry{formatters: make(map[Format]Formatter)}
	r.Register(&CLIFormatter{opts: opts})
	r.Register(&JSONFormatter{opts: opts})
	r.Register(&MarkdownFormatter{opts: opts})
	return r
}

// Register adds a formatter, replacing any with the same format
func (r *Registry) Register(f Formatter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formatters[f.Format()] = f
}

// Get returns the formatter for a format
func (r *Registry) Get(format Format) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.formatters[format]
	if !ok {
		return nil, qerrors.Validationf("format", "unsupported output format %q", format)
	}
	return f, nil
}

// Formats returns the registered format names, sorted
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Format, 0, len(r.formatters))
	for f := range r.formatters {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// money renders a base-currency amount in the quote's display currency,
// falling back to the base currency when no rate is known.
type money struct {
	currency types.Currency
	rates    *pricing.RateSnapshot
}

func newMoney(q *types.Quote, opts Options) money {
	m := money{currency: types.BaseCurrency}
	if opts.Rates == nil {
		return m
	}
	c := q.Currency.Normalize()
	if _, ok := opts.Rates.Rate(c); ok {
		m.currency = c
		m.rates = opts.Rates
	}
	return m
}

func (m money) amount(d decimal.Decimal) decimal.Decimal {
	if m.rates == nil {
		return d
	}
	converted, err := m.rates.Convert(d, m.currency)
	if err != nil {
		return d
	}
	return converted
}

func (m money) String(d decimal.Decimal) string {
	return validation.FormatCurrency(m.amount(d), m.currency.String())
}
