package output

import (
	"encoding/json"
	"io"

	"github.com/gedeza/business-consulting/core/types"
)

// JSONFormatter renders the quote plus display-currency totals
type JSONFormatter struct {
	opts Options
}

type jsonDocument struct {
	Quote   *types.Quote `json:"quote"`
	Display jsonDisplay  `json:"display"`
}

type jsonDisplay struct {
	Currency  string `json:"currency"`
	RateHash  string `json:"rate_hash,omitempty"`
	FinalCost string `json:"final_cost"`
	VATAmount string `json:"vat_amount"`
}

func (f *JSONFormatter) Format() Format { return FormatJSON }

func (f *JSONFormatter) Render(w io.Writer, q *types.Quote) error {
	m := newMoney(q, f.opts)

	out := *q
	if !f.opts.ShowLineage {
		out.Lineage = nil
	}

	doc := jsonDocument{
		Quote: &out,
		Display: jsonDisplay{
			Currency:  m.currency.String(),
			FinalCost: m.String(q.FinalCost),
			VATAmount: m.String(q.VATAmount),
		},
	}
	if m.rates != nil {
		doc.Display.RateHash = m.rates.Hash()
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
