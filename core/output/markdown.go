package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/gedeza/business-consulting/core/types"
)

// MarkdownFormatter renders a quote as a markdown document
type MarkdownFormatter struct {
	opts Options
}

func (f *MarkdownFormatter) Format() Format { return FormatMarkdown }

func (f *MarkdownFormatter) Render(w io.Writer, q *types.Quote) error {
	m := newMoney(q, f.opts)

	fmt.Fprintf(w, "# Quote: %s\n", q.Service)
	fmt.Fprintln(w, "")
	if q.BusinessName != "" {
		fmt.Fprintf(w, "**From:** %s  \n", q.BusinessName)
	}
	fmt.Fprintf(w, "**Client:** %s  \n", q.ClientName)
	fmt.Fprintf(w, "**Project:** %s  \n", q.ProjectName)
	fmt.Fprintf(w, "**Date:** %s\n", q.CreatedAt.Format("2006-01-02"))
	fmt.Fprintln(w, "")

	if q.PricingModel == types.PricingPercentage {
		fmt.Fprintln(w, "| Item | Amount |")
		fmt.Fprintln(w, "|------|-------:|")
		if q.FundingValue != nil {
			fmt.Fprintf(w, "| Funding value | %s |\n", m.String(*q.FundingValue))
		}
		if q.SupportFee != nil && q.SupportType != nil {
			fmt.Fprintf(w, "| Support fee (%s) | %s |\n", q.SupportType, m.String(*q.SupportFee))
		}
		if q.SecurityFee != nil {
			fmt.Fprintf(w, "| Security fee | %s |\n", m.String(*q.SecurityFee))
		}
		fmt.Fprintf(w, "| **Total** | **%s** |\n", m.String(q.FinalCost))
		fmt.Fprintln(w, "")
		fmt.Fprintf(w, "Support: %s\n", q.SupportDuration)
	} else {
		fmt.Fprintln(w, "| Task | Hours | Completed |")
		fmt.Fprintln(w, "|------|------:|:---------:|")
		for _, t := range q.Tasks {
			name := escapeCell(t.Name)
			if t.PerDocument {
				name += fmt.Sprintf(" (x%d)", q.NumDocuments)
			}
			done := ""
			if t.Completed {
				done = "✓"
			}
			fmt.Fprintf(w, "| %s | %s | %s |\n", name, t.Hours.String(), done)
		}
		fmt.Fprintln(w, "")
		fmt.Fprintf(w, "**Final hours:** %s  \n", q.Hours().String())
		fmt.Fprintf(w, "**Rate:** %s/hour  \n", m.String(q.HourlyRate))
		if q.VATEnabled {
			fmt.Fprintf(w, "**VAT:** %s  \n", m.String(q.VATAmount))
		}
		fmt.Fprintf(w, "**Total:** %s\n", m.String(q.FinalCost))
	}

	if f.opts.ShowLineage && len(q.Lineage) > 0 {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "## Derivation")
		fmt.Fprintln(w, "")
		for _, l := range q.Lineage {
			fmt.Fprintf(w, "- %s\n", l)
		}
	}
	return nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
