package output

import (
	"fmt"
	"io"

	"github.com/gedeza/business-consulting/core/types"
)

const rule = "─────────────────────────────────────────────────────────────────────"

// CLIFormatter renders a quote as a terminal report
type CLIFormatter struct {
	opts Options
}

func (f *CLIFormatter) Format() Format { return FormatCLI }

func (f *CLIFormatter) Render(w io.Writer, q *types.Quote) error {
	m := newMoney(q, f.opts)

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║                              QUOTE                               ║")
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(w, "")

	if q.BusinessName != "" {
		fmt.Fprintf(w, "From:     %s\n", q.BusinessName)
	}
	if q.Consultant.Name != "" {
		fmt.Fprintf(w, "Contact:  %s\n", joinNonEmpty(", ", q.Consultant.Name, q.Consultant.Title, q.Consultant.Email))
	}
	fmt.Fprintf(w, "Client:   %s\n", q.ClientName)
	if q.Client != nil && q.Client.Company != "" {
		fmt.Fprintf(w, "Company:  %s\n", q.Client.Company)
	}
	fmt.Fprintf(w, "Project:  %s\n", q.ProjectName)
	fmt.Fprintf(w, "Service:  %s\n", q.Service)
	fmt.Fprintf(w, "Quote ID: %s (%s)\n", q.ID, q.CreatedAt.Format("2006-01-02"))
	fmt.Fprintln(w, "")

	if q.PricingModel == types.PricingPercentage {
		f.renderPercentage(w, q, m)
	} else {
		f.renderHourly(w, q, m)
	}

	if f.opts.ShowLineage && len(q.Lineage) > 0 {
		fmt.Fprintln(w, "DERIVATION")
		fmt.Fprintln(w, rule)
		for _, l := range q.Lineage {
			fmt.Fprintf(w, "  %s\n", l)
		}
		fmt.Fprintln(w, "")
	}
	return nil
}

func (f *CLIFormatter) renderHourly(w io.Writer, q *types.Quote, m money) {
	fmt.Fprintln(w, "TASKS")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-48s %8s %10s\n", "TASK", "HOURS", "")
	fmt.Fprintln(w, rule)
	for _, t := range q.Tasks {
		flags := ""
		if t.Completed {
			flags = "done"
		}
		if t.PerDocument {
			flags = joinNonEmpty(" ", flags, fmt.Sprintf("x%d", q.NumDocuments))
		}
		fmt.Fprintf(w, "%-48s %8s %10s\n", truncate(t.Name, 48), t.Hours.String(), flags)
	}
	fmt.Fprintln(w, rule)

	fmt.Fprintf(w, "%-30s %s\n", "Complexity", q.Complexity.String())
	fmt.Fprintf(w, "%-30s %s\n", "Final hours", q.Hours().String())
	fmt.Fprintf(w, "%-30s %s\n", "Hourly rate", m.String(q.HourlyRate))
	fmt.Fprintf(w, "%-30s %s\n", "Subtotal", m.String(q.NetCost()))
	if q.VATEnabled {
		fmt.Fprintf(w, "%-30s %s\n", "VAT (15%)", m.String(q.VATAmount))
	}
	fmt.Fprintf(w, "%-30s %s\n", "TOTAL", m.String(q.FinalCost))
	fmt.Fprintln(w, "")
}

func (f *CLIFormatter) renderPercentage(w io.Writer, q *types.Quote, m money) {
	fmt.Fprintln(w, "FEES")
	fmt.Fprintln(w, rule)
	if q.FundingValue != nil {
		fmt.Fprintf(w, "%-30s %s\n", "Funding value", m.String(*q.FundingValue))
	}
	if q.SupportFee != nil && q.SupportType != nil {
		fmt.Fprintf(w, "%-30s %s\n", "Support fee ("+q.SupportType.String()+")", m.String(*q.SupportFee))
	}
	if q.SecurityFee != nil {
		fmt.Fprintf(w, "%-30s %s\n", "Security fee (incl. 15%)", m.String(*q.SecurityFee))
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-30s %s\n", "TOTAL", m.String(q.FinalCost))
	fmt.Fprintf(w, "%-30s %s\n", "Support", q.SupportDuration)
	fmt.Fprintln(w, "")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func joinNonEmpty(sep string, parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}
