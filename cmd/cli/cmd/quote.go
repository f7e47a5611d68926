// Package cmd - quote commands
package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gedeza/business-consulting/core/engine"
	"github.com/gedeza/business-consulting/core/output"
	"github.com/gedeza/business-consulting/core/types"
	"github.com/gedeza/business-consulting/core/validation"
	"github.com/gedeza/business-consulting/internal/app"
	"github.com/gedeza/business-consulting/internal/logging"
)

var (
	outputFormat string
	showLineage  bool
	saveQuote    bool
	saveRecalc   bool
	edits        []string

	pricingModel   string
	currency       string
	vatEnabled     bool
	hourlyRate     string
	complexity     string
	numDocuments   int
	partial        bool
	completedTasks []string
	polishing      string
	fundingValue   string
	supportType    string
	clientName     string
	projectName    string
	businessName   string
)

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote [service]",
	Short: "Generate a quote for a service",
	Long: `Generate a quote for a catalog service.

Hourly services are priced from their task list. Percentage pricing needs
--funding and --support; the service may then be omitted.

Examples:
  consulting-quote quote "Business Proposal Writing" --client Acme --project Tender --rate 1200
  consulting-quote quote "Business Documentation" --client Acme --project Policies --documents 3 \
      --partial --completed "Client Requirements Gathering" --polishing 50
  consulting-quote quote --model percentage --funding 1000000 --support admin --client Acme --project Plant
  consulting-quote quote "Business Plan Development" --client Acme --project Growth --edit "Market Research=12"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuote,
}

var quoteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved quotes, newest first",
	Args:  cobra.NoArgs,
	RunE:  runQuoteList,
}

var quoteShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Render a saved quote",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuoteShow,
}

var quoteRecalcCmd = &cobra.Command{
	Use:   "recalc <id>",
	Short: "Re-price a saved quote with edited task hours",
	Long: `Re-price a saved quote after editing task hours with --edit "Task=hours".

Completed tasks cannot be edited. The result replaces the saved quote unless
--save=false is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuoteRecalc,
}

var quoteDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved quote",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuoteDelete,
}

func init() {
	f := quoteCmd.Flags()
	f.StringVar(&pricingModel, "model", "", "pricing model (hourly, percentage); defaults to the service's model")
	f.StringVar(&currency, "currency", "", "display currency (default from config)")
	f.BoolVar(&vatEnabled, "vat", true, "add VAT to hourly quotes")
	f.StringVar(&hourlyRate, "rate", "", "hourly rate in ZAR (100-10000)")
	f.StringVar(&complexity, "complexity", "", "complexity multiplier (0.5-2)")
	f.IntVar(&numDocuments, "documents", 1, "number of documents for per-document tasks")
	f.BoolVar(&partial, "partial", false, "client supplied partial groundwork")
	f.StringSliceVar(&completedTasks, "completed", nil, "tasks already completed by the client")
	f.StringVar(&polishing, "polishing", "", "percentage of a completed task's hours still charged (0-100)")
	f.StringVar(&fundingValue, "funding", "", "funding value in ZAR for percentage pricing")
	f.StringVar(&supportType, "support", "", "support type for percentage pricing (full, admin)")
	f.StringVar(&clientName, "client", "", "client name (required)")
	f.StringVar(&projectName, "project", "", "project name (required)")
	f.StringVar(&businessName, "business", "", "business name shown on the quote")
	f.StringArrayVar(&edits, "edit", nil, `edited task hours as "Task=hours"; repeatable`)
	f.BoolVar(&saveQuote, "save", false, "save the quote to history")

	for _, c := range []*cobra.Command{quoteCmd, quoteShowCmd, quoteRecalcCmd} {
		c.Flags().StringVarP(&outputFormat, "format", "f", "cli", "output format (cli, json, markdown)")
		c.Flags().BoolVar(&showLineage, "lineage", false, "show how each figure was derived")
	}
	quoteRecalcCmd.Flags().StringArrayVar(&edits, "edit", nil, `edited task hours as "Task=hours"; repeatable`)
	quoteRecalcCmd.Flags().BoolVar(&saveRecalc, "save", true, "replace the saved quote")
	quoteDeleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")

	quoteCmd.AddCommand(quoteListCmd, quoteShowCmd, quoteRecalcCmd, quoteDeleteCmd)
	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	params, err := a.DefaultParameters(ctx)
	if err != nil {
		return err
	}
	if err := applyQuoteFlags(cmd, &params); err != nil {
		return err
	}

	service := ""
	if len(args) > 0 {
		service = args[0]
	}

	quote, err := a.Engine.Generate(ctx, service, params)
	if err != nil {
		return err
	}

	if len(edits) > 0 {
		quote, err = recalculate(a.Engine, quote, edits)
		if err != nil {
			return err
		}
	}

	if saveQuote {
		if err := a.Quotes.Save(ctx, quote); err != nil {
			return err
		}
		logging.Info("quote saved", zap.String("id", quote.ID))
	}

	return render(ctx, cmd.OutOrStdout(), a, quote)
}

// applyQuoteFlags overrides the defaults with every flag the user set
func applyQuoteFlags(cmd *cobra.Command, p *types.PricingParameters) error {
	f := cmd.Flags()
	var err error

	if f.Changed("model") {
		p.PricingModel = types.PricingModel(strings.ToLower(pricingModel))
	}
	if f.Changed("currency") {
		p.Currency = types.Currency(currency)
	}
	if f.Changed("vat") {
		p.VATEnabled = vatEnabled
	}
	if f.Changed("rate") {
		if p.HourlyRate, err = parseDecimalFlag("rate", hourlyRate); err != nil {
			return err
		}
	}
	if f.Changed("complexity") {
		if p.Complexity, err = parseDecimalFlag("complexity", complexity); err != nil {
			return err
		}
	}
	if f.Changed("polishing") {
		if p.PolishingPercentage, err = parseDecimalFlag("polishing", polishing); err != nil {
			return err
		}
	}
	if f.Changed("funding") {
		if p.FundingValue, err = parseDecimalFlag("funding", fundingValue); err != nil {
			return err
		}
	}
	if f.Changed("support") {
		p.SupportType = types.SupportType(strings.ToLower(supportType))
	}
	if f.Changed("business") {
		p.BusinessName = businessName
	}

	p.NumDocuments = numDocuments
	p.PartialGroundwork = partial
	p.CompletedTasks = completedTasks
	p.ClientName = clientName
	p.ProjectName = projectName

	// funding flags imply percentage pricing
	if p.PricingModel == "" && (f.Changed("funding") || f.Changed("support")) {
		p.PricingModel = types.PricingPercentage
	}
	return nil
}

func parseDecimalFlag(name, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %q is not a number", name, raw)
	}
	return d, nil
}

// parseEdits turns "Task=hours" pairs into ApplyEdits input
func parseEdits(raw []string) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for _, e := range raw {
		i := strings.LastIndex(e, "=")
		if i <= 0 {
			return nil, fmt.Errorf("--edit %q: expected \"Task=hours\"", e)
		}
		out[strings.TrimSpace(e[:i])] = strings.TrimSpace(e[i+1:])
	}
	return out, nil
}

func recalculate(e *engine.Engine, quote *types.Quote, raw []string) (*types.Quote, error) {
	m, err := parseEdits(raw)
	if err != nil {
		return nil, err
	}
	tasks, err := engine.ApplyEdits(quote, m)
	if err != nil {
		return nil, err
	}
	return e.Recalculate(quote, tasks)
}

// render writes the quote in the selected format. Rates are fetched only
// when the quote is shown in a foreign currency.
func render(ctx context.Context, w io.Writer, a *app.App, quote *types.Quote) error {
	opts := output.Options{ShowLineage: showLineage}
	if quote.Currency.Normalize() != types.BaseCurrency {
		snapshot, err := a.Rates.Rates(ctx)
		if err != nil {
			logging.Warn("exchange rates unavailable, showing base currency", zap.Error(err))
		} else {
			opts.Rates = snapshot
		}
	}

	f, err := output.NewRegistry(opts).Get(output.Format(outputFormat))
	if err != nil {
		return err
	}
	return f.Render(w, quote)
}

func runQuoteList(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	quotes, err := a.Quotes.List(cmd.Context())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(quotes) == 0 {
		fmt.Fprintln(w, "No saved quotes.")
		return nil
	}
	fmt.Fprintf(w, "%-36s  %-10s  %-30s  %-20s  %16s\n", "ID", "DATE", "SERVICE", "CLIENT", "TOTAL")
	for _, q := range quotes {
		fmt.Fprintf(w, "%-36s  %-10s  %-30s  %-20s  %16s\n",
			q.ID,
			q.CreatedAt.Format("2006-01-02"),
			truncate(q.Service, 30),
			truncate(q.ClientName, 20),
			validation.FormatCurrency(q.FinalCost, types.BaseCurrency.String()),
		)
	}
	return nil
}

func runQuoteShow(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	quote, err := a.Quotes.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return render(cmd.Context(), cmd.OutOrStdout(), a, quote)
}

func runQuoteRecalc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	quote, err := a.Quotes.Get(ctx, args[0])
	if err != nil {
		return err
	}

	updated, err := recalculate(a.Engine, quote, edits)
	if err != nil {
		return err
	}
	if saveRecalc {
		if err := a.Quotes.Save(ctx, updated); err != nil {
			return err
		}
	}
	return render(ctx, cmd.OutOrStdout(), a, updated)
}

func runQuoteDelete(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	ok, err := confirmer(cmd).Confirm(fmt.Sprintf("Delete quote %s?", args[0]))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}
	if err := a.Quotes.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted quote %s\n", args[0])
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
