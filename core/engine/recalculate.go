package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/gedeza/business-consulting/core/pricing"
	"github.com/gedeza/business-consulting/core/types"
	"github.com/gedeza/business-consulting/core/validation"
	qerrors "github.com/gedeza/business-consulting/internal/errors"
)

// price derives FinalHours, FinalCost, VATAmount and Lineage for an hourly
// quote from its tasks and stored inputs.
func price(q *types.Quote) {
	total := decimal.Zero
	numDocs := decimal.NewFromInt(int64(q.NumDocuments))
	lineage := make([]string, 0, len(q.Tasks)+4)

	for _, t := range q.Tasks {
		h := t.Hours
		var steps []string
		if q.PartialGroundwork && q.GroundworkReduction && t.Completed {
			h = pricing.Polish(h, q.PolishingPercentage)
			steps = append(steps, "x "+q.PolishingPercentage.String()+"%")
		}
		if t.PerDocument {
			h = h.Mul(numDocs)
			steps = append(steps, fmt.Sprintf("x %d docs", q.NumDocuments))
		}
		total = total.Add(h)

		line := t.Name + ": " + t.Hours.String() + "h"
		if len(steps) > 0 {
			line += " " + strings.Join(steps, " ") + " = " + h.String() + "h"
		}
		lineage = append(lineage, line)
	}

	finalHours := total.Mul(q.Complexity)
	net := finalHours.Mul(q.HourlyRate)
	vat, gross := pricing.ApplyVAT(net, q.VATEnabled)

	q.FinalHours = &finalHours
	q.FinalCost = gross
	q.VATAmount = vat
	q.Lineage = append(lineage,
		"total hours: "+total.String()+" x complexity "+q.Complexity.String()+" = "+finalHours.String(),
		"net cost: "+finalHours.String()+" x "+q.HourlyRate.String()+" = "+net.String(),
		"vat: "+vat.String(),
		"final cost: "+gross.String(),
	)
}

// Recalculate re-derives an hourly quote's totals from an edited task list
// using the quote's stored inputs. The input quote is never modified.
//
// The edited list must keep the quote's task order; completed tasks keep
// their hours. Percentage quotes come back unchanged.
func (e *Engine) Recalculate(quote *types.Quote, edited []types.QuoteTask) (*types.Quote, error) {
	if quote == nil {
		return nil, qerrors.Validation("quote", "is required")
	}

	out := quote.Clone()
	if out.PricingModel == types.PricingPercentage {
		out.Tasks = nil
		return out, nil
	}
	if err := validateStoredInputs(quote); err != nil {
		return nil, err
	}

	if len(edited) != len(quote.Tasks) {
		return nil, qerrors.Validationf("tasks", "expected %d tasks, got %d", len(quote.Tasks), len(edited))
	}
	for i, t := range edited {
		orig := quote.Tasks[i]
		if t.Name != orig.Name {
			return nil, qerrors.Validationf("tasks", "task %d is %q, expected %q", i, t.Name, orig.Name)
		}
		if t.Hours.IsNegative() {
			return nil, qerrors.Validationf("tasks", "task %q has negative hours", t.Name)
		}
		if orig.Completed && !t.Hours.Equal(orig.Hours) {
			return nil, qerrors.Validationf("tasks", "completed task %q is not editable", t.Name)
		}
		out.Tasks[i].Hours = t.Hours
	}

	price(out)

	e.log.Debug("quote recalculated",
		zap.String("id", out.ID),
		zap.String("final_hours", out.Hours().String()),
		zap.String("final_cost", out.FinalCost.String()),
	)
	return out, nil
}

// validateStoredInputs applies the Generate checks to a quote that may have
// been decoded from a client.
func validateStoredInputs(q *types.Quote) error {
	if err := validation.HourlyRate(q.HourlyRate); err != nil {
		return err
	}
	if err := validation.Complexity(q.Complexity); err != nil {
		return err
	}
	if err := validation.PolishingPercentage(q.PolishingPercentage); err != nil {
		return err
	}
	if q.RequiresDocCount {
		return validation.NumDocuments(q.NumDocuments)
	}
	if q.NumDocuments != 1 {
		return qerrors.Validationf("numDocuments", "must be 1 for a service without per-document tasks, got %d", q.NumDocuments)
	}
	return nil
}

// ApplyEdits builds an edited task list from task name -> hours text.
// Blank or unparseable hours count as zero.
func ApplyEdits(quote *types.Quote, edits map[string]string) ([]types.QuoteTask, error) {
	tasks := quote.EditableTasks()
	index := make(map[string]int, len(tasks))
	for i, t := range tasks {
		index[t.Name] = i
	}

	for name, raw := range edits {
		i, ok := index[name]
		if !ok {
			return nil, qerrors.Validationf("tasks", "quote has no task %q", name)
		}
		tasks[i].Hours = validation.ParseNumber(raw)
	}
	return tasks, nil
}
