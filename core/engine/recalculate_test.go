package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gedeza/business-consulting/core/catalog"
	"github.com/gedeza/business-consulting/core/types"
	qerrors "github.com/gedeza/business-consulting/internal/errors"
)

func generateDocumentation(t *testing.T, mutate func(*types.PricingParameters)) (*Engine, *types.Quote) {
	t.Helper()
	e := newTestEngine()
	p := hourlyParams()
	if mutate != nil {
		mutate(&p)
	}
	q, err := e.Generate(context.Background(), catalog.DocumentationServiceName, p)
	require.NoError(t, err)
	return e, q
}

func TestRecalculateEditedHours(t *testing.T) {
	e, q := generateDocumentation(t, nil)

	edited := q.EditableTasks()
	edited[1].Hours = dec("4") // Research and Benchmarking 2 -> 4
	edited[3].Hours = dec("6") // per document: 5 -> 6, x3 docs

	out, err := e.Recalculate(q, edited)
	require.NoError(t, err)

	// 2+4+2+18+6+1
	assertDecimal(t, "33", out.Hours())
	assertDecimal(t, "37950", out.FinalCost)
	assertDecimal(t, "4950", out.VATAmount)
	assertDecimal(t, "4", out.Tasks[1].Hours)

	// the input quote is untouched
	assertDecimal(t, "28", q.Hours())
	assertDecimal(t, "2", q.Tasks[1].Hours)
	assertDecimal(t, "32200", q.FinalCost)

	assert.Equal(t, q.ID, out.ID)
	assert.Equal(t, q.ClientName, out.ClientName)
}

func TestRecalculateIdempotent(t *testing.T) {
	e, q := generateDocumentation(t, func(p *types.PricingParameters) {
		p.PartialGroundwork = true
		p.CompletedTasks = []string{"Client Requirements Gathering"}
		p.Complexity = dec("1.5")
	})

	first, err := e.Recalculate(q, q.EditableTasks())
	require.NoError(t, err)
	second, err := e.Recalculate(first, first.EditableTasks())
	require.NoError(t, err)

	assert.True(t, first.Hours().Equal(second.Hours()))
	assert.True(t, first.FinalCost.Equal(second.FinalCost))
	assert.True(t, first.Hours().Equal(q.Hours()))
	assert.True(t, first.FinalCost.Equal(q.FinalCost))
}

func TestRecalculateUsesStoredDiscount(t *testing.T) {
	e, q := generateDocumentation(t, func(p *types.PricingParameters) {
		p.PartialGroundwork = true
		p.CompletedTasks = []string{"Client Requirements Gathering"}
	})
	assertDecimal(t, "27", q.Hours())

	edited := q.EditableTasks()
	edited[5].Hours = dec("3")

	out, err := e.Recalculate(q, edited)
	require.NoError(t, err)
	assertDecimal(t, "29", out.Hours())
}

func TestRecalculateRejections(t *testing.T) {
	e, q := generateDocumentation(t, func(p *types.PricingParameters) {
		p.PartialGroundwork = true
		p.CompletedTasks = []string{"Client Requirements Gathering"}
	})

	tests := []struct {
		name   string
		mutate func([]types.QuoteTask) []types.QuoteTask
	}{
		{"completed task edited", func(ts []types.QuoteTask) []types.QuoteTask {
			ts[0].Hours = dec("10")
			return ts
		}},
		{"task removed", func(ts []types.QuoteTask) []types.QuoteTask {
			return ts[:5]
		}},
		{"task reordered", func(ts []types.QuoteTask) []types.QuoteTask {
			ts[0], ts[1] = ts[1], ts[0]
			return ts
		}},
		{"negative hours", func(ts []types.QuoteTask) []types.QuoteTask {
			ts[2].Hours = dec("-1")
			return ts
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := e.Recalculate(q, tt.mutate(q.EditableTasks()))
			require.Error(t, err)
			assert.Nil(t, out)
			assert.True(t, qerrors.IsValidation(err))
			assert.Equal(t, "tasks", qerrors.FieldOf(err))
		})
	}

	_, err := e.Recalculate(nil, nil)
	assert.True(t, qerrors.IsValidation(err))
}

func TestRecalculateRejectsStoredInputs(t *testing.T) {
	e, q := generateDocumentation(t, nil)

	tests := []struct {
		name   string
		field  string
		mutate func(*types.Quote)
	}{
		{"rate below minimum", "hourlyRate", func(q *types.Quote) { q.HourlyRate = dec("50") }},
		{"complexity out of set", "complexity", func(q *types.Quote) { q.Complexity = dec("7") }},
		{"polishing above 100", "polishingPercentage", func(q *types.Quote) { q.PolishingPercentage = dec("900") }},
		{"negative documents", "numDocuments", func(q *types.Quote) { q.NumDocuments = -4 }},
		{"documents without per-document tasks", "numDocuments", func(q *types.Quote) {
			q.RequiresDocCount = false
			q.NumDocuments = 3
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := q.Clone()
			tt.mutate(bad)
			out, err := e.Recalculate(bad, bad.EditableTasks())
			require.Error(t, err)
			assert.Nil(t, out)
			assert.True(t, qerrors.IsValidation(err))
			assert.Equal(t, tt.field, qerrors.FieldOf(err))
		})
	}
}

func TestRecalculatePercentageIsNoOp(t *testing.T) {
	e := newTestEngine()
	q, err := e.Generate(context.Background(), "", percentageParams())
	require.NoError(t, err)

	out, err := e.Recalculate(q, nil)
	require.NoError(t, err)
	assert.Nil(t, out.Tasks)
	assert.Nil(t, out.FinalHours)
	assert.True(t, out.FinalCost.Equal(q.FinalCost))
	assert.True(t, out.SupportFee.Equal(*q.SupportFee))
}

func TestApplyEdits(t *testing.T) {
	_, q := generateDocumentation(t, nil)

	tasks, err := ApplyEdits(q, map[string]string{
		"Document Structuring":              "3.5",
		"Implementation Support (Optional)": "not a number",
	})
	require.NoError(t, err)
	assertDecimal(t, "3.5", tasks[2].Hours)
	assert.True(t, tasks[5].Hours.IsZero())
	assertDecimal(t, "2", q.Tasks[2].Hours)

	_, err = ApplyEdits(q, map[string]string{"Nope": "1"})
	assert.True(t, qerrors.IsValidation(err))
}
