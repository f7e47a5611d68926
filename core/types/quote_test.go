package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestQuoteCloneIsDeep(t *testing.T) {
	hours := decimal.NewFromInt(28)
	q := &Quote{
		PricingModel: PricingHourly,
		Tasks: []QuoteTask{
			{Task: Task{Name: "Review", Hours: decimal.NewFromInt(2)}},
		},
		FinalHours: &hours,
		Client:     &Client{Name: "Acme"},
		Lineage:    []string{"a"},
	}

	c := q.Clone()
	c.Tasks[0].Hours = decimal.NewFromInt(9)
	*c.FinalHours = decimal.NewFromInt(1)
	c.Client.Name = "Other"
	c.Lineage[0] = "b"

	assert.True(t, q.Tasks[0].Hours.Equal(decimal.NewFromInt(2)))
	assert.True(t, q.FinalHours.Equal(decimal.NewFromInt(28)))
	assert.Equal(t, "Acme", q.Client.Name)
	assert.Equal(t, "a", q.Lineage[0])
}

func TestQuoteHoursNilForPercentage(t *testing.T) {
	q := &Quote{PricingModel: PricingPercentage, FinalCost: decimal.NewFromInt(58750)}

	assert.True(t, q.Hours().IsZero())
	assert.Nil(t, q.EditableTasks())
	assert.True(t, q.NetCost().Equal(decimal.NewFromInt(58750)))
}

func TestPricingParametersIsCompleted(t *testing.T) {
	p := PricingParameters{CompletedTasks: []string{"Document Structuring"}}

	assert.True(t, p.IsCompleted("Document Structuring"))
	assert.False(t, p.IsCompleted("document structuring"))
}

func TestServiceHelpers(t *testing.T) {
	s := Service{
		Name: "Docs",
		Tasks: []Task{
			{Name: "Write", Hours: decimal.NewFromInt(5), PerDocument: true},
		},
	}

	assert.Equal(t, PricingHourly, s.Model())
	assert.True(t, s.HasPerDocumentTasks())
	_, ok := s.Task("Write")
	assert.True(t, ok)

	c := s.Clone()
	c.Tasks[0].Name = "Changed"
	assert.Equal(t, "Write", s.Tasks[0].Name)
}

func TestCurrencyNormalize(t *testing.T) {
	assert.Equal(t, CurrencyZAR, Currency("").Normalize())
	assert.Equal(t, CurrencyUSD, Currency("usd").Normalize())
}
