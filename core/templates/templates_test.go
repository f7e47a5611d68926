package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	assert.Equal(t, []string{
		"Business Proposal Writing",
		"Business Plan Development",
		"Business Documentation",
		"Administrative Workflow Development",
	}, r.Services())
	assert.Len(t, r.ByService("Business Documentation"), 3)
	assert.Nil(t, r.ByService("Tax Advisory"))
}

func TestByID(t *testing.T) {
	r := Default()

	tpl, ok := r.ByID("Business Plan Development", "startup-business-plan")
	require.True(t, ok)
	assert.Equal(t, "Startup Business Plan", tpl.Name)
	assert.Equal(t, HourRange{Min: 19, Max: 28}, tpl.EstimatedHours)
	assert.Len(t, tpl.Sections, 7)

	_, ok = r.ByID("Business Documentation", "startup-business-plan")
	assert.False(t, ok)
}

func TestAllCompliances(t *testing.T) {
	got := Default().AllCompliances()

	assert.True(t, len(got) > 10)
	assert.Contains(t, got, "POPIA")
	assert.IsIncreasing(t, got)
}

func TestParseMergesRepeatedService(t *testing.T) {
	src := []byte(`
- service: A
  templates:
    - id: one
      compliance: [Z, X]
- service: A
  templates:
    - id: two
      compliance: [X]
`)
	r, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, r.Services())
	assert.Len(t, r.ByService("A"), 2)
	assert.Equal(t, []string{"X", "Z"}, r.AllCompliances())

	_, err = Parse([]byte("service: ["))
	assert.Error(t, err)
}

func TestByServiceReturnsCopy(t *testing.T) {
	r := Default()
	ts := r.ByService("Business Proposal Writing")
	ts[0].Name = "changed"
	assert.Equal(t, "SEFA-Compliant Business Proposal", r.ByService("Business Proposal Writing")[0].Name)
}
