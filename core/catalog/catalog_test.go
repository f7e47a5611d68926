package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gedeza/business-consulting/core/types"
	qerrors "github.com/gedeza/business-consulting/internal/errors"
)

// memStore is an in-memory CatalogStore that can be told to fail
type memStore struct {
	saved   map[string]types.Service
	saves   int
	failErr error
}

func (m *memStore) LoadCustomServices(ctx context.Context) (map[string]types.Service, error) {
	out := make(map[string]types.Service, len(m.saved))
	for k, v := range m.saved {
		out[k] = v
	}
	return out, nil
}

func (m *memStore) SaveCustomServices(ctx context.Context, services map[string]types.Service) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.saves++
	m.saved = services
	return nil
}

func hours(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func customService(name string, tasks ...types.Task) types.Service {
	return types.Service{Name: name, Description: name + " work", Tasks: tasks}
}

func TestBuiltinsAreValid(t *testing.T) {
	c := NewDefault()
	assert.Empty(t, c.Validate(DefaultValidationRules()))
	assert.Equal(t, []string{
		ProposalWritingServiceName,
		BusinessPlanServiceName,
		DocumentationServiceName,
		FundingServiceName,
	}, c.Names())
}

func TestBuiltinDocumentationService(t *testing.T) {
	c := NewDefault()

	svc, err := c.Lookup(DocumentationServiceName)
	require.NoError(t, err)
	assert.True(t, svc.RequiresDocCount)
	assert.True(t, svc.GroundworkReduction)
	require.Len(t, svc.Tasks, 6)

	total := decimal.Zero
	for _, tk := range svc.Tasks {
		total = total.Add(tk.Hours)
	}
	assert.True(t, total.Equal(decimal.NewFromInt(14)))
	assert.True(t, svc.Tasks[3].PerDocument)
	assert.True(t, svc.Tasks[4].PerDocument)
	assert.False(t, svc.Tasks[5].PerDocument)
}

func TestNewPanicsOnInvalidBuiltin(t *testing.T) {
	bad := types.Service{
		Name:        "Broken",
		Description: "duplicate tasks",
		Tasks: []types.Task{
			{Name: "A", Hours: hours("1")},
			{Name: "A", Hours: hours("2")},
		},
	}
	assert.Panics(t, func() { New([]types.Service{bad}) })
}

func TestLookupUnknown(t *testing.T) {
	c := NewDefault()
	_, err := c.Lookup("Tax Advisory")
	require.Error(t, err)
	assert.True(t, qerrors.IsServiceNotFound(err))
}

func TestLookupReturnsCopy(t *testing.T) {
	c := NewDefault()
	svc, err := c.Lookup(ProposalWritingServiceName)
	require.NoError(t, err)
	svc.Tasks[0].Hours = hours("99")

	again, err := c.Lookup(ProposalWritingServiceName)
	require.NoError(t, err)
	assert.True(t, again.Tasks[0].Hours.Equal(hours("1")))
}

func TestUpsertCustomOverridesBuiltin(t *testing.T) {
	ctx := context.Background()
	c := NewDefault()

	_, err := c.UpsertCustom(ctx, customService(ProposalWritingServiceName, types.Task{Name: "Only", Hours: hours("3")}))
	require.NoError(t, err)

	svc, err := c.Lookup(ProposalWritingServiceName)
	require.NoError(t, err)
	require.Len(t, svc.Tasks, 1)
	assert.Equal(t, "Only", svc.Tasks[0].Name)
	assert.True(t, c.IsCustom(ProposalWritingServiceName))

	stats := c.Stats()
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Overridden)

	require.NoError(t, c.DeleteCustom(ctx, ProposalWritingServiceName))
	svc, err = c.Lookup(ProposalWritingServiceName)
	require.NoError(t, err)
	assert.Len(t, svc.Tasks, 6)
}

func TestUpsertCustomNormalizes(t *testing.T) {
	tests := []struct {
		name      string
		svc       types.Service
		wantTasks []string
		wantDocs  bool
		wantErr   bool
	}{
		{
			name: "drops empty names and non-positive hours",
			svc: customService("Audit Prep",
				types.Task{Name: "", Hours: hours("2")},
				types.Task{Name: "Zero", Hours: hours("0")},
				types.Task{Name: "Negative", Hours: hours("-1")},
				types.Task{Name: "Kept", Hours: hours("1.5")},
			),
			wantTasks: []string{"Kept"},
		},
		{
			name: "duplicate names keep first",
			svc: customService("Audit Prep",
				types.Task{Name: "Review", Hours: hours("1")},
				types.Task{Name: "Review", Hours: hours("4")},
			),
			wantTasks: []string{"Review"},
		},
		{
			name: "per-document task sets doc count",
			svc: customService("Audit Prep",
				types.Task{Name: "Draft", Hours: hours("2"), PerDocument: true},
			),
			wantTasks: []string{"Draft"},
			wantDocs:  true,
		},
		{
			name:    "no valid tasks",
			svc:     customService("Audit Prep", types.Task{Name: "Zero", Hours: hours("0")}),
			wantErr: true,
		},
		{
			name:    "missing description",
			svc:     types.Service{Name: "Audit Prep", Tasks: []types.Task{{Name: "A", Hours: hours("1")}}},
			wantErr: true,
		},
		{
			name:    "missing name",
			svc:     types.Service{Name: "  ", Description: "x", Tasks: []types.Task{{Name: "A", Hours: hours("1")}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewDefault()
			got, err := c.UpsertCustom(context.Background(), tt.svc)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, qerrors.IsInvalidService(err))
				assert.Equal(t, 0, c.Stats().Custom)
				return
			}
			require.NoError(t, err)

			var names []string
			for _, tk := range got.Tasks {
				names = append(names, tk.Name)
			}
			assert.Equal(t, tt.wantTasks, names)
			assert.Equal(t, tt.wantDocs, got.RequiresDocCount)
			assert.True(t, got.GroundworkReduction)
			assert.Equal(t, types.PricingHourly, got.PricingModel)
		})
	}
}

func TestUpsertCustomStripsScripts(t *testing.T) {
	c := NewDefault()
	got, err := c.UpsertCustom(context.Background(), types.Service{
		Name:        "Audit<script>alert(1)</script> Prep",
		Description: "desc",
		Tasks:       []types.Task{{Name: "A", Hours: hours("1")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Audit Prep", got.Name)
}

func TestDeleteCustomMissing(t *testing.T) {
	c := NewDefault()
	err := c.DeleteCustom(context.Background(), ProposalWritingServiceName)
	require.Error(t, err)
	assert.True(t, qerrors.IsNotFound(err))

	_, err = c.Lookup(ProposalWritingServiceName)
	assert.NoError(t, err)
}

func TestNamesAppendsCustomSorted(t *testing.T) {
	ctx := context.Background()
	c := NewDefault()
	for _, n := range []string{"Zeta", "Alpha"} {
		_, err := c.UpsertCustom(ctx, customService(n, types.Task{Name: "T", Hours: hours("1")}))
		require.NoError(t, err)
	}

	names := c.Names()
	assert.Equal(t, []string{"Alpha", "Zeta"}, names[len(names)-2:])
	assert.Len(t, c.List(), 6)
}

func TestOpenWritesThrough(t *testing.T) {
	ctx := context.Background()
	store := &memStore{saved: map[string]types.Service{
		"Stored":  customService("Stored", types.Task{Name: "T", Hours: hours("2")}),
		"Invalid": customService("Invalid"),
	}}

	c := NewDefault()
	require.NoError(t, c.Open(ctx, store))
	assert.True(t, c.IsCustom("Stored"))
	assert.False(t, c.IsCustom("Invalid"))

	_, err := c.UpsertCustom(ctx, customService("New", types.Task{Name: "T", Hours: hours("1")}))
	require.NoError(t, err)
	assert.Equal(t, 1, store.saves)
	assert.Contains(t, store.saved, "New")

	require.NoError(t, c.DeleteCustom(ctx, "Stored"))
	assert.Equal(t, 2, store.saves)
	assert.NotContains(t, store.saved, "Stored")
}

func TestPersistFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	c := NewDefault()
	require.NoError(t, c.Open(ctx, store))

	_, err := c.UpsertCustom(ctx, customService("Keep", types.Task{Name: "T", Hours: hours("1")}))
	require.NoError(t, err)

	store.failErr = errors.New("disk full")

	_, err = c.UpsertCustom(ctx, customService("Lost", types.Task{Name: "T", Hours: hours("1")}))
	require.Error(t, err)
	assert.False(t, c.IsCustom("Lost"))

	_, err = c.UpsertCustom(ctx, customService("Keep", types.Task{Name: "Other", Hours: hours("5")}))
	require.Error(t, err)
	kept, err := c.Lookup("Keep")
	require.NoError(t, err)
	assert.Equal(t, "T", kept.Tasks[0].Name)

	require.Error(t, c.DeleteCustom(ctx, "Keep"))
	assert.True(t, c.IsCustom("Keep"))
}

const hclCatalog = `
service "Grant Application" {
  description = "Preparing grant applications"

  task "Eligibility Review" {
    hours       = 1.5
    description = "Check the call requirements"
  }

  task "Application Drafting" {
    hours        = 4
    per_document = true
  }

  task "Broken" {
    hours = 0
  }
}

service "Empty" {
  description = "no usable tasks"

  task "Nothing" {
    hours = 0
  }
}
`

const yamlCatalogFixture = `
services:
  - name: Tender Response
    description: Responding to public tenders
    tasks:
      - name: Compliance Check
        hours: 2
      - name: Pricing Schedule
        hours: 1.25
        per_document: true
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileHCL(t *testing.T) {
	c := NewDefault()
	res, err := c.LoadFile(context.Background(), writeFile(t, "services.hcl", hclCatalog))
	require.NoError(t, err)

	assert.Equal(t, []string{"Grant Application"}, res.Imported)
	assert.Contains(t, res.Rejected, "Empty")

	svc, err := c.Lookup("Grant Application")
	require.NoError(t, err)
	require.Len(t, svc.Tasks, 2)
	assert.True(t, svc.Tasks[0].Hours.Equal(hours("1.5")))
	assert.Equal(t, "Check the call requirements", svc.Tasks[0].Description)
	assert.True(t, svc.Tasks[1].PerDocument)
	assert.True(t, svc.RequiresDocCount)
}

func TestLoadFileYAML(t *testing.T) {
	c := NewDefault()
	res, err := c.LoadFile(context.Background(), writeFile(t, "services.yaml", yamlCatalogFixture))
	require.NoError(t, err)
	assert.Equal(t, []string{"Tender Response"}, res.Imported)

	svc, err := c.Lookup("Tender Response")
	require.NoError(t, err)
	assert.True(t, svc.Tasks[1].Hours.Equal(hours("1.25")))
	assert.True(t, svc.RequiresDocCount)
}

func TestParseFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown extension", "services.json", "{}"},
		{"bad hcl", "services.hcl", `service "x" {`},
		{"wrong hcl type", "services.hcl", `service "x" { description = 3 }`},
		{"bad yaml", "services.yaml", "services: [::"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFile(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.True(t, qerrors.IsType(err, qerrors.TypeConfig))
		})
	}

	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.True(t, qerrors.IsType(err, qerrors.TypeConfig))
}
