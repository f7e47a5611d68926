package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gedeza/business-consulting/core/ports"
	"github.com/gedeza/business-consulting/core/types"
	qerrors "github.com/gedeza/business-consulting/internal/errors"
)

func backends(t *testing.T) map[string]ports.KeyValueStore {
	t.Helper()
	dir := t.TempDir()

	file, err := Open(BackendFile, filepath.Join(dir, "nested", "store.json"))
	require.NoError(t, err)
	sqlite, err := Open(BackendSQLite, filepath.Join(dir, "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]ports.KeyValueStore{
		"memory": NewMemoryStore(),
		"file":   file,
		"sqlite": sqlite,
	}
}

func TestKeyValueStores(t *testing.T) {
	ctx := context.Background()

	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, found, err := kv.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, kv.Set(ctx, "a", []byte(`{"n":1}`)))
			require.NoError(t, kv.Set(ctx, "a", []byte(`{"n":2}`)))

			v, found, err := kv.Get(ctx, "a")
			require.NoError(t, err)
			require.True(t, found)
			assert.JSONEq(t, `{"n":2}`, string(v))

			require.NoError(t, kv.Delete(ctx, "a"))
			require.NoError(t, kv.Delete(ctx, "a"))
			_, found, err = kv.Get(ctx, "a")
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestFileStorePersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	first, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, KeyClients, []byte(`[]`)))

	second, err := NewFileStore(path)
	require.NoError(t, err)
	v, found, err := second.Get(ctx, KeyClients)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "[]", string(v))
}

func TestFileStoreRejectsNonJSON(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	err = s.Set(context.Background(), "k", []byte("not json"))
	assert.True(t, qerrors.IsType(err, qerrors.TypeStorage))
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	s, err := NewFileStore(path)
	require.NoError(t, err)
	_, _, err = s.Get(context.Background(), "k")
	assert.True(t, qerrors.IsType(err, qerrors.TypeStorage))
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("postgres", "")
	assert.True(t, qerrors.IsType(err, qerrors.TypeConfig))
}

func TestCatalogStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewCatalogStore(NewMemoryStore())

	empty, err := s.LoadCustomServices(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	in := map[string]types.Service{
		"Audit Prep": {
			Name:        "Audit Prep",
			Description: "Preparing for audits",
			Tasks: []types.Task{
				{Name: "Gather", Hours: decimal.RequireFromString("1.5"), PerDocument: true},
			},
			RequiresDocCount:    true,
			GroundworkReduction: true,
			PricingModel:        types.PricingHourly,
		},
	}
	require.NoError(t, s.SaveCustomServices(ctx, in))

	out, err := s.LoadCustomServices(ctx)
	require.NoError(t, err)
	require.Contains(t, out, "Audit Prep")
	got := out["Audit Prep"]
	assert.True(t, got.Tasks[0].Hours.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, got.Tasks[0].PerDocument)
	assert.True(t, got.RequiresDocCount)
}

func TestCatalogStoreCorruptValue(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	require.NoError(t, kv.Set(ctx, KeyCustomServices, []byte("[1,2]")))

	_, err := NewCatalogStore(kv).LoadCustomServices(ctx)
	assert.True(t, qerrors.IsType(err, qerrors.TypeStorage))
}

func TestProfileStore(t *testing.T) {
	ctx := context.Background()
	s := NewProfileStore(NewMemoryStore())

	p, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, p.BusinessName)

	want := types.BusinessProfile{
		BusinessName: "Gedeza Consulting",
		Consultant:   types.ConsultantProfile{Name: "N. Gedeza", VATNumber: "4123456789"},
	}
	require.NoError(t, s.Save(ctx, want))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestQuoteStore(t *testing.T) {
	ctx := context.Background()
	s := NewQuoteStore(NewMemoryStore())
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	hours := decimal.NewFromInt(28)
	older := &types.Quote{ID: "a", CreatedAt: base, FinalHours: &hours, FinalCost: decimal.NewFromInt(32200)}
	newer := &types.Quote{ID: "b", CreatedAt: base.Add(time.Hour), FinalCost: decimal.NewFromInt(58750)}
	require.NoError(t, s.Save(ctx, older))
	require.NoError(t, s.Save(ctx, newer))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, got.Hours().Equal(hours))
	assert.True(t, got.FinalCost.Equal(decimal.NewFromInt(32200)))

	require.NoError(t, s.Delete(ctx, "a"))
	_, err = s.Get(ctx, "a")
	assert.True(t, qerrors.IsNotFound(err))
	assert.True(t, qerrors.IsNotFound(s.Delete(ctx, "a")))
}
