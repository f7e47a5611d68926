package clients

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gedeza/business-consulting/adapters/storage"
	"github.com/gedeza/business-consulting/core/types"
	qerrors "github.com/gedeza/business-consulting/internal/errors"
)

func newRegistry() *Registry {
	r := NewRegistry(storage.NewMemoryStore())
	n := 0
	r.newID = func() string {
		n++
		return fmt.Sprintf("c-%d", n)
	}
	return r
}

func TestSaveAssignsID(t *testing.T) {
	ctx := context.Background()
	r := newRegistry()

	c, err := r.Save(ctx, types.Client{Name: "Acme Holdings", Email: "ops@acme.co.za", Phone: "082 123 4567"})
	require.NoError(t, err)
	assert.Equal(t, "c-1", c.ID)

	got, err := r.Get(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestSaveReplacesExisting(t *testing.T) {
	ctx := context.Background()
	r := newRegistry()

	c, err := r.Save(ctx, types.Client{Name: "Acme", Email: "ops@acme.co.za"})
	require.NoError(t, err)

	c.Company = "Acme Holdings (Pty) Ltd"
	_, err = r.Save(ctx, c)
	require.NoError(t, err)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Acme Holdings (Pty) Ltd", list[0].Company)

	_, err = r.Save(ctx, types.Client{ID: "nope", Name: "X", Email: "x@y.co"})
	assert.True(t, qerrors.IsNotFound(err))
}

func TestSaveValidation(t *testing.T) {
	tests := []struct {
		name      string
		client    types.Client
		wantField string
	}{
		{"missing name", types.Client{Email: "a@b.co"}, "name"},
		{"missing email", types.Client{Name: "A"}, "email"},
		{"bad email", types.Client{Name: "A", Email: "a@b"}, "email"},
		{"bad phone", types.Client{Name: "A", Email: "a@b.co", Phone: "12345"}, "phone"},
		{"script-only name", types.Client{Name: "<script>x</script>", Email: "a@b.co"}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newRegistry().Save(context.Background(), tt.client)
			require.Error(t, err)
			assert.True(t, qerrors.IsValidation(err))
			assert.Equal(t, tt.wantField, qerrors.FieldOf(err))
		})
	}
}

func TestListSortedByName(t *testing.T) {
	ctx := context.Background()
	r := newRegistry()
	for _, n := range []string{"zulu", "Alpha", "mike"} {
		_, err := r.Save(ctx, types.Client{Name: n, Email: "x@y.co"})
		require.NoError(t, err)
	}

	list, err := r.List(ctx)
	require.NoError(t, err)
	var names []string
	for _, c := range list {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Alpha", "mike", "zulu"}, names)
}

func TestFindByNameIgnoresCase(t *testing.T) {
	ctx := context.Background()
	r := newRegistry()
	_, err := r.Save(ctx, types.Client{Name: "Acme Holdings", Email: "ops@acme.co.za"})
	require.NoError(t, err)

	c, found, err := r.FindByName(ctx, "  acme holdings ")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "c-1", c.ID)

	_, found, err = r.FindByName(ctx, "Other")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	r := newRegistry()
	_, err := r.Save(ctx, types.Client{Name: "A", Email: "a@b.co"})
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, "c-1"))
	assert.True(t, qerrors.IsNotFound(r.Delete(ctx, "c-1")))

	list, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
