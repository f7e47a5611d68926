// Package ports declares the collaborators the catalog, client registry and
// CLI depend on. The engine itself performs no I/O; callers resolve rates and
// client records through these interfaces before or after invoking it.
package ports

import (
	"context"

	"github.com/gedeza/business-consulting/core/pricing"
	"github.com/gedeza/business-consulting/core/types"
)

// KeyValueStore persists opaque values by key.
// Get returns found=false, not an error, for a missing key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// CatalogStore loads and saves the custom service tier.
type CatalogStore interface {
	LoadCustomServices(ctx context.Context) (map[string]types.Service, error)
	SaveCustomServices(ctx context.Context, services map[string]types.Service) error
}

// RateSource supplies currency -> base-currency multipliers.
type RateSource interface {
	Rates(ctx context.Context) (*pricing.RateSnapshot, error)
}

// ClientDirectory looks up a saved client by name.
type ClientDirectory interface {
	FindByName(ctx context.Context, name string) (*types.Client, bool, error)
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}
