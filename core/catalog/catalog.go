// Package catalog - Authoritative service catalog
// Resolves a service name through two tiers: user-defined custom services
// first, then the built-in services fixed for the process lifetime.
package catalog

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/gedeza/business-consulting/core/ports"
	"github.com/gedeza/business-consulting/core/types"
	qerrors "github.com/gedeza/business-consulting/internal/errors"
	"github.com/gedeza/business-consulting/internal/logging"
)

// Catalog is the merged registry of built-in and custom services
type Catalog struct {
	mu sync.RWMutex

	// base tier, immutable after New
	builtin map[string]types.Service
	order   []string

	// override tier
	custom map[string]types.Service

	store ports.CatalogStore
	log   *zap.Logger
}

// New creates a catalog over the given built-in services.
// It panics if the built-ins violate a validation rule.
func New(builtins []types.Service) *Catalog {
	c := &Catalog{
		builtin: make(map[string]types.Service, len(builtins)),
		custom:  make(map[string]types.Service),
		log:     logging.Named("catalog"),
	}
	for _, s := range builtins {
		c.builtin[s.Name] = s.Clone()
		c.order = append(c.order, s.Name)
	}
	c.MustValidate()
	return c
}

// NewDefault creates a catalog over Builtins()
func NewDefault() *Catalog {
	return New(Builtins())
}

// Open loads the custom tier from store and writes every later mutation through to it
func (c *Catalog) Open(ctx context.Context, store ports.CatalogStore) error {
	loaded, err := store.LoadCustomServices(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = store
	c.custom = make(map[string]types.Service, len(loaded))
	for name, s := range loaded {
		normalized, err := normalizeCustom(s)
		if err != nil {
			c.log.Warn("dropping stored custom service", zap.String("service", name), zap.Error(err))
			continue
		}
		c.custom[normalized.Name] = normalized
	}
	c.log.Debug("custom services loaded", zap.Int("count", len(c.custom)))
	return nil
}

// Lookup resolves a service name. Custom services take priority on collision.
func (c *Catalog) Lookup(name string) (types.Service, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if s, ok := c.custom[name]; ok {
		return s.Clone(), nil
	}
	if s, ok := c.builtin[name]; ok {
		return s.Clone(), nil
	}
	return types.Service{}, qerrors.ServiceNotFound(name)
}

// UpsertCustom validates and stores a custom service, returning the stored form.
// Tasks without a name or positive hours are dropped; the service is rejected
// only when none remain.
func (c *Catalog) UpsertCustom(ctx context.Context, svc types.Service) (types.Service, error) {
	normalized, err := normalizeCustom(svc)
	if err != nil {
		return types.Service{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	prev, existed := c.custom[normalized.Name]
	c.custom[normalized.Name] = normalized
	if err := c.persist(ctx); err != nil {
		if existed {
			c.custom[normalized.Name] = prev
		} else {
			delete(c.custom, normalized.Name)
		}
		return types.Service{}, err
	}

	c.log.Info("custom service saved",
		zap.String("service", normalized.Name),
		zap.Int("tasks", len(normalized.Tasks)),
		zap.Bool("overrides_builtin", c.hasBuiltin(normalized.Name)),
	)
	return normalized.Clone(), nil
}

// DeleteCustom removes a custom service. Built-ins are never affected.
func (c *Catalog) DeleteCustom(ctx context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev, ok := c.custom[name]
	if !ok {
		return qerrors.NotFound("custom service", name)
	}
	delete(c.custom, name)
	if err := c.persist(ctx); err != nil {
		c.custom[name] = prev
		return err
	}

	c.log.Info("custom service deleted", zap.String("service", name))
	return nil
}

// IsCustom reports whether name resolves to the custom tier
func (c *Catalog) IsCustom(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.custom[name]
	return ok
}

// Names returns the merged service names: built-ins in catalog order, then
// custom-only names sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := append([]string(nil), c.order...)
	var extra []string
	for name := range c.custom {
		if !c.hasBuiltin(name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// List returns the merged services in Names order
func (c *Catalog) List() []types.Service {
	names := c.Names()
	out := make([]types.Service, 0, len(names))
	for _, n := range names {
		if s, err := c.Lookup(n); err == nil {
			out = append(out, s)
		}
	}
	return out
}

// Stats returns catalog statistics
func (c *Catalog) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := Stats{Builtin: len(c.builtin), Custom: len(c.custom)}
	for name := range c.custom {
		if c.hasBuiltin(name) {
			stats.Overridden++
		}
	}
	stats.Total = stats.Builtin + stats.Custom - stats.Overridden
	return stats
}

// Stats holds catalog statistics
type Stats struct {
	Total      int `json:"total"`
	Builtin    int `json:"builtin"`
	Custom     int `json:"custom"`
	Overridden int `json:"overridden"`
}

func (c *Catalog) hasBuiltin(name string) bool {
	_, ok := c.builtin[name]
	return ok
}

// persist must be called with c.mu held
func (c *Catalog) persist(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	snapshot := make(map[string]types.Service, len(c.custom))
	for k, v := range c.custom {
		snapshot[k] = v.Clone()
	}
	return c.store.SaveCustomServices(ctx, snapshot)
}
