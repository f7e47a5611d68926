// Package app wires configuration into the stores, catalog, engine and API
// shared by the CLI and the server binary.
package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/gedeza/business-consulting/adapters/rates"
	"github.com/gedeza/business-consulting/adapters/storage"
	"github.com/gedeza/business-consulting/api"
	"github.com/gedeza/business-consulting/core/catalog"
	"github.com/gedeza/business-consulting/core/clients"
	"github.com/gedeza/business-consulting/core/engine"
	"github.com/gedeza/business-consulting/core/ports"
	"github.com/gedeza/business-consulting/core/templates"
	"github.com/gedeza/business-consulting/core/types"
	"github.com/gedeza/business-consulting/internal/config"
	"github.com/gedeza/business-consulting/internal/logging"
)

// App holds the wired components
type App struct {
	Config    *config.Config
	Store     ports.KeyValueStore
	Catalog   *catalog.Catalog
	Clients   *clients.Registry
	Profiles  *storage.ProfileStore
	Quotes    *storage.QuoteStore
	Rates     ports.RateSource
	Engine    *engine.Engine
	Templates *templates.Registry
}

// Build opens the configured store and wires every component over it.
// The caller must Close the returned App.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.Named("app")

	kv, err := storage.Open(storage.Backend(cfg.Storage.Driver), cfg.Storage.Path)
	if err != nil {
		return nil, err
	}

	cat := catalog.NewDefault()
	if err := cat.Open(ctx, storage.NewCatalogStore(kv)); err != nil {
		kv.Close()
		return nil, err
	}
	if cfg.Catalog.File != "" {
		res, err := cat.LoadFile(ctx, cfg.Catalog.File)
		if err != nil {
			kv.Close()
			return nil, err
		}
		log.Info("catalog file loaded",
			zap.String("file", cfg.Catalog.File),
			zap.Int("imported", len(res.Imported)),
			zap.Int("rejected", len(res.Rejected)),
		)
	}

	registry := clients.NewRegistry(kv)

	rateCfg := rates.DefaultConfig()
	rateCfg.URL = cfg.Rates.URL
	rateCfg.Offline = cfg.Rates.Offline
	if cfg.Rates.TimeoutSecs > 0 {
		rateCfg.Timeout = time.Duration(cfg.Rates.TimeoutSecs) * time.Second
	}
	if len(cfg.Rates.Fallback) > 0 {
		rateCfg.Fallback = cfg.Rates.Fallback
	}

	return &App{
		Config:    cfg,
		Store:     kv,
		Catalog:   cat,
		Clients:   registry,
		Profiles:  storage.NewProfileStore(kv),
		Quotes:    storage.NewQuoteStore(kv),
		Rates:     rates.New(rateCfg),
		Engine:    engine.New(cat, engine.WithClientDirectory(registry)),
		Templates: templates.Default(),
	}, nil
}

// Close releases the store
func (a *App) Close() error {
	return a.Store.Close()
}

// Server builds the HTTP API over the wired components
func (a *App) Server(version string) *api.Server {
	return api.NewServer(version, api.Dependencies{
		Engine:    a.Engine,
		Catalog:   a.Catalog,
		Clients:   a.Clients,
		Templates: a.Templates,
		Rates:     a.Rates,
		Quotes:    a.Quotes,
	})
}

// DefaultParameters seeds pricing parameters from configuration and the
// saved business profile. Profile values win over configuration.
func (a *App) DefaultParameters(ctx context.Context) (types.PricingParameters, error) {
	q := a.Config.Quote
	params := types.PricingParameters{
		Currency:            types.Currency(q.DefaultCurrency),
		VATEnabled:          q.VATEnabled,
		HourlyRate:          decimal.NewFromFloat(q.DefaultHourlyRate),
		Complexity:          decimal.NewFromFloat(q.DefaultComplexity),
		NumDocuments:        1,
		PolishingPercentage: decimal.NewFromFloat(q.DefaultPolishingPercentage),
		BusinessName:        q.BusinessName,
		Consultant: types.ConsultantProfile{
			Name:  q.ConsultantName,
			Title: q.ConsultantTitle,
			Email: q.ConsultantEmail,
		},
	}

	profile, err := a.Profiles.Load(ctx)
	if err != nil {
		return params, err
	}
	if profile.BusinessName != "" {
		params.BusinessName = profile.BusinessName
	}
	if profile.Consultant.Name != "" {
		params.Consultant = profile.Consultant
	}
	return params, nil
}
