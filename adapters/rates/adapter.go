// Package rates provides the exchange-rate sources used to display quote
// amounts in currencies other than the base currency.
package rates

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/gedeza/business-consulting/core/ports"
	"github.com/gedeza/business-consulting/core/pricing"
	qerrors "github.com/gedeza/business-consulting/internal/errors"
	"github.com/gedeza/business-consulting/internal/logging"
)

// DefaultURL serves base-currency rates as {"base":"ZAR","rates":{"USD":0.054,...}}
const DefaultURL = "https://api.exchangerate-api.com/v4/latest/ZAR"

// DefaultFallback is used when the API cannot be reached
var DefaultFallback = map[string]float64{
	"ZAR": 1,
	"USD": 0.054,
	"EUR": 0.05,
}

// Config configures rate fetching
type Config struct {
	// URL of the rate API
	URL string

	// Timeout for each request
	Timeout time.Duration

	// RetryCount for failed requests
	RetryCount int

	// RetryDelay between retries
	RetryDelay time.Duration

	// CacheTTL keeps a fetched table for this long (0 disables caching)
	CacheTTL time.Duration

	// Offline skips the API and uses Fallback
	Offline bool

	// Fallback table used when the API fails
	Fallback map[string]float64
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		URL:        DefaultURL,
		Timeout:    10 * time.Second,
		RetryCount: 1,
		RetryDelay: 500 * time.Millisecond,
		CacheTTL:   time.Hour,
		Fallback:   DefaultFallback,
	}
}

// New builds the configured source: the API with caching, falling back to the
// static table on failure, or the static table alone when offline.
func New(cfg *Config) ports.RateSource {
	static := NewStaticSource(cfg.Fallback)
	if cfg.Offline || cfg.URL == "" {
		return static
	}
	var primary ports.RateSource = NewHTTPSource(cfg)
	if cfg.CacheTTL > 0 {
		primary = NewCachingSource(primary, cfg.CacheTTL)
	}
	return NewFallbackSource(primary, static)
}

// HTTPSource fetches rates from an exchange-rate API
type HTTPSource struct {
	config     *Config
	httpClient *http.Client
	now        func() time.Time
}

// NewHTTPSource creates an API-backed source
func NewHTTPSource(config *Config) *HTTPSource {
	return &HTTPSource{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		now: time.Now,
	}
}

type apiResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Rates fetches the current table, retrying transient failures
func (s *HTTPSource) Rates(ctx context.Context) (*pricing.RateSnapshot, error) {
	var lastErr error
	for attempt := 0; attempt <= s.config.RetryCount; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, qerrors.Network("rate fetch cancelled", ctx.Err())
			case <-time.After(s.config.RetryDelay):
			}
		}

		snap, err := s.fetchOnce(ctx)
		if err == nil {
			return snap, nil
		}
		lastErr = err
	}
	return nil, qerrors.Network("cannot fetch exchange rates", eris.Wrapf(lastErr, "rates: %d attempts", s.config.RetryCount+1))
}

func (s *HTTPSource) fetchOnce(ctx context.Context) (*pricing.RateSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.URL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "rates: build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "rates: request")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, eris.Errorf("rates: api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, eris.Wrap(err, "rates: decode response")
	}
	if len(payload.Rates) == 0 {
		return nil, eris.New("rates: response has no rates")
	}
	if payload.Base != "" && !strings.EqualFold(payload.Base, "ZAR") {
		return nil, eris.Errorf("rates: unexpected base currency %s", payload.Base)
	}
	return pricing.NewRateSnapshot(pricing.SourceAPI, s.now().UTC(), payload.Rates), nil
}

// StaticSource serves a fixed table
type StaticSource struct {
	table map[string]float64
}

// NewStaticSource creates a source over table; an empty table uses DefaultFallback
func NewStaticSource(table map[string]float64) *StaticSource {
	if len(table) == 0 {
		table = DefaultFallback
	}
	return &StaticSource{table: table}
}

func (s *StaticSource) Rates(ctx context.Context) (*pricing.RateSnapshot, error) {
	return pricing.NewRateSnapshot(pricing.SourceFallback, time.Now().UTC(), s.table), nil
}

// FallbackSource serves the fallback when the primary fails
type FallbackSource struct {
	primary  ports.RateSource
	fallback ports.RateSource
	log      *zap.Logger
}

// NewFallbackSource creates a fallback wrapper
func NewFallbackSource(primary, fallback ports.RateSource) *FallbackSource {
	return &FallbackSource{
		primary:  primary,
		fallback: fallback,
		log:      logging.Named("rates"),
	}
}

func (s *FallbackSource) Rates(ctx context.Context) (*pricing.RateSnapshot, error) {
	snap, err := s.primary.Rates(ctx)
	if err == nil {
		return snap, nil
	}
	s.log.Warn("exchange-rate api unavailable, using fallback rates", zap.Error(err))
	return s.fallback.Rates(ctx)
}

// CachingSource wraps a source with caching
type CachingSource struct {
	inner     ports.RateSource
	ttl       time.Duration
	cached    *pricing.RateSnapshot
	expiresAt time.Time
	now       func() time.Time
	mu        sync.Mutex
}

// NewCachingSource creates a caching wrapper
func NewCachingSource(inner ports.RateSource, ttl time.Duration) *CachingSource {
	return &CachingSource{
		inner: inner,
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *CachingSource) Rates(ctx context.Context) (*pricing.RateSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.now().Before(s.expiresAt) {
		return s.cached, nil
	}

	snap, err := s.inner.Rates(ctx)
	if err != nil {
		return nil, err
	}
	s.cached = snap
	s.expiresAt = s.now().Add(s.ttl)
	return snap, nil
}
