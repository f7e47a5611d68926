package rates

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gedeza/business-consulting/core/pricing"
	"github.com/gedeza/business-consulting/core/types"
	qerrors "github.com/gedeza/business-consulting/internal/errors"
)

func testConfig(url string) *Config {
	cfg := DefaultConfig()
	cfg.URL = url
	cfg.Timeout = time.Second
	cfg.RetryDelay = time.Millisecond
	cfg.CacheTTL = 0
	return cfg
}

func rateServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestHTTPSource(t *testing.T) {
	srv, _ := rateServer(t, http.StatusOK, `{"base":"ZAR","rates":{"ZAR":1,"USD":0.055,"GBP":0.043}}`)

	snap, err := NewHTTPSource(testConfig(srv.URL)).Rates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, pricing.SourceAPI, snap.Source)

	r, ok := snap.Rate(types.CurrencyGBP)
	require.True(t, ok)
	assert.True(t, r.Equal(decimal.RequireFromString("0.043")))
}

func TestHTTPSourceFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, "boom"},
		{"bad json", http.StatusOK, "{"},
		{"no rates", http.StatusOK, `{"base":"ZAR","rates":{}}`},
		{"wrong base", http.StatusOK, `{"base":"USD","rates":{"ZAR":18.5}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, calls := rateServer(t, tt.status, tt.body)

			_, err := NewHTTPSource(testConfig(srv.URL)).Rates(context.Background())
			require.Error(t, err)
			assert.True(t, qerrors.IsType(err, qerrors.TypeNetwork))
			assert.Equal(t, int32(2), atomic.LoadInt32(calls))
		})
	}
}

func TestNewFallsBackToStatic(t *testing.T) {
	srv, _ := rateServer(t, http.StatusBadGateway, "")

	snap, err := New(testConfig(srv.URL)).Rates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, pricing.SourceFallback, snap.Source)

	usd, err := snap.Convert(decimal.NewFromInt(32200), types.CurrencyUSD)
	require.NoError(t, err)
	assert.True(t, usd.Equal(decimal.RequireFromString("1738.8")))
}

func TestNewOffline(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Offline = true
	cfg.Fallback = map[string]float64{"usd": 0.06}

	snap, err := New(cfg).Rates(context.Background())
	require.NoError(t, err)
	r, ok := snap.Rate(types.CurrencyUSD)
	require.True(t, ok)
	assert.True(t, r.Equal(decimal.RequireFromString("0.06")))
}

type countingSource struct {
	calls int
	err   error
}

func (c *countingSource) Rates(ctx context.Context) (*pricing.RateSnapshot, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return pricing.NewRateSnapshot(pricing.SourceManual, time.Now(), map[string]float64{"USD": 0.05}), nil
}

func TestCachingSource(t *testing.T) {
	inner := &countingSource{}
	c := NewCachingSource(inner, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_, err := c.Rates(context.Background())
	require.NoError(t, err)
	_, err = c.Rates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)

	now = now.Add(2 * time.Minute)
	_, err = c.Rates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)

	inner.err = errors.New("down")
	now = now.Add(2 * time.Minute)
	_, err = c.Rates(context.Background())
	assert.Error(t, err)
}
