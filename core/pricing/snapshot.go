package pricing

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gedeza/business-consulting/core/types"
	qerrors "github.com/gedeza/business-consulting/internal/errors"
)

// RateSource indicates where exchange rates came from
type RateSource int

const (
	SourceAPI      RateSource = iota // live exchange-rate API
	SourceFallback                   // configured fallback table
	SourceManual                     // supplied by the caller
)

// String returns the source name
func (s RateSource) String() string {
	switch s {
	case SourceAPI:
		return "api"
	case SourceFallback:
		return "fallback"
	case SourceManual:
		return "manual"
	default:
		return "unknown"
	}
}

// RateSnapshot is an immutable table of base-currency multipliers:
// amount in currency C = amount in ZAR * rate[C].
type RateSnapshot struct {
	Source    RateSource
	FetchedAt time.Time

	rates map[types.Currency]decimal.Decimal
	hash  string
}

// NewRateSnapshot copies rates into a snapshot. The base currency is always 1.
func NewRateSnapshot(source RateSource, fetchedAt time.Time, rates map[string]float64) *RateSnapshot {
	s := &RateSnapshot{
		Source:    source,
		FetchedAt: fetchedAt,
		rates:     make(map[types.Currency]decimal.Decimal, len(rates)+1),
	}
	for code, r := range rates {
		s.rates[types.Currency(strings.ToUpper(code))] = decimal.NewFromFloat(r)
	}
	s.rates[types.BaseCurrency] = decimal.NewFromInt(1)
	s.hash = s.computeHash()
	return s
}

// Rate returns the multiplier for a currency
func (s *RateSnapshot) Rate(c types.Currency) (decimal.Decimal, bool) {
	r, ok := s.rates[c.Normalize()]
	return r, ok
}

// Currencies returns the known currency codes, sorted
func (s *RateSnapshot) Currencies() []types.Currency {
	out := make([]types.Currency, 0, len(s.rates))
	for c := range s.rates {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Convert expresses a base-currency amount in currency c
func (s *RateSnapshot) Convert(amount decimal.Decimal, c types.Currency) (decimal.Decimal, error) {
	r, ok := s.Rate(c)
	if !ok {
		return decimal.Zero, qerrors.Validationf("currency", "no exchange rate for %s", c)
	}
	return amount.Mul(r), nil
}

// Hash is a content hash over the sorted rate table
func (s *RateSnapshot) Hash() string {
	return s.hash
}

func (s *RateSnapshot) computeHash() string {
	h := sha256.New()
	for _, c := range s.Currencies() {
		fmt.Fprintf(h, "%s=%s;", c, s.rates[c].String())
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
