package storage

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/gedeza/business-consulting/core/ports"
	"github.com/gedeza/business-consulting/core/types"
	qerrors "github.com/gedeza/business-consulting/internal/errors"
)

func getJSON(ctx context.Context, kv ports.KeyValueStore, key string, v interface{}) (bool, error) {
	data, found, err := kv.Get(ctx, key)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, qerrors.Storage("stored value is corrupt", eris.Wrapf(err, "storage: decode %s", key))
	}
	return true, nil
}

func setJSON(ctx context.Context, kv ports.KeyValueStore, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return qerrors.Storage("cannot encode value", eris.Wrapf(err, "storage: encode %s", key))
	}
	return kv.Set(ctx, key, data)
}

// CatalogStore persists the custom service tier under KeyCustomServices
type CatalogStore struct {
	kv ports.KeyValueStore
}

// NewCatalogStore creates a catalog store over kv
func NewCatalogStore(kv ports.KeyValueStore) *CatalogStore {
	return &CatalogStore{kv: kv}
}

func (s *CatalogStore) LoadCustomServices(ctx context.Context) (map[string]types.Service, error) {
	services := make(map[string]types.Service)
	if _, err := getJSON(ctx, s.kv, KeyCustomServices, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (s *CatalogStore) SaveCustomServices(ctx context.Context, services map[string]types.Service) error {
	return setJSON(ctx, s.kv, KeyCustomServices, services)
}

// ProfileStore persists the business profile under KeyConsultantProfile
type ProfileStore struct {
	kv ports.KeyValueStore
}

// NewProfileStore creates a profile store over kv
func NewProfileStore(kv ports.KeyValueStore) *ProfileStore {
	return &ProfileStore{kv: kv}
}

// Load returns the saved profile, or a zero profile if none was saved
func (s *ProfileStore) Load(ctx context.Context) (types.BusinessProfile, error) {
	var p types.BusinessProfile
	_, err := getJSON(ctx, s.kv, KeyConsultantProfile, &p)
	return p, err
}

// Save replaces the saved profile
func (s *ProfileStore) Save(ctx context.Context, p types.BusinessProfile) error {
	return setJSON(ctx, s.kv, KeyConsultantProfile, p)
}

// QuoteStore keeps generated quotes by id under KeyQuotes
type QuoteStore struct {
	kv ports.KeyValueStore
}

// NewQuoteStore creates a quote store over kv
func NewQuoteStore(kv ports.KeyValueStore) *QuoteStore {
	return &QuoteStore{kv: kv}
}

func (s *QuoteStore) load(ctx context.Context) (map[string]*types.Quote, error) {
	quotes := make(map[string]*types.Quote)
	if _, err := getJSON(ctx, s.kv, KeyQuotes, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

// Save stores q, replacing any quote with the same id
func (s *QuoteStore) Save(ctx context.Context, q *types.Quote) error {
	quotes, err := s.load(ctx)
	if err != nil {
		return err
	}
	quotes[q.ID] = q
	return setJSON(ctx, s.kv, KeyQuotes, quotes)
}

// Get returns a stored quote
func (s *QuoteStore) Get(ctx context.Context, id string) (*types.Quote, error) {
	quotes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	q, ok := quotes[id]
	if !ok {
		return nil, qerrors.NotFound("quote", id)
	}
	return q, nil
}

// List returns stored quotes, newest first
func (s *QuoteStore) List(ctx context.Context) ([]*types.Quote, error) {
	quotes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*types.Quote, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes a stored quote
func (s *QuoteStore) Delete(ctx context.Context, id string) error {
	quotes, err := s.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := quotes[id]; !ok {
		return qerrors.NotFound("quote", id)
	}
	delete(quotes, id)
	return setJSON(ctx, s.kv, KeyQuotes, quotes)
}

var _ ports.CatalogStore = (*CatalogStore)(nil)
