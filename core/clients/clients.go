// Package clients manages saved client records.
package clients

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/gedeza/business-consulting/core/ports"
	"github.com/gedeza/business-consulting/core/types"
	"github.com/gedeza/business-consulting/core/validation"
	qerrors "github.com/gedeza/business-consulting/internal/errors"
	"github.com/gedeza/business-consulting/internal/logging"
)

// StorageKey is the key the client list is stored under
const StorageKey = "clients"

// Registry stores clients as a JSON list in a key-value store
type Registry struct {
	mu    sync.Mutex
	kv    ports.KeyValueStore
	newID func() string
	log   *zap.Logger
}

// NewRegistry creates a registry over kv
func NewRegistry(kv ports.KeyValueStore) *Registry {
	return &Registry{
		kv:    kv,
		newID: uuid.NewString,
		log:   logging.Named("clients"),
	}
}

// Validate checks the required fields and the format of email and phone
func Validate(c types.Client) error {
	if err := validation.Required("name", c.Name); err != nil {
		return err
	}
	if err := validation.Required("email", c.Email); err != nil {
		return err
	}
	if !validation.IsEmail(c.Email) {
		return qerrors.Validationf("email", "invalid email address %q", c.Email)
	}
	if c.Phone != "" && !validation.IsPhone(c.Phone) {
		return qerrors.Validationf("phone", "invalid South African phone number %q", c.Phone)
	}
	return nil
}

// Save adds a new client or replaces the one with the same id.
// New clients are assigned an id.
func (r *Registry) Save(ctx context.Context, c types.Client) (types.Client, error) {
	c.Name = strings.TrimSpace(validation.Sanitize(c.Name))
	c.Email = strings.TrimSpace(c.Email)
	c.Company = strings.TrimSpace(validation.Sanitize(c.Company))
	c.PhysicalAddress = strings.TrimSpace(validation.Sanitize(c.PhysicalAddress))
	if err := Validate(c); err != nil {
		return types.Client{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return types.Client{}, err
	}

	replaced := false
	if c.ID != "" {
		for i := range list {
			if list[i].ID == c.ID {
				list[i] = c
				replaced = true
				break
			}
		}
		if !replaced {
			return types.Client{}, qerrors.NotFound("client", c.ID)
		}
	} else {
		c.ID = r.newID()
		list = append(list, c)
	}

	if err := r.store(ctx, list); err != nil {
		return types.Client{}, err
	}
	r.log.Info("client saved", zap.String("id", c.ID), zap.Bool("updated", replaced))
	return c, nil
}

// Delete removes a client by id
func (r *Registry) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == id {
			list = append(list[:i], list[i+1:]...)
			if err := r.store(ctx, list); err != nil {
				return err
			}
			r.log.Info("client deleted", zap.String("id", id))
			return nil
		}
	}
	return qerrors.NotFound("client", id)
}

// List returns all clients sorted by name
func (r *Registry) List(ctx context.Context) ([]types.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
	})
	return list, nil
}

// Get returns a client by id
func (r *Registry) Get(ctx context.Context, id string) (types.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return types.Client{}, err
	}
	for _, c := range list {
		if c.ID == id {
			return c, nil
		}
	}
	return types.Client{}, qerrors.NotFound("client", id)
}

// FindByName returns the first client whose name matches, ignoring case
func (r *Registry) FindByName(ctx context.Context, name string) (*types.Client, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return nil, false, err
	}
	name = strings.TrimSpace(name)
	for _, c := range list {
		if strings.EqualFold(c.Name, name) {
			found := c
			return &found, true, nil
		}
	}
	return nil, false, nil
}

func (r *Registry) load(ctx context.Context) ([]types.Client, error) {
	data, found, err := r.kv.Get(ctx, StorageKey)
	if err != nil || !found {
		return nil, err
	}
	var list []types.Client
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, qerrors.Storage("stored clients are corrupt", eris.Wrap(err, "clients: decode"))
	}
	return list, nil
}

func (r *Registry) store(ctx context.Context, list []types.Client) error {
	if list == nil {
		list = []types.Client{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return qerrors.Storage("cannot encode clients", eris.Wrap(err, "clients: encode"))
	}
	return r.kv.Set(ctx, StorageKey, data)
}

var _ ports.ClientDirectory = (*Registry)(nil)
