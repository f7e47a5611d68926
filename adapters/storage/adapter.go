// Package storage provides the key-value stores behind custom services,
// saved clients, the consultant profile and quote history.
// Supports multiple backends: file, SQLite, memory.
package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/gedeza/business-consulting/core/ports"
	qerrors "github.com/gedeza/business-consulting/internal/errors"
)

// Backend is a storage backend type
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// Keys used by the record stores
const (
	KeyCustomServices    = "custom_services"
	KeyClients           = "clients"
	KeyConsultantProfile = "consultant_profile"
	KeyQuotes            = "quotes"
)

// FileStore keeps every key in a single JSON document
type FileStore struct {
	path string
	mu   sync.RWMutex
}

// NewFileStore creates a file store, creating the parent directory if needed
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, qerrors.Storage("cannot create storage directory", eris.Wrapf(err, "storage: mkdir %s", filepath.Dir(path)))
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.read()
	if err != nil {
		return nil, false, err
	}
	v, ok := doc[key]
	return v, ok, nil
}

func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !json.Valid(value) {
		return qerrors.Storage("file store values must be JSON", eris.Errorf("storage: invalid JSON for key %s", key))
	}
	doc, err := s.read()
	if err != nil {
		return err
	}
	doc[key] = json.RawMessage(value)
	return s.write(doc)
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)
	return s.write(doc)
}

func (s *FileStore) Close() error {
	return nil
}

// read must be called with s.mu held
func (s *FileStore) read() (map[string]json.RawMessage, error) {
	doc := make(map[string]json.RawMessage)
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return doc, nil
	}
	if err != nil {
		return nil, qerrors.Storage("cannot read store", eris.Wrapf(err, "storage: read %s", s.path))
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, qerrors.Storage("store file is corrupt", eris.Wrapf(err, "storage: decode %s", s.path))
	}
	return doc, nil
}

// write replaces the file via rename so readers never see a partial document
func (s *FileStore) write(doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return qerrors.Storage("cannot encode store", eris.Wrap(err, "storage: encode"))
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return qerrors.Storage("cannot write store", eris.Wrapf(err, "storage: write %s", tmp))
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return qerrors.Storage("cannot write store", eris.Wrapf(err, "storage: rename %s", tmp))
	}
	return nil
}

// MemoryStore is an in-memory storage backend (for testing)
type MemoryStore struct {
	values map[string][]byte
	mu     sync.RWMutex
}

// NewMemoryStore creates a memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string][]byte),
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// Open creates a store by backend type
func Open(backend Backend, path string) (ports.KeyValueStore, error) {
	switch backend {
	case BackendFile, "":
		if path == "" {
			path = "store.json"
		}
		return NewFileStore(path)
	case BackendSQLite:
		if path == "" {
			path = "store.db"
		}
		return NewSQLite(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, qerrors.Newf(qerrors.TypeConfig, "unsupported storage backend: %s", backend)
	}
}

// Ensure interfaces are implemented
var (
	_ ports.KeyValueStore = (*FileStore)(nil)
	_ ports.KeyValueStore = (*MemoryStore)(nil)
	_ ports.KeyValueStore = (*SQLiteStore)(nil)
)
