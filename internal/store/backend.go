package store

import (
	"context"
	"errors"
	"sync"
)

// ─── Sentinel errors ─────────────────────────────────────────────────────────

var (
	// ErrNoDocument is returned by Backend.Load when nothing is stored yet.
	ErrNoDocument = errors.New("no document stored")

	// ErrVersionConflict is returned by Backend.Save when the stored version
	// no longer matches the version the caller loaded.
	ErrVersionConflict = errors.New("document version conflict")

	// ErrNotInitialized is returned by Store operations before Init.
	ErrNotInitialized = errors.New("store not initialized")

	// ErrRecordNotFound is returned when an id is absent from a collection.
	ErrRecordNotFound = errors.New("record not found")

	// ErrConflict is returned by AddUnique when an existing record collides.
	ErrConflict = errors.New("record conflicts with an existing record")
)

// Backend holds the serialized document.
//
// Save must persist doc only if the stored version still equals doc.Version
// (a missing document counts as version 0), writing it at doc.Version+1 and
// updating doc.Version on success. Otherwise it returns ErrVersionConflict.
type Backend interface {
	Load(ctx context.Context) (*Document, error)
	Save(ctx context.Context, doc *Document) error
}

// MemoryBackend keeps the serialized document in process memory. Load
// always decodes a fresh copy, so callers never alias stored records.
type MemoryBackend struct {
	mu      sync.Mutex
	data    []byte
	version int64
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Load(ctx context.Context) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNoDocument
	}
	return Decode(m.data)
}

func (m *MemoryBackend) Save(ctx context.Context, doc *Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.version != doc.Version {
		return ErrVersionConflict
	}
	data, version, err := nextRevision(doc)
	if err != nil {
		return err
	}
	m.data = data
	m.version = version
	doc.Version = version
	return nil
}

// Raw returns the currently stored bytes (nil before the first Save).
func (m *MemoryBackend) Raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}
