package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Load when nothing is stored under the key.
var ErrNotFound = errors.New("store: not found")

// ProfileRepo stores opaque profile blobs under a key. Save replaces the
// previous value atomically: a failed Save leaves the old value readable.
type ProfileRepo interface {
	// Load returns the blob stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save stores data under key.
	Save(ctx context.Context, key string, data []byte) error
}

// MemoryRepo is an in-process ProfileRepo.
type MemoryRepo struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryRepo creates an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{blobs: make(map[string][]byte)}
}

func (m *MemoryRepo) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (m *MemoryRepo) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = append([]byte(nil), data...)
	return nil
}
