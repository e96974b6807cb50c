package blobstore

import (
	"context"
	"sync"
)

// MemoryStore keeps blobs in process memory. Data is lost on restart.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[string]Blob
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]Blob)}
}

// Get returns a copy of the blob stored under key
func (s *MemoryStore) Get(ctx context.Context, key string) (Blob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.blobs[key]
	if !ok {
		return Blob{}, ErrNotFound
	}
	return Blob{Data: clone(b.Data), Version: b.Version}, nil
}

// Set overwrites the blob unconditionally
func (s *MemoryStore) Set(ctx context.Context, key string, data []byte) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.blobs[key].Version + 1
	s.blobs[key] = Blob{Data: clone(data), Version: next}
	return next, nil
}

// CompareAndSwap writes only if the stored version equals version
func (s *MemoryStore) CompareAndSwap(ctx context.Context, key string, version int64, data []byte) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.blobs[key].Version != version {
		return 0, ErrVersionConflict
	}
	next := version + 1
	s.blobs[key] = Blob{Data: clone(data), Version: next}
	return next, nil
}

// Delete removes the key; deleting an absent key is not an error
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.blobs, key)
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
