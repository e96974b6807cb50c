// Package blobstore is the durable key-value store behind every collection.
// Each key holds one opaque blob plus a version that increases on every
// write, which lets callers do optimistic read-modify-write cycles.
package blobstore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key has never been written
	ErrNotFound = errors.New("blob not found")
	// ErrVersionConflict is returned by CompareAndSwap when the stored
	// version no longer matches the expected one
	ErrVersionConflict = errors.New("blob version conflict")
)

// Blob is a stored value and the version it was read at
type Blob struct {
	Data    []byte
	Version int64
}

// Store is a key-value blob store with versioned compare-and-swap.
// Version 0 stands for an absent key.
type Store interface {
	Get(ctx context.Context, key string) (Blob, error)
	Set(ctx context.Context, key string, data []byte) (int64, error)
	CompareAndSwap(ctx context.Context, key string, version int64, data []byte) (int64, error)
	Delete(ctx context.Context, key string) error
}
