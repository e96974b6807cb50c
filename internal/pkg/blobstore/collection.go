package blobstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/piresc/hopon/internal/pkg/logger"
	"github.com/piresc/hopon/internal/pkg/models"
	"github.com/piresc/hopon/internal/pkg/retry"
)

// ErrUnchanged can be returned from a mutate function to skip the write
var ErrUnchanged = errors.New("collection unchanged")

// Collection is a JSON array of T persisted as one blob under a fixed key.
// Every write replaces the whole array.
type Collection[T any] struct {
	store   Store
	key     string
	retrier *retry.Retrier
}

// NewCollection binds a collection to key. Version conflicts on write are
// retried with exponential backoff as configured by cfg.
func NewCollection[T any](store Store, key string, cfg models.StorageConfig) *Collection[T] {
	return &Collection[T]{
		store:   store,
		key:     key,
		retrier: retry.ForStorage(cfg, ErrVersionConflict),
	}
}

// Init seeds the key with an empty array if it was never written
func (c *Collection[T]) Init(ctx context.Context) error {
	_, err := c.store.CompareAndSwap(ctx, c.key, 0, []byte("[]"))
	if err != nil && !errors.Is(err, ErrVersionConflict) {
		return fmt.Errorf("failed to seed %s: %w", c.key, err)
	}
	return nil
}

// Load reads the whole collection and the version it was read at.
// An absent key reads as empty at version 0; an undecodable blob reads as
// empty at its stored version so the next write replaces it.
func (c *Collection[T]) Load(ctx context.Context) ([]T, int64, error) {
	blob, err := c.store.Get(ctx, c.key)
	if errors.Is(err, ErrNotFound) {
		return []T{}, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load %s: %w", c.key, err)
	}

	var items []T
	if err := json.Unmarshal(blob.Data, &items); err != nil {
		logger.Warn("Corrupt collection blob, reading as empty",
			logger.String("key", c.key),
			logger.Int64("version", blob.Version),
			logger.Err(err))
		return []T{}, blob.Version, nil
	}
	if items == nil {
		items = []T{}
	}

	return items, blob.Version, nil
}

// All returns the current items
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	items, _, err := c.Load(ctx)
	return items, err
}

// Mutate runs fn on a fresh copy of the collection and writes the result
// back with compare-and-swap. On a version conflict the whole cycle runs
// again, so fn must only depend on the items it is given. Errors from fn
// abort without writing; ErrUnchanged aborts and reports success.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(items []T) ([]T, error)) error {
	err := c.retrier.Execute(ctx, func(ctx context.Context) error {
		items, version, err := c.Load(ctx)
		if err != nil {
			return err
		}

		next, err := fn(items)
		if err != nil {
			return err
		}

		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", c.key, err)
		}

		_, err = c.store.CompareAndSwap(ctx, c.key, version, data)
		return err
	})
	if errors.Is(err, ErrUnchanged) {
		return nil
	}
	return err
}
