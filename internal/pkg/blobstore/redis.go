package blobstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/piresc/hopon/internal/pkg/constants"
	"github.com/piresc/hopon/internal/pkg/database"
)

// RedisStore keeps each blob in a hash {data, version}. Compare-and-swap
// runs under WATCH so a concurrent writer aborts the transaction.
type RedisStore struct {
	redisClient *database.RedisClient
}

// NewRedisStore creates a Redis backed store
func NewRedisStore(redisClient *database.RedisClient) *RedisStore {
	return &RedisStore{redisClient: redisClient}
}

// Get reads the blob stored under key
func (s *RedisStore) Get(ctx context.Context, key string) (Blob, error) {
	fields, err := s.redisClient.Client.HGetAll(ctx, key).Result()
	if err != nil {
		return Blob{}, fmt.Errorf("failed to get blob %s: %w", key, err)
	}
	if len(fields) == 0 {
		return Blob{}, ErrNotFound
	}

	version, err := strconv.ParseInt(fields[constants.FieldVersion], 10, 64)
	if err != nil {
		return Blob{}, fmt.Errorf("invalid version for blob %s: %w", key, err)
	}

	return Blob{Data: []byte(fields[constants.FieldData]), Version: version}, nil
}

// Set overwrites the blob and bumps its version atomically
func (s *RedisStore) Set(ctx context.Context, key string, data []byte) (int64, error) {
	var incr *redis.IntCmd
	_, err := s.redisClient.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, constants.FieldData, data)
		incr = pipe.HIncrBy(ctx, key, constants.FieldVersion, 1)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to set blob %s: %w", key, err)
	}
	return incr.Val(), nil
}

// CompareAndSwap writes only if the stored version equals version
func (s *RedisStore) CompareAndSwap(ctx context.Context, key string, version int64, data []byte) (int64, error) {
	next := version + 1

	txf := func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, key, constants.FieldVersion).Int64()
		if errors.Is(err, redis.Nil) {
			current = 0
		} else if err != nil {
			return err
		}
		if current != version {
			return ErrVersionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, constants.FieldData, data, constants.FieldVersion, next)
			return nil
		})
		return err
	}

	err := s.redisClient.Client.Watch(ctx, txf, key)
	switch {
	case err == nil:
		return next, nil
	case errors.Is(err, ErrVersionConflict), errors.Is(err, redis.TxFailedErr):
		return 0, ErrVersionConflict
	default:
		return 0, fmt.Errorf("failed to swap blob %s: %w", key, err)
	}
}

// Delete removes the key
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.redisClient.Client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete blob %s: %w", key, err)
	}
	return nil
}
