package blobstore

import (
	"context"
	"fmt"

	"github.com/piresc/hopon/internal/pkg/constants"
	"github.com/piresc/hopon/internal/pkg/database"
)

// Backends carries the connected clients a store may be built on
type Backends struct {
	Redis    *database.RedisClient
	Postgres *database.PostgresClient
}

// NewStore picks the backend named by driver
func NewStore(ctx context.Context, driver string, b Backends) (Store, error) {
	switch driver {
	case "", constants.StorageMemory:
		return NewMemoryStore(), nil
	case constants.StorageRedis:
		if b.Redis == nil {
			return nil, fmt.Errorf("storage driver %q needs a redis client", driver)
		}
		return NewRedisStore(b.Redis), nil
	case constants.StoragePostgres:
		if b.Postgres == nil {
			return nil, fmt.Errorf("storage driver %q needs a postgres client", driver)
		}
		store := NewPostgresStore(b.Postgres.GetDB())
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
