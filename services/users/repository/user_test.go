package repository

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/piresc/hopon/internal/pkg/blobstore"
	"github.com/piresc/hopon/internal/pkg/database"
	"github.com/piresc/hopon/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *models.Config {
	return &models.Config{
		Storage: models.StorageConfig{MaxRetries: 4, RetryBaseDelay: time.Millisecond},
	}
}

func newTestRepo(t *testing.T) (*UserRepo, blobstore.Store) {
	t.Helper()
	store := blobstore.NewMemoryStore()
	repo := NewUserRepo(store, testConfig())
	require.NoError(t, repo.Init(context.Background()))
	return repo, store
}

func alice() *models.User {
	return &models.User{
		ID:           "user-alice",
		Name:         "Alice",
		Email:        "alice@example.com",
		AvatarURL:    "/default-avatar.png",
		PasswordHash: "hash",
		CreatedAt:    time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestUserRepo_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	require.NoError(t, repo.CreateUser(ctx, alice()))

	byID, err := repo.GetUserByID(ctx, "user-alice")
	require.NoError(t, err)
	assert.Equal(t, alice(), byID)

	byEmail, err := repo.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-alice", byEmail.ID)

	// email match is case-sensitive
	_, err = repo.GetUserByEmail(ctx, "Alice@example.com")
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	_, err = repo.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestUserRepo_CreateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo, store := newTestRepo(t)

	require.NoError(t, repo.CreateUser(ctx, alice()))
	before, err := store.Get(ctx, "hopon-users")
	require.NoError(t, err)

	dup := alice()
	dup.ID = "user-other"
	err = repo.CreateUser(ctx, dup)
	assert.ErrorIs(t, err, models.ErrEmailTaken)

	after, err := store.Get(ctx, "hopon-users")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUserRepo_Sessions(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	session := &models.Session{
		ID:        "session-1",
		UserID:    "user-alice",
		CreatedAt: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
		ExpiresAt: time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.CreateSession(ctx, session))

	got, err := repo.GetSession(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, session, got)

	require.NoError(t, repo.DeleteSession(ctx, "session-1"))
	_, err = repo.GetSession(ctx, "session-1")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)

	// deleting again is a no-op
	assert.NoError(t, repo.DeleteSession(ctx, "session-1"))
}

func TestUserRepo_CorruptSession(t *testing.T) {
	ctx := context.Background()
	repo, store := newTestRepo(t)

	_, err := store.Set(ctx, "hopon-session:bad", []byte("{"))
	require.NoError(t, err)

	_, err = repo.GetSession(ctx, "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrSessionNotFound)
}

func TestUserRepo_RedisLayout(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	client, err := database.NewRedisClient(models.RedisConfig{Host: mr.Host(), Port: port})
	require.NoError(t, err)
	defer client.Close()

	repo := NewUserRepo(blobstore.NewRedisStore(client), testConfig())
	require.NoError(t, repo.Init(ctx))
	require.NoError(t, repo.CreateUser(ctx, alice()))
	require.NoError(t, repo.CreateSession(ctx, &models.Session{ID: "s1", UserID: "user-alice"}))

	assert.Contains(t, mr.HGet("hopon-users", "data"), `"email":"alice@example.com"`)
	assert.Contains(t, mr.HGet("hopon-users", "data"), `"passwordHash":"hash"`)
	assert.Equal(t, "2", mr.HGet("hopon-users", "version"))
	assert.Contains(t, mr.HGet("hopon-session:s1", "data"), `"userId":"user-alice"`)

	got, err := repo.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice(), got)
}
