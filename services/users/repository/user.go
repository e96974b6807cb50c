package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/piresc/hopon/internal/pkg/blobstore"
	"github.com/piresc/hopon/internal/pkg/constants"
	"github.com/piresc/hopon/internal/pkg/models"
)

// UserRepo stores users as one collection blob and each session under
// its own key
type UserRepo struct {
	users *blobstore.Collection[models.User]
	store blobstore.Store
}

// NewUserRepo creates a user repository on top of store
func NewUserRepo(store blobstore.Store, cfg *models.Config) *UserRepo {
	return &UserRepo{
		users: blobstore.NewCollection[models.User](store, constants.KeyUsers, cfg.Storage),
		store: store,
	}
}

// Init seeds the user collection
func (r *UserRepo) Init(ctx context.Context) error {
	return r.users.Init(ctx)
}

// CreateUser appends the user unless the email is already registered.
// The uniqueness check and the append happen in the same write.
func (r *UserRepo) CreateUser(ctx context.Context, user *models.User) error {
	err := r.users.Mutate(ctx, func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if u.Email == user.Email {
				return nil, models.ErrEmailTaken
			}
		}
		return append(users, *user), nil
	})
	if err != nil && !errors.Is(err, models.ErrEmailTaken) {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return err
}

// GetUserByID retrieves a user by id
func (r *UserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.find(ctx, func(u *models.User) bool { return u.ID == id })
}

// GetUserByEmail retrieves a user by exact email
func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(ctx, func(u *models.User) bool { return u.Email == email })
}

func (r *UserRepo) find(ctx context.Context, match func(u *models.User) bool) (*models.User, error) {
	users, err := r.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	for i := range users {
		if match(&users[i]) {
			return &users[i], nil
		}
	}
	return nil, models.ErrUserNotFound
}

// CreateSession stores the session under its own key
func (r *UserRepo) CreateSession(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if _, err := r.store.Set(ctx, sessionKey(session.ID), data); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by id
func (r *UserRepo) GetSession(ctx context.Context, id string) (*models.Session, error) {
	blob, err := r.store.Get(ctx, sessionKey(id))
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, models.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(blob.Data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return &session, nil
}

// DeleteSession removes a session; unknown ids are ignored
func (r *UserRepo) DeleteSession(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, sessionKey(id)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	return fmt.Sprintf(constants.KeySession, id)
}
