package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	jwtpkg "github.com/piresc/hopon/internal/pkg/jwt"
	"github.com/piresc/hopon/internal/pkg/models"
	"github.com/piresc/hopon/services/users/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *models.Config {
	return &models.Config{
		App: models.AppConfig{DefaultAvatarURL: "/default-avatar.png"},
		JWT: models.JWTConfig{
			Secret:     "test-secret",
			Expiration: 60,
			Issuer:     "test-issuer",
		},
		Storage: models.StorageConfig{MaxRetries: 4, RetryBaseDelay: time.Millisecond},
	}
}

func newTestUC(ctrl *gomock.Controller) (*UserUC, *mocks.MockUserRepo) {
	mockRepo := mocks.NewMockUserRepo(ctrl)
	uc := NewUserUC(mockRepo, testConfig())
	uc.hashCost = bcrypt.MinCost
	return uc, mockRepo
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestSignup_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, mockRepo := newTestUC(ctrl)

	var created *models.User
	mockRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, user *models.User) error {
			created = user
			return nil
		})
	mockRepo.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(nil)

	resp, err := uc.Signup(context.Background(), &models.SignupRequest{
		Name:     " Alice ",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Alice", created.Name)
	assert.Equal(t, "/default-avatar.png", created.AvatarURL)
	assert.NotEqual(t, "correct-horse", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("correct-horse")))

	assert.Equal(t, created.ID, resp.User.ID)
	assert.Empty(t, resp.User.PasswordHash)

	claims, err := jwtpkg.ValidateToken(resp.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
	assert.Equal(t, resp.SessionID, claims.SessionID)
}

func TestSignup_EmailTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, mockRepo := newTestUC(ctrl)

	mockRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.ErrEmailTaken)

	resp, err := uc.Signup(context.Background(), &models.SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, models.ErrEmailTaken)
	assert.Nil(t, resp)
}

func TestSignup_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  models.SignupRequest
	}{
		{"short name", models.SignupRequest{Name: "A", Email: "a@example.com", Password: "12345678"}},
		{"bad email", models.SignupRequest{Name: "Alice", Email: "alice", Password: "12345678"}},
		{"short password", models.SignupRequest{Name: "Alice", Email: "a@example.com", Password: "1234567"}},
		{"long password", models.SignupRequest{Name: "Alice", Email: "a@example.com", Password: strings.Repeat("p", 73)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc, _ := newTestUC(ctrl)

			_, err := uc.Signup(context.Background(), &tt.req)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}
}

func TestLogin(t *testing.T) {
	stored := &models.User{
		ID:           "user-alice",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: hashed(t, "correct-horse"),
	}

	tests := []struct {
		name     string
		email    string
		password string
		setup    func(m *mocks.MockUserRepo)
		wantErr  error
	}{
		{
			name:     "matching credentials",
			email:    "alice@example.com",
			password: "correct-horse",
			setup: func(m *mocks.MockUserRepo) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "alice@example.com").Return(stored, nil)
				m.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:     "wrong password",
			email:    "alice@example.com",
			password: "battery-staple",
			setup: func(m *mocks.MockUserRepo) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "alice@example.com").Return(stored, nil)
			},
			wantErr: models.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "bob@example.com",
			password: "correct-horse",
			setup: func(m *mocks.MockUserRepo) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "bob@example.com").Return(nil, models.ErrUserNotFound)
			},
			wantErr: models.ErrInvalidCredentials,
		},
		{
			name:     "storage failure",
			email:    "alice@example.com",
			password: "correct-horse",
			setup: func(m *mocks.MockUserRepo) {
				m.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))
			},
			wantErr: errors.New("redis down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc, mockRepo := newTestUC(ctrl)
			tt.setup(mockRepo)

			resp, err := uc.Login(context.Background(), &models.LoginRequest{Email: tt.email, Password: tt.password})
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "user-alice", resp.User.ID)
			assert.Empty(t, resp.User.PasswordHash)
			assert.NotEmpty(t, resp.Token)
		})
	}
}

func TestSignup_PasswordAtBcryptLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, mockRepo := newTestUC(ctrl)

	password := strings.Repeat("p", 72)
	var created *models.User
	mockRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, user *models.User) error {
			created = user
			return nil
		})
	mockRepo.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(nil)

	resp, err := uc.Signup(context.Background(), &models.SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: password,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte(password)))
}

func TestLogin_UnknownEmailComparesDummyHash(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, mockRepo := newTestUC(ctrl)

	mockRepo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(nil, models.ErrUserNotFound).Times(2)

	for i := 0; i < 2; i++ {
		_, err := uc.Login(context.Background(), &models.LoginRequest{Email: "bob@example.com", Password: "whatever-pass"})
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	}

	require.NotEmpty(t, uc.dummyHash)
	cost, err := bcrypt.Cost(uc.dummyHash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestLogout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, mockRepo := newTestUC(ctrl)

	mockRepo.EXPECT().DeleteSession(gomock.Any(), "session-1").Return(nil)

	assert.NoError(t, uc.Logout(context.Background(), "session-1"))
}

func TestValidateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("live session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, mockRepo := newTestUC(ctrl)

		mockRepo.EXPECT().GetSession(gomock.Any(), "s1").
			Return(&models.Session{ID: "s1", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}, nil)

		userID, err := uc.ValidateSession(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "user-1", userID)
	})

	t.Run("missing session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, mockRepo := newTestUC(ctrl)

		mockRepo.EXPECT().GetSession(gomock.Any(), "s1").Return(nil, models.ErrSessionNotFound)

		_, err := uc.ValidateSession(ctx, "s1")
		assert.ErrorIs(t, err, models.ErrUnauthenticated)
	})

	t.Run("expired session is removed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, mockRepo := newTestUC(ctrl)

		mockRepo.EXPECT().GetSession(gomock.Any(), "s1").
			Return(&models.Session{ID: "s1", UserID: "user-1", ExpiresAt: time.Now().Add(-time.Minute)}, nil)
		mockRepo.EXPECT().DeleteSession(gomock.Any(), "s1").Return(nil)

		_, err := uc.ValidateSession(ctx, "s1")
		assert.ErrorIs(t, err, models.ErrUnauthenticated)
	})
}

func TestGetUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, mockRepo := newTestUC(ctrl)

	mockRepo.EXPECT().GetUserByID(gomock.Any(), "user-1").
		Return(&models.User{ID: "user-1", Name: "Alice", PasswordHash: "secret"}, nil)
	mockRepo.EXPECT().GetUserByID(gomock.Any(), "user-2").Return(nil, models.ErrUserNotFound)

	user, err := uc.GetUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Empty(t, user.PasswordHash)

	_, err = uc.GetUser(context.Background(), "user-2")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}
