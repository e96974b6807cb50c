package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	jwtpkg "github.com/piresc/hopon/internal/pkg/jwt"
	"github.com/piresc/hopon/internal/pkg/logger"
	"github.com/piresc/hopon/internal/pkg/models"
	"github.com/piresc/hopon/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

const (
	minNameLength     = 2
	minPasswordLength = 8
	// bcrypt rejects longer input
	maxPasswordBytes = 72
)

// Signup registers a new user and opens a session for them
func (u *UserUC) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	if err := validateSignup(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), u.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		AvatarURL:    u.cfg.App.DefaultAvatarURL,
		PasswordHash: string(hash),
		CreatedAt:    models.Now(),
	}

	if err := u.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			logger.InfoCtx(ctx, "Signup rejected for registered email",
				logger.String("email", utils.MaskEmail(req.Email)))
		}
		return nil, err
	}

	logger.InfoCtx(ctx, "User signed up", logger.String("user_id", user.ID))

	return u.openSession(ctx, user)
}

// Login checks the credentials and opens a session
func (u *UserUC) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			logger.InfoCtx(ctx, "Login failed",
				logger.String("email", utils.MaskEmail(req.Email)),
				logger.String("reason", "unknown email"))
			u.compareDummy(req.Password)
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.InfoCtx(ctx, "Login failed",
			logger.String("email", utils.MaskEmail(req.Email)),
			logger.String("reason", "password mismatch"))
		return nil, models.ErrInvalidCredentials
	}

	return u.openSession(ctx, user)
}

// Logout ends the session. The user record is kept.
func (u *UserUC) Logout(ctx context.Context, sessionID string) error {
	return u.userRepo.DeleteSession(ctx, sessionID)
}

// ValidateSession returns the user of a live session
func (u *UserUC) ValidateSession(ctx context.Context, sessionID string) (string, error) {
	session, err := u.userRepo.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			return "", models.ErrUnauthenticated
		}
		return "", err
	}

	if session.Expired(models.Now()) {
		if err := u.userRepo.DeleteSession(ctx, sessionID); err != nil {
			logger.WarnCtx(ctx, "Failed to remove expired session",
				logger.String("session_id", sessionID),
				logger.Err(err))
		}
		return "", models.ErrUnauthenticated
	}

	return session.UserID, nil
}

func (u *UserUC) openSession(ctx context.Context, user *models.User) (*models.AuthResponse, error) {
	now := models.Now()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Duration(u.cfg.JWT.Expiration) * time.Minute),
	}

	if err := u.userRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	token, err := jwtpkg.GenerateToken(user.ID, session.ID, session.ExpiresAt, u.cfg.JWT)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token:     token,
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt.Unix(),
		User:      user.Public(),
	}, nil
}

func validateSignup(req *models.SignupRequest) error {
	switch {
	case !utils.HasMinLength(req.Name, minNameLength):
		return fmt.Errorf("%w: name must be at least %d characters", models.ErrInvalidInput, minNameLength)
	case !utils.IsValidEmail(req.Email):
		return fmt.Errorf("%w: email is not valid", models.ErrInvalidInput)
	case utf8.RuneCountInString(req.Password) < minPasswordLength:
		return fmt.Errorf("%w: password must be at least %d characters", models.ErrInvalidInput, minPasswordLength)
	case len(req.Password) > maxPasswordBytes:
		return fmt.Errorf("%w: password must be at most %d bytes", models.ErrInvalidInput, maxPasswordBytes)
	}
	return nil
}

// compareDummy spends one bcrypt comparison at the configured cost
func (u *UserUC) compareDummy(password string) {
	u.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("hopon-unknown-user"), u.hashCost)
		if err != nil {
			logger.Warn("Failed to prepare login dummy hash", logger.Err(err))
			return
		}
		u.dummyHash = hash
	})
	if len(u.dummyHash) == 0 {
		return
	}
	_ = bcrypt.CompareHashAndPassword(u.dummyHash, []byte(password))
}
