package usecase

import (
	"sync"

	"github.com/piresc/hopon/internal/pkg/models"
	"github.com/piresc/hopon/services/users"
	"golang.org/x/crypto/bcrypt"
)

// UserUC implements users.UserUC
type UserUC struct {
	userRepo users.UserRepo
	cfg      *models.Config
	hashCost int

	// hash compared on unknown emails so both login failures cost the same
	dummyOnce sync.Once
	dummyHash []byte
}

// NewUserUC creates a new user usecase instance
func NewUserUC(userRepo users.UserRepo, cfg *models.Config) *UserUC {
	return &UserUC{
		userRepo: userRepo,
		cfg:      cfg,
		hashCost: bcrypt.DefaultCost,
	}
}
