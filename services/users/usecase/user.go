package usecase

import (
	"context"

	"github.com/piresc/hopon/internal/pkg/models"
)

// GetUser returns the public view of a user
func (u *UserUC) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := u.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	public := user.Public()
	return &public, nil
}
