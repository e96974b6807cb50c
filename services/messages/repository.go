package messages

import (
	"context"

	"github.com/piresc/hopon/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/hopon/services/messages MessageRepo

// MessageRepo persists chat messages
type MessageRepo interface {
	CreateMessage(ctx context.Context, msg *models.Message) error
	ListMessages(ctx context.Context, tripID string) ([]models.Message, error)
}
