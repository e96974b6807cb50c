package messages

import (
	"context"

	"github.com/piresc/hopon/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/hopon/services/messages MessageUC

// MessageUC defines the per-trip chat operations
type MessageUC interface {
	AddMessage(ctx context.Context, actingUserID, tripID, text string) (*models.Message, error)
	ListMessages(ctx context.Context, tripID string) ([]models.Message, error)
}
