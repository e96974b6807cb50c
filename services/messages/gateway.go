package messages

import (
	"context"

	"github.com/piresc/hopon/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/hopon/services/messages MessageGW,UserReader

// MessageGW publishes message events
type MessageGW interface {
	PublishMessageCreated(ctx context.Context, event *models.MessageEvent) error
}

// UserReader resolves the author of a message
type UserReader interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}
