package repository

import (
	"context"
	"fmt"

	"github.com/piresc/hopon/internal/pkg/blobstore"
	"github.com/piresc/hopon/internal/pkg/constants"
	"github.com/piresc/hopon/internal/pkg/models"
)

// MessageRepo stores every trip's messages in one collection blob
type MessageRepo struct {
	messages *blobstore.Collection[models.Message]
}

// NewMessageRepo creates a message repository on top of store
func NewMessageRepo(store blobstore.Store, cfg *models.Config) *MessageRepo {
	return &MessageRepo{
		messages: blobstore.NewCollection[models.Message](store, constants.KeyMessages, cfg.Storage),
	}
}

// Init seeds the message collection
func (r *MessageRepo) Init(ctx context.Context) error {
	return r.messages.Init(ctx)
}

// CreateMessage appends the message
func (r *MessageRepo) CreateMessage(ctx context.Context, msg *models.Message) error {
	err := r.messages.Mutate(ctx, func(messages []models.Message) ([]models.Message, error) {
		return append(messages, *msg), nil
	})
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// ListMessages returns the messages of a trip in insertion order
func (r *MessageRepo) ListMessages(ctx context.Context, tripID string) ([]models.Message, error) {
	all, err := r.messages.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	result := make([]models.Message, 0)
	for _, m := range all {
		if m.TripID == tripID {
			result = append(result, m)
		}
	}
	return result, nil
}
