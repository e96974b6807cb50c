package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/piresc/hopon/internal/pkg/logger"
	"github.com/piresc/hopon/internal/pkg/models"
)

// AddMessage posts text to the chat of tripID as the acting user. The trip
// id is only a scope; it is not checked against the trip collection.
func (uc *MessageUC) AddMessage(ctx context.Context, actingUserID, tripID, text string) (*models.Message, error) {
	if actingUserID == "" {
		return nil, models.ErrUnauthenticated
	}
	if strings.TrimSpace(tripID) == "" {
		return nil, fmt.Errorf("%w: trip id is required", models.ErrInvalidInput)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message text is empty", models.ErrInvalidInput)
	}

	author, err := uc.users.GetUser(ctx, actingUserID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrUnauthenticated
		}
		return nil, err
	}

	now := uc.now()
	msg := &models.Message{
		ID:        uuid.NewString(),
		TripID:    tripID,
		UserID:    author.ID,
		Name:      author.Name,
		AvatarURL: author.AvatarURL,
		Text:      text,
		Timestamp: models.EpochMillis(now),
	}

	if err := uc.messageRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	event := &models.MessageEvent{Message: *msg, OccurredAt: now}
	if err := uc.messageGW.PublishMessageCreated(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish message event",
			logger.String("trip_id", tripID),
			logger.String("message_id", msg.ID),
			logger.Err(err))
	}

	return msg, nil
}

// ListMessages returns the chat of tripID oldest first
func (uc *MessageUC) ListMessages(ctx context.Context, tripID string) ([]models.Message, error) {
	return uc.messageRepo.ListMessages(ctx, tripID)
}
