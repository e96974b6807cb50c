package gateway

import (
	"context"

	"github.com/piresc/hopon/internal/pkg/constants"
	"github.com/piresc/hopon/internal/pkg/models"
	natspkg "github.com/piresc/hopon/internal/pkg/nats"
)

// MessageGW publishes chat events to NATS; a nil client disables it
type MessageGW struct {
	natsClient *natspkg.Client
}

// NewMessageGW creates a new message gateway
func NewMessageGW(client *natspkg.Client) *MessageGW {
	return &MessageGW{natsClient: client}
}

// PublishMessageCreated publishes a message.created event
func (g *MessageGW) PublishMessageCreated(ctx context.Context, event *models.MessageEvent) error {
	if g.natsClient == nil {
		return nil
	}
	return g.natsClient.PublishJSON(constants.SubjectMessageCreated, event)
}
