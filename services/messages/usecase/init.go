package usecase

import (
	"time"

	"github.com/piresc/hopon/internal/pkg/models"
	"github.com/piresc/hopon/services/messages"
)

// MessageUC implements messages.MessageUC
type MessageUC struct {
	messageRepo messages.MessageRepo
	messageGW   messages.MessageGW
	users       messages.UserReader
	now         func() time.Time
}

// NewMessageUC creates a new message usecase instance
func NewMessageUC(messageRepo messages.MessageRepo, messageGW messages.MessageGW, users messages.UserReader) *MessageUC {
	return &MessageUC{
		messageRepo: messageRepo,
		messageGW:   messageGW,
		users:       users,
		now:         models.Now,
	}
}
