package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/hopon/services/messages"
	httpHandler "github.com/piresc/hopon/services/messages/handler/http"
)

// Handler combines all handlers for the messages service
type Handler struct {
	messageHTTP *httpHandler.MessageHandler
}

// NewHandler creates a new combined handler
func NewHandler(messageUC messages.MessageUC) *Handler {
	return &Handler{
		messageHTTP: httpHandler.NewMessageHandler(messageUC),
	}
}

// RegisterRoutes registers the trip chat routes behind auth
func (h *Handler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.GET("/trips/:id/messages", h.messageHTTP.ListMessages, auth)
	e.POST("/trips/:id/messages", h.messageHTTP.AddMessage, auth)
}
