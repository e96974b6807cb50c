package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/hopon/internal/pkg/logger"
	"github.com/piresc/hopon/internal/pkg/middleware"
	"github.com/piresc/hopon/internal/pkg/models"
	"github.com/piresc/hopon/internal/utils"
	"github.com/piresc/hopon/services/messages"
)

// MessageHandler handles HTTP requests for trip chats
type MessageHandler struct {
	messageUC messages.MessageUC
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageUC messages.MessageUC) *MessageHandler {
	return &MessageHandler{messageUC: messageUC}
}

// AddMessage posts to the chat of the trip in the path
func (h *MessageHandler) AddMessage(c echo.Context) error {
	tripID := c.Param("id")
	middleware.SetTripID(c, tripID)

	var req models.MessageRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	msg, err := h.messageUC.AddMessage(c.Request().Context(), middleware.UserID(c), tripID, req.Text)
	if err != nil {
		if status := utils.StatusForError(err); status != http.StatusInternalServerError {
			return utils.ErrorResponseHandler(c, status, err.Error())
		}
		middleware.NoticeError(c, err)
		logger.ErrorCtx(c.Request().Context(), "Failed to add message",
			logger.String("trip_id", tripID),
			logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to send message")
	}

	return utils.CreatedResponse(c, "Message sent successfully", msg)
}

// ListMessages returns the chat of the trip in the path
func (h *MessageHandler) ListMessages(c echo.Context) error {
	tripID := c.Param("id")

	result, err := h.messageUC.ListMessages(c.Request().Context(), tripID)
	if err != nil {
		middleware.NoticeError(c, err)
		logger.ErrorCtx(c.Request().Context(), "Failed to list messages",
			logger.String("trip_id", tripID),
			logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to retrieve messages")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Messages retrieved successfully", result)
}
