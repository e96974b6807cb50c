package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/hopon/internal/pkg/middleware"
	"github.com/piresc/hopon/internal/pkg/models"
	"github.com/piresc/hopon/internal/utils"
	"github.com/piresc/hopon/services/users"
)

// UserHandler handles HTTP requests for user profiles
type UserHandler struct {
	userUC users.UserUC
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUC users.UserUC) *UserHandler {
	return &UserHandler{
		userUC: userUC,
	}
}

// Me returns the authenticated user
func (h *UserHandler) Me(c echo.Context) error {
	user, err := h.userUC.GetUser(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return utils.NotFoundResponse(c, "User not found")
		}
		middleware.NoticeError(c, err)
		return utils.InternalServerErrorResponse(c, "Failed to retrieve user")
	}

	return utils.SuccessResponse(c, http.StatusOK, "User retrieved successfully", user)
}
