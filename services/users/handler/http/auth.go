package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/hopon/internal/pkg/logger"
	"github.com/piresc/hopon/internal/pkg/middleware"
	"github.com/piresc/hopon/internal/pkg/models"
	"github.com/piresc/hopon/internal/utils"
	"github.com/piresc/hopon/services/users"
)

// AuthHandler handles signup, login and logout
type AuthHandler struct {
	userUC users.UserUC
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userUC users.UserUC) *AuthHandler {
	return &AuthHandler{userUC: userUC}
}

// Signup registers a user and returns a session token
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	resp, err := h.userUC.Signup(c.Request().Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidInput):
			return utils.BadRequestResponse(c, err.Error())
		case errors.Is(err, models.ErrEmailTaken):
			return utils.ConflictResponse(c, err.Error())
		}
		middleware.NoticeError(c, err)
		logger.ErrorCtx(c.Request().Context(), "Signup failed", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to sign up")
	}

	middleware.SetUserID(c, resp.User.ID)
	return utils.CreatedResponse(c, "Signed up successfully", resp)
}

// Login exchanges credentials for a session token
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	resp, err := h.userUC.Login(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			return utils.UnauthorizedResponse(c, err.Error())
		}
		middleware.NoticeError(c, err)
		logger.ErrorCtx(c.Request().Context(), "Login failed", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to log in")
	}

	middleware.SetUserID(c, resp.User.ID)
	return utils.SuccessResponse(c, http.StatusOK, "Logged in successfully", resp)
}

// Logout ends the session carried by the bearer token
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.userUC.Logout(c.Request().Context(), middleware.SessionID(c)); err != nil {
		middleware.NoticeError(c, err)
		logger.ErrorCtx(c.Request().Context(), "Logout failed", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to log out")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}
