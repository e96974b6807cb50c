package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/hopon/services/users"
	httpHandler "github.com/piresc/hopon/services/users/handler/http"
)

// Handler combines all handlers for the users service
type Handler struct {
	authHTTP *httpHandler.AuthHandler
	userHTTP *httpHandler.UserHandler
}

// NewHandler creates a new combined handler
func NewHandler(userUC users.UserUC) *Handler {
	return &Handler{
		authHTTP: httpHandler.NewAuthHandler(userUC),
		userHTTP: httpHandler.NewUserHandler(userUC),
	}
}

// RegisterRoutes registers the auth and profile routes. The credential
// endpoints run behind limiters; everything else behind auth.
func (h *Handler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc, limiters ...echo.MiddlewareFunc) {
	public := e.Group("/auth", limiters...)
	public.POST("/signup", h.authHTTP.Signup)
	public.POST("/login", h.authHTTP.Login)

	e.POST("/auth/logout", h.authHTTP.Logout, auth)
	e.GET("/users/me", h.userHTTP.Me, auth)
}
