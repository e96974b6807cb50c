package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/piresc/hopon/internal/pkg/constants"
	jwtpkg "github.com/piresc/hopon/internal/pkg/jwt"
	"github.com/piresc/hopon/internal/pkg/logger"
	"github.com/piresc/hopon/internal/pkg/models"
	"github.com/piresc/hopon/internal/utils"
)

// SessionValidator resolves a live session to its user
type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionID string) (string, error)
}

// JWTAuthMiddleware authenticates the bearer token and checks that the
// session it names still exists. The user and session ids are stored on
// the echo context for handlers.
func JWTAuthMiddleware(config models.JWTConfig, sessions SessionValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return utils.UnauthorizedResponse(c, "Invalid authorization format")
			}

			claims, err := jwtpkg.ValidateToken(parts[1], config.Secret)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token")
			}

			userID, err := sessions.ValidateSession(c.Request().Context(), claims.SessionID)
			if err != nil {
				logger.WarnCtx(c.Request().Context(), "Rejected token for inactive session",
					logger.String("session_id", claims.SessionID),
					logger.Err(err))
				return utils.UnauthorizedResponse(c, "Session expired")
			}
			if userID != claims.UserID {
				return utils.UnauthorizedResponse(c, "Invalid token")
			}

			c.Set(constants.CtxUserID, userID)
			c.Set(constants.CtxSessionID, claims.SessionID)
			SetUserID(c, userID)

			return next(c)
		}
	}
}

// UserID returns the authenticated user id, or "" on public routes
func UserID(c echo.Context) string {
	id, _ := c.Get(constants.CtxUserID).(string)
	return id
}

// SessionID returns the authenticated session id
func SessionID(c echo.Context) string {
	id, _ := c.Get(constants.CtxSessionID).(string)
	return id
}
