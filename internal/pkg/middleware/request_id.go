package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			c.Response().Header().Set(requestIDHeader, requestID)
			c.Set("request_id", requestID)

			return next(c)
		}
	}
}

func getRequestID(c echo.Context) string {
	if requestID := c.Response().Header().Get(requestIDHeader); requestID != "" {
		return requestID
	}
	return c.Request().Header.Get(requestIDHeader)
}
