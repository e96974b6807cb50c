package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	jwtpkg "github.com/piresc/hopon/internal/pkg/jwt"
	"github.com/piresc/hopon/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions map[string]string

func (f fakeSessions) ValidateSession(ctx context.Context, sessionID string) (string, error) {
	userID, ok := f[sessionID]
	if !ok {
		return "", models.ErrUnauthenticated
	}
	return userID, nil
}

var testJWTConfig = models.JWTConfig{Secret: "middleware-secret", Expiration: 60, Issuer: "hopon-test"}

func signedToken(t *testing.T, userID, sessionID string) string {
	t.Helper()
	token, err := jwtpkg.GenerateToken(userID, sessionID, time.Now().Add(time.Hour), testJWTConfig)
	require.NoError(t, err)
	return token
}

func TestJWTAuthMiddleware(t *testing.T) {
	sessions := fakeSessions{"session-1": "user-1"}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid token", header: "Bearer " + signedToken(t, "user-1", "session-1"), wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not.a.token", wantStatus: http.StatusUnauthorized},
		{name: "logged out session", header: "Bearer " + signedToken(t, "user-1", "session-gone"), wantStatus: http.StatusUnauthorized},
		{name: "session of another user", header: "Bearer " + signedToken(t, "user-2", "session-1"), wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var gotUser, gotSession string
			handler := JWTAuthMiddleware(testJWTConfig, sessions)(func(c echo.Context) error {
				gotUser = UserID(c)
				gotSession = SessionID(c)
				return c.NoContent(http.StatusOK)
			})

			require.NoError(t, handler(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "user-1", gotUser)
				assert.Equal(t, "session-1", gotSession)
			} else {
				assert.Empty(t, gotUser)
			}
		})
	}
}

func TestUserID_Unauthenticated(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Empty(t, UserID(c))
	assert.Empty(t, SessionID(c))
}
