package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/piresc/hopon/internal/pkg/constants"
	"github.com/piresc/hopon/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*logger.ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return &logger.ZapLogger{Logger: zap.New(core)}, logs
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		panicValue interface{}
	}{
		{name: "string panic", panicValue: "boom"},
		{name: "error panic", panicValue: errors.New("bad state")},
		{name: "int panic", panicValue: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zl, logs := newObservedLogger()
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/trips/t1/book", nil)
			req.Header.Set("X-Request-ID", "req-1")
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Set(constants.CtxUserID, "user-1")

			handler := PanicRecoveryMiddleware(zl)(func(c echo.Context) error {
				panic(tt.panicValue)
			})

			require.NotPanics(t, func() { _ = handler(c) })
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Contains(t, rec.Body.String(), `"success":false`)

			entries := logs.FilterMessage("Panic recovered during request processing").All()
			require.Len(t, entries, 1)
			fields := entries[0].ContextMap()
			assert.Equal(t, "user-1", fields["user_id"])
			assert.Equal(t, "req-1", fields["request_id"])
			assert.Equal(t, "/trips/t1/book", fields["path"])
			assert.Contains(t, fields["stack_trace"], "goroutine")
		})
	}
}

func TestPanicRecoveryMiddleware_PassesThrough(t *testing.T) {
	zl, logs := newObservedLogger()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	handler := PanicRecoveryMiddleware(zl)(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, logs.Len())
}

func TestPanicRecoveryMiddleware_RequiresLogger(t *testing.T) {
	assert.Panics(t, func() { PanicRecoveryMiddleware(nil) })
}

func TestRequestIDMiddleware(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, RequestIDMiddleware()(func(c echo.Context) error { return nil })(c))
	generated := rec.Header().Get("X-Request-ID")
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, c.Get("request_id"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "given")
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	require.NoError(t, RequestIDMiddleware()(func(c echo.Context) error { return nil })(c))
	assert.Equal(t, "given", rec.Header().Get("X-Request-ID"))
}
