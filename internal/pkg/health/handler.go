package health

import (
	"context"
	"errors"
	"net/http"
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/hopon/internal/pkg/database"
	"github.com/piresc/hopon/internal/pkg/logger"
	"github.com/piresc/hopon/internal/pkg/nats"
)

// Checker reports whether one dependency is usable
type Checker interface {
	CheckHealth(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker
type CheckerFunc func(ctx context.Context) error

// CheckHealth calls f
func (f CheckerFunc) CheckHealth(ctx context.Context) error {
	return f(ctx)
}

// NewRedisChecker pings Redis
func NewRedisChecker(client *database.RedisClient) Checker {
	return CheckerFunc(client.Ping)
}

// NewPostgresChecker pings Postgres
func NewPostgresChecker(client *database.PostgresClient) Checker {
	return CheckerFunc(client.Ping)
}

// NewNATSChecker checks that the NATS connection is up
func NewNATSChecker(client *nats.Client) Checker {
	return CheckerFunc(func(ctx context.Context) error {
		if !client.IsConnected() {
			return errors.New("nats not connected")
		}
		return nil
	})
}

// BuildInfo contains information about the build
type BuildInfo struct {
	Version     string    `json:"version"`
	ServiceName string    `json:"service_name"`
	GoVersion   string    `json:"go_version"`
	Hostname    string    `json:"hostname"`
	ServerTime  time.Time `json:"server_time"`
}

// DependencyInfo represents health info for a dependency
type DependencyInfo struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Response is returned by the readiness endpoint
type Response struct {
	Status       string           `json:"status"`
	Service      string           `json:"service"`
	Timestamp    time.Time        `json:"timestamp"`
	Dependencies []DependencyInfo `json:"dependencies"`
}

// Service runs the registered dependency checks
type Service struct {
	serviceName string
	version     string
	checkers    map[string]Checker
}

// NewService creates a health service for serviceName
func NewService(serviceName, version string) *Service {
	return &Service{
		serviceName: serviceName,
		version:     version,
		checkers:    make(map[string]Checker),
	}
}

// AddChecker registers a health checker for a dependency
func (s *Service) AddChecker(name string, checker Checker) {
	s.checkers[name] = checker
}

// Check runs every checker and reports overall status
func (s *Service) Check(ctx context.Context) Response {
	resp := Response{
		Status:       "healthy",
		Service:      s.serviceName,
		Timestamp:    time.Now(),
		Dependencies: make([]DependencyInfo, 0, len(s.checkers)),
	}

	names := make([]string, 0, len(s.checkers))
	for name := range s.checkers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		info := DependencyInfo{Name: name, Status: "healthy"}
		if err := s.checkers[name].CheckHealth(ctx); err != nil {
			logger.WarnCtx(ctx, "Health check failed",
				logger.String("dependency", name),
				logger.Err(err))
			info.Status = "unhealthy"
			info.Error = err.Error()
			resp.Status = "unhealthy"
		}
		resp.Dependencies = append(resp.Dependencies, info)
	}

	return resp
}

// RegisterEndpoints registers /health, /ping and /ready
func (s *Service) RegisterEndpoints(e *echo.Echo) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"service": s.serviceName,
		})
	})

	e.GET("/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, BuildInfo{
			Version:     s.version,
			ServiceName: s.serviceName,
			GoVersion:   runtime.Version(),
			Hostname:    hostname,
			ServerTime:  time.Now(),
		})
	})

	e.GET("/ready", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
		defer cancel()

		resp := s.Check(ctx)
		if resp.Status != "healthy" {
			return c.JSON(http.StatusServiceUnavailable, resp)
		}
		return c.JSON(http.StatusOK, resp)
	})
}
