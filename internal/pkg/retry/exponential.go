package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/piresc/hopon/internal/pkg/logger"
	"github.com/piresc/hopon/internal/pkg/models"
)

// RetryableFunc is one attempt of a retried operation
type RetryableFunc func(ctx context.Context) error

// Config holds retry configuration
type Config struct {
	MaxRetries    int           // attempts after the first one
	BaseDelay     time.Duration // delay before the first retry
	MaxDelay      time.Duration // 0 means uncapped
	Multiplier    float64
	Jitter        bool
	RetryableFunc func(error) bool
}

// DefaultConfig retries every error three times starting at 100ms
func DefaultConfig() Config {
	return Config{
		MaxRetries:    3,
		BaseDelay:     100 * time.Millisecond,
		MaxDelay:      30 * time.Second,
		Multiplier:    2.0,
		Jitter:        true,
		RetryableFunc: func(error) bool { return true },
	}
}

// On returns a predicate that only retries errors matching one of targets
func On(targets ...error) func(error) bool {
	return func(err error) bool {
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}

// ForStorage builds the retrier used for compare-and-swap writes. Only
// errors matching one of retryable are attempted again.
func ForStorage(cfg models.StorageConfig, retryable ...error) *Retrier {
	baseDelay := cfg.RetryBaseDelay
	if baseDelay <= 0 {
		baseDelay = 10 * time.Millisecond
	}

	return New(Config{
		MaxRetries:    cfg.MaxRetries,
		BaseDelay:     baseDelay,
		MaxDelay:      time.Second,
		Multiplier:    2.0,
		Jitter:        true,
		RetryableFunc: On(retryable...),
	}, nil)
}

// Retrier runs a function again with exponential backoff until it succeeds
type Retrier struct {
	config Config
	logger *logger.ZapLogger
}

// New creates a retrier. A nil logger falls back to the global logger.
func New(config Config, l *logger.ZapLogger) *Retrier {
	if config.RetryableFunc == nil {
		config.RetryableFunc = DefaultConfig().RetryableFunc
	}
	if config.Multiplier <= 0 {
		config.Multiplier = 1
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	return &Retrier{config: config, logger: l}
}

func (r *Retrier) log() *logger.ZapLogger {
	if r.logger != nil {
		return r.logger
	}
	return logger.GetGlobalLogger()
}

// Attempts is the most times Execute will call its function
func (r *Retrier) Attempts() int {
	return r.config.MaxRetries + 1
}

// Execute runs fn until it succeeds, returns a non-retryable error, the
// context ends, or the attempts run out. When they run out the last error
// is wrapped so errors.Is still matches it.
func (r *Retrier) Execute(ctx context.Context, fn RetryableFunc) error {
	var lastErr error

	for attempt := 0; attempt < r.Attempts(); attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		switch {
		case lastErr == nil:
			if attempt > 0 {
				r.log().Debug("Succeeded after retries", logger.Int("attempt", attempt+1))
			}
			return nil
		case !r.config.RetryableFunc(lastErr):
			return lastErr
		case attempt == r.config.MaxRetries:
			continue
		}

		delay := r.backoff(attempt)
		r.log().Debug("Attempt failed, retrying",
			logger.Err(lastErr),
			logger.Int("attempt", attempt+1),
			logger.Duration("delay", delay))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	r.log().Warn("Giving up after retries",
		logger.Err(lastErr),
		logger.Int("total_attempts", r.Attempts()))

	return fmt.Errorf("retry limit exceeded after %d attempts: %w", r.Attempts(), lastErr)
}

func (r *Retrier) backoff(attempt int) time.Duration {
	delay := float64(r.config.BaseDelay) * math.Pow(r.config.Multiplier, float64(attempt))
	if r.config.MaxDelay > 0 && delay > float64(r.config.MaxDelay) {
		delay = float64(r.config.MaxDelay)
	}
	if r.config.Jitter {
		// up to 10%
		delay += delay * 0.1 * rand.Float64()
	}
	return time.Duration(delay)
}
