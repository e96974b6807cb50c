package usecase

import (
	"time"

	"github.com/piresc/hopon/internal/pkg/logger"
	"github.com/piresc/hopon/internal/pkg/models"
	"github.com/piresc/hopon/services/trips"
)

// TripUC implements trips.TripUC
type TripUC struct {
	tripRepo trips.TripRepo
	tripGW   trips.TripGW
	users    trips.UserReader
	cfg      *models.Config
	loc      *time.Location
	now      func() time.Time
}

// NewTripUC creates a new trip usecase instance. Search dates are matched
// in cfg.App.Timezone, falling back to UTC when it cannot be loaded.
func NewTripUC(
	tripRepo trips.TripRepo,
	tripGW trips.TripGW,
	users trips.UserReader,
	cfg *models.Config,
) *TripUC {
	loc := time.UTC
	if cfg.App.Timezone != "" {
		l, err := time.LoadLocation(cfg.App.Timezone)
		if err != nil {
			logger.Warn("Unknown timezone, matching search dates in UTC",
				logger.String("timezone", cfg.App.Timezone),
				logger.Err(err))
		} else {
			loc = l
		}
	}

	return &TripUC{
		tripRepo: tripRepo,
		tripGW:   tripGW,
		users:    users,
		cfg:      cfg,
		loc:      loc,
		now:      models.Now,
	}
}
