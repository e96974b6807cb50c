package trips

import (
	"context"

	"github.com/piresc/hopon/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/hopon/services/trips TripRepo

// TripRepo persists the trip collection.
//
// UpdateTrip and DeleteTrip run check against the freshest stored copy of
// the trip inside one compare-and-swap write, so a rejection by check
// leaves the collection untouched. Both return nil and no error when the
// trip does not exist.
type TripRepo interface {
	CreateTrip(ctx context.Context, trip *models.Trip) error
	GetTrip(ctx context.Context, id string) (*models.Trip, error)
	ListTrips(ctx context.Context) ([]models.Trip, error)
	UpdateTrip(ctx context.Context, id string, apply func(trip *models.Trip) error) (*models.Trip, error)
	DeleteTrip(ctx context.Context, id string, check func(trip *models.Trip) error) (*models.Trip, error)
}
