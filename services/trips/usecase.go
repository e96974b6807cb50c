package trips

import (
	"context"

	"github.com/piresc/hopon/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/hopon/services/trips TripUC

// TripUC defines the trip listing, booking and search operations.
// actingUserID is the authenticated caller; "" means anonymous. UpdateTrip
// and DeleteTrip return a nil trip when the id is unknown.
type TripUC interface {
	AddTrip(ctx context.Context, actingUserID string, input *models.TripInput) (*models.Trip, error)
	UpdateTrip(ctx context.Context, actingUserID, id string, input *models.TripInput) (*models.Trip, error)
	DeleteTrip(ctx context.Context, actingUserID, id string) (*models.Trip, error)
	BookTrip(ctx context.Context, actingUserID, id string) (*models.Trip, error)

	GetTrip(ctx context.Context, id string) (*models.Trip, error)
	ListBookings(ctx context.Context, userID string) ([]models.Trip, error)
	ListListings(ctx context.Context, userID string) ([]models.Trip, error)
	SearchTrips(ctx context.Context, query *models.SearchQuery) ([]models.Trip, error)
}
