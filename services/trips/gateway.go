package trips

import (
	"context"

	"github.com/piresc/hopon/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/hopon/services/trips TripGW,UserReader

// TripGW publishes trip events
type TripGW interface {
	PublishTripCreated(ctx context.Context, event *models.TripEvent) error
	PublishTripUpdated(ctx context.Context, event *models.TripEvent) error
	PublishTripBooked(ctx context.Context, event *models.TripEvent) error
	PublishTripDeleted(ctx context.Context, event *models.TripDeletedEvent) error
}

// UserReader resolves the acting user for driver and passenger snapshots
type UserReader interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}
