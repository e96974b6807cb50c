package gateway

import (
	"context"

	"github.com/piresc/hopon/internal/pkg/constants"
	"github.com/piresc/hopon/internal/pkg/models"
	natspkg "github.com/piresc/hopon/internal/pkg/nats"
)

// TripGW publishes trip events to NATS. With no client every publish is
// a no-op, which is how the service runs when NATS is disabled.
type TripGW struct {
	natsClient *natspkg.Client
}

// NewTripGW creates a new trip gateway
func NewTripGW(client *natspkg.Client) *TripGW {
	return &TripGW{
		natsClient: client,
	}
}

// PublishTripCreated publishes a trip.created event
func (g *TripGW) PublishTripCreated(ctx context.Context, event *models.TripEvent) error {
	return g.publish(constants.SubjectTripCreated, event)
}

// PublishTripUpdated publishes a trip.updated event
func (g *TripGW) PublishTripUpdated(ctx context.Context, event *models.TripEvent) error {
	return g.publish(constants.SubjectTripUpdated, event)
}

// PublishTripBooked publishes a trip.booked event
func (g *TripGW) PublishTripBooked(ctx context.Context, event *models.TripEvent) error {
	return g.publish(constants.SubjectTripBooked, event)
}

// PublishTripDeleted publishes a trip.deleted event
func (g *TripGW) PublishTripDeleted(ctx context.Context, event *models.TripDeletedEvent) error {
	return g.publish(constants.SubjectTripDeleted, event)
}

func (g *TripGW) publish(subject string, event interface{}) error {
	if g.natsClient == nil {
		return nil
	}
	return g.natsClient.PublishJSON(subject, event)
}
