package repository

import (
	"context"
	"fmt"

	"github.com/piresc/hopon/internal/pkg/blobstore"
	"github.com/piresc/hopon/internal/pkg/constants"
	"github.com/piresc/hopon/internal/pkg/models"
)

// TripRepo stores all trips as one collection blob
type TripRepo struct {
	trips *blobstore.Collection[models.Trip]
}

// NewTripRepo creates a trip repository on top of store
func NewTripRepo(store blobstore.Store, cfg *models.Config) *TripRepo {
	return &TripRepo{
		trips: blobstore.NewCollection[models.Trip](store, constants.KeyTrips, cfg.Storage),
	}
}

// Init seeds the trip collection
func (r *TripRepo) Init(ctx context.Context) error {
	return r.trips.Init(ctx)
}

// CreateTrip appends the trip
func (r *TripRepo) CreateTrip(ctx context.Context, trip *models.Trip) error {
	err := r.trips.Mutate(ctx, func(trips []models.Trip) ([]models.Trip, error) {
		return append(trips, *trip), nil
	})
	if err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

// GetTrip retrieves a trip by id
func (r *TripRepo) GetTrip(ctx context.Context, id string) (*models.Trip, error) {
	trips, err := r.ListTrips(ctx)
	if err != nil {
		return nil, err
	}

	if i := indexOf(trips, id); i >= 0 {
		return &trips[i], nil
	}
	return nil, models.ErrTripNotFound
}

// ListTrips returns every trip in insertion order
func (r *TripRepo) ListTrips(ctx context.Context) ([]models.Trip, error) {
	trips, err := r.trips.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	return trips, nil
}

// UpdateTrip applies apply to the stored trip and writes it back in place
func (r *TripRepo) UpdateTrip(ctx context.Context, id string, apply func(trip *models.Trip) error) (*models.Trip, error) {
	var updated *models.Trip

	err := r.trips.Mutate(ctx, func(trips []models.Trip) ([]models.Trip, error) {
		updated = nil

		i := indexOf(trips, id)
		if i < 0 {
			return nil, blobstore.ErrUnchanged
		}

		trip := trips[i]
		trip.Passengers = append([]models.PassengerSummary{}, trip.Passengers...)
		if err := apply(&trip); err != nil {
			return nil, err
		}

		trips[i] = trip
		updated = &trip
		return trips, nil
	})
	if err != nil {
		return nil, wrapStorageErr("failed to update trip", err)
	}
	return updated, nil
}

// DeleteTrip removes the trip once check accepts it
func (r *TripRepo) DeleteTrip(ctx context.Context, id string, check func(trip *models.Trip) error) (*models.Trip, error) {
	var deleted *models.Trip

	err := r.trips.Mutate(ctx, func(trips []models.Trip) ([]models.Trip, error) {
		deleted = nil

		i := indexOf(trips, id)
		if i < 0 {
			return nil, blobstore.ErrUnchanged
		}

		trip := trips[i]
		if err := check(&trip); err != nil {
			return nil, err
		}

		deleted = &trip
		return append(trips[:i:i], trips[i+1:]...), nil
	})
	if err != nil {
		return nil, wrapStorageErr("failed to delete trip", err)
	}
	return deleted, nil
}

func indexOf(trips []models.Trip, id string) int {
	for i := range trips {
		if trips[i].ID == id {
			return i
		}
	}
	return -1
}

// wrapStorageErr leaves business errors from the callbacks unwrapped
func wrapStorageErr(msg string, err error) error {
	if models.IsBusinessError(err) {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}
