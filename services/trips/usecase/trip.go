package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/piresc/hopon/internal/pkg/constants"
	"github.com/piresc/hopon/internal/pkg/logger"
	"github.com/piresc/hopon/internal/pkg/models"
	"github.com/piresc/hopon/internal/utils"
)

const (
	minPlaceNameLength = 3
	minVehicleLength   = 3
)

// AddTrip lists a new trip driven by the acting user
func (uc *TripUC) AddTrip(ctx context.Context, actingUserID string, input *models.TripInput) (*models.Trip, error) {
	driver, err := uc.actingUser(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if err := uc.validateInput(input, true); err != nil {
		return nil, err
	}

	now := uc.now()
	trip := &models.Trip{
		ID:              uuid.NewString(),
		DriverID:        driver.ID,
		DriverName:      driver.Name,
		DriverAvatarURL: driver.AvatarURL,
		DriverRating:    uc.cfg.App.DefaultDriverRating,
		Vehicle:         input.Vehicle,
		VehicleImageURL: uc.cfg.App.VehicleImageURL,
		Origin:          input.Origin,
		Destination:     input.Destination,
		DepartureTime:   input.DepartureTime,
		AvailableSeats:  input.AvailableSeats,
		TotalSeats:      input.AvailableSeats,
		Price:           input.Price,
		Passengers:      []models.PassengerSummary{},
		Details:         input.Details,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.tripRepo.CreateTrip(ctx, trip); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Trip listed",
		logger.String("trip_id", trip.ID),
		logger.String("driver_id", trip.DriverID),
		logger.Int("seats", trip.TotalSeats))

	uc.publish(ctx, constants.SubjectTripCreated, func() error {
		return uc.tripGW.PublishTripCreated(ctx, uc.tripEvent(trip, actingUserID))
	})

	return trip, nil
}

// UpdateTrip replaces the driver-editable fields of a trip. Seat counts
// and passengers are kept, and availableSeats is recomputed from them.
func (uc *TripUC) UpdateTrip(ctx context.Context, actingUserID, id string, input *models.TripInput) (*models.Trip, error) {
	if actingUserID == "" {
		return nil, models.ErrUnauthenticated
	}
	if err := uc.validateInput(input, false); err != nil {
		return nil, err
	}

	trip, err := uc.tripRepo.UpdateTrip(ctx, id, func(trip *models.Trip) error {
		if !trip.IsDriver(actingUserID) {
			return models.ErrNotTripOwner
		}

		trip.Vehicle = input.Vehicle
		trip.Origin = input.Origin
		trip.Destination = input.Destination
		trip.DepartureTime = input.DepartureTime
		trip.Price = input.Price
		trip.Details = input.Details
		trip.AvailableSeats = trip.TotalSeats - len(trip.Passengers)
		trip.UpdatedAt = uc.now()
		return nil
	})
	if err != nil || trip == nil {
		return nil, err
	}

	uc.publish(ctx, constants.SubjectTripUpdated, func() error {
		return uc.tripGW.PublishTripUpdated(ctx, uc.tripEvent(trip, actingUserID))
	})

	return trip, nil
}

// DeleteTrip removes a trip owned by the acting user. Messages scoped to
// the trip are left in place.
func (uc *TripUC) DeleteTrip(ctx context.Context, actingUserID, id string) (*models.Trip, error) {
	if actingUserID == "" {
		return nil, models.ErrUnauthenticated
	}

	trip, err := uc.tripRepo.DeleteTrip(ctx, id, func(trip *models.Trip) error {
		if !trip.IsDriver(actingUserID) {
			return models.ErrNotTripOwner
		}
		return nil
	})
	if err != nil || trip == nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Trip deleted",
		logger.String("trip_id", trip.ID),
		logger.Int("passengers", len(trip.Passengers)))

	uc.publish(ctx, constants.SubjectTripDeleted, func() error {
		return uc.tripGW.PublishTripDeleted(ctx, &models.TripDeletedEvent{
			TripID:     trip.ID,
			ActorID:    actingUserID,
			OccurredAt: uc.now(),
		})
	})

	return trip, nil
}

// BookTrip takes one seat for the acting user. The checks run against the
// stored trip inside the write, so two bookings racing for the last seat
// cannot both win.
func (uc *TripUC) BookTrip(ctx context.Context, actingUserID, id string) (*models.Trip, error) {
	passenger, err := uc.actingUser(ctx, actingUserID)
	if err != nil {
		return nil, err
	}

	trip, err := uc.tripRepo.UpdateTrip(ctx, id, func(trip *models.Trip) error {
		switch {
		case trip.AvailableSeats <= 0:
			return models.ErrNoSeatsAvailable
		case trip.HasPassenger(passenger.ID):
			return models.ErrAlreadyBooked
		case trip.IsDriver(passenger.ID):
			return models.ErrDriverCannotBook
		}

		trip.AvailableSeats--
		trip.Passengers = append(trip.Passengers, passenger.Summary())
		trip.UpdatedAt = uc.now()
		return nil
	})
	if err != nil {
		if models.IsBusinessError(err) {
			logger.InfoCtx(ctx, "Booking rejected",
				logger.String("trip_id", id),
				logger.String("user_id", actingUserID),
				logger.String("reason", err.Error()))
		}
		return nil, err
	}
	if trip == nil {
		return nil, models.ErrTripNotFound
	}

	logger.InfoCtx(ctx, "Seat booked",
		logger.String("trip_id", trip.ID),
		logger.String("user_id", passenger.ID),
		logger.Int("available_seats", trip.AvailableSeats))

	uc.publish(ctx, constants.SubjectTripBooked, func() error {
		return uc.tripGW.PublishTripBooked(ctx, uc.tripEvent(trip, actingUserID))
	})

	return trip, nil
}

// actingUser resolves the caller; an unknown or empty id is unauthenticated
func (uc *TripUC) actingUser(ctx context.Context, actingUserID string) (*models.User, error) {
	if actingUserID == "" {
		return nil, models.ErrUnauthenticated
	}

	user, err := uc.users.GetUser(ctx, actingUserID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

func (uc *TripUC) validateInput(input *models.TripInput, creating bool) error {
	switch {
	case !utils.HasMinLength(input.Origin.Name, minPlaceNameLength):
		return fmt.Errorf("%w: origin must be at least %d characters", models.ErrInvalidInput, minPlaceNameLength)
	case !utils.HasMinLength(input.Destination.Name, minPlaceNameLength):
		return fmt.Errorf("%w: destination must be at least %d characters", models.ErrInvalidInput, minPlaceNameLength)
	case !utils.HasMinLength(input.Vehicle, minVehicleLength):
		return fmt.Errorf("%w: vehicle must be at least %d characters", models.ErrInvalidInput, minVehicleLength)
	case input.DepartureTime.IsZero():
		return fmt.Errorf("%w: departure time is required", models.ErrInvalidInput)
	case input.Price < 0:
		return fmt.Errorf("%w: price must not be negative", models.ErrInvalidInput)
	}

	if creating && (input.AvailableSeats < 1 || input.AvailableSeats > uc.maxSeats()) {
		return fmt.Errorf("%w: seats must be between 1 and %d", models.ErrInvalidInput, uc.maxSeats())
	}
	return nil
}

func (uc *TripUC) maxSeats() int {
	if uc.cfg.App.MaxSeats > 0 {
		return uc.cfg.App.MaxSeats
	}
	return 8
}

func (uc *TripUC) tripEvent(trip *models.Trip, actingUserID string) *models.TripEvent {
	return &models.TripEvent{
		Trip:       *trip,
		ActorID:    actingUserID,
		OccurredAt: uc.now(),
	}
}

// publish runs after the write has landed; a failure is only logged
func (uc *TripUC) publish(ctx context.Context, subject string, fn func() error) {
	if err := fn(); err != nil {
		logger.WarnCtx(ctx, "Failed to publish trip event",
			logger.String("subject", subject),
			logger.Err(err))
	}
}
