package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/piresc/hopon/internal/pkg/models"
	"github.com/piresc/hopon/internal/utils"
)

// GetTrip retrieves a trip by id
func (uc *TripUC) GetTrip(ctx context.Context, id string) (*models.Trip, error) {
	return uc.tripRepo.GetTrip(ctx, id)
}

// ListBookings returns the trips the user holds a seat on
func (uc *TripUC) ListBookings(ctx context.Context, userID string) ([]models.Trip, error) {
	return uc.filter(ctx, func(t *models.Trip) bool { return t.HasPassenger(userID) })
}

// ListListings returns the trips the user drives
func (uc *TripUC) ListListings(ctx context.Context, userID string) ([]models.Trip, error) {
	return uc.filter(ctx, func(t *models.Trip) bool { return t.IsDriver(userID) })
}

// SearchTrips returns the trips matching every given criterion
func (uc *TripUC) SearchTrips(ctx context.Context, query *models.SearchQuery) ([]models.Trip, error) {
	matchers, err := uc.searchMatchers(query)
	if err != nil {
		return nil, err
	}

	return uc.filter(ctx, func(t *models.Trip) bool {
		for _, match := range matchers {
			if !match(t) {
				return false
			}
		}
		return true
	})
}

func (uc *TripUC) searchMatchers(query *models.SearchQuery) ([]func(t *models.Trip) bool, error) {
	var matchers []func(t *models.Trip) bool
	if query == nil {
		return matchers, nil
	}

	if origin := strings.ToLower(strings.TrimSpace(query.Origin)); origin != "" {
		matchers = append(matchers, func(t *models.Trip) bool {
			return strings.Contains(strings.ToLower(t.Origin.Name), origin)
		})
	}

	if destination := strings.ToLower(strings.TrimSpace(query.Destination)); destination != "" {
		matchers = append(matchers, func(t *models.Trip) bool {
			return strings.Contains(strings.ToLower(t.Destination.Name), destination)
		})
	}

	if query.Date != "" {
		day, err := models.ParseDate(query.Date, uc.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", models.ErrInvalidInput)
		}
		matchers = append(matchers, func(t *models.Trip) bool {
			return models.SameDay(t.DepartureTime, day, uc.loc)
		})
	}

	if query.Near != nil {
		if query.RadiusKm <= 0 {
			return nil, fmt.Errorf("%w: radius must be positive", models.ErrInvalidInput)
		}
		proximity := utils.NewProximityFilter(*query.Near, query.RadiusKm)
		matchers = append(matchers, func(t *models.Trip) bool {
			return proximity.Match(t.Origin)
		})
	}

	return matchers, nil
}

func (uc *TripUC) filter(ctx context.Context, keep func(t *models.Trip) bool) ([]models.Trip, error) {
	all, err := uc.tripRepo.ListTrips(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.Trip, 0, len(all))
	for i := range all {
		if keep(&all[i]) {
			result = append(result, all[i])
		}
	}
	return result, nil
}
