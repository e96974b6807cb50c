package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/hopon/internal/pkg/logger"
	"github.com/piresc/hopon/internal/pkg/middleware"
	"github.com/piresc/hopon/internal/pkg/models"
	"github.com/piresc/hopon/internal/utils"
	"github.com/piresc/hopon/services/trips"
)

const defaultSearchRadiusKm = 10

// TripHandler handles HTTP requests for trips
type TripHandler struct {
	tripUC trips.TripUC
	now    func() time.Time
}

// NewTripHandler creates a new trip handler
func NewTripHandler(tripUC trips.TripUC) *TripHandler {
	return &TripHandler{
		tripUC: tripUC,
		now:    models.Now,
	}
}

// AddTrip lists a trip for the authenticated driver
func (h *TripHandler) AddTrip(c echo.Context) error {
	var input models.TripInput
	if err := c.Bind(&input); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	trip, err := h.tripUC.AddTrip(c.Request().Context(), middleware.UserID(c), &input)
	if err != nil {
		return h.errorResponse(c, err, "Failed to create trip")
	}

	middleware.SetTripID(c, trip.ID)
	return utils.CreatedResponse(c, "Trip created successfully", h.view(*trip))
}

// GetTrip returns one trip
func (h *TripHandler) GetTrip(c echo.Context) error {
	trip, err := h.tripUC.GetTrip(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.errorResponse(c, err, "Failed to retrieve trip")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trip retrieved successfully", h.view(*trip))
}

// UpdateTrip edits a trip owned by the authenticated driver
func (h *TripHandler) UpdateTrip(c echo.Context) error {
	tripID := c.Param("id")
	middleware.SetTripID(c, tripID)

	var input models.TripInput
	if err := c.Bind(&input); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	trip, err := h.tripUC.UpdateTrip(c.Request().Context(), middleware.UserID(c), tripID, &input)
	if err != nil {
		return h.errorResponse(c, err, "Failed to update trip")
	}
	if trip == nil {
		return utils.NotFoundResponse(c, models.ErrTripNotFound.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trip updated successfully", h.view(*trip))
}

// DeleteTrip removes a trip owned by the authenticated driver
func (h *TripHandler) DeleteTrip(c echo.Context) error {
	tripID := c.Param("id")
	middleware.SetTripID(c, tripID)

	trip, err := h.tripUC.DeleteTrip(c.Request().Context(), middleware.UserID(c), tripID)
	if err != nil {
		return h.errorResponse(c, err, "Failed to delete trip")
	}
	if trip == nil {
		return utils.NotFoundResponse(c, models.ErrTripNotFound.Error())
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trip deleted successfully", nil)
}

// BookTrip takes a seat for the authenticated user
func (h *TripHandler) BookTrip(c echo.Context) error {
	tripID := c.Param("id")
	middleware.SetTripID(c, tripID)

	trip, err := h.tripUC.BookTrip(c.Request().Context(), middleware.UserID(c), tripID)
	if err != nil {
		return h.errorResponse(c, err, "Failed to book trip")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trip booked successfully", h.view(*trip))
}

// ListBookings returns the trips the authenticated user has booked
func (h *TripHandler) ListBookings(c echo.Context) error {
	result, err := h.tripUC.ListBookings(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return h.errorResponse(c, err, "Failed to list bookings")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Bookings retrieved successfully", h.views(result))
}

// ListListings returns the trips the authenticated user drives
func (h *TripHandler) ListListings(c echo.Context) error {
	result, err := h.tripUC.ListListings(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return h.errorResponse(c, err, "Failed to list trips")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Listings retrieved successfully", h.views(result))
}

// SearchTrips filters trips by the query string
func (h *TripHandler) SearchTrips(c echo.Context) error {
	query, err := parseSearchQuery(c)
	if err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	result, err := h.tripUC.SearchTrips(c.Request().Context(), query)
	if err != nil {
		return h.errorResponse(c, err, "Failed to search trips")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Trips retrieved successfully", h.views(result))
}

// parseSearchQuery reads origin, destination, date and the optional
// lat, lng and radiusKm proximity filter
func parseSearchQuery(c echo.Context) (*models.SearchQuery, error) {
	query := &models.SearchQuery{
		Origin:      c.QueryParam("origin"),
		Destination: c.QueryParam("destination"),
		Date:        c.QueryParam("date"),
	}

	lat, lng := c.QueryParam("lat"), c.QueryParam("lng")
	if lat == "" && lng == "" {
		return query, nil
	}

	near := &models.Place{}
	var err error
	if near.Lat, err = strconv.ParseFloat(lat, 64); err != nil {
		return nil, fmt.Errorf("invalid lat %q", lat)
	}
	if near.Lng, err = strconv.ParseFloat(lng, 64); err != nil {
		return nil, fmt.Errorf("invalid lng %q", lng)
	}

	query.Near = near
	query.RadiusKm = defaultSearchRadiusKm
	if radius := c.QueryParam("radiusKm"); radius != "" {
		if query.RadiusKm, err = strconv.ParseFloat(radius, 64); err != nil {
			return nil, fmt.Errorf("invalid radiusKm %q", radius)
		}
	}
	return query, nil
}

func (h *TripHandler) view(trip models.Trip) models.TripView {
	return models.NewTripView(trip, h.now())
}

func (h *TripHandler) views(trips []models.Trip) []models.TripView {
	now := h.now()
	out := make([]models.TripView, 0, len(trips))
	for _, t := range trips {
		out = append(out, models.NewTripView(t, now))
	}
	return out
}

func (h *TripHandler) errorResponse(c echo.Context, err error, fallback string) error {
	status := utils.StatusForError(err)
	if status != http.StatusInternalServerError {
		return utils.ErrorResponseHandler(c, status, err.Error())
	}

	middleware.NoticeError(c, err)
	logger.ErrorCtx(c.Request().Context(), fallback,
		logger.String("trip_id", c.Param("id")),
		logger.Err(err))
	return utils.InternalServerErrorResponse(c, fallback)
}
