package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/hopon/services/trips"
	httpHandler "github.com/piresc/hopon/services/trips/handler/http"
)

// Handler combines all handlers for the trips service
type Handler struct {
	tripHTTP *httpHandler.TripHandler
}

// NewHandler creates a new combined handler
func NewHandler(tripUC trips.TripUC) *Handler {
	return &Handler{
		tripHTTP: httpHandler.NewTripHandler(tripUC),
	}
}

// RegisterRoutes registers the trip routes. Browsing is public; anything
// acting as a user goes through auth.
func (h *Handler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	tripsGroup := e.Group("/trips")
	tripsGroup.GET("", h.tripHTTP.SearchTrips)
	tripsGroup.GET("/:id", h.tripHTTP.GetTrip)
	tripsGroup.POST("", h.tripHTTP.AddTrip, auth)
	tripsGroup.PUT("/:id", h.tripHTTP.UpdateTrip, auth)
	tripsGroup.DELETE("/:id", h.tripHTTP.DeleteTrip, auth)
	tripsGroup.POST("/:id/book", h.tripHTTP.BookTrip, auth)

	me := e.Group("/me", auth)
	me.GET("/bookings", h.tripHTTP.ListBookings)
	me.GET("/listings", h.tripHTTP.ListListings)
}
