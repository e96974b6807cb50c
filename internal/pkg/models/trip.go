package models

import (
	"time"
)

// TripStatus is derived from the departure time, never stored
type TripStatus string

const (
	TripStatusUpcoming  TripStatus = "upcoming"
	TripStatusCompleted TripStatus = "completed"
)

// Place is a named point on the map
type Place struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Trip is a driver-offered ride with a fixed seat capacity
type Trip struct {
	ID              string             `json:"id"`
	DriverID        string             `json:"driverId"`
	DriverName      string             `json:"driverName"`
	DriverAvatarURL string             `json:"driverAvatarUrl"`
	DriverRating    float64            `json:"driverRating"`
	Vehicle         string             `json:"vehicle"`
	VehicleImageURL string             `json:"vehicleImageUrl"`
	Origin          Place              `json:"origin"`
	Destination     Place              `json:"destination"`
	DepartureTime   time.Time          `json:"departureTime"`
	AvailableSeats  int                `json:"availableSeats"`
	TotalSeats      int                `json:"totalSeats"`
	Price           float64            `json:"price"`
	Passengers      []PassengerSummary `json:"passengers"`
	Details         string             `json:"details,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// HasPassenger reports whether the user already holds a seat
func (t *Trip) HasPassenger(userID string) bool {
	for _, p := range t.Passengers {
		if p.ID == userID {
			return true
		}
	}
	return false
}

// IsDriver reports whether the user owns the trip
func (t *Trip) IsDriver(userID string) bool {
	return t.DriverID == userID
}

// SeatsConsistent checks len(passengers) == totalSeats - availableSeats
func (t *Trip) SeatsConsistent() bool {
	return t.AvailableSeats >= 0 &&
		t.AvailableSeats <= t.TotalSeats &&
		len(t.Passengers) == t.TotalSeats-t.AvailableSeats
}

// Status returns upcoming when the trip departs after now
func (t *Trip) Status(now time.Time) TripStatus {
	if t.DepartureTime.After(now) {
		return TripStatusUpcoming
	}
	return TripStatusCompleted
}

// TripInput carries the driver-editable fields of a trip.
// AvailableSeats is only read on creation, where it also sets TotalSeats.
type TripInput struct {
	Vehicle        string    `json:"vehicle"`
	Origin         Place     `json:"origin"`
	Destination    Place     `json:"destination"`
	DepartureTime  time.Time `json:"departureTime"`
	AvailableSeats int       `json:"availableSeats"`
	Price          float64   `json:"price"`
	Details        string    `json:"details,omitempty"`
}

// TripView is a trip rendered with its derived status
type TripView struct {
	Trip
	Status TripStatus `json:"status"`
}

// NewTripView decorates the trip with its status at now
func NewTripView(t Trip, now time.Time) TripView {
	return TripView{Trip: t, Status: t.Status(now)}
}

// SearchQuery filters trips; zero-valued criteria match everything
type SearchQuery struct {
	Origin      string
	Destination string
	Date        string // YYYY-MM-DD
	Near        *Place
	RadiusKm    float64
}
