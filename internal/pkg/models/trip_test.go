package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrip_Roles(t *testing.T) {
	trip := Trip{
		DriverID:   "driver",
		Passengers: []PassengerSummary{{ID: "rider"}},
	}

	assert.True(t, trip.IsDriver("driver"))
	assert.False(t, trip.IsDriver("rider"))
	assert.True(t, trip.HasPassenger("rider"))
	assert.False(t, trip.HasPassenger("driver"))
}

func TestTrip_SeatsConsistent(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		available  int
		passengers int
		want       bool
	}{
		{"empty trip", 3, 3, 0, true},
		{"one booked", 3, 2, 1, true},
		{"full", 3, 0, 3, true},
		{"passenger missing", 3, 1, 1, false},
		{"negative seats", 3, -1, 4, false},
		{"more available than total", 3, 4, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip := Trip{
				TotalSeats:     tt.total,
				AvailableSeats: tt.available,
				Passengers:     make([]PassengerSummary, tt.passengers),
			}
			assert.Equal(t, tt.want, trip.SeatsConsistent())
		})
	}
}

func TestTrip_Status(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	future := Trip{DepartureTime: now.Add(time.Hour)}
	past := Trip{DepartureTime: now.Add(-time.Hour)}
	exact := Trip{DepartureTime: now}

	assert.Equal(t, TripStatusUpcoming, future.Status(now))
	assert.Equal(t, TripStatusCompleted, past.Status(now))
	assert.Equal(t, TripStatusCompleted, exact.Status(now))

	view := NewTripView(future, now)
	data, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"upcoming"`)
}

func TestTrip_DepartureTimeRoundTrip(t *testing.T) {
	departure := time.Date(2026, 7, 4, 8, 30, 0, 0, time.FixedZone("WIB", 7*60*60))
	trip := Trip{ID: "t1", DepartureTime: departure}

	data, err := json.Marshal([]Trip{trip})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"departureTime":"2026-07-04T08:30:00+07:00"`)

	var loaded []Trip
	require.NoError(t, json.Unmarshal(data, &loaded))
	require.Len(t, loaded, 1)
	assert.True(t, departure.Equal(loaded[0].DepartureTime))
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, Session{ExpiresAt: now.Add(time.Minute)}.Expired(now))
	assert.True(t, Session{ExpiresAt: now}.Expired(now))
	assert.False(t, Session{}.Expired(now))
}

func TestUser_PublicAndSummary(t *testing.T) {
	u := User{ID: "u1", Name: "Alice", AvatarURL: "/a.png", PasswordHash: "hash"}

	assert.Empty(t, u.Public().PasswordHash)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.Equal(t, PassengerSummary{ID: "u1", Name: "Alice", AvatarURL: "/a.png"}, u.Summary())
}
