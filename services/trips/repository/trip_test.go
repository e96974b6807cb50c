package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/piresc/hopon/internal/pkg/blobstore"
	"github.com/piresc/hopon/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *models.Config {
	return &models.Config{
		Storage: models.StorageConfig{MaxRetries: 4, RetryBaseDelay: time.Millisecond},
	}
}

func newTestRepo(t *testing.T) (*TripRepo, blobstore.Store) {
	t.Helper()
	store := blobstore.NewMemoryStore()
	repo := NewTripRepo(store, testConfig())
	require.NoError(t, repo.Init(context.Background()))
	return repo, store
}

func sampleTrip(id string) *models.Trip {
	return &models.Trip{
		ID:             id,
		DriverID:       "driver-1",
		DriverName:     "Dina",
		Vehicle:        "Toyota Avanza",
		Origin:         models.Place{Name: "Jakarta", Lat: -6.2, Lng: 106.8},
		Destination:    models.Place{Name: "Bandung", Lat: -6.9, Lng: 107.6},
		DepartureTime:  time.Date(2026, 7, 4, 8, 30, 0, 0, time.UTC),
		AvailableSeats: 3,
		TotalSeats:     3,
		Price:          50000,
		Passengers:     []models.PassengerSummary{},
	}
}

func TestTripRepo_CreateGetList(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	require.NoError(t, repo.CreateTrip(ctx, sampleTrip("t1")))
	require.NoError(t, repo.CreateTrip(ctx, sampleTrip("t2")))

	trip, err := repo.GetTrip(ctx, "t2")
	require.NoError(t, err)
	assert.Equal(t, sampleTrip("t2"), trip)

	_, err = repo.GetTrip(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrTripNotFound)

	all, err := repo.ListTrips(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "t1", all[0].ID)
	assert.Equal(t, "t2", all[1].ID)
}

func TestTripRepo_UpdateTrip(t *testing.T) {
	ctx := context.Background()
	repo, store := newTestRepo(t)
	require.NoError(t, repo.CreateTrip(ctx, sampleTrip("t1")))

	updated, err := repo.UpdateTrip(ctx, "t1", func(trip *models.Trip) error {
		trip.Price = 60000
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 60000.0, updated.Price)

	stored, err := repo.GetTrip(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 60000.0, stored.Price)

	t.Run("missing trip is a no-op", func(t *testing.T) {
		before, err := store.Get(ctx, "hopon-trips")
		require.NoError(t, err)

		called := false
		trip, err := repo.UpdateTrip(ctx, "missing", func(trip *models.Trip) error {
			called = true
			return nil
		})
		require.NoError(t, err)
		assert.Nil(t, trip)
		assert.False(t, called)

		after, err := store.Get(ctx, "hopon-trips")
		require.NoError(t, err)
		assert.Equal(t, before.Version, after.Version)
	})

	t.Run("rejection writes nothing", func(t *testing.T) {
		before, err := store.Get(ctx, "hopon-trips")
		require.NoError(t, err)

		trip, err := repo.UpdateTrip(ctx, "t1", func(trip *models.Trip) error {
			trip.Price = 1
			return models.ErrNotTripOwner
		})
		assert.Equal(t, models.ErrNotTripOwner, err)
		assert.Nil(t, trip)

		after, err := store.Get(ctx, "hopon-trips")
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("apply cannot alias the stored passengers", func(t *testing.T) {
		_, err := repo.UpdateTrip(ctx, "t1", func(trip *models.Trip) error {
			trip.Passengers = append(trip.Passengers, models.PassengerSummary{ID: "p1"})
			trip.AvailableSeats--
			return nil
		})
		require.NoError(t, err)

		stored, err := repo.GetTrip(ctx, "t1")
		require.NoError(t, err)
		assert.Len(t, stored.Passengers, 1)
		assert.True(t, stored.SeatsConsistent())
	})
}

func TestTripRepo_DeleteTrip(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)
	for _, id := range []string{"t1", "t2", "t3"} {
		require.NoError(t, repo.CreateTrip(ctx, sampleTrip(id)))
	}

	_, err := repo.DeleteTrip(ctx, "t2", func(trip *models.Trip) error {
		return models.ErrNotTripOwner
	})
	assert.ErrorIs(t, err, models.ErrNotTripOwner)

	deleted, err := repo.DeleteTrip(ctx, "t2", func(trip *models.Trip) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, "t2", deleted.ID)

	deleted, err = repo.DeleteTrip(ctx, "t2", func(trip *models.Trip) error { return nil })
	require.NoError(t, err)
	assert.Nil(t, deleted)

	all, err := repo.ListTrips(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "t1", all[0].ID)
	assert.Equal(t, "t3", all[1].ID)
}

func TestTripRepo_CorruptBlobReadsEmpty(t *testing.T) {
	ctx := context.Background()
	repo, store := newTestRepo(t)

	_, err := store.Set(ctx, "hopon-trips", []byte("{not json"))
	require.NoError(t, err)

	all, err := repo.ListTrips(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, repo.CreateTrip(ctx, sampleTrip("t1")))
	all, err = repo.ListTrips(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

type failingStore struct {
	blobstore.Store
}

func (failingStore) Get(ctx context.Context, key string) (blobstore.Blob, error) {
	return blobstore.Blob{}, errors.New("connection refused")
}

func TestTripRepo_StorageFailure(t *testing.T) {
	repo := NewTripRepo(failingStore{}, testConfig())

	_, err := repo.ListTrips(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load hopon-trips")
	assert.False(t, models.IsBusinessError(err))

	_, err = repo.UpdateTrip(context.Background(), "t1", func(trip *models.Trip) error { return nil })
	assert.Contains(t, err.Error(), "failed to update trip")
}
