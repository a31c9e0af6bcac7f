package usecase

import (
	"context"
	"testing"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func (e *testEnv) newInventoryService() InventoryService {
	e.repo.Bus.Save(&entity.Bus{BusID: "BUS1", OwnerID: "OWNER1", Operator: "Test Travels"})
	return NewInventoryService(e.repo, pricing.NewService(), zap.NewNop())
}

func TestSearchReturnsLiveAvailability(t *testing.T) {
	env := newTestEnv(t)
	env.addTrip("T1", 40)
	inventory := env.newInventoryService()
	ctx := context.Background()

	items, err := inventory.Search(ctx, "A", "C", "2026-09-01")
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "T1", item.TripID)
	assert.Equal(t, "Alpha", item.Source)
	assert.Equal(t, "Gamma", item.Dest)
	assert.Equal(t, "08:00", item.SourceTime)
	assert.Equal(t, "14:00", item.DestTime)
	assert.Equal(t, 40, item.AvailableSeats)
	assert.Equal(t, "Test Travels", item.Bus.Operator)
	assert.Positive(t, item.PricePaise)

	// Seat counts bypass the search cache: a booking between two identical
	// searches shows up in the second result.
	_, err = env.orders.CreateBooking(ctx, "U1", "T1", "A", "C", 3)
	require.NoError(t, err)

	items, err = inventory.Search(ctx, "A", "C", "2026-09-01")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 37, items[0].AvailableSeats)
}

func TestSearchUnknownCity(t *testing.T) {
	env := newTestEnv(t)
	env.addTrip("T1", 40)
	inventory := env.newInventoryService()
	ctx := context.Background()

	_, err := inventory.Search(ctx, "Z", "C", "2026-09-01")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = inventory.Search(ctx, "A", "Z", "2026-09-01")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchNoTripsIsEmptyNotError(t *testing.T) {
	env := newTestEnv(t)
	inventory := env.newInventoryService()
	ctx := context.Background()

	items, err := inventory.Search(ctx, "A", "C", "2026-09-01")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListCities(t *testing.T) {
	env := newTestEnv(t)
	inventory := env.newInventoryService()
	ctx := context.Background()

	cities := inventory.ListCities(ctx)
	require.Len(t, cities, 3)

	// Sorted by name.
	assert.Equal(t, "Alpha", cities[0].Name)
	assert.Equal(t, "Beta", cities[1].Name)
	assert.Equal(t, "Gamma", cities[2].Name)
}

func TestGetTripDetails(t *testing.T) {
	env := newTestEnv(t)
	env.addTrip("T1", 40)
	inventory := env.newInventoryService()
	ctx := context.Background()

	item, err := inventory.GetTripDetails(ctx, "T1", "B", "C")
	require.NoError(t, err)
	assert.Equal(t, "Beta", item.Source)
	assert.Equal(t, "Gamma", item.Dest)
	assert.Equal(t, "11:00", item.SourceTime)
	assert.Equal(t, 40, item.AvailableSeats)

	_, err = inventory.GetTripDetails(ctx, "MISSING", "A", "C")
	assert.ErrorIs(t, err, ErrNotFound)
}
