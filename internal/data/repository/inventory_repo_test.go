package repository

import (
	"testing"

	"bus-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestInventory() InventoryRepository {
	return NewInventoryRepository(zap.NewNop())
}

// seedLinearTrip stores a trip with segments A->B->C on the given date.
func seedLinearTrip(inv InventoryRepository, tripID, date string, capacity int) {
	inv.UpsertTrip(&entity.Trip{
		TripID:       tripID,
		BusID:        "BUS1",
		Date:         date,
		SourceCityID: "A",
		DestCityID:   "C",
		Capacity:     capacity,
		PricingType:  entity.DefaultPricing,
	})
	inv.UpsertSegments(tripID, []*entity.Segment{
		{SegmentID: tripID + "_1", TripID: tripID, Date: date, SourceCityID: "A", DestCityID: "B", Sequence: 1, Capacity: capacity, AvailableSeats: capacity},
		{SegmentID: tripID + "_2", TripID: tripID, Date: date, SourceCityID: "B", DestCityID: "C", Sequence: 2, Capacity: capacity, AvailableSeats: capacity},
	})
}

func TestFindSegmentsForRoute(t *testing.T) {
	inv := newTestInventory()
	seedLinearTrip(inv, "T1", "2026-09-01", 40)

	t.Run("full route", func(t *testing.T) {
		route := inv.FindSegmentsForRoute("T1", "A", "C")
		require.Len(t, route, 2)
		assert.Equal(t, "T1_1", route[0].SegmentID)
		assert.Equal(t, "T1_2", route[1].SegmentID)
	})

	t.Run("sub route", func(t *testing.T) {
		route := inv.FindSegmentsForRoute("T1", "B", "C")
		require.Len(t, route, 1)
		assert.Equal(t, "T1_2", route[0].SegmentID)
	})

	t.Run("reversed direction", func(t *testing.T) {
		assert.Nil(t, inv.FindSegmentsForRoute("T1", "C", "A"))
	})

	t.Run("unknown city", func(t *testing.T) {
		assert.Nil(t, inv.FindSegmentsForRoute("T1", "A", "Z"))
	})

	t.Run("unknown trip", func(t *testing.T) {
		assert.Nil(t, inv.FindSegmentsForRoute("NOPE", "A", "C"))
	})
}

func TestBottleneckSeats(t *testing.T) {
	assert.Equal(t, 0, BottleneckSeats(nil))

	segments := []*entity.Segment{
		{SegmentID: "S1", AvailableSeats: 38},
		{SegmentID: "S2", AvailableSeats: 40},
	}
	assert.Equal(t, 38, BottleneckSeats(segments))
}

func TestDecrementSeats(t *testing.T) {
	inv := newTestInventory()
	seedLinearTrip(inv, "T1", "2026-09-01", 40)

	assert.True(t, inv.DecrementSeats("T1_1", 38))
	assert.Equal(t, 2, inv.FindSegmentsForRoute("T1", "A", "B")[0].AvailableSeats)

	// Short counter: refused without mutation.
	assert.False(t, inv.DecrementSeats("T1_1", 3))
	assert.Equal(t, 2, inv.FindSegmentsForRoute("T1", "A", "B")[0].AvailableSeats)

	assert.False(t, inv.DecrementSeats("MISSING", 1))
}

func TestIncrementSeatsClampsAtCapacity(t *testing.T) {
	inv := newTestInventory()
	seedLinearTrip(inv, "T1", "2026-09-01", 40)

	require.True(t, inv.DecrementSeats("T1_1", 5))
	inv.IncrementSeats("T1_1", 5)
	assert.Equal(t, 40, inv.FindSegmentsForRoute("T1", "A", "B")[0].AvailableSeats)

	// A stray double release must not push the counter past capacity.
	inv.IncrementSeats("T1_1", 5)
	assert.Equal(t, 40, inv.FindSegmentsForRoute("T1", "A", "B")[0].AvailableSeats)
}

func TestSearchTrips(t *testing.T) {
	inv := newTestInventory()
	seedLinearTrip(inv, "T1", "2026-09-01", 40)

	trips := inv.SearchTrips("A", "C", "2026-09-01")
	require.Len(t, trips, 1)
	assert.Equal(t, "T1", trips[0].TripID)

	// Sub-route queries match too.
	require.Len(t, inv.SearchTrips("A", "B", "2026-09-01"), 1)
	require.Len(t, inv.SearchTrips("B", "C", "2026-09-01"), 1)

	// No reversed routes, no wrong dates.
	assert.Empty(t, inv.SearchTrips("C", "A", "2026-09-01"))
	assert.Empty(t, inv.SearchTrips("A", "C", "2026-09-02"))
}

func TestSearchCacheInvalidation(t *testing.T) {
	inv := newTestInventory()
	seedLinearTrip(inv, "T1", "2026-09-01", 40)

	// Prime the cache for every endpoint pair.
	require.Len(t, inv.SearchTrips("A", "C", "2026-09-01"), 1)
	require.Len(t, inv.SearchTrips("A", "B", "2026-09-01"), 1)
	require.Len(t, inv.SearchTrips("B", "C", "2026-09-01"), 1)

	// A new trip on the same corridor must show up in all of them, including
	// the (A, C) pair that no single segment of it spans.
	seedLinearTrip(inv, "T2", "2026-09-01", 50)

	assert.Len(t, inv.SearchTrips("A", "C", "2026-09-01"), 2)
	assert.Len(t, inv.SearchTrips("A", "B", "2026-09-01"), 2)
	assert.Len(t, inv.SearchTrips("B", "C", "2026-09-01"), 2)
}

func TestUpsertSegmentsReplacesOldSet(t *testing.T) {
	inv := newTestInventory()
	seedLinearTrip(inv, "T1", "2026-09-01", 40)
	require.Len(t, inv.SearchTrips("A", "B", "2026-09-01"), 1)

	// Re-route the trip through D instead of B. The cached (A, B) result
	// must not survive even though no new segment touches B.
	inv.UpsertSegments("T1", []*entity.Segment{
		{SegmentID: "T1_1", TripID: "T1", Date: "2026-09-01", SourceCityID: "A", DestCityID: "D", Sequence: 1, Capacity: 40, AvailableSeats: 40},
		{SegmentID: "T1_2", TripID: "T1", Date: "2026-09-01", SourceCityID: "D", DestCityID: "C", Sequence: 2, Capacity: 40, AvailableSeats: 40},
	})

	assert.Empty(t, inv.SearchTrips("A", "B", "2026-09-01"))
	assert.Len(t, inv.SearchTrips("A", "D", "2026-09-01"), 1)
	assert.Len(t, inv.SearchTrips("A", "C", "2026-09-01"), 1)
}

func TestRepositoriesReturnCopies(t *testing.T) {
	inv := newTestInventory()
	seedLinearTrip(inv, "T1", "2026-09-01", 40)

	route := inv.FindSegmentsForRoute("T1", "A", "C")
	route[0].AvailableSeats = 0

	fresh := inv.FindSegmentsForRoute("T1", "A", "C")
	assert.Equal(t, 40, fresh[0].AvailableSeats)

	trip, ok := inv.FindTrip("T1")
	require.True(t, ok)
	trip.Capacity = 1
	again, _ := inv.FindTrip("T1")
	assert.Equal(t, 40, again.Capacity)
}
