package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/pricing"
	"bus-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	repo   *repository.Repository
	orders OrderService
	config *utils.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	config := &utils.Config{
		Booking:     utils.BookingConfig{TTLMinutes: 5, ExpirySweepSeconds: 5},
		Idempotency: utils.IdempotencyConfig{TTLHours: 24, CleanupMinutes: 5},
		Payment:     utils.PaymentConfig{SuccessRate: 1.0},
		Session:     utils.SessionConfig{ExpiryHours: 24},
	}

	log := zap.NewNop()
	repo := repository.NewRepository(log)

	for _, city := range []*entity.City{
		{CityID: "A", Name: "Alpha", Latitude: 0, Longitude: 0},
		{CityID: "B", Name: "Beta", Latitude: 0.225, Longitude: 0},
		{CityID: "C", Name: "Gamma", Latitude: 0.45, Longitude: 0},
	} {
		repo.City.Save(city)
	}

	return &testEnv{
		repo:   repo,
		orders: NewOrderService(repo, pricing.NewService(), config, log),
		config: config,
	}
}

// addTrip stores a two-segment trip A->B->C with the given capacity.
func (e *testEnv) addTrip(tripID string, capacity int) {
	e.repo.Inventory.UpsertTrip(&entity.Trip{
		TripID:       tripID,
		BusID:        "BUS1",
		Date:         "2026-09-01",
		SourceCityID: "A",
		DestCityID:   "C",
		Capacity:     capacity,
		PricingType:  entity.PricingSlab,
	})
	e.repo.Inventory.UpsertSegments(tripID, []*entity.Segment{
		{SegmentID: tripID + "_1", TripID: tripID, Date: "2026-09-01", SourceCityID: "A", DestCityID: "B", SourceTime: "08:00", DestTime: "11:00", Sequence: 1, Capacity: capacity, AvailableSeats: capacity},
		{SegmentID: tripID + "_2", TripID: tripID, Date: "2026-09-01", SourceCityID: "B", DestCityID: "C", SourceTime: "11:00", DestTime: "14:00", Sequence: 2, Capacity: capacity, AvailableSeats: capacity},
	})
}

func (e *testEnv) routeSeats(tripID, source, dest string) []int {
	segments := e.repo.Inventory.FindSegmentsForRoute(tripID, source, dest)
	seats := make([]int, 0, len(segments))
	for _, seg := range segments {
		seats = append(seats, seg.AvailableSeats)
	}
	return seats
}

func TestCreateBookingReservesAllSegments(t *testing.T) {
	env := newTestEnv(t)
	env.addTrip("T1", 40)
	ctx := context.Background()

	booking, err := env.orders.CreateBooking(ctx, "U1", "T1", "A", "C", 3)
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusReserved, booking.Status)
	assert.Equal(t, 3, booking.Seats)
	assert.Positive(t, booking.PricePaise)
	assert.True(t, booking.ExpiresAt.After(time.Now()))
	assert.Equal(t, []int{37, 37}, env.routeSeats("T1", "A", "C"))
}

func TestCreateBookingBottleneckAcrossSegments(t *testing.T) {
	env := newTestEnv(t)
	env.addTrip("T1", 40)
	ctx := context.Background()

	// A hold on the first leg only makes it the bottleneck: 38 vs 40.
	_, err := env.orders.CreateBooking(ctx, "U1", "T1", "A", "B", 2)
	require.NoError(t, err)
	require.Equal(t, []int{38, 40}, env.routeSeats("T1", "A", "C"))

	// The full route can seat at most 38.
	_, err = env.orders.CreateBooking(ctx, "U2", "T1", "A", "C", 38)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, env.routeSeats("T1", "A", "C"))

	_, err = env.orders.CreateBooking(ctx, "U3", "T1", "A", "C", 1)
	assert.ErrorIs(t, err, ErrInsufficientSeats)
}

func TestCreateBookingRouteNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.addTrip("T1", 40)
	ctx := context.Background()

	_, err := env.orders.CreateBooking(ctx, "U1", "T1", "C", "A", 1)
	assert.ErrorIs(t, err, ErrRouteNotFound)

	_, err = env.orders.CreateBooking(ctx, "U1", "MISSING", "A", "C", 1)
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestCreateBookingLockBusy(t *testing.T) {
	env := newTestEnv(t)
	env.addTrip("T1", 40)
	ctx := context.Background()

	require.True(t, env.repo.Lock.TryLock("trip:T1"))
	defer env.repo.Lock.Unlock("trip:T1")

	_, err := env.orders.CreateBooking(ctx, "U1", "T1", "A", "C", 1)
	assert.ErrorIs(t, err, ErrLockBusy)

	// Other trips are unaffected.
	env.addTrip("T2", 40)
	_, err = env.orders.CreateBooking(ctx, "U1", "T2", "A", "C", 1)
	assert.NoError(t, err)
}

func TestConfirmBooking(t *testing.T) {
	env := newTestEnv(t)
	env.addTrip("T1", 40)
	ctx := context.Background()

	booking, err := env.orders.CreateBooking(ctx, "U1", "T1", "A", "C", 2)
	require.NoError(t, err)

	require.NoError(t, env.orders.ConfirmBooking(ctx, booking.BookingID, "PAY1"))

	stored, ok := env.repo.Booking.FindByID(booking.BookingID)
	require.True(t, ok)
	assert.Equal(t, entity.BookingStatusConfirmed, stored.Status)
	assert.Equal(t, "PAY1", stored.PaymentID)

	// Confirm is one-way; a replay fails instead of re-applying.
	err = env.orders.ConfirmBooking(ctx, booking.BookingID, "PAY2")
	assert.ErrorIs(t, err, ErrInvalidBookingState)

	err = env.orders.ConfirmBooking(ctx, "MISSING", "PAY1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReleaseBookingRestoresSeats(t *testing.T) {
	env := newTestEnv(t)
	env.addTrip("T1", 40)
	ctx := context.Background()

	booking, err := env.orders.CreateBooking(ctx, "U1", "T1", "A", "C", 5)
	require.NoError(t, err)
	require.Equal(t, []int{35, 35}, env.routeSeats("T1", "A", "C"))

	require.NoError(t, env.orders.ReleaseBooking(ctx, booking.BookingID))
	assert.Equal(t, []int{40, 40}, env.routeSeats("T1", "A", "C"))

	// A second release is a no-op, never a double restore.
	require.NoError(t, env.orders.ReleaseBooking(ctx, booking.BookingID))
	assert.Equal(t, []int{40, 40}, env.routeSeats("T1", "A", "C"))
}

func TestReleaseConfirmedBookingIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	env.addTrip("T1", 40)
	ctx := context.Background()

	booking, err := env.orders.CreateBooking(ctx, "U1", "T1", "A", "C", 5)
	require.NoError(t, err)
	require.NoError(t, env.orders.ConfirmBooking(ctx, booking.BookingID, "PAY1"))

	// Confirmed seats stay sold.
	require.NoError(t, env.orders.ReleaseBooking(ctx, booking.BookingID))
	assert.Equal(t, []int{35, 35}, env.routeSeats("T1", "A", "C"))
}

func TestConcurrentBookingsNeverOversell(t *testing.T) {
	env := newTestEnv(t)
	env.addTrip("T1", 40)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	booked := 0

	// Far more demand than supply. Contended attempts fail fast with
	// ErrLockBusy, which is fine; what matters is the seat ledger.
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.orders.CreateBooking(ctx, "U1", "T1", "A", "C", 1)
			if err == nil {
				mu.Lock()
				booked++
				mu.Unlock()
				return
			}
			if !errors.Is(err, ErrLockBusy) && !errors.Is(err, ErrInsufficientSeats) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, booked, 40)
	assert.Equal(t, []int{40 - booked, 40 - booked}, env.routeSeats("T1", "A", "C"))
}

func TestExpireReservedBookings(t *testing.T) {
	env := newTestEnv(t)
	env.addTrip("T1", 40)
	ctx := context.Background()

	// Zero TTL makes every reservation immediately sweepable.
	env.config.Booking.TTLMinutes = 0
	orders := NewOrderService(env.repo, pricing.NewService(), env.config, zap.NewNop())

	stale, err := orders.CreateBooking(ctx, "U1", "T1", "A", "C", 4)
	require.NoError(t, err)

	fresh, err := env.orders.CreateBooking(ctx, "U2", "T1", "B", "C", 2)
	require.NoError(t, err)
	require.Equal(t, []int{36, 34}, env.routeSeats("T1", "A", "C"))

	time.Sleep(10 * time.Millisecond)
	orders.ExpireReservedBookings(ctx)

	// The stale hold is released and its record swept away.
	_, ok := env.repo.Booking.FindByID(stale.BookingID)
	assert.False(t, ok)
	assert.Equal(t, []int{40, 38}, env.routeSeats("T1", "A", "C"))

	// The unexpired one survives untouched.
	kept, ok := env.repo.Booking.FindByID(fresh.BookingID)
	require.True(t, ok)
	assert.Equal(t, entity.BookingStatusReserved, kept.Status)
}

func TestGetAllBookingsListsConfirmedOnly(t *testing.T) {
	env := newTestEnv(t)
	env.addTrip("T1", 40)
	ctx := context.Background()

	confirmed, err := env.orders.CreateBooking(ctx, "U1", "T1", "A", "C", 2)
	require.NoError(t, err)
	require.NoError(t, env.orders.ConfirmBooking(ctx, confirmed.BookingID, "PAY1"))

	_, err = env.orders.CreateBooking(ctx, "U1", "T1", "A", "B", 1)
	require.NoError(t, err)

	_, err = env.orders.CreateBooking(ctx, "U2", "T1", "B", "C", 1)
	require.NoError(t, err)

	views, err := env.orders.GetAllBookings(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	assert.Equal(t, confirmed.BookingID, view.BookingID)
	assert.Equal(t, "Alpha", view.Source)
	assert.Equal(t, "Gamma", view.Dest)
	assert.Equal(t, "08:00", view.SourceTime)
	assert.Equal(t, "14:00", view.DestTime)
	assert.Equal(t, confirmed.PricePaise, view.PricePaise)
}
