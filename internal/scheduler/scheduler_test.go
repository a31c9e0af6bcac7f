package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/response"
	"bus-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubOrders counts expiry sweeps; the other operations are never reached
// from the scheduler.
type stubOrders struct {
	sweeps atomic.Int64
}

func (s *stubOrders) CreateBooking(ctx context.Context, userID, tripID, sourceCityID, destCityID string, seats int) (*entity.Booking, error) {
	return nil, nil
}
func (s *stubOrders) ConfirmBooking(ctx context.Context, bookingID, paymentID string) error {
	return nil
}
func (s *stubOrders) ReleaseBooking(ctx context.Context, bookingID string) error { return nil }
func (s *stubOrders) ExpireReservedBookings(ctx context.Context)                 { s.sweeps.Add(1) }
func (s *stubOrders) GetAllBookings(ctx context.Context, userID string) ([]response.BookingView, error) {
	return nil, nil
}

func TestSchedulerRunsExpirySweeps(t *testing.T) {
	orders := &stubOrders{}
	config := &utils.Config{
		Booking:     utils.BookingConfig{ExpirySweepSeconds: 1},
		Idempotency: utils.IdempotencyConfig{CleanupMinutes: 60},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	New(orders, repository.NewIdempotencyRepository(), config, zap.NewNop()).Start(ctx)

	require.Eventually(t, func() bool {
		return orders.sweeps.Load() >= 2
	}, 5*time.Second, 50*time.Millisecond)
}

func TestSchedulerStopsOnCancel(t *testing.T) {
	orders := &stubOrders{}
	config := &utils.Config{
		Booking:     utils.BookingConfig{ExpirySweepSeconds: 1},
		Idempotency: utils.IdempotencyConfig{CleanupMinutes: 60},
	}

	ctx, cancel := context.WithCancel(context.Background())
	New(orders, repository.NewIdempotencyRepository(), config, zap.NewNop()).Start(ctx)
	cancel()

	// Give the loops a moment to observe cancellation, then confirm no
	// further ticks land.
	time.Sleep(100 * time.Millisecond)
	before := orders.sweeps.Load()
	time.Sleep(1500 * time.Millisecond)
	assert.Equal(t, before, orders.sweeps.Load())
}
