package scheduler

import (
	"context"
	"time"

	"bus-booking/internal/data/repository"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

// Scheduler runs the two background sweeps: releasing RESERVED bookings past
// their TTL and purging expired idempotency records. Ticks are independent of
// request traffic; a failed tick is logged and retried on the next one.
type Scheduler struct {
	orders      usecase.OrderService
	idempotency repository.IdempotencyRepository

	expiryInterval  time.Duration
	cleanupInterval time.Duration

	log *zap.Logger
}

func New(orders usecase.OrderService, idempotency repository.IdempotencyRepository, config *utils.Config, log *zap.Logger) *Scheduler {
	return &Scheduler{
		orders:          orders,
		idempotency:     idempotency,
		expiryInterval:  time.Duration(config.Booking.ExpirySweepSeconds) * time.Second,
		cleanupInterval: time.Duration(config.Idempotency.CleanupMinutes) * time.Minute,
		log:             log.With(zap.String("component", "scheduler")),
	}
}

// Start launches both sweep loops. They stop when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.runExpirySweep(ctx)
	go s.runIdempotencyCleanup(ctx)

	s.log.Info("Scheduler started",
		zap.Duration("expiry_interval", s.expiryInterval),
		zap.Duration("cleanup_interval", s.cleanupInterval),
	)
}

func (s *Scheduler) runExpirySweep(ctx context.Context) {
	ticker := time.NewTicker(s.expiryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Expiry sweep stopped")
			return
		case <-ticker.C:
			s.orders.ExpireReservedBookings(ctx)
		}
	}
}

func (s *Scheduler) runIdempotencyCleanup(ctx context.Context) {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Idempotency cleanup stopped")
			return
		case <-ticker.C:
			if removed := s.idempotency.RemoveExpired(); removed > 0 {
				s.log.Debug("Purged idempotency records", zap.Int("removed", removed))
			}
		}
	}
}
