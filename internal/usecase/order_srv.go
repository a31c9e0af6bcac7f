package usecase

import (
	"context"
	"fmt"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/response"
	"bus-booking/internal/pricing"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

// OrderService is the reservation core: multi-segment atomic seat holds under
// per-trip exclusion, one-way booking state transitions, and TTL expiry.
type OrderService interface {
	CreateBooking(ctx context.Context, userID, tripID, sourceCityID, destCityID string, seats int) (*entity.Booking, error)
	ConfirmBooking(ctx context.Context, bookingID, paymentID string) error
	ReleaseBooking(ctx context.Context, bookingID string) error
	ExpireReservedBookings(ctx context.Context)
	GetAllBookings(ctx context.Context, userID string) ([]response.BookingView, error)
}

type orderService struct {
	repo       *repository.Repository
	pricing    *pricing.Service
	bookingTTL time.Duration
	log        *zap.Logger
}

func NewOrderService(repo *repository.Repository, pricingSvc *pricing.Service, config *utils.Config, log *zap.Logger) OrderService {
	return &orderService{
		repo:       repo,
		pricing:    pricingSvc,
		bookingTTL: time.Duration(config.Booking.TTLMinutes) * time.Minute,
		log:        log.With(zap.String("service", "order")),
	}
}

func tripLockKey(tripID string) string {
	return "trip:" + tripID
}

func (s *orderService) CreateBooking(ctx context.Context, userID, tripID, sourceCityID, destCityID string, seats int) (*entity.Booking, error) {
	lockKey := tripLockKey(tripID)

	// Single non-blocking attempt; contention fails fast instead of queuing.
	if !s.repo.Lock.TryLock(lockKey) {
		return nil, fmt.Errorf("create booking for trip %s: %w", tripID, ErrLockBusy)
	}
	defer s.repo.Lock.Unlock(lockKey)

	segments := s.repo.Inventory.FindSegmentsForRoute(tripID, sourceCityID, destCityID)
	if len(segments) == 0 {
		return nil, fmt.Errorf("trip %s from %s to %s: %w", tripID, sourceCityID, destCityID, ErrRouteNotFound)
	}

	available := repository.BottleneckSeats(segments)
	if available < seats {
		return nil, fmt.Errorf("trip %s has %d seats left, requested %d: %w", tripID, available, seats, ErrInsufficientSeats)
	}

	pricePaise, err := s.quotePrice(tripID, sourceCityID, destCityID, seats, available)
	if err != nil {
		return nil, err
	}

	// All-or-nothing seat take. Under the trip lock a mid-route failure
	// should be unreachable, but a failed decrement still rolls back the
	// already-taken prefix before surfacing.
	for i, segment := range segments {
		if !s.repo.Inventory.DecrementSeats(segment.SegmentID, seats) {
			for j := 0; j < i; j++ {
				s.repo.Inventory.IncrementSeats(segments[j].SegmentID, seats)
			}
			s.log.Error("Seat decrement failed mid-reservation",
				zap.String("trip_id", tripID),
				zap.String("segment_id", segment.SegmentID),
			)
			return nil, fmt.Errorf("reserve segment %s: %w", segment.SegmentID, ErrReservationConflict)
		}
	}

	now := time.Now()
	booking := &entity.Booking{
		BookingID:    utils.GenerateUUIDString(),
		UserID:       userID,
		TripID:       tripID,
		SourceCityID: sourceCityID,
		DestCityID:   destCityID,
		Seats:        seats,
		Status:       entity.BookingStatusReserved,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.bookingTTL),
		PricePaise:   pricePaise,
	}
	s.repo.Booking.Save(booking)

	s.log.Info("Booking created",
		zap.String("booking_id", booking.BookingID),
		zap.String("trip_id", tripID),
		zap.String("user_id", userID),
		zap.Int("seats", seats),
		zap.Int64("price_paise", pricePaise),
		zap.Time("expires_at", booking.ExpiresAt),
	)

	return booking, nil
}

func (s *orderService) ConfirmBooking(ctx context.Context, bookingID, paymentID string) error {
	if _, ok := s.repo.Booking.FindByID(bookingID); !ok {
		return fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	// Compare-and-set in the repository: a second confirm finds the
	// booking already CONFIRMED and fails without re-applying.
	if !s.repo.Booking.Confirm(bookingID, paymentID) {
		return fmt.Errorf("confirm booking %s: %w", bookingID, ErrInvalidBookingState)
	}

	s.log.Info("Booking confirmed",
		zap.String("booking_id", bookingID),
		zap.String("payment_id", paymentID),
	)
	return nil
}

func (s *orderService) ReleaseBooking(ctx context.Context, bookingID string) error {
	booking, ok := s.repo.Booking.FindByID(bookingID)
	if !ok {
		return fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	// Seat restoration runs under the same per-trip lock as reservation.
	lockKey := tripLockKey(booking.TripID)
	if !s.repo.Lock.TryLock(lockKey) {
		return fmt.Errorf("release booking %s: %w", bookingID, ErrLockBusy)
	}
	defer s.repo.Lock.Unlock(lockKey)

	// No-op on anything but RESERVED; a second release of the same
	// booking must not restore seats twice.
	if !s.repo.Booking.Transition(bookingID, entity.BookingStatusReserved, entity.BookingStatusExpired) {
		return nil
	}

	// Segments are immutable, so re-resolving the route yields the same
	// set that was decremented at creation.
	segments := s.repo.Inventory.FindSegmentsForRoute(booking.TripID, booking.SourceCityID, booking.DestCityID)
	for _, segment := range segments {
		s.repo.Inventory.IncrementSeats(segment.SegmentID, booking.Seats)
	}

	s.log.Info("Booking released",
		zap.String("booking_id", bookingID),
		zap.String("trip_id", booking.TripID),
		zap.Int("seats", booking.Seats),
		zap.Int("segments", len(segments)),
	)
	return nil
}

// ExpireReservedBookings releases every RESERVED booking past its deadline.
// A failure on one booking is logged and skipped; the next sweep retries it.
func (s *orderService) ExpireReservedBookings(ctx context.Context) {
	expired := s.repo.Booking.FindExpiredReservations(time.Now())

	released := 0
	for _, booking := range expired {
		if err := s.ReleaseBooking(ctx, booking.BookingID); err != nil {
			s.log.Warn("Failed to release expired booking, will retry next sweep",
				zap.String("booking_id", booking.BookingID),
				zap.Error(err),
			)
			continue
		}
		released++
	}

	if len(expired) > 0 {
		deleted := s.repo.Booking.DeleteExpired()
		s.log.Info("Expiry sweep finished",
			zap.Int("found", len(expired)),
			zap.Int("released", released),
			zap.Int("deleted", deleted),
		)
	}
}

func (s *orderService) GetAllBookings(ctx context.Context, userID string) ([]response.BookingView, error) {
	bookings := s.repo.Booking.FindByUserAndStatus(userID, entity.BookingStatusConfirmed)

	views := make([]response.BookingView, 0, len(bookings))
	for _, booking := range bookings {
		view, err := s.buildBookingView(booking)
		if err != nil {
			s.log.Error("Skipping booking in listing",
				zap.String("booking_id", booking.BookingID),
				zap.Error(err),
			)
			continue
		}
		views = append(views, *view)
	}

	return views, nil
}

func (s *orderService) quotePrice(tripID, sourceCityID, destCityID string, seats, availableSeats int) (int64, error) {
	trip, ok := s.repo.Inventory.FindTrip(tripID)
	if !ok {
		return 0, fmt.Errorf("trip %s: %w", tripID, ErrNotFound)
	}
	sourceCity, ok := s.repo.City.FindByID(sourceCityID)
	if !ok {
		return 0, fmt.Errorf("source city %s: %w", sourceCityID, ErrNotFound)
	}
	destCity, ok := s.repo.City.FindByID(destCityID)
	if !ok {
		return 0, fmt.Errorf("destination city %s: %w", destCityID, ErrNotFound)
	}

	return s.pricing.CalculatePrice(trip, sourceCity, destCity, seats, availableSeats, trip.Capacity), nil
}

func (s *orderService) buildBookingView(booking *entity.Booking) (*response.BookingView, error) {
	trip, ok := s.repo.Inventory.FindTrip(booking.TripID)
	if !ok {
		return nil, fmt.Errorf("trip %s: %w", booking.TripID, ErrNotFound)
	}
	sourceCity, ok := s.repo.City.FindByID(booking.SourceCityID)
	if !ok {
		return nil, fmt.Errorf("source city %s: %w", booking.SourceCityID, ErrNotFound)
	}
	destCity, ok := s.repo.City.FindByID(booking.DestCityID)
	if !ok {
		return nil, fmt.Errorf("destination city %s: %w", booking.DestCityID, ErrNotFound)
	}

	var sourceTime, destTime string
	segments := s.repo.Inventory.FindSegmentsForRoute(booking.TripID, booking.SourceCityID, booking.DestCityID)
	if len(segments) > 0 {
		sourceTime = segments[0].SourceTime
		destTime = segments[len(segments)-1].DestTime
	}

	return &response.BookingView{
		BookingID:    booking.BookingID,
		Status:       booking.Status,
		TripID:       booking.TripID,
		Date:         trip.Date,
		Source:       sourceCity.Name,
		Dest:         destCity.Name,
		SourceCityID: booking.SourceCityID,
		DestCityID:   booking.DestCityID,
		SourceTime:   sourceTime,
		DestTime:     destTime,
		Seats:        booking.Seats,
		CreatedAt:    booking.CreatedAt,
		PricePaise:   booking.PricePaise,
	}, nil
}
