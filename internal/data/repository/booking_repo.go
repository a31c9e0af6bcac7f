package repository

import (
	"sync"
	"time"

	"bus-booking/internal/data/entity"

	"go.uber.org/zap"
)

type BookingRepository interface {
	Save(booking *entity.Booking)
	FindByID(bookingID string) (*entity.Booking, bool)
	FindByUserAndStatus(userID string, status entity.BookingStatus) []*entity.Booking

	// Confirm moves a RESERVED booking to CONFIRMED with its payment ID.
	// It returns false without mutating when the booking is missing or not
	// RESERVED, so a second confirm never re-applies.
	Confirm(bookingID, paymentID string) bool

	// Transition is a compare-and-set status change.
	Transition(bookingID string, from, to entity.BookingStatus) bool

	FindExpiredReservations(now time.Time) []*entity.Booking

	// DeleteExpired removes terminal EXPIRED records and reports how many.
	DeleteExpired() int
}

type bookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*entity.Booking
	log      *zap.Logger
}

func NewBookingRepository(log *zap.Logger) BookingRepository {
	return &bookingRepository{
		bookings: make(map[string]*entity.Booking),
		log:      log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Save(booking *entity.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *booking
	r.bookings[booking.BookingID] = &copied
}

func (r *bookingRepository) FindByID(bookingID string) (*entity.Booking, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[bookingID]
	if !ok {
		return nil, false
	}
	copied := *booking
	return &copied, true
}

func (r *bookingRepository) FindByUserAndStatus(userID string, status entity.BookingStatus) []*entity.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.Booking
	for _, booking := range r.bookings {
		if booking.UserID == userID && booking.Status == status {
			copied := *booking
			out = append(out, &copied)
		}
	}
	return out
}

func (r *bookingRepository) Confirm(bookingID, paymentID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[bookingID]
	if !ok || booking.Status != entity.BookingStatusReserved {
		return false
	}
	booking.Status = entity.BookingStatusConfirmed
	booking.PaymentID = paymentID
	return true
}

func (r *bookingRepository) Transition(bookingID string, from, to entity.BookingStatus) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[bookingID]
	if !ok || booking.Status != from {
		return false
	}
	booking.Status = to
	return true
}

func (r *bookingRepository) FindExpiredReservations(now time.Time) []*entity.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.Booking
	for _, booking := range r.bookings {
		if booking.Status == entity.BookingStatusReserved && booking.ExpiresAt.Before(now) {
			copied := *booking
			out = append(out, &copied)
		}
	}
	return out
}

func (r *bookingRepository) DeleteExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, booking := range r.bookings {
		if booking.Status == entity.BookingStatusExpired {
			delete(r.bookings, id)
			deleted++
		}
	}
	if deleted > 0 {
		r.log.Debug("Swept expired bookings", zap.Int("deleted", deleted))
	}
	return deleted
}
