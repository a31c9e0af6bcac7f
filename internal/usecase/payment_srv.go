package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

// PaymentService simulates the external gateway. A finished payment calls
// back into the order service: success confirms the booking, failure releases
// it through the same path expiry uses.
type PaymentService interface {
	InitiatePayment(ctx context.Context, bookingID, userID, method string) (*entity.Payment, error)
	GetPaymentForBooking(ctx context.Context, bookingID, userID string) (*entity.Payment, error)
}

type paymentService struct {
	repo        *repository.Repository
	orders      OrderService
	successRate float64
	log         *zap.Logger
}

func NewPaymentService(repo *repository.Repository, orders OrderService, config *utils.Config, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:        repo,
		orders:      orders,
		successRate: config.Payment.SuccessRate,
		log:         log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) InitiatePayment(ctx context.Context, bookingID, userID, method string) (*entity.Payment, error) {
	booking, ok := s.repo.Booking.FindByID(bookingID)
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}
	if booking.UserID != userID {
		return nil, fmt.Errorf("booking %s does not belong to user: %w", bookingID, ErrNotFound)
	}
	if booking.Status != entity.BookingStatusReserved {
		return nil, fmt.Errorf("booking %s is %s: %w", bookingID, booking.Status, ErrInvalidBookingState)
	}

	now := time.Now()
	payment := &entity.Payment{
		PaymentID:   utils.GenerateUUIDString(),
		BookingID:   bookingID,
		UserID:      userID,
		AmountPaise: booking.PricePaise,
		Status:      entity.PaymentStatusInitiated,
		Method:      method,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.repo.Payment.Save(payment)

	s.log.Info("Payment initiated",
		zap.String("payment_id", payment.PaymentID),
		zap.String("booking_id", bookingID),
		zap.Int64("amount_paise", payment.AmountPaise),
		zap.String("method", method),
	)

	s.processPayment(ctx, payment)

	final, ok := s.repo.Payment.FindByID(payment.PaymentID)
	if !ok {
		return payment, nil
	}
	return final, nil
}

// GetPaymentForBooking returns the payment attached to a booking, scoped to
// its owner.
func (s *paymentService) GetPaymentForBooking(ctx context.Context, bookingID, userID string) (*entity.Payment, error) {
	payment, ok := s.repo.Payment.FindByBookingID(bookingID)
	if !ok {
		return nil, fmt.Errorf("payment for booking %s: %w", bookingID, ErrNotFound)
	}
	if payment.UserID != userID {
		return nil, fmt.Errorf("payment for booking %s does not belong to user: %w", bookingID, ErrNotFound)
	}
	return payment, nil
}

// processPayment stands in for the gateway round trip.
func (s *paymentService) processPayment(ctx context.Context, payment *entity.Payment) {
	// Simulated gateway latency.
	time.Sleep(100 * time.Millisecond)

	if rand.Float64() < s.successRate {
		s.repo.Payment.UpdateStatus(payment.PaymentID, entity.PaymentStatusSuccess)

		if err := s.orders.ConfirmBooking(ctx, payment.BookingID, payment.PaymentID); err != nil {
			s.log.Error("Payment succeeded but confirmation failed",
				zap.String("payment_id", payment.PaymentID),
				zap.String("booking_id", payment.BookingID),
				zap.Error(err),
			)
			return
		}

		s.log.Info("Payment succeeded",
			zap.String("payment_id", payment.PaymentID),
			zap.String("booking_id", payment.BookingID),
		)
		return
	}

	s.repo.Payment.UpdateStatus(payment.PaymentID, entity.PaymentStatusFailed)

	// Failed payment releases the hold immediately instead of waiting for
	// the TTL sweep. A busy trip lock is fine: the sweep will pick the
	// booking up.
	if err := s.orders.ReleaseBooking(ctx, payment.BookingID); err != nil {
		s.log.Warn("Payment failed and release deferred to expiry sweep",
			zap.String("payment_id", payment.PaymentID),
			zap.String("booking_id", payment.BookingID),
			zap.Error(err),
		)
		return
	}

	s.log.Info("Payment failed, booking released",
		zap.String("payment_id", payment.PaymentID),
		zap.String("booking_id", payment.BookingID),
	)
}
