package repository

import (
	"sync"
	"time"

	"bus-booking/internal/data/entity"
)

type PaymentRepository interface {
	Save(payment *entity.Payment)
	FindByID(paymentID string) (*entity.Payment, bool)
	FindByBookingID(bookingID string) (*entity.Payment, bool)
	UpdateStatus(paymentID string, status entity.PaymentStatus) bool
}

type paymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*entity.Payment
}

func NewPaymentRepository() PaymentRepository {
	return &paymentRepository{payments: make(map[string]*entity.Payment)}
}

func (r *paymentRepository) Save(payment *entity.Payment) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *payment
	r.payments[payment.PaymentID] = &copied
}

func (r *paymentRepository) FindByID(paymentID string) (*entity.Payment, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payment, ok := r.payments[paymentID]
	if !ok {
		return nil, false
	}
	copied := *payment
	return &copied, true
}

func (r *paymentRepository) FindByBookingID(bookingID string) (*entity.Payment, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, payment := range r.payments {
		if payment.BookingID == bookingID {
			copied := *payment
			return &copied, true
		}
	}
	return nil, false
}

func (r *paymentRepository) UpdateStatus(paymentID string, status entity.PaymentStatus) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	payment, ok := r.payments[paymentID]
	if !ok {
		return false
	}
	payment.Status = status
	payment.UpdatedAt = time.Now()
	return true
}
