package repository

import (
	"go.uber.org/zap"
)

type Repository struct {
	City        CityRepository
	Bus         BusRepository
	User        UserRepository
	Session     SessionRepository
	Inventory   InventoryRepository
	Booking     BookingRepository
	Payment     PaymentRepository
	Lock        LockRepository
	Idempotency IdempotencyRepository
}

func NewRepository(log *zap.Logger) *Repository {
	return &Repository{
		City:        NewCityRepository(),
		Bus:         NewBusRepository(),
		User:        NewUserRepository(),
		Session:     NewSessionRepository(),
		Inventory:   NewInventoryRepository(log),
		Booking:     NewBookingRepository(log),
		Payment:     NewPaymentRepository(),
		Lock:        NewLockRepository(),
		Idempotency: NewIdempotencyRepository(),
	}
}
