package wire

import (
	"bus-booking/internal/adaptor"
	"bus-booking/internal/data/repository"
	"bus-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// All booking and payment routes require an authenticated session.
	auth := middleware.AuthSession(repo.Session, log)

	r.With(auth).Post("/v1/bookings", bookingHandler.CreateBooking)
	r.With(auth).Get("/v1/bookings", bookingHandler.GetAllBookings)
	r.With(auth).Post("/v1/payments", bookingHandler.CreatePayment)
	r.With(auth).Get("/v1/payments/{bookingID}", bookingHandler.GetPayment)
}
