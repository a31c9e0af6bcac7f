package wire

import (
	"bus-booking/internal/adaptor"
	"bus-booking/internal/data/repository"
	"bus-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTrip(
	r chi.Router,
	tripHandler *adaptor.TripHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/v1/cities", tripHandler.GetCities)
	r.Get("/v1/search", tripHandler.Search)
	r.Get("/v1/trips/{tripID}", tripHandler.GetTripDetails)

	// ==================== PROTECTED ROUTES ====================
	auth := middleware.AuthSession(repo.Session, log)
	r.With(auth).Post("/v1/admin/trips", tripHandler.CreateTrip)
	r.With(auth).Get("/v1/admin/trips", tripHandler.GetAllTrips)
}
