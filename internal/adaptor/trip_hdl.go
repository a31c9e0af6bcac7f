package adaptor

import (
	"encoding/json"
	"net/http"

	"bus-booking/internal/dto/request"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TripHandler struct {
	inventory usecase.InventoryService
	admin     usecase.AdminService
	log       *zap.Logger
}

func NewTripHandler(inventory usecase.InventoryService, admin usecase.AdminService, log *zap.Logger) *TripHandler {
	return &TripHandler{
		inventory: inventory,
		admin:     admin,
		log:       log.With(zap.String("handler", "trip")),
	}
}

// Search handles GET /v1/search?source=&dest=&date= (public)
func (h *TripHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	source := query.Get("source")
	dest := query.Get("dest")
	date := query.Get("date")

	if source == "" || dest == "" || date == "" {
		utils.ResponseBadRequest(w, "source, dest and date query parameters are required", nil)
		return
	}

	items, err := h.inventory.Search(r.Context(), source, dest, date)
	if err != nil {
		handleServiceError(w, h.log, err, "search trips")
		return
	}

	utils.ResponseSuccess(w, "success", items)
}

// GetTripDetails handles GET /v1/trips/{tripID}?source=&dest= (public)
func (h *TripHandler) GetTripDetails(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")
	query := r.URL.Query()

	item, err := h.inventory.GetTripDetails(r.Context(), tripID, query.Get("source"), query.Get("dest"))
	if err != nil {
		handleServiceError(w, h.log, err, "get trip details")
		return
	}

	utils.ResponseSuccess(w, "success", item)
}

// GetCities handles GET /v1/cities (public)
func (h *TripHandler) GetCities(w http.ResponseWriter, r *http.Request) {
	cities := h.inventory.ListCities(r.Context())
	utils.ResponseSuccess(w, "success", cities)
}

// CreateTrip handles POST /v1/admin/trips (protected)
func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	trips, err := h.admin.CreateTrip(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create trip")
		return
	}

	utils.ResponseCreated(w, "success", trips)
}

// GetAllTrips handles GET /v1/admin/trips (protected)
func (h *TripHandler) GetAllTrips(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.admin.GetAllTrips(r.Context()))
}
