package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service *usecase.Service
	log     *zap.Logger
}

func NewBookingHandler(service *usecase.Service, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /v1/bookings (protected, idempotent)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	idempotencyToken := r.Header.Get("Idempotency-Key")
	if idempotencyToken == "" {
		utils.ResponseBadRequest(w, "Idempotency-Key header is required", nil)
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	key := h.service.Idempotency.Key(idempotencyToken, userID,
		req.TripID, req.SourceCityID, req.DestCityID, strconv.Itoa(req.Seats))

	if cached, ok := h.service.Idempotency.Get(key); ok {
		h.log.Info("Returning cached booking response", zap.String("user_id", userID))
		utils.ResponseSuccess(w, "success", cached)
		return
	}

	booking, err := h.service.Order.CreateBooking(r.Context(), userID,
		req.TripID, req.SourceCityID, req.DestCityID, req.Seats)
	if err != nil {
		handleServiceError(w, h.log, err, "create booking")
		return
	}

	resp := response.BookingResponse{
		BookingID:  booking.BookingID,
		Status:     booking.Status,
		PricePaise: booking.PricePaise,
		ExpiresAt:  booking.ExpiresAt,
	}

	h.service.Idempotency.Store(key, resp)

	utils.ResponseCreated(w, "success", resp)
}

// GetPayment handles GET /v1/payments/{bookingID} (protected)
func (h *BookingHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "bookingID")

	payment, err := h.service.Payment.GetPaymentForBooking(r.Context(), bookingID, userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get payment")
		return
	}

	utils.ResponseSuccess(w, "success", response.PaymentResponse{
		PaymentID:   payment.PaymentID,
		BookingID:   payment.BookingID,
		Status:      payment.Status,
		AmountPaise: payment.AmountPaise,
		Method:      payment.Method,
	})
}

// GetAllBookings handles GET /v1/bookings (protected)
func (h *BookingHandler) GetAllBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	views, err := h.service.Order.GetAllBookings(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get bookings")
		return
	}

	utils.ResponseSuccess(w, "success", views)
}

// CreatePayment handles POST /v1/payments (protected, idempotent)
func (h *BookingHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	idempotencyToken := r.Header.Get("Idempotency-Key")
	if idempotencyToken == "" {
		utils.ResponseBadRequest(w, "Idempotency-Key header is required", nil)
		return
	}

	var req request.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	key := h.service.Idempotency.Key(idempotencyToken, userID, req.BookingID, req.Method)

	if cached, ok := h.service.Idempotency.Get(key); ok {
		h.log.Info("Returning cached payment response", zap.String("user_id", userID))
		utils.ResponseSuccess(w, "success", cached)
		return
	}

	payment, err := h.service.Payment.InitiatePayment(r.Context(), req.BookingID, userID, req.Method)
	if err != nil {
		handleServiceError(w, h.log, err, "create payment")
		return
	}

	resp := response.PaymentResponse{
		PaymentID:   payment.PaymentID,
		BookingID:   payment.BookingID,
		Status:      payment.Status,
		AmountPaise: payment.AmountPaise,
		Method:      payment.Method,
	}

	h.service.Idempotency.Store(key, resp)

	utils.ResponseCreated(w, "success", resp)
}
