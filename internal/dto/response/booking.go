package response

import (
	"time"

	"bus-booking/internal/data/entity"
)

type BookingResponse struct {
	BookingID  string               `json:"bookingId"`
	Status     entity.BookingStatus `json:"status"`
	PricePaise int64                `json:"pricePaise"`
	ExpiresAt  time.Time            `json:"expiresAt"`
}

// BookingView is the enriched shape returned when listing a user's bookings.
type BookingView struct {
	BookingID    string               `json:"bookingId"`
	Status       entity.BookingStatus `json:"status"`
	TripID       string               `json:"tripId"`
	Date         string               `json:"date"`
	Source       string               `json:"source"`
	Dest         string               `json:"dest"`
	SourceCityID string               `json:"sourceCityId"`
	DestCityID   string               `json:"destCityId"`
	SourceTime   string               `json:"sourceTime"`
	DestTime     string               `json:"destTime"`
	Seats        int                  `json:"seats"`
	CreatedAt    time.Time            `json:"createdAt"`
	PricePaise   int64                `json:"pricePaise"`
}

type PaymentResponse struct {
	PaymentID   string               `json:"paymentId"`
	BookingID   string               `json:"bookingId"`
	Status      entity.PaymentStatus `json:"status"`
	AmountPaise int64                `json:"amountPaise"`
	Method      string               `json:"method"`
}
