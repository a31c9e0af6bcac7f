package entity

import "time"

type BookingStatus string

const (
	BookingStatusReserved  BookingStatus = "RESERVED"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusExpired   BookingStatus = "EXPIRED"
)

// Booking is created RESERVED and transitions exactly once, to CONFIRMED or
// EXPIRED. Both are terminal.
type Booking struct {
	BookingID    string        `json:"bookingId"`
	UserID       string        `json:"userId"`
	TripID       string        `json:"tripId"`
	SourceCityID string        `json:"sourceCityId"`
	DestCityID   string        `json:"destCityId"`
	Seats        int           `json:"seats"`
	Status       BookingStatus `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	ExpiresAt    time.Time     `json:"expiresAt"`
	PricePaise   int64         `json:"pricePaise"`
	PaymentID    string        `json:"paymentId,omitempty"`
}
