package entity

import "time"

type PaymentStatus string

const (
	PaymentStatusInitiated PaymentStatus = "INITIATED"
	PaymentStatusSuccess   PaymentStatus = "SUCCESS"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

type Payment struct {
	PaymentID   string        `json:"paymentId"`
	BookingID   string        `json:"bookingId"`
	UserID      string        `json:"userId"`
	AmountPaise int64         `json:"amountPaise"`
	Status      PaymentStatus `json:"status"`
	Method      string        `json:"method"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}
