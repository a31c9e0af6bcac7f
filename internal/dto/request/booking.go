package request

type CreateBookingRequest struct {
	TripID       string `json:"tripId" validate:"required"`
	SourceCityID string `json:"sourceCityId" validate:"required"`
	DestCityID   string `json:"destCityId" validate:"required"`
	Seats        int    `json:"seats" validate:"required,gt=0"`
}

type CreatePaymentRequest struct {
	BookingID string `json:"bookingId" validate:"required"`
	Method    string `json:"method" validate:"required,oneof=UPI CARD NETBANKING WALLET"`
}
