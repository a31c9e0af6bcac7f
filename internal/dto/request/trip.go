package request

type CreateTripRequest struct {
	BusID         string   `json:"busId" validate:"required"`
	Date          string   `json:"date" validate:"required,datetime=2006-01-02"`
	SourceCityID  string   `json:"sourceCityId" validate:"required"`
	DestCityID    string   `json:"destCityId" validate:"required"`
	Stops         []string `json:"stops"`
	DepartureTime string   `json:"departureTime" validate:"required,datetime=15:04"`
	ArrivalTime   string   `json:"arrivalTime" validate:"required,datetime=15:04"`
	Capacity      int      `json:"capacity" validate:"required,gt=0"`
	PricingType   string   `json:"pricingType" validate:"omitempty,oneof=SLAB_50_FIRST_10KM_THEN_25_PER_10KM FLAT_PER_KM SURGE_BY_OCCUPANCY"`
	RepeatOption  string   `json:"repeatOption" validate:"omitempty,oneof=single 7days 30days"`
}
