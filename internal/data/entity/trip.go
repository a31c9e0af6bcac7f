package entity

type PricingType string

const (
	PricingSlab    PricingType = "SLAB_50_FIRST_10KM_THEN_25_PER_10KM"
	PricingFlatKm  PricingType = "FLAT_PER_KM"
	PricingSurge   PricingType = "SURGE_BY_OCCUPANCY"
	DefaultPricing             = PricingSlab
)

// Trip is immutable once created; only its segments' AvailableSeats change.
type Trip struct {
	TripID       string      `json:"tripId"`
	BusID        string      `json:"busId"`
	Date         string      `json:"date"`
	SourceCityID string      `json:"sourceCityId"`
	DestCityID   string      `json:"destCityId"`
	Capacity     int         `json:"capacity"`
	PricingType  PricingType `json:"pricingType"`
}

// Segment is one leg of a multi-stop trip with its own seat pool.
// Sequence is 1-based and strictly increasing along the route, fixed once set.
// AvailableSeats stays within [0, Capacity].
type Segment struct {
	SegmentID      string `json:"segmentId"`
	TripID         string `json:"tripId"`
	Date           string `json:"date"`
	SourceCityID   string `json:"sourceCityId"`
	DestCityID     string `json:"destCityId"`
	SourceTime     string `json:"sourceTime"`
	DestTime       string `json:"destTime"`
	Sequence       int    `json:"sequence"`
	Capacity       int    `json:"capacity"`
	AvailableSeats int    `json:"availableSeats"`
}
