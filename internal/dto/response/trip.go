package response

type BusInfo struct {
	Operator string `json:"operator"`
}

// SearchResponseItem is one search result: a trip covering the requested
// route with its availability and a single-seat price estimate.
type SearchResponseItem struct {
	TripID         string  `json:"tripId"`
	BusID          string  `json:"busId"`
	Date           string  `json:"date"`
	Source         string  `json:"source"`
	Dest           string  `json:"dest"`
	SourceCityID   string  `json:"sourceCityId"`
	DestCityID     string  `json:"destCityId"`
	SourceTime     string  `json:"sourceTime"`
	DestTime       string  `json:"destTime"`
	Capacity       int     `json:"capacity"`
	AvailableSeats int     `json:"availableSeats"`
	Bus            BusInfo `json:"bus"`
	PricePaise     int64   `json:"pricePaise"`
}

// TripView is the admin-facing trip listing shape.
type TripView struct {
	TripID        string   `json:"tripId"`
	BusID         string   `json:"busId"`
	Date          string   `json:"date"`
	Source        string   `json:"source"`
	Dest          string   `json:"dest"`
	Capacity      int      `json:"capacity"`
	PricingType   string   `json:"pricingType"`
	DepartureTime string   `json:"departureTime"`
	ArrivalTime   string   `json:"arrivalTime"`
	Stops         []string `json:"stops"`
}

type AuthResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}
