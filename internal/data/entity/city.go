package entity

// City is static reference data used for search and distance-based pricing.
type City struct {
	CityID    string  `json:"cityId"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
