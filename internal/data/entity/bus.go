package entity

type Bus struct {
	BusID          string `json:"busId"`
	OwnerID        string `json:"ownerId"`
	Operator       string `json:"operator"`
	ParkingAddress string `json:"parkingAddress"`
}
