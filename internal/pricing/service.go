package pricing

import (
	"bus-booking/internal/data/entity"
)

// Service converts availability into an occupancy ratio and dispatches to the
// trip's pricing strategy. All prices are integers in paise; no float leaves
// this package.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) CalculatePrice(trip *entity.Trip, source, dest *entity.City, seats, availableSeats, totalCapacity int) int64 {
	occupancyRatio := 0.0
	if totalCapacity > 0 {
		occupancyRatio = float64(totalCapacity-availableSeats) / float64(totalCapacity)
	}

	return StrategyFor(trip.PricingType).Quote(trip, source, dest, seats, occupancyRatio)
}
