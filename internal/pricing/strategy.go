package pricing

import (
	"math"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/utils"
)

// Strategy quotes a price in paise for a number of seats on a trip between
// two cities. occupancyRatio is the fraction of the trip's capacity already
// sold at quote time.
type Strategy interface {
	Quote(trip *entity.Trip, source, dest *entity.City, seats int, occupancyRatio float64) int64
}

const (
	flatRatePaisePerKm = 300 // ₹3/km

	slabBasePaise  = 5000 // ₹50 for the first slab
	slabBlockPaise = 2500 // ₹25 per additional 10 km block
	slabBaseKm     = 10.0
	slabBlockKm    = 10.0

	surgeThreshold = 0.8
	surgeExtra     = 0.5
)

// SlabStrategy charges a flat base for the first distance slab, then a fixed
// charge per additional block, block count rounded up.
type SlabStrategy struct{}

func (SlabStrategy) Quote(trip *entity.Trip, source, dest *entity.City, seats int, occupancyRatio float64) int64 {
	distance := cityDistanceKm(source, dest)

	basePrice := int64(slabBasePaise)
	if distance > slabBaseKm {
		blocks := int64(math.Ceil((distance - slabBaseKm) / slabBlockKm))
		basePrice += blocks * slabBlockPaise
	}

	return basePrice * int64(seats)
}

// FlatPerKmStrategy is a linear rate per kilometer.
type FlatPerKmStrategy struct{}

func (FlatPerKmStrategy) Quote(trip *entity.Trip, source, dest *entity.City, seats int, occupancyRatio float64) int64 {
	distance := cityDistanceKm(source, dest)

	basePrice := int64(distance * flatRatePaisePerKm)
	return basePrice * int64(seats)
}

// SurgeStrategy is the flat per-km rate with a fixed surcharge once
// occupancy crosses the surge threshold.
type SurgeStrategy struct{}

func (SurgeStrategy) Quote(trip *entity.Trip, source, dest *entity.City, seats int, occupancyRatio float64) int64 {
	distance := cityDistanceKm(source, dest)

	surge := 0.0
	if occupancyRatio > surgeThreshold {
		surge = surgeExtra
	}

	basePrice := int64(distance * flatRatePaisePerKm * (1.0 + surge))
	return basePrice * int64(seats)
}

func cityDistanceKm(source, dest *entity.City) float64 {
	return utils.HaversineKm(source.Latitude, source.Longitude, dest.Latitude, dest.Longitude)
}

// StrategyFor maps a trip's pricing type to its strategy. Unknown tags fall
// back to the slab strategy, matching the default applied at trip creation.
func StrategyFor(pricingType entity.PricingType) Strategy {
	switch pricingType {
	case entity.PricingFlatKm:
		return FlatPerKmStrategy{}
	case entity.PricingSurge:
		return SurgeStrategy{}
	default:
		return SlabStrategy{}
	}
}
