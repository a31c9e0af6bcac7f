package usecase

import (
	"context"
	"fmt"
	"sort"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/response"
	"bus-booking/internal/pricing"

	"go.uber.org/zap"
)

// InventoryService answers search queries from the trip inventory. Results
// go through the inventory's search cache; seat counts are always read live.
type InventoryService interface {
	Search(ctx context.Context, sourceCityID, destCityID, date string) ([]response.SearchResponseItem, error)
	GetTripDetails(ctx context.Context, tripID, sourceCityID, destCityID string) (*response.SearchResponseItem, error)
	ListCities(ctx context.Context) []*entity.City
}

type inventoryService struct {
	repo    *repository.Repository
	pricing *pricing.Service
	log     *zap.Logger
}

func NewInventoryService(repo *repository.Repository, pricingSvc *pricing.Service, log *zap.Logger) InventoryService {
	return &inventoryService{
		repo:    repo,
		pricing: pricingSvc,
		log:     log.With(zap.String("service", "inventory")),
	}
}

func (s *inventoryService) Search(ctx context.Context, sourceCityID, destCityID, date string) ([]response.SearchResponseItem, error) {
	if _, ok := s.repo.City.FindByID(sourceCityID); !ok {
		return nil, fmt.Errorf("source city %s: %w", sourceCityID, ErrNotFound)
	}
	if _, ok := s.repo.City.FindByID(destCityID); !ok {
		return nil, fmt.Errorf("destination city %s: %w", destCityID, ErrNotFound)
	}

	trips := s.repo.Inventory.SearchTrips(sourceCityID, destCityID, date)

	items := make([]response.SearchResponseItem, 0, len(trips))
	for _, trip := range trips {
		items = append(items, s.buildSearchItem(trip, sourceCityID, destCityID))
	}

	s.log.Debug("Search completed",
		zap.String("source", sourceCityID),
		zap.String("dest", destCityID),
		zap.String("date", date),
		zap.Int("results", len(items)),
	)
	return items, nil
}

func (s *inventoryService) GetTripDetails(ctx context.Context, tripID, sourceCityID, destCityID string) (*response.SearchResponseItem, error) {
	trip, ok := s.repo.Inventory.FindTrip(tripID)
	if !ok {
		return nil, fmt.Errorf("trip %s: %w", tripID, ErrNotFound)
	}

	item := s.buildSearchItem(trip, sourceCityID, destCityID)
	return &item, nil
}

func (s *inventoryService) ListCities(ctx context.Context) []*entity.City {
	cities := s.repo.City.FindAll()
	sort.Slice(cities, func(i, j int) bool { return cities[i].Name < cities[j].Name })
	return cities
}

func (s *inventoryService) buildSearchItem(trip *entity.Trip, sourceCityID, destCityID string) response.SearchResponseItem {
	segments := s.repo.Inventory.FindSegmentsForRoute(trip.TripID, sourceCityID, destCityID)
	availableSeats := repository.BottleneckSeats(segments)

	// Single-seat price estimate at current occupancy. Quote-time and
	// commit-time occupancy may differ; the booking path re-prices.
	var pricePaise int64
	sourceCity, sourceOK := s.repo.City.FindByID(sourceCityID)
	destCity, destOK := s.repo.City.FindByID(destCityID)
	if sourceOK && destOK && len(segments) > 0 {
		pricePaise = s.pricing.CalculatePrice(trip, sourceCity, destCity, 1, availableSeats, trip.Capacity)
	}

	var sourceName, destName string
	if sourceOK {
		sourceName = sourceCity.Name
	}
	if destOK {
		destName = destCity.Name
	}

	operator := "Unknown"
	if bus, ok := s.repo.Bus.FindByID(trip.BusID); ok {
		operator = bus.Operator
	}

	var sourceTime, destTime string
	if len(segments) > 0 {
		sourceTime = segments[0].SourceTime
		destTime = segments[len(segments)-1].DestTime
	}

	return response.SearchResponseItem{
		TripID:         trip.TripID,
		BusID:          trip.BusID,
		Date:           trip.Date,
		Source:         sourceName,
		Dest:           destName,
		SourceCityID:   sourceCityID,
		DestCityID:     destCityID,
		SourceTime:     sourceTime,
		DestTime:       destTime,
		Capacity:       trip.Capacity,
		AvailableSeats: availableSeats,
		Bus:            response.BusInfo{Operator: operator},
		PricePaise:     pricePaise,
	}
}
