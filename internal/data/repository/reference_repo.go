package repository

import (
	"sync"

	"bus-booking/internal/data/entity"
)

// City and bus records are read-mostly static reference data.

type CityRepository interface {
	Save(city *entity.City)
	FindByID(cityID string) (*entity.City, bool)
	FindAll() []*entity.City
}

type cityRepository struct {
	mu     sync.RWMutex
	cities map[string]*entity.City
}

func NewCityRepository() CityRepository {
	return &cityRepository{cities: make(map[string]*entity.City)}
}

func (r *cityRepository) Save(city *entity.City) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *city
	r.cities[city.CityID] = &copied
}

func (r *cityRepository) FindByID(cityID string) (*entity.City, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	city, ok := r.cities[cityID]
	if !ok {
		return nil, false
	}
	copied := *city
	return &copied, true
}

func (r *cityRepository) FindAll() []*entity.City {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.City, 0, len(r.cities))
	for _, city := range r.cities {
		copied := *city
		out = append(out, &copied)
	}
	return out
}

type BusRepository interface {
	Save(bus *entity.Bus)
	FindByID(busID string) (*entity.Bus, bool)
}

type busRepository struct {
	mu    sync.RWMutex
	buses map[string]*entity.Bus
}

func NewBusRepository() BusRepository {
	return &busRepository{buses: make(map[string]*entity.Bus)}
}

func (r *busRepository) Save(bus *entity.Bus) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *bus
	r.buses[bus.BusID] = &copied
}

func (r *busRepository) FindByID(busID string) (*entity.Bus, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bus, ok := r.buses[busID]
	if !ok {
		return nil, false
	}
	copied := *bus
	return &copied, true
}
