package seed

import (
	"context"
	"fmt"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/usecase"

	"go.uber.org/zap"
)

// Run loads the static reference data and a handful of demo trips and users
// so a fresh process is immediately searchable and bookable.
func Run(ctx context.Context, repo *repository.Repository, auth usecase.AuthService, log *zap.Logger) {
	seedCities(repo, log)
	seedBuses(repo, log)
	seedTrips(repo, log)
	seedUsers(ctx, auth, log)
	log.Info("Data seeding completed")
}

func seedCities(repo *repository.Repository, log *zap.Logger) {
	cities := []entity.City{
		{CityID: "BLR", Name: "Bangalore", Latitude: 12.9716, Longitude: 77.5946},
		{CityID: "MUM", Name: "Mumbai", Latitude: 19.0760, Longitude: 72.8777},
		{CityID: "DEL", Name: "Delhi", Latitude: 28.7041, Longitude: 77.1025},
		{CityID: "CHN", Name: "Chennai", Latitude: 13.0827, Longitude: 80.2707},
		{CityID: "KOL", Name: "Kolkata", Latitude: 22.5726, Longitude: 88.3639},
		{CityID: "HYD", Name: "Hyderabad", Latitude: 17.3850, Longitude: 78.4867},
		{CityID: "PUN", Name: "Pune", Latitude: 18.5204, Longitude: 73.8567},
		{CityID: "AHM", Name: "Ahmedabad", Latitude: 23.0225, Longitude: 72.5714},
		{CityID: "JAIPUR", Name: "Jaipur", Latitude: 26.9124, Longitude: 75.7873},
		{CityID: "LKO", Name: "Lucknow", Latitude: 26.8467, Longitude: 80.9462},
		{CityID: "KANPUR", Name: "Kanpur", Latitude: 26.4499, Longitude: 80.3319},
		{CityID: "NAGPUR", Name: "Nagpur", Latitude: 21.1458, Longitude: 79.0882},
		{CityID: "INDORE", Name: "Indore", Latitude: 22.7196, Longitude: 75.8577},
		{CityID: "BHOPAL", Name: "Bhopal", Latitude: 23.2599, Longitude: 77.4126},
		{CityID: "VISAKHAPATNAM", Name: "Visakhapatnam", Latitude: 17.6868, Longitude: 83.2185},
	}

	for i := range cities {
		repo.City.Save(&cities[i])
	}
	log.Info("Seeded cities", zap.Int("count", len(cities)))
}

func seedBuses(repo *repository.Repository, log *zap.Logger) {
	buses := []entity.Bus{
		{BusID: "BUS001", OwnerID: "OWNER001", Operator: "RedLine Express", ParkingAddress: "Bangalore Depot"},
		{BusID: "BUS002", OwnerID: "OWNER002", Operator: "KSRTC", ParkingAddress: "Mysore Depot"},
		{BusID: "BUS003", OwnerID: "OWNER003", Operator: "BMTC", ParkingAddress: "Bangalore Central"},
		{BusID: "BUS004", OwnerID: "OWNER004", Operator: "Volvo Travels", ParkingAddress: "Mumbai Depot"},
		{BusID: "BUS005", OwnerID: "OWNER005", Operator: "Raj Travels", ParkingAddress: "Delhi Depot"},
		{BusID: "BUS006", OwnerID: "OWNER006", Operator: "Orange Travels", ParkingAddress: "Chennai Depot"},
		{BusID: "BUS007", OwnerID: "OWNER007", Operator: "SRS Travels", ParkingAddress: "Hyderabad Depot"},
		{BusID: "BUS008", OwnerID: "OWNER008", Operator: "Neeta Travels", ParkingAddress: "Pune Depot"},
		{BusID: "BUS009", OwnerID: "OWNER009", Operator: "Sharma Travels", ParkingAddress: "Kolkata Depot"},
		{BusID: "BUS010", OwnerID: "OWNER010", Operator: "Patel Travels", ParkingAddress: "Ahmedabad Depot"},
	}

	for i := range buses {
		repo.Bus.Save(&buses[i])
	}
	log.Info("Seeded buses", zap.Int("count", len(buses)))
}

func seedTrips(repo *repository.Repository, log *zap.Logger) {
	cityIDs := []string{"BLR", "MUM", "DEL", "CHN", "KOL", "HYD", "PUN", "AHM", "JAIPUR", "LKO"}
	busIDs := []string{"BUS001", "BUS002", "BUS003", "BUS004", "BUS005", "BUS006", "BUS007", "BUS008", "BUS009", "BUS010"}
	pricingTypes := []entity.PricingType{entity.PricingSlab, entity.PricingFlatKm, entity.PricingSurge}

	today := time.Now()
	tripCount := 0

	for day := 1; day <= 7; day++ {
		date := today.AddDate(0, 0, day).Format("2006-01-02")

		tripsPerDay := 2 + (day % 2)
		for i := 0; i < tripsPerDay; i++ {
			source := cityIDs[(day+i)%len(cityIDs)]
			intermediate := cityIDs[(day+i+1)%len(cityIDs)]
			dest := cityIDs[(day+i+2)%len(cityIDs)]

			tripCount++
			trip := &entity.Trip{
				TripID:       fmt.Sprintf("TRIP%03d", tripCount),
				BusID:        busIDs[(day+i)%len(busIDs)],
				Date:         date,
				SourceCityID: source,
				DestCityID:   dest,
				Capacity:     40 + (i * 10),
				PricingType:  pricingTypes[(day+i)%len(pricingTypes)],
			}
			repo.Inventory.UpsertTrip(trip)

			segments := []*entity.Segment{
				{
					SegmentID:      fmt.Sprintf("SEG%d_1", tripCount),
					TripID:         trip.TripID,
					Date:           date,
					SourceCityID:   source,
					DestCityID:     intermediate,
					SourceTime:     "08:00",
					DestTime:       "14:00",
					Sequence:       1,
					Capacity:       trip.Capacity,
					AvailableSeats: trip.Capacity,
				},
				{
					SegmentID:      fmt.Sprintf("SEG%d_2", tripCount),
					TripID:         trip.TripID,
					Date:           date,
					SourceCityID:   intermediate,
					DestCityID:     dest,
					SourceTime:     "18:00",
					DestTime:       "23:00",
					Sequence:       2,
					Capacity:       trip.Capacity,
					AvailableSeats: trip.Capacity,
				},
			}
			repo.Inventory.UpsertSegments(trip.TripID, segments)
		}
	}

	log.Info("Seeded trips", zap.Int("count", tripCount))
}

func seedUsers(ctx context.Context, auth usecase.AuthService, log *zap.Logger) {
	for _, cred := range []struct{ email, password string }{
		{"user1@example.com", "password1"},
		{"user2@example.com", "password2"},
	} {
		if _, err := auth.Signup(ctx, cred.email, cred.password); err != nil {
			log.Warn("Seed user skipped", zap.String("email", cred.email), zap.Error(err))
		}
	}
}
