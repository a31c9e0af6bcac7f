package usecase

import (
	"context"
	"fmt"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

// AdminService creates trips with their segment chains and lists them for
// the operator view.
type AdminService interface {
	CreateTrip(ctx context.Context, req *request.CreateTripRequest) ([]*entity.Trip, error)
	GetAllTrips(ctx context.Context) []response.TripView
}

type adminService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAdminService(repo *repository.Repository, log *zap.Logger) AdminService {
	return &adminService{
		repo: repo,
		log:  log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) CreateTrip(ctx context.Context, req *request.CreateTripRequest) ([]*entity.Trip, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if _, ok := s.repo.Bus.FindByID(req.BusID); !ok {
		return nil, fmt.Errorf("bus %s: %w", req.BusID, ErrNotFound)
	}
	for _, cityID := range append([]string{req.SourceCityID, req.DestCityID}, req.Stops...) {
		if _, ok := s.repo.City.FindByID(cityID); !ok {
			return nil, fmt.Errorf("city %s: %w", cityID, ErrNotFound)
		}
	}

	startDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", req.Date, err)
	}

	dates, err := datesForRepeat(startDate, req.RepeatOption)
	if err != nil {
		return nil, err
	}

	trips := make([]*entity.Trip, 0, len(dates))
	for _, date := range dates {
		trip, err := s.createSingleTrip(req, date)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}

	return trips, nil
}

func datesForRepeat(startDate time.Time, repeatOption string) ([]time.Time, error) {
	days := 1
	switch repeatOption {
	case "", "single":
	case "7days":
		days = 7
	case "30days":
		days = 30
	default:
		return nil, fmt.Errorf("invalid repeat option: %s", repeatOption)
	}

	dates := make([]time.Time, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, startDate.AddDate(0, 0, i))
	}
	return dates, nil
}

func (s *adminService) createSingleTrip(req *request.CreateTripRequest, date time.Time) (*entity.Trip, error) {
	pricingType := entity.DefaultPricing
	if req.PricingType != "" {
		pricingType = entity.PricingType(req.PricingType)
	}

	trip := &entity.Trip{
		TripID:       utils.GenerateUUIDString(),
		BusID:        req.BusID,
		Date:         date.Format("2006-01-02"),
		SourceCityID: req.SourceCityID,
		DestCityID:   req.DestCityID,
		Capacity:     req.Capacity,
		PricingType:  pricingType,
	}

	segments, err := buildSegments(trip, req)
	if err != nil {
		return nil, err
	}

	s.repo.Inventory.UpsertTrip(trip)
	s.repo.Inventory.UpsertSegments(trip.TripID, segments)

	s.log.Info("Trip created",
		zap.String("trip_id", trip.TripID),
		zap.String("date", trip.Date),
		zap.Int("segments", len(segments)),
	)
	return trip, nil
}

// buildSegments chains the route source -> stops -> dest, splitting the
// departure-to-arrival window evenly across legs. Sequence numbers are
// 1-based and never change afterwards.
func buildSegments(trip *entity.Trip, req *request.CreateTripRequest) ([]*entity.Segment, error) {
	route := make([]string, 0, len(req.Stops)+2)
	route = append(route, req.SourceCityID)
	route = append(route, req.Stops...)
	route = append(route, req.DestCityID)

	departure, err := time.Parse("15:04", req.DepartureTime)
	if err != nil {
		return nil, fmt.Errorf("invalid departure time %q: %w", req.DepartureTime, err)
	}
	arrival, err := time.Parse("15:04", req.ArrivalTime)
	if err != nil {
		return nil, fmt.Errorf("invalid arrival time %q: %w", req.ArrivalTime, err)
	}

	segmentCount := len(route) - 1
	perSegment := arrival.Sub(departure) / time.Duration(segmentCount)

	segments := make([]*entity.Segment, 0, segmentCount)
	for i := 0; i < segmentCount; i++ {
		segments = append(segments, &entity.Segment{
			SegmentID:      utils.GenerateUUIDString(),
			TripID:         trip.TripID,
			Date:           trip.Date,
			SourceCityID:   route[i],
			DestCityID:     route[i+1],
			SourceTime:     departure.Add(time.Duration(i) * perSegment).Format("15:04"),
			DestTime:       departure.Add(time.Duration(i+1) * perSegment).Format("15:04"),
			Sequence:       i + 1,
			Capacity:       trip.Capacity,
			AvailableSeats: trip.Capacity,
		})
	}

	return segments, nil
}

func (s *adminService) GetAllTrips(ctx context.Context) []response.TripView {
	trips := s.repo.Inventory.FindAllTrips()

	views := make([]response.TripView, 0, len(trips))
	for _, trip := range trips {
		views = append(views, s.tripView(trip))
	}
	return views
}

func (s *adminService) tripView(trip *entity.Trip) response.TripView {
	cityName := func(cityID string) string {
		if city, ok := s.repo.City.FindByID(cityID); ok {
			return city.Name
		}
		return cityID
	}

	segments := s.repo.Inventory.FindSegmentsByTrip(trip.TripID)

	departureTime, arrivalTime := "N/A", "N/A"
	stops := []string{}
	if len(segments) > 0 {
		departureTime = segments[0].SourceTime
		arrivalTime = segments[len(segments)-1].DestTime
		for _, seg := range segments[1:] {
			stops = append(stops, cityName(seg.SourceCityID))
		}
	}

	return response.TripView{
		TripID:        trip.TripID,
		BusID:         trip.BusID,
		Date:          trip.Date,
		Source:        cityName(trip.SourceCityID),
		Dest:          cityName(trip.DestCityID),
		Capacity:      trip.Capacity,
		PricingType:   string(trip.PricingType),
		DepartureTime: departureTime,
		ArrivalTime:   arrivalTime,
		Stops:         stops,
	}
}
