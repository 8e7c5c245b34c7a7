package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
	"github.com/MhiretKiros/TTMS-sub002/internal/repositories/interfaces"
	"github.com/MhiretKiros/TTMS-sub002/internal/utils"
	"github.com/MhiretKiros/TTMS-sub002/pkg/cache"
	"github.com/MhiretKiros/TTMS-sub002/pkg/geocode"
	"github.com/MhiretKiros/TTMS-sub002/pkg/logger"
)

const geocodeCacheTTL = 24 * time.Hour

type FleetService interface {
	// ServiceBusSeatViews joins the organization bus fleet against seat
	// assignments and routes. AvailableSeats is recomputed on every call.
	ServiceBusSeatViews(ctx context.Context) ([]*models.CarSeatView, error)

	// RentBusMinibusViews is the same join over the rented fleet.
	RentBusMinibusViews(ctx context.Context) ([]*models.CarSeatView, error)

	// RentCarRoutes lists rent-car routes with reverse geocoded waypoint
	// names.
	RentCarRoutes(ctx context.Context) ([]*models.Route, error)

	AssignEmployee(ctx context.Context, assignment *models.CarAssignment) error
	UnassignEmployee(ctx context.Context, assignmentID string) error
}

type fleetService struct {
	carRepo      interfaces.CarRepository
	employeeRepo interfaces.EmployeeRepository
	routeRepo    interfaces.RouteRepository
	geocoder     geocode.Provider
	cache        *cache.RedisCache
	logger       *logger.Logger
}

func NewFleetService(
	carRepo interfaces.CarRepository,
	employeeRepo interfaces.EmployeeRepository,
	routeRepo interfaces.RouteRepository,
	geocoder geocode.Provider,
	redisCache *cache.RedisCache,
	log *logger.Logger,
) FleetService {
	return &fleetService{
		carRepo:      carRepo,
		employeeRepo: employeeRepo,
		routeRepo:    routeRepo,
		geocoder:     geocoder,
		cache:        redisCache,
		logger:       log,
	}
}

func (s *fleetService) ServiceBusSeatViews(ctx context.Context) ([]*models.CarSeatView, error) {
	return s.seatViews(ctx, models.CarSourceService)
}

func (s *fleetService) RentBusMinibusViews(ctx context.Context) ([]*models.CarSeatView, error) {
	return s.seatViews(ctx, models.CarSourceRent)
}

// seatViews fans the three reads out concurrently; the join itself is cheap.
func (s *fleetService) seatViews(ctx context.Context, source models.CarSource) ([]*models.CarSeatView, error) {
	var (
		wg       sync.WaitGroup
		cars     []*models.Car
		byPlate  map[string][]models.Employee
		routes   []*models.Route
		carErr   error
		empErr   error
		routeErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		if source == models.CarSourceService {
			cars, carErr = s.carRepo.ListServiceBuses(ctx)
		} else {
			cars, carErr = s.carRepo.ListRentBusMinibus(ctx)
		}
	}()
	go func() {
		defer wg.Done()
		byPlate, empErr = s.employeeRepo.AssignedEmployeesByPlate(ctx)
	}()
	go func() {
		defer wg.Done()
		routes, routeErr = s.routeRepo.ListBySource(ctx, source)
	}()
	wg.Wait()

	for _, err := range []error{carErr, empErr, routeErr} {
		if err != nil {
			return nil, fmt.Errorf("failed to load seat views: %w", err)
		}
	}

	routeByPlate := make(map[string]*models.Route, len(routes))
	for _, route := range routes {
		routeByPlate[route.PlateNumber] = route
	}

	views := make([]*models.CarSeatView, 0, len(cars))
	for _, car := range cars {
		assigned := byPlate[car.PlateNumber]
		available := car.TotalSeats - len(assigned)
		if available < 0 {
			available = 0
		}

		view := &models.CarSeatView{
			ID:                car.PublicID(),
			PlateNumber:       car.PlateNumber,
			Model:             car.Model,
			TotalSeats:        car.TotalSeats,
			AssignedEmployees: assigned,
			AvailableSeats:    available,
		}
		if route := routeByPlate[car.PlateNumber]; route != nil {
			s.resolveWaypointNames(ctx, route)
			view.Destination = route.Destination
			view.Waypoints = route.Waypoints
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *fleetService) RentCarRoutes(ctx context.Context) ([]*models.Route, error) {
	routes, err := s.routeRepo.ListBySource(ctx, models.CarSourceRent)
	if err != nil {
		return nil, err
	}
	for _, route := range routes {
		s.resolveWaypointNames(ctx, route)
	}
	return routes, nil
}

func (s *fleetService) AssignEmployee(ctx context.Context, assignment *models.CarAssignment) error {
	car, err := s.carRepo.GetByPlate(ctx, assignment.PlateNumber)
	if err != nil {
		return err
	}

	taken, err := s.employeeRepo.CountAssignmentsByPlate(ctx, assignment.PlateNumber)
	if err != nil {
		return err
	}
	if taken >= int64(car.TotalSeats) {
		return fmt.Errorf("no available seats on car %s", assignment.PlateNumber)
	}

	assignment.CarSource = car.Source
	return s.employeeRepo.AssignCar(ctx, assignment)
}

func (s *fleetService) UnassignEmployee(ctx context.Context, assignmentID string) error {
	id, err := primitive.ObjectIDFromHex(assignmentID)
	if err != nil {
		return fmt.Errorf("invalid assignment id %q", assignmentID)
	}
	return s.employeeRepo.RemoveAssignment(ctx, id)
}

// resolveWaypointNames fills Waypoint.Name and a missing Destination from
// the geocoder. Lookups are cached for a day; failures degrade to unnamed
// waypoints rather than failing the listing.
func (s *fleetService) resolveWaypointNames(ctx context.Context, route *models.Route) {
	for i := range route.Waypoints {
		wp := &route.Waypoints[i]
		name, err := s.placeName(ctx, wp.Latitude, wp.Longitude)
		if err != nil {
			s.logger.WithError(err).WithPlateNumber(route.PlateNumber).Warn("Reverse geocode failed")
			continue
		}
		wp.Name = name
	}
	if route.Destination == "" && len(route.Waypoints) > 0 {
		route.Destination = route.Waypoints[len(route.Waypoints)-1].Name
	}
}

func (s *fleetService) placeName(ctx context.Context, lat, lng float64) (string, error) {
	key := fmt.Sprintf("%s%.5f:%.5f", utils.CacheGeocodePrefix, lat, lng)
	if s.cache != nil {
		var name string
		if err := s.cache.Get(ctx, key, &name); err == nil && name != "" {
			return name, nil
		}
	}

	name, err := s.geocoder.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, name, geocodeCacheTTL)
	}
	return name, nil
}
