package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
)

func newFleetFixture(t *testing.T) (FleetService, *fakeCarRepo, *fakeEmployeeRepo) {
	t.Helper()

	bus := &models.Car{
		ID:          primitive.NewObjectID(),
		PlateNumber: "AA123",
		Source:      models.CarSourceService,
		Model:       "Isuzu NPR",
		TotalSeats:  3,
		Status:      models.CarStatusAvailable,
	}
	minibus := &models.Car{
		ID:          primitive.NewObjectID(),
		PlateNumber: "BB456",
		Source:      models.CarSourceRent,
		Model:       "Toyota HiAce",
		TotalSeats:  12,
		Status:      models.CarStatusAvailable,
	}
	carRepo := newFakeCarRepo(bus, minibus)

	employees := []*models.Employee{
		{ID: primitive.NewObjectID(), EmployeeID: "E-001", FullName: "Alem Worku"},
		{ID: primitive.NewObjectID(), EmployeeID: "E-002", FullName: "Biruk Tadesse"},
		{ID: primitive.NewObjectID(), EmployeeID: "E-003", FullName: "Chaltu Negash"},
		{ID: primitive.NewObjectID(), EmployeeID: "E-004", FullName: "Daniel Mulu"},
	}
	employeeRepo := newFakeEmployeeRepo(employees...)

	routeRepo := &fakeRouteRepo{routes: []*models.Route{
		{
			PlateNumber: "AA123",
			Source:      models.CarSourceService,
			Waypoints: []models.Waypoint{
				{Latitude: 9.03, Longitude: 38.74},
				{Latitude: 9.01, Longitude: 38.76},
			},
		},
		{
			PlateNumber: "BB456",
			Source:      models.CarSourceRent,
			Waypoints: []models.Waypoint{
				{Latitude: 8.98, Longitude: 38.79},
			},
		},
	}}

	geocoder := &fakeGeocoder{names: map[string]string{
		"9.03000:38.74000": "Piassa",
		"9.01000:38.76000": "Meskel Square",
		"8.98000:38.79000": "Bole",
	}}

	svc := NewFleetService(carRepo, employeeRepo, routeRepo, geocoder, nil, testLogger())
	return svc, carRepo, employeeRepo
}

func assignEmployees(t *testing.T, repo *fakeEmployeeRepo, plate string, n int) {
	t.Helper()
	var ids []primitive.ObjectID
	for id := range repo.employees {
		ids = append(ids, id)
	}
	require.GreaterOrEqual(t, len(ids), n)
	for i := 0; i < n; i++ {
		require.NoError(t, repo.AssignCar(context.Background(), &models.CarAssignment{
			EmployeeID:  ids[i],
			PlateNumber: plate,
		}))
	}
}

func TestServiceBusSeatViews(t *testing.T) {
	svc, _, employeeRepo := newFleetFixture(t)
	assignEmployees(t, employeeRepo, "AA123", 2)

	views, err := svc.ServiceBusSeatViews(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	assert.Equal(t, "AA123", view.PlateNumber)
	assert.Equal(t, 3, view.TotalSeats)
	assert.Len(t, view.AssignedEmployees, 2)
	assert.Equal(t, 1, view.AvailableSeats)
	assert.True(t, strings.HasPrefix(view.ID, "service-"), "id should be source-prefixed")

	// Waypoints come back named, destination defaults to the last waypoint.
	require.Len(t, view.Waypoints, 2)
	assert.Equal(t, "Piassa", view.Waypoints[0].Name)
	assert.Equal(t, "Meskel Square", view.Waypoints[1].Name)
	assert.Equal(t, "Meskel Square", view.Destination)
}

func TestSeatViewsNeverNegative(t *testing.T) {
	svc, _, employeeRepo := newFleetFixture(t)
	// Over-assign past capacity; the view clamps instead of going negative.
	assignEmployees(t, employeeRepo, "AA123", 4)

	views, err := svc.ServiceBusSeatViews(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, 0, views[0].AvailableSeats)
}

func TestRentCarRoutesGeocoded(t *testing.T) {
	svc, _, _ := newFleetFixture(t)

	routes, err := svc.RentCarRoutes(context.Background())
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, "BB456", routes[0].PlateNumber)
	assert.Equal(t, "Bole", routes[0].Waypoints[0].Name)
	assert.Equal(t, "Bole", routes[0].Destination)
}

func TestRouteGeocodeFailureDegrades(t *testing.T) {
	svc, _, _ := newFleetFixture(t)

	routeRepo := &fakeRouteRepo{routes: []*models.Route{{
		PlateNumber: "BB456",
		Source:      models.CarSourceRent,
		Waypoints: []models.Waypoint{
			{Latitude: 1.0, Longitude: 1.0},
			{Latitude: 8.98, Longitude: 38.79},
		},
	}}}
	fleetSvc := svc.(*fleetService)
	fleetSvc.routeRepo = routeRepo

	// A failed lookup leaves the waypoint unnamed without erroring the
	// whole listing.
	routes, err := fleetSvc.RentCarRoutes(context.Background())
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Empty(t, routes[0].Waypoints[0].Name)
	assert.Equal(t, "Bole", routes[0].Waypoints[1].Name)
	assert.Equal(t, "Bole", routes[0].Destination)
}

func TestAssignEmployeeRespectsCapacity(t *testing.T) {
	svc, _, employeeRepo := newFleetFixture(t)
	ctx := context.Background()
	assignEmployees(t, employeeRepo, "AA123", 3)

	var unassigned primitive.ObjectID
	for id := range employeeRepo.employees {
		used := false
		for _, a := range employeeRepo.assignments {
			if a.EmployeeID == id {
				used = true
				break
			}
		}
		if !used {
			unassigned = id
			break
		}
	}

	err := svc.AssignEmployee(ctx, &models.CarAssignment{
		EmployeeID:  unassigned,
		PlateNumber: "AA123",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no available seats")

	// The same employee fits on the larger minibus, and the source is
	// resolved from the car record.
	assignment := &models.CarAssignment{EmployeeID: unassigned, PlateNumber: "BB456"}
	require.NoError(t, svc.AssignEmployee(ctx, assignment))
	assert.Equal(t, models.CarSourceRent, assignment.CarSource)
}

func TestUnassignEmployee(t *testing.T) {
	svc, _, employeeRepo := newFleetFixture(t)
	ctx := context.Background()
	assignEmployees(t, employeeRepo, "AA123", 1)

	var assignmentID primitive.ObjectID
	for id := range employeeRepo.assignments {
		assignmentID = id
	}

	require.NoError(t, svc.UnassignEmployee(ctx, assignmentID.Hex()))
	assert.Empty(t, employeeRepo.assignments)

	assert.Error(t, svc.UnassignEmployee(ctx, "not-a-hex-id"))
}
