package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
	"github.com/MhiretKiros/TTMS-sub002/internal/utils"
	"github.com/MhiretKiros/TTMS-sub002/pkg/logger"
	"github.com/MhiretKiros/TTMS-sub002/pkg/storage"
)

func testLogger() *logger.Logger {
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text", Output: "stdout"})
	if err != nil {
		panic(err)
	}
	return log
}

// fakeTxRunner executes the callback directly; the fakes below do not care
// about session semantics.
type fakeTxRunner struct {
	calls int
	err   error
}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn func(sessCtx mongo.SessionContext) (interface{}, error)) (interface{}, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return fn(mongo.NewSessionContext(ctx, nil))
}

type fakeMaintenanceRepo struct {
	requests map[primitive.ObjectID]*models.MaintenanceRequest
}

func newFakeMaintenanceRepo() *fakeMaintenanceRepo {
	return &fakeMaintenanceRepo{requests: make(map[primitive.ObjectID]*models.MaintenanceRequest)}
}

func (f *fakeMaintenanceRepo) Create(ctx context.Context, req *models.MaintenanceRequest) error {
	req.ID = primitive.NewObjectID()
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	clone := *req
	f.requests[req.ID] = &clone
	return nil
}

func (f *fakeMaintenanceRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.MaintenanceRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, fmt.Errorf("maintenance request not found")
	}
	clone := *req
	return &clone, nil
}

func (f *fakeMaintenanceRepo) Replace(ctx context.Context, req *models.MaintenanceRequest) error {
	if _, ok := f.requests[req.ID]; !ok {
		return fmt.Errorf("maintenance request not found")
	}
	clone := *req
	f.requests[req.ID] = &clone
	return nil
}

func (f *fakeMaintenanceRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.MaintenanceRequest, int64, error) {
	var out []*models.MaintenanceRequest
	for _, req := range f.requests {
		out = append(out, req)
	}
	return out, int64(len(out)), nil
}

func (f *fakeMaintenanceRepo) ListByStatuses(ctx context.Context, statuses []models.MaintenanceStatus, params *utils.PaginationParams) ([]*models.MaintenanceRequest, int64, error) {
	var out []*models.MaintenanceRequest
	for _, req := range f.requests {
		for _, status := range statuses {
			if req.Status == status {
				out = append(out, req)
				break
			}
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeMaintenanceRepo) ListByDriver(ctx context.Context, driverName string, params *utils.PaginationParams) ([]*models.MaintenanceRequest, int64, error) {
	var out []*models.MaintenanceRequest
	for _, req := range f.requests {
		if req.ReportingDriver == driverName {
			out = append(out, req)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeMaintenanceRepo) CountByStatus(ctx context.Context, status models.MaintenanceStatus) (int64, error) {
	var n int64
	for _, req := range f.requests {
		if req.Status == status {
			n++
		}
	}
	return n, nil
}

type inspectionStatusWrite struct {
	source        models.CarSource
	plateNumber   string
	result        models.InspectionStatus
	serviceStatus models.ServiceStatus
	inspectionID  primitive.ObjectID
}

type fakeCarRepo struct {
	cars             map[string]*models.Car
	inspectionWrites []inspectionStatusWrite
}

func newFakeCarRepo(cars ...*models.Car) *fakeCarRepo {
	f := &fakeCarRepo{cars: make(map[string]*models.Car)}
	for _, car := range cars {
		f.cars[strings.ToUpper(car.PlateNumber)] = car
	}
	return f
}

func (f *fakeCarRepo) GetByPlate(ctx context.Context, plateNumber string) (*models.Car, error) {
	car, ok := f.cars[strings.ToUpper(plateNumber)]
	if !ok {
		return nil, fmt.Errorf("car not found for plate number %s", plateNumber)
	}
	return car, nil
}

func (f *fakeCarRepo) ListServiceBuses(ctx context.Context) ([]*models.Car, error) {
	return f.listBySource(models.CarSourceService), nil
}

func (f *fakeCarRepo) ListRentBusMinibus(ctx context.Context) ([]*models.Car, error) {
	return f.listBySource(models.CarSourceRent), nil
}

func (f *fakeCarRepo) listBySource(source models.CarSource) []*models.Car {
	var out []*models.Car
	for _, car := range f.cars {
		if car.Source == source {
			out = append(out, car)
		}
	}
	return out
}

func (f *fakeCarRepo) UpdateStatusByPlate(ctx context.Context, plateNumber string, status models.CarStatus) error {
	car, ok := f.cars[strings.ToUpper(plateNumber)]
	if !ok {
		return fmt.Errorf("car not found for plate number %s", plateNumber)
	}
	car.Status = status
	return nil
}

func (f *fakeCarRepo) UpdateInspectionStatus(ctx context.Context, source models.CarSource, plateNumber string, result models.InspectionStatus, serviceStatus models.ServiceStatus, inspectionID primitive.ObjectID) error {
	f.inspectionWrites = append(f.inspectionWrites, inspectionStatusWrite{
		source:        source,
		plateNumber:   plateNumber,
		result:        result,
		serviceStatus: serviceStatus,
		inspectionID:  inspectionID,
	})
	return nil
}

type fakeFuelRepo struct {
	requests map[primitive.ObjectID]*models.FuelOilGreaseRequest
}

func newFakeFuelRepo() *fakeFuelRepo {
	return &fakeFuelRepo{requests: make(map[primitive.ObjectID]*models.FuelOilGreaseRequest)}
}

func (f *fakeFuelRepo) Create(ctx context.Context, req *models.FuelOilGreaseRequest) error {
	req.ID = primitive.NewObjectID()
	if req.Status == "" {
		req.Status = models.FuelRequestStatusPending
	}
	if req.NezekOfficialStatus == "" {
		req.NezekOfficialStatus = models.NezekStatusPending
	}
	clone := *req
	f.requests[req.ID] = &clone
	return nil
}

func (f *fakeFuelRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.FuelOilGreaseRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, fmt.Errorf("fuel request not found")
	}
	clone := *req
	return &clone, nil
}

func (f *fakeFuelRepo) Replace(ctx context.Context, req *models.FuelOilGreaseRequest) error {
	if _, ok := f.requests[req.ID]; !ok {
		return fmt.Errorf("fuel request not found")
	}
	clone := *req
	f.requests[req.ID] = &clone
	return nil
}

func (f *fakeFuelRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.FuelOilGreaseRequest, int64, error) {
	var out []*models.FuelOilGreaseRequest
	for _, req := range f.requests {
		out = append(out, req)
	}
	return out, int64(len(out)), nil
}

func (f *fakeFuelRepo) ListByStatus(ctx context.Context, status models.FuelRequestStatus, params *utils.PaginationParams) ([]*models.FuelOilGreaseRequest, int64, error) {
	var out []*models.FuelOilGreaseRequest
	for _, req := range f.requests {
		if req.Status == status {
			out = append(out, req)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeFuelRepo) ListByMechanic(ctx context.Context, mechanicName string, params *utils.PaginationParams) ([]*models.FuelOilGreaseRequest, int64, error) {
	var out []*models.FuelOilGreaseRequest
	for _, req := range f.requests {
		if req.MechanicName == mechanicName {
			out = append(out, req)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeFuelRepo) ListPendingFulfillment(ctx context.Context, params *utils.PaginationParams) ([]*models.FuelOilGreaseRequest, int64, error) {
	var out []*models.FuelOilGreaseRequest
	for _, req := range f.requests {
		if req.NezekOfficialStatus == models.NezekStatusApproved && !req.IsFulfilled {
			out = append(out, req)
		}
	}
	return out, int64(len(out)), nil
}

type fakeEmployeeRepo struct {
	employees   map[primitive.ObjectID]*models.Employee
	assignments map[primitive.ObjectID]*models.CarAssignment
}

func newFakeEmployeeRepo(employees ...*models.Employee) *fakeEmployeeRepo {
	f := &fakeEmployeeRepo{
		employees:   make(map[primitive.ObjectID]*models.Employee),
		assignments: make(map[primitive.ObjectID]*models.CarAssignment),
	}
	for _, e := range employees {
		f.employees[e.ID] = e
	}
	return f
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]*models.Employee, error) {
	var out []*models.Employee
	for _, e := range f.employees {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error) {
	for _, e := range f.employees {
		if e.EmployeeID == employeeID {
			return e, nil
		}
	}
	return nil, fmt.Errorf("employee not found")
}

func (f *fakeEmployeeRepo) AssignCar(ctx context.Context, assignment *models.CarAssignment) error {
	for _, existing := range f.assignments {
		if existing.EmployeeID == assignment.EmployeeID {
			return fmt.Errorf("employee already has a car assignment")
		}
	}
	assignment.ID = primitive.NewObjectID()
	f.assignments[assignment.ID] = assignment
	return nil
}

func (f *fakeEmployeeRepo) RemoveAssignment(ctx context.Context, assignmentID primitive.ObjectID) error {
	if _, ok := f.assignments[assignmentID]; !ok {
		return fmt.Errorf("assignment not found")
	}
	delete(f.assignments, assignmentID)
	return nil
}

func (f *fakeEmployeeRepo) AssignedEmployeesByPlate(ctx context.Context) (map[string][]models.Employee, error) {
	out := make(map[string][]models.Employee)
	for _, a := range f.assignments {
		if e, ok := f.employees[a.EmployeeID]; ok {
			out[a.PlateNumber] = append(out[a.PlateNumber], *e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) CountAssignmentsByPlate(ctx context.Context, plateNumber string) (int64, error) {
	var n int64
	for _, a := range f.assignments {
		if a.PlateNumber == plateNumber {
			n++
		}
	}
	return n, nil
}

type fakeRouteRepo struct {
	routes []*models.Route
}

func (f *fakeRouteRepo) ListBySource(ctx context.Context, source models.CarSource) ([]*models.Route, error) {
	var out []*models.Route
	for _, route := range f.routes {
		if route.Source == source {
			out = append(out, route)
		}
	}
	return out, nil
}

func (f *fakeRouteRepo) GetByPlate(ctx context.Context, plateNumber string) (*models.Route, error) {
	for _, route := range f.routes {
		if route.PlateNumber == plateNumber {
			return route, nil
		}
	}
	return nil, fmt.Errorf("route not found")
}

type fakeInspectionRepo struct {
	inspections map[primitive.ObjectID]*models.Inspection
}

func newFakeInspectionRepo() *fakeInspectionRepo {
	return &fakeInspectionRepo{inspections: make(map[primitive.ObjectID]*models.Inspection)}
}

func (f *fakeInspectionRepo) Create(ctx context.Context, insp *models.Inspection) error {
	insp.ID = primitive.NewObjectID()
	f.inspections[insp.ID] = insp
	return nil
}

func (f *fakeInspectionRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Inspection, error) {
	insp, ok := f.inspections[id]
	if !ok {
		return nil, fmt.Errorf("inspection not found")
	}
	return insp, nil
}

func (f *fakeInspectionRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Inspection, int64, error) {
	var out []*models.Inspection
	for _, insp := range f.inspections {
		out = append(out, insp)
	}
	return out, int64(len(out)), nil
}

func (f *fakeInspectionRepo) ListByPlate(ctx context.Context, plateNumber string, params *utils.PaginationParams) ([]*models.Inspection, int64, error) {
	var out []*models.Inspection
	for _, insp := range f.inspections {
		if insp.PlateNumber == plateNumber {
			out = append(out, insp)
		}
	}
	return out, int64(len(out)), nil
}

type fakeStorage struct {
	uploads []string
	deleted []string
}

func (f *fakeStorage) Upload(ctx context.Context, request *storage.UploadRequest) (*storage.UploadResponse, error) {
	f.uploads = append(f.uploads, request.Key)
	return &storage.UploadResponse{
		Key: request.Key,
		URL: "https://files.test/" + request.Key,
	}, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return fmt.Errorf("username %s already taken", user.Username)
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return user, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, user := range f.users {
		out = append(out, user)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id primitive.ObjectID, role models.Role) error {
	user, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user not found")
	}
	user.Role = role
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.users, id)
	return nil
}

type fakeGeocoder struct {
	names map[string]string
}

func (f *fakeGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	key := fmt.Sprintf("%.5f:%.5f", lat, lng)
	if name, ok := f.names[key]; ok {
		return name, nil
	}
	return "", fmt.Errorf("no place at %s", key)
}
