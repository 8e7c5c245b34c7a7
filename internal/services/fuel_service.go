package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
	"github.com/MhiretKiros/TTMS-sub002/internal/repositories/interfaces"
	"github.com/MhiretKiros/TTMS-sub002/internal/utils"
	"github.com/MhiretKiros/TTMS-sub002/internal/workflow"
	"github.com/MhiretKiros/TTMS-sub002/pkg/logger"
)

type FuelService interface {
	Create(ctx context.Context, actor models.Actor, req *models.FuelOilGreaseRequest) (*models.FuelOilGreaseRequest, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.FuelOilGreaseRequest, error)

	// ListForActor scopes the list to the actor's stage of the chain:
	// mechanics see their own requests, the head mechanic sees PENDING ones,
	// the nezek official sees CHECKED ones, admins see everything.
	ListForActor(ctx context.Context, actor models.Actor, params *utils.PaginationParams) ([]*models.FuelOilGreaseRequest, int64, error)
	ListByStatus(ctx context.Context, status models.FuelRequestStatus, params *utils.PaginationParams) ([]*models.FuelOilGreaseRequest, int64, error)
	ListByMechanic(ctx context.Context, mechanicName string, params *utils.PaginationParams) ([]*models.FuelOilGreaseRequest, int64, error)
	ListPendingFulfillment(ctx context.Context, params *utils.PaginationParams) ([]*models.FuelOilGreaseRequest, int64, error)

	// Update lets the originating mechanic amend a request that nobody has
	// reviewed yet.
	Update(ctx context.Context, actor models.Actor, id primitive.ObjectID, updated *models.FuelOilGreaseRequest) (*models.FuelOilGreaseRequest, error)

	HeadMechanicReview(ctx context.Context, actor models.Actor, id primitive.ObjectID) (*models.FuelOilGreaseRequest, error)
	NezekReview(ctx context.Context, actor models.Actor, id primitive.ObjectID, approve bool) (*models.FuelOilGreaseRequest, error)
	Fulfill(ctx context.Context, actor models.Actor, id primitive.ObjectID, payload *models.FulfillmentPayload) (*models.FuelOilGreaseRequest, error)
}

type fuelService struct {
	fuelRepo interfaces.FuelRepository
	carRepo  interfaces.CarRepository
	logger   *logger.Logger
}

func NewFuelService(fuelRepo interfaces.FuelRepository, carRepo interfaces.CarRepository, log *logger.Logger) FuelService {
	return &fuelService{
		fuelRepo: fuelRepo,
		carRepo:  carRepo,
		logger:   log,
	}
}

func (s *fuelService) Create(ctx context.Context, actor models.Actor, req *models.FuelOilGreaseRequest) (*models.FuelOilGreaseRequest, error) {
	if _, err := s.carRepo.GetByPlate(ctx, req.PlateNumber); err != nil {
		return nil, err
	}

	if req.MechanicName == "" {
		req.MechanicName = actor.Name
	}
	if req.RequestDate.IsZero() {
		req.RequestDate = time.Now()
	}

	// Review and fulfillment fields belong to later chain events; whatever
	// rode in on the create body is dropped.
	req.Status = models.FuelRequestStatusPending
	req.NezekOfficialStatus = models.NezekStatusPending
	req.HeadMechanicApproved = nil
	req.HeadMechanicName = ""
	req.NezekOfficialName = ""
	req.IsFulfilled = false
	for _, item := range req.Items() {
		item.Filled = models.FillDetails{}
	}

	if err := s.fuelRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"request_id":   req.ID.Hex(),
		"plate_number": req.PlateNumber,
		"mechanic":     req.MechanicName,
	}).Info("Fuel request created")

	return req, nil
}

func (s *fuelService) Get(ctx context.Context, id primitive.ObjectID) (*models.FuelOilGreaseRequest, error) {
	return s.fuelRepo.GetByID(ctx, id)
}

func (s *fuelService) ListForActor(ctx context.Context, actor models.Actor, params *utils.PaginationParams) ([]*models.FuelOilGreaseRequest, int64, error) {
	switch actor.Role {
	case models.RoleMechanic:
		return s.fuelRepo.ListByMechanic(ctx, actor.Name, params)
	case models.RoleHeadMechanic:
		return s.fuelRepo.ListByStatus(ctx, models.FuelRequestStatusPending, params)
	case models.RoleNezekOfficial:
		return s.fuelRepo.ListByStatus(ctx, models.FuelRequestStatusChecked, params)
	}
	return s.fuelRepo.List(ctx, params)
}

func (s *fuelService) ListByStatus(ctx context.Context, status models.FuelRequestStatus, params *utils.PaginationParams) ([]*models.FuelOilGreaseRequest, int64, error) {
	return s.fuelRepo.ListByStatus(ctx, status, params)
}

func (s *fuelService) ListByMechanic(ctx context.Context, mechanicName string, params *utils.PaginationParams) ([]*models.FuelOilGreaseRequest, int64, error) {
	return s.fuelRepo.ListByMechanic(ctx, mechanicName, params)
}

func (s *fuelService) ListPendingFulfillment(ctx context.Context, params *utils.PaginationParams) ([]*models.FuelOilGreaseRequest, int64, error) {
	return s.fuelRepo.ListPendingFulfillment(ctx, params)
}

func (s *fuelService) Update(ctx context.Context, actor models.Actor, id primitive.ObjectID, updated *models.FuelOilGreaseRequest) (*models.FuelOilGreaseRequest, error) {
	req, err := s.fuelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.Role != models.RoleMechanic || actor.Name != req.MechanicName {
		return nil, fmt.Errorf("%w: only the originating mechanic may edit this request", workflow.ErrPermissionDenied)
	}
	if req.Status != models.FuelRequestStatusPending && req.Status != models.FuelRequestStatusDraft {
		return nil, fmt.Errorf("%w: request is already under review", workflow.ErrInvalidTransition)
	}

	req.CarType = updated.CarType
	req.KmReading = updated.KmReading
	req.ShortExplanation = updated.ShortExplanation

	// Only the requested side of each section is mechanic-writable; the
	// filled side is locked until fulfillment.
	req.Fuel = requestedSide(updated.Fuel)
	req.MotorOil = requestedSide(updated.MotorOil)
	req.BrakeFluid = requestedSide(updated.BrakeFluid)
	req.SteeringFluid = requestedSide(updated.SteeringFluid)
	req.Grease = requestedSide(updated.Grease)

	if err := s.fuelRepo.Replace(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func requestedSide(item *models.RequestItem) *models.RequestItem {
	if item == nil {
		return nil
	}
	return &models.RequestItem{
		Type:      item.Type,
		Requested: item.Requested,
		Details:   item.Details,
	}
}

func (s *fuelService) HeadMechanicReview(ctx context.Context, actor models.Actor, id primitive.ObjectID) (*models.FuelOilGreaseRequest, error) {
	req, err := s.fuelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := workflow.ReviewByHeadMechanic(req, actor, time.Now()); err != nil {
		return nil, err
	}
	if err := s.fuelRepo.Replace(ctx, req); err != nil {
		return nil, err
	}

	s.logger.WithRequestID(req.ID.Hex()).Info("Fuel request checked by head mechanic")
	return req, nil
}

func (s *fuelService) NezekReview(ctx context.Context, actor models.Actor, id primitive.ObjectID, approve bool) (*models.FuelOilGreaseRequest, error) {
	req, err := s.fuelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := workflow.ReviewByNezek(req, actor, approve, time.Now()); err != nil {
		return nil, err
	}
	if err := s.fuelRepo.Replace(ctx, req); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"request_id": req.ID.Hex(),
		"status":     req.NezekOfficialStatus,
	}).Info("Fuel request reviewed by nezek official")

	return req, nil
}

func (s *fuelService) Fulfill(ctx context.Context, actor models.Actor, id primitive.ObjectID, payload *models.FulfillmentPayload) (*models.FuelOilGreaseRequest, error) {
	req, err := s.fuelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := workflow.Fulfill(req, actor, payload, time.Now()); err != nil {
		return nil, err
	}
	if err := s.fuelRepo.Replace(ctx, req); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"request_id":   req.ID.Hex(),
		"plate_number": req.PlateNumber,
	}).Info("Fuel request fulfilled")

	return req, nil
}
