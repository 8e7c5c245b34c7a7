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

type InspectionService interface {
	// Submit evaluates the three checklists, persists the inspection and
	// writes the derived result back onto the owning car record.
	Submit(ctx context.Context, actor models.Actor, insp *models.Inspection) (*models.Inspection, error)

	Get(ctx context.Context, id primitive.ObjectID) (*models.Inspection, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Inspection, int64, error)
	ListByPlate(ctx context.Context, plateNumber string, params *utils.PaginationParams) ([]*models.Inspection, int64, error)

	// UpdateCarStatus writes an inspection result directly onto a car record
	// for the legacy update-inspection-status endpoints.
	UpdateCarStatus(ctx context.Context, actor models.Actor, source models.CarSource, plateNumber string, result models.InspectionStatus, serviceStatus models.ServiceStatus, inspectionID primitive.ObjectID) error
}

type inspectionService struct {
	inspectionRepo interfaces.InspectionRepository
	carRepo        interfaces.CarRepository
	logger         *logger.Logger
}

func NewInspectionService(inspectionRepo interfaces.InspectionRepository, carRepo interfaces.CarRepository, log *logger.Logger) InspectionService {
	return &inspectionService{
		inspectionRepo: inspectionRepo,
		carRepo:        carRepo,
		logger:         log,
	}
}

func (s *inspectionService) Submit(ctx context.Context, actor models.Actor, insp *models.Inspection) (*models.Inspection, error) {
	if actor.Role != models.RoleInspector && actor.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: role %q may not submit an inspection", workflow.ErrPermissionDenied, actor.Role)
	}

	car, err := s.carRepo.GetByPlate(ctx, insp.PlateNumber)
	if err != nil {
		return nil, err
	}
	insp.CarSource = car.Source
	if insp.InspectorName == "" {
		insp.InspectorName = actor.Name
	}
	if insp.InspectionDate.IsZero() {
		insp.InspectionDate = time.Now()
	}

	outcome := workflow.EvaluateInspection(insp, time.Now())
	insp.OverallStatus = outcome.OverallStatus
	insp.ServiceStatus = outcome.ServiceStatus
	insp.BodyScore = outcome.BodyScore
	insp.InteriorScore = outcome.InteriorScore
	insp.WarningMessage = outcome.WarningMessage
	insp.WarningDeadline = outcome.WarningDeadline
	insp.RejectionReason = outcome.RejectionReason

	if err := s.inspectionRepo.Create(ctx, insp); err != nil {
		return nil, err
	}

	if err := s.carRepo.UpdateInspectionStatus(ctx, car.Source, insp.PlateNumber, insp.OverallStatus, insp.ServiceStatus, insp.ID); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"inspection_id":  insp.ID.Hex(),
		"plate_number":   insp.PlateNumber,
		"overall_status": insp.OverallStatus,
		"service_status": insp.ServiceStatus,
		"body_score":     insp.BodyScore,
		"interior_score": insp.InteriorScore,
	}).Info("Inspection submitted")

	return insp, nil
}

func (s *inspectionService) Get(ctx context.Context, id primitive.ObjectID) (*models.Inspection, error) {
	return s.inspectionRepo.GetByID(ctx, id)
}

func (s *inspectionService) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Inspection, int64, error) {
	return s.inspectionRepo.List(ctx, params)
}

func (s *inspectionService) ListByPlate(ctx context.Context, plateNumber string, params *utils.PaginationParams) ([]*models.Inspection, int64, error) {
	return s.inspectionRepo.ListByPlate(ctx, plateNumber, params)
}

func (s *inspectionService) UpdateCarStatus(ctx context.Context, actor models.Actor, source models.CarSource, plateNumber string, result models.InspectionStatus, serviceStatus models.ServiceStatus, inspectionID primitive.ObjectID) error {
	if actor.Role != models.RoleInspector && actor.Role != models.RoleAdmin {
		return fmt.Errorf("%w: role %q may not update inspection status", workflow.ErrPermissionDenied, actor.Role)
	}
	return s.carRepo.UpdateInspectionStatus(ctx, source, plateNumber, result, serviceStatus, inspectionID)
}
