package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
	"github.com/MhiretKiros/TTMS-sub002/internal/repositories/interfaces"
	"github.com/MhiretKiros/TTMS-sub002/internal/utils"
	"github.com/MhiretKiros/TTMS-sub002/internal/workflow"
	"github.com/MhiretKiros/TTMS-sub002/pkg/logger"
	"github.com/MhiretKiros/TTMS-sub002/pkg/storage"
)

// TransactionRunner is the slice of pkg/database the service needs for the
// request-plus-car writes.
type TransactionRunner interface {
	WithTransaction(ctx context.Context, fn func(sessCtx mongo.SessionContext) (interface{}, error)) (interface{}, error)
}

type MaintenanceService interface {
	Create(ctx context.Context, actor models.Actor, req *models.MaintenanceRequest) (*models.MaintenanceRequest, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.MaintenanceRequest, error)

	// ListForActor returns the actor's work queue: status-filtered for the
	// reviewing roles, own requests for drivers, everything for admins.
	ListForActor(ctx context.Context, actor models.Actor, params *utils.PaginationParams) ([]*models.MaintenanceRequest, int64, error)

	// UpdateStatus drives the PATCH ?status= transitions: CHECKED, REJECTED,
	// APPROVED and COMPLETED.
	UpdateStatus(ctx context.Context, actor models.Actor, id primitive.ObjectID, target models.MaintenanceStatus, diagnosis string) (*models.MaintenanceRequest, error)

	// SubmitAcceptance records the workshop hand-over. Files are stored
	// first; the request update and the car status write then commit in one
	// transaction so a half-applied acceptance can never be observed.
	SubmitAcceptance(ctx context.Context, actor models.Actor, id primitive.ObjectID, payload *models.AcceptancePayload, attachments, carImages []*multipart.FileHeader) (*models.MaintenanceRequest, error)

	UploadFiles(ctx context.Context, actor models.Actor, id primitive.ObjectID, files []*multipart.FileHeader) (*models.MaintenanceRequest, error)

	// CompleteReturn closes out a completed request and releases the car
	// back to Available, again in one transaction.
	CompleteReturn(ctx context.Context, actor models.Actor, id primitive.ObjectID, payload *models.ReturnPayload, files []*multipart.FileHeader) (*models.MaintenanceRequest, error)

	UploadReturnFiles(ctx context.Context, actor models.Actor, id primitive.ObjectID, files []*multipart.FileHeader) (*models.MaintenanceRequest, error)

	PermittedEvents(actor models.Actor, status models.MaintenanceStatus) []workflow.MaintenanceEvent
}

type maintenanceService struct {
	db              TransactionRunner
	maintenanceRepo interfaces.MaintenanceRepository
	carRepo         interfaces.CarRepository
	storageProvider storage.StorageProvider
	logger          *logger.Logger
}

func NewMaintenanceService(
	db TransactionRunner,
	maintenanceRepo interfaces.MaintenanceRepository,
	carRepo interfaces.CarRepository,
	storageProvider storage.StorageProvider,
	log *logger.Logger,
) MaintenanceService {
	return &maintenanceService{
		db:              db,
		maintenanceRepo: maintenanceRepo,
		carRepo:         carRepo,
		storageProvider: storageProvider,
		logger:          log,
	}
}

func (s *maintenanceService) Create(ctx context.Context, actor models.Actor, req *models.MaintenanceRequest) (*models.MaintenanceRequest, error) {
	status, err := workflow.NextMaintenanceStatus("", workflow.EventCreate, actor.Role)
	if err != nil {
		return nil, err
	}

	// The car must exist in one of the two fleet collections.
	if _, err := s.carRepo.GetByPlate(ctx, req.PlateNumber); err != nil {
		return nil, fmt.Errorf("failed to resolve car: %w", err)
	}

	req.Status = status
	if req.ReportingDriver == "" {
		req.ReportingDriver = actor.Name
	}

	// Diagnosis, acceptance and return fields are written by later
	// lifecycle events, never by the create body. A pre-populated
	// acceptance would let completion skip the workshop hand-over.
	req.MechanicDiagnosis = ""
	req.RequestingPersonnel = ""
	req.AuthorizingPersonnel = ""
	req.FuelAmount = 0
	req.Attachments = nil
	req.PhysicalContent = nil
	req.Notes = nil
	req.CarImages = nil
	req.Signatures = nil
	req.ReturnKilometerReading = 0
	req.ReturnFuelAmount = 0
	req.ReturnNotes = ""
	req.ReturnFiles = nil
	req.ReturnSignatures = nil

	if err := s.maintenanceRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"request_id":   req.ID.Hex(),
		"plate_number": req.PlateNumber,
		"driver":       req.ReportingDriver,
	}).Info("Maintenance request created")

	return req, nil
}

func (s *maintenanceService) Get(ctx context.Context, id primitive.ObjectID) (*models.MaintenanceRequest, error) {
	return s.maintenanceRepo.GetByID(ctx, id)
}

func (s *maintenanceService) ListForActor(ctx context.Context, actor models.Actor, params *utils.PaginationParams) ([]*models.MaintenanceRequest, int64, error) {
	if actor.Role == models.RoleDriver {
		return s.maintenanceRepo.ListByDriver(ctx, actor.Name, params)
	}
	if statuses := workflow.RoleView(actor.Role); statuses != nil {
		return s.maintenanceRepo.ListByStatuses(ctx, statuses, params)
	}
	return s.maintenanceRepo.List(ctx, params)
}

func (s *maintenanceService) UpdateStatus(ctx context.Context, actor models.Actor, id primitive.ObjectID, target models.MaintenanceStatus, diagnosis string) (*models.MaintenanceRequest, error) {
	req, err := s.maintenanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event, err := workflow.StatusEvent(req.Status, target)
	if err != nil {
		return nil, err
	}

	if event == workflow.EventMarkComplete {
		if err := workflow.MarkComplete(req, actor, time.Now()); err != nil {
			return nil, err
		}
	} else {
		next, err := workflow.NextMaintenanceStatus(req.Status, event, actor.Role)
		if err != nil {
			return nil, err
		}
		req.Status = next
		if event == workflow.EventApprove && diagnosis != "" {
			req.MechanicDiagnosis = diagnosis
		}
	}

	if err := s.maintenanceRepo.Replace(ctx, req); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"request_id": req.ID.Hex(),
		"status":     req.Status,
		"actor_role": actor.Role,
	}).Info("Maintenance request status updated")

	return req, nil
}

func (s *maintenanceService) SubmitAcceptance(ctx context.Context, actor models.Actor, id primitive.ObjectID, payload *models.AcceptancePayload, attachments, carImages []*multipart.FileHeader) (*models.MaintenanceRequest, error) {
	req, err := s.maintenanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Gate the transition before touching storage so a refused hand-over
	// leaves no orphaned files behind.
	if err := workflow.CanSubmitAcceptance(req, actor); err != nil {
		return nil, err
	}

	attachmentURLs, attachmentKeys, err := s.storeFiles(ctx, "maintenance/"+id.Hex()+"/acceptance", attachments)
	if err != nil {
		return nil, err
	}
	imageURLs, imageKeys, err := s.storeFiles(ctx, "maintenance/"+id.Hex()+"/car-images", carImages)
	if err != nil {
		s.removeFiles(ctx, attachmentKeys)
		return nil, err
	}
	storedKeys := append(attachmentKeys, imageKeys...)

	payload.Attachments = append(payload.Attachments, attachmentURLs...)
	payload.CarImages = append(payload.CarImages, imageURLs...)

	if err := workflow.ApplyAcceptance(req, actor, payload, time.Now()); err != nil {
		s.removeFiles(ctx, storedKeys)
		return nil, err
	}

	_, err = s.db.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if err := s.maintenanceRepo.Replace(sessCtx, req); err != nil {
			return nil, err
		}
		if err := s.carRepo.UpdateStatusByPlate(sessCtx, req.PlateNumber, models.CarStatusInMaintenance); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		s.removeFiles(ctx, storedKeys)
		return nil, fmt.Errorf("failed to commit acceptance: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"request_id":   req.ID.Hex(),
		"plate_number": req.PlateNumber,
		"fuel_amount":  req.FuelAmount,
	}).Info("Maintenance acceptance recorded")

	return req, nil
}

func (s *maintenanceService) UploadFiles(ctx context.Context, actor models.Actor, id primitive.ObjectID, files []*multipart.FileHeader) (*models.MaintenanceRequest, error) {
	req, err := s.maintenanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Same gate as the acceptance event: approved request, driver or
	// inspector.
	if _, err := workflow.NextMaintenanceStatus(req.Status, workflow.EventSubmitAcceptance, actor.Role); err != nil {
		return nil, err
	}

	urls, storedKeys, err := s.storeFiles(ctx, "maintenance/"+id.Hex()+"/attachments", files)
	if err != nil {
		return nil, err
	}
	req.Attachments = append(req.Attachments, urls...)

	if err := s.maintenanceRepo.Replace(ctx, req); err != nil {
		s.removeFiles(ctx, storedKeys)
		return nil, err
	}
	return req, nil
}

func (s *maintenanceService) CompleteReturn(ctx context.Context, actor models.Actor, id primitive.ObjectID, payload *models.ReturnPayload, files []*multipart.FileHeader) (*models.MaintenanceRequest, error) {
	req, err := s.maintenanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := workflow.CanSubmitReturn(req, actor); err != nil {
		return nil, err
	}

	urls, storedKeys, err := s.storeFiles(ctx, "maintenance/"+id.Hex()+"/return", files)
	if err != nil {
		return nil, err
	}
	payload.ReturnFiles = append(payload.ReturnFiles, urls...)

	if err := workflow.ApplyReturn(req, actor, payload, time.Now()); err != nil {
		s.removeFiles(ctx, storedKeys)
		return nil, err
	}

	_, err = s.db.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if err := s.maintenanceRepo.Replace(sessCtx, req); err != nil {
			return nil, err
		}
		if err := s.carRepo.UpdateStatusByPlate(sessCtx, req.PlateNumber, models.CarStatusAvailable); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		s.removeFiles(ctx, storedKeys)
		return nil, fmt.Errorf("failed to commit return: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"request_id":   req.ID.Hex(),
		"plate_number": req.PlateNumber,
		"km_reading":   req.ReturnKilometerReading,
	}).Info("Maintenance return completed")

	return req, nil
}

func (s *maintenanceService) UploadReturnFiles(ctx context.Context, actor models.Actor, id primitive.ObjectID, files []*multipart.FileHeader) (*models.MaintenanceRequest, error) {
	req, err := s.maintenanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := workflow.NextMaintenanceStatus(req.Status, workflow.EventSubmitReturn, actor.Role); err != nil {
		return nil, err
	}

	urls, storedKeys, err := s.storeFiles(ctx, "maintenance/"+id.Hex()+"/return", files)
	if err != nil {
		return nil, err
	}
	req.ReturnFiles = append(req.ReturnFiles, urls...)

	if err := s.maintenanceRepo.Replace(ctx, req); err != nil {
		s.removeFiles(ctx, storedKeys)
		return nil, err
	}
	return req, nil
}

func (s *maintenanceService) PermittedEvents(actor models.Actor, status models.MaintenanceStatus) []workflow.MaintenanceEvent {
	return workflow.PermittedEvents(actor.Role, status)
}

// storeFiles uploads a batch of attachments and returns both the public
// URLs and the storage keys, so callers can undo the batch if a later step
// fails. The batch itself is all-or-nothing: when a later file fails,
// already stored objects are removed best-effort.
func (s *maintenanceService) storeFiles(ctx context.Context, prefix string, files []*multipart.FileHeader) ([]string, []string, error) {
	var urls []string
	var keys []string
	for _, header := range files {
		if err := utils.ValidateUpload(header.Filename, header.Size); err != nil {
			s.removeFiles(ctx, keys)
			return nil, nil, err
		}

		file, err := header.Open()
		if err != nil {
			s.removeFiles(ctx, keys)
			return nil, nil, fmt.Errorf("failed to open uploaded file %s: %w", header.Filename, err)
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = utils.GetContentType(header.Filename)
		}

		key := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), filepath.Ext(header.Filename))
		resp, err := s.storageProvider.Upload(ctx, &storage.UploadRequest{
			Key:         key,
			Reader:      file,
			ContentType: contentType,
			Size:        header.Size,
		})
		file.Close()
		if err != nil {
			s.removeFiles(ctx, keys)
			return nil, nil, fmt.Errorf("failed to store file %s: %w", header.Filename, err)
		}
		urls = append(urls, resp.URL)
		keys = append(keys, resp.Key)
	}
	return urls, keys, nil
}

func (s *maintenanceService) removeFiles(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.storageProvider.Delete(ctx, key); err != nil {
			s.logger.WithError(err).WithField("key", key).Warn("Failed to remove stored attachment")
		}
	}
}
