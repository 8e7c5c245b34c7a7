package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
	"github.com/MhiretKiros/TTMS-sub002/internal/repositories/interfaces"
	"github.com/MhiretKiros/TTMS-sub002/internal/utils"
)

type maintenanceRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewMaintenanceRepository(db *mongo.Database, cache CacheService) interfaces.MaintenanceRepository {
	return &maintenanceRepository{
		collection: db.Collection("maintenance_requests"),
		cache:      cache,
	}
}

func (r *maintenanceRepository) Create(ctx context.Context, req *models.MaintenanceRequest) error {
	req.ID = primitive.NewObjectID()
	req.CreatedAt = time.Now()
	req.UpdatedAt = time.Now()
	req.PlateNumber = strings.ToUpper(req.PlateNumber)

	_, err := r.collection.InsertOne(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create maintenance request: %w", err)
	}
	return nil
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.MaintenanceRequest, error) {
	if req := r.getFromCache(ctx, id.Hex()); req != nil {
		return req, nil
	}

	var req models.MaintenanceRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("maintenance request not found")
		}
		return nil, fmt.Errorf("failed to get maintenance request: %w", err)
	}

	// Terminal requests never change again; cache the rest briefly.
	if r.cache != nil && !req.Status.IsTerminal() {
		r.cache.Set(ctx, utils.CacheMaintenancePrefix+id.Hex(), req, 5*time.Minute)
	}

	return &req, nil
}

func (r *maintenanceRepository) Replace(ctx context.Context, req *models.MaintenanceRequest) error {
	req.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": req.ID}, req)
	if err != nil {
		return fmt.Errorf("failed to update maintenance request: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("maintenance request not found")
	}

	r.invalidateCache(ctx, req.ID.Hex())
	return nil
}

func (r *maintenanceRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.MaintenanceRequest, int64, error) {
	return r.findWithFilter(ctx, bson.M{}, params)
}

func (r *maintenanceRepository) ListByStatuses(ctx context.Context, statuses []models.MaintenanceStatus, params *utils.PaginationParams) ([]*models.MaintenanceRequest, int64, error) {
	filter := bson.M{"status": bson.M{"$in": statuses}}
	return r.findWithFilter(ctx, filter, params)
}

func (r *maintenanceRepository) ListByDriver(ctx context.Context, driverName string, params *utils.PaginationParams) ([]*models.MaintenanceRequest, int64, error) {
	filter := bson.M{"reporting_driver": driverName}
	return r.findWithFilter(ctx, filter, params)
}

func (r *maintenanceRepository) CountByStatus(ctx context.Context, status models.MaintenanceStatus) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}

func (r *maintenanceRepository) findWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.MaintenanceRequest, int64, error) {
	if params.Search != "" {
		searchFields := []string{"plate_number", "reporting_driver", "vehicle_type", "defect_details"}
		searchFilter := params.GetSearchFilter(searchFields)
		if len(searchFilter) > 0 {
			filter = bson.M{"$and": []bson.M{filter, searchFilter}}
		}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count maintenance requests: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find maintenance requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []*models.MaintenanceRequest
	for cursor.Next(ctx) {
		var req models.MaintenanceRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, 0, fmt.Errorf("failed to decode maintenance request: %w", err)
		}
		requests = append(requests, &req)
	}

	return requests, total, nil
}

func (r *maintenanceRepository) getFromCache(ctx context.Context, id string) *models.MaintenanceRequest {
	if r.cache == nil {
		return nil
	}
	var req models.MaintenanceRequest
	if err := r.cache.Get(ctx, utils.CacheMaintenancePrefix+id, &req); err != nil {
		return nil
	}
	return &req
}

func (r *maintenanceRepository) invalidateCache(ctx context.Context, id string) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheMaintenancePrefix+id)
	}
}
