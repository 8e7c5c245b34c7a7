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

type fuelRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewFuelRepository(db *mongo.Database, cache CacheService) interfaces.FuelRepository {
	return &fuelRepository{
		collection: db.Collection("fuel_requests"),
		cache:      cache,
	}
}

func (r *fuelRepository) Create(ctx context.Context, req *models.FuelOilGreaseRequest) error {
	req.ID = primitive.NewObjectID()
	req.CreatedAt = time.Now()
	req.UpdatedAt = time.Now()
	req.PlateNumber = strings.ToUpper(req.PlateNumber)
	if req.Status == "" {
		req.Status = models.FuelRequestStatusPending
	}
	if req.NezekOfficialStatus == "" {
		req.NezekOfficialStatus = models.NezekStatusPending
	}

	_, err := r.collection.InsertOne(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create fuel request: %w", err)
	}
	return nil
}

func (r *fuelRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.FuelOilGreaseRequest, error) {
	var req models.FuelOilGreaseRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("fuel request not found")
		}
		return nil, fmt.Errorf("failed to get fuel request: %w", err)
	}
	return &req, nil
}

func (r *fuelRepository) Replace(ctx context.Context, req *models.FuelOilGreaseRequest) error {
	req.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": req.ID}, req)
	if err != nil {
		return fmt.Errorf("failed to update fuel request: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("fuel request not found")
	}
	return nil
}

func (r *fuelRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.FuelOilGreaseRequest, int64, error) {
	return r.findWithFilter(ctx, bson.M{}, params)
}

func (r *fuelRepository) ListByStatus(ctx context.Context, status models.FuelRequestStatus, params *utils.PaginationParams) ([]*models.FuelOilGreaseRequest, int64, error) {
	return r.findWithFilter(ctx, bson.M{"status": status}, params)
}

func (r *fuelRepository) ListByMechanic(ctx context.Context, mechanicName string, params *utils.PaginationParams) ([]*models.FuelOilGreaseRequest, int64, error) {
	return r.findWithFilter(ctx, bson.M{"mechanic_name": mechanicName}, params)
}

func (r *fuelRepository) ListPendingFulfillment(ctx context.Context, params *utils.PaginationParams) ([]*models.FuelOilGreaseRequest, int64, error) {
	filter := bson.M{
		"nezek_official_status": models.NezekStatusApproved,
		"is_fulfilled":          false,
	}
	return r.findWithFilter(ctx, filter, params)
}

func (r *fuelRepository) findWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.FuelOilGreaseRequest, int64, error) {
	if params.Search != "" {
		searchFields := []string{"plate_number", "mechanic_name", "car_type", "short_explanation"}
		searchFilter := params.GetSearchFilter(searchFields)
		if len(searchFilter) > 0 {
			filter = bson.M{"$and": []bson.M{filter, searchFilter}}
		}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count fuel requests: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find fuel requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []*models.FuelOilGreaseRequest
	for cursor.Next(ctx) {
		var req models.FuelOilGreaseRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, 0, fmt.Errorf("failed to decode fuel request: %w", err)
		}
		requests = append(requests, &req)
	}

	return requests, total, nil
}
