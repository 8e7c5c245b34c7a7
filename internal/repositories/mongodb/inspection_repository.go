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

type inspectionRepository struct {
	collection *mongo.Collection
}

func NewInspectionRepository(db *mongo.Database) interfaces.InspectionRepository {
	return &inspectionRepository{
		collection: db.Collection("inspections"),
	}
}

func (r *inspectionRepository) Create(ctx context.Context, insp *models.Inspection) error {
	insp.ID = primitive.NewObjectID()
	insp.CreatedAt = time.Now()
	insp.PlateNumber = strings.ToUpper(insp.PlateNumber)

	_, err := r.collection.InsertOne(ctx, insp)
	if err != nil {
		return fmt.Errorf("failed to create inspection: %w", err)
	}
	return nil
}

func (r *inspectionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Inspection, error) {
	var insp models.Inspection
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&insp)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("inspection not found")
		}
		return nil, fmt.Errorf("failed to get inspection: %w", err)
	}
	return &insp, nil
}

func (r *inspectionRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Inspection, int64, error) {
	return r.findWithFilter(ctx, bson.M{}, params)
}

func (r *inspectionRepository) ListByPlate(ctx context.Context, plateNumber string, params *utils.PaginationParams) ([]*models.Inspection, int64, error) {
	filter := bson.M{"plate_number": strings.ToUpper(plateNumber)}
	return r.findWithFilter(ctx, filter, params)
}

func (r *inspectionRepository) findWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Inspection, int64, error) {
	if params.Search != "" {
		searchFilter := params.GetSearchFilter([]string{"plate_number", "inspector_name"})
		if len(searchFilter) > 0 {
			filter = bson.M{"$and": []bson.M{filter, searchFilter}}
		}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count inspections: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find inspections: %w", err)
	}
	defer cursor.Close(ctx)

	var inspections []*models.Inspection
	for cursor.Next(ctx) {
		var insp models.Inspection
		if err := cursor.Decode(&insp); err != nil {
			return nil, 0, fmt.Errorf("failed to decode inspection: %w", err)
		}
		inspections = append(inspections, &insp)
	}

	return inspections, total, nil
}
