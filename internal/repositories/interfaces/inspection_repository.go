package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
	"github.com/MhiretKiros/TTMS-sub002/internal/utils"
)

type InspectionRepository interface {
	Create(ctx context.Context, insp *models.Inspection) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Inspection, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Inspection, int64, error)
	ListByPlate(ctx context.Context, plateNumber string, params *utils.PaginationParams) ([]*models.Inspection, int64, error)
}
