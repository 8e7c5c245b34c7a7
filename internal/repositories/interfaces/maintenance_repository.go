package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
	"github.com/MhiretKiros/TTMS-sub002/internal/utils"
)

type MaintenanceRepository interface {
	Create(ctx context.Context, req *models.MaintenanceRequest) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.MaintenanceRequest, error)

	// Replace persists a request after the workflow layer has mutated it.
	// Callers run it inside a session context when a car status write rides
	// along.
	Replace(ctx context.Context, req *models.MaintenanceRequest) error

	List(ctx context.Context, params *utils.PaginationParams) ([]*models.MaintenanceRequest, int64, error)
	ListByStatuses(ctx context.Context, statuses []models.MaintenanceStatus, params *utils.PaginationParams) ([]*models.MaintenanceRequest, int64, error)
	ListByDriver(ctx context.Context, driverName string, params *utils.PaginationParams) ([]*models.MaintenanceRequest, int64, error)

	CountByStatus(ctx context.Context, status models.MaintenanceStatus) (int64, error)
}
