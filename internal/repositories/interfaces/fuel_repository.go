package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
	"github.com/MhiretKiros/TTMS-sub002/internal/utils"
)

type FuelRepository interface {
	Create(ctx context.Context, req *models.FuelOilGreaseRequest) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.FuelOilGreaseRequest, error)
	Replace(ctx context.Context, req *models.FuelOilGreaseRequest) error

	List(ctx context.Context, params *utils.PaginationParams) ([]*models.FuelOilGreaseRequest, int64, error)
	ListByStatus(ctx context.Context, status models.FuelRequestStatus, params *utils.PaginationParams) ([]*models.FuelOilGreaseRequest, int64, error)
	ListByMechanic(ctx context.Context, mechanicName string, params *utils.PaginationParams) ([]*models.FuelOilGreaseRequest, int64, error)

	// ListPendingFulfillment returns nezek-approved requests that have not
	// been fulfilled yet.
	ListPendingFulfillment(ctx context.Context, params *utils.PaginationParams) ([]*models.FuelOilGreaseRequest, int64, error)
}
