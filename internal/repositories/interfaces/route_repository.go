package interfaces

import (
	"context"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
)

type RouteRepository interface {
	ListBySource(ctx context.Context, source models.CarSource) ([]*models.Route, error)
	GetByPlate(ctx context.Context, plateNumber string) (*models.Route, error)
}
