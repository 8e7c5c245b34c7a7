package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
)

type CarRepository interface {
	// GetByPlate looks the plate up in the organization collection first,
	// then the rent collection; Source is set on the result.
	GetByPlate(ctx context.Context, plateNumber string) (*models.Car, error)

	ListServiceBuses(ctx context.Context) ([]*models.Car, error)
	ListRentBusMinibus(ctx context.Context) ([]*models.Car, error)

	// UpdateStatusByPlate writes the shared vehicle status field on whichever
	// collection owns the plate. Run inside the same session as the workflow
	// transition that triggers it.
	UpdateStatusByPlate(ctx context.Context, plateNumber string, status models.CarStatus) error

	UpdateInspectionStatus(ctx context.Context, source models.CarSource, plateNumber string, result models.InspectionStatus, serviceStatus models.ServiceStatus, inspectionID primitive.ObjectID) error
}
