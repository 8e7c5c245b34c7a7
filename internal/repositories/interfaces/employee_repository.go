package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
)

type EmployeeRepository interface {
	List(ctx context.Context) ([]*models.Employee, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error)

	AssignCar(ctx context.Context, assignment *models.CarAssignment) error
	RemoveAssignment(ctx context.Context, assignmentID primitive.ObjectID) error

	// AssignedEmployeesByPlate joins the assignment collection against the
	// employee collection and groups the result by plate number.
	AssignedEmployeesByPlate(ctx context.Context) (map[string][]models.Employee, error)
	CountAssignmentsByPlate(ctx context.Context, plateNumber string) (int64, error)
}
