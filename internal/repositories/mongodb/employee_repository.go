package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
	"github.com/MhiretKiros/TTMS-sub002/internal/repositories/interfaces"
)

type employeeRepository struct {
	employees   *mongo.Collection
	assignments *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) interfaces.EmployeeRepository {
	return &employeeRepository{
		employees:   db.Collection("employees"),
		assignments: db.Collection("car_assignments"),
	}
}

func (r *employeeRepository) List(ctx context.Context) ([]*models.Employee, error) {
	cursor, err := r.employees.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "full_name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer cursor.Close(ctx)

	var employees []*models.Employee
	for cursor.Next(ctx) {
		var emp models.Employee
		if err := cursor.Decode(&emp); err != nil {
			return nil, fmt.Errorf("failed to decode employee: %w", err)
		}
		employees = append(employees, &emp)
	}
	return employees, nil
}

func (r *employeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error) {
	var emp models.Employee
	err := r.employees.FindOne(ctx, bson.M{"employee_id": employeeID}).Decode(&emp)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("employee not found")
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return &emp, nil
}

func (r *employeeRepository) AssignCar(ctx context.Context, assignment *models.CarAssignment) error {
	assignment.ID = primitive.NewObjectID()
	assignment.PlateNumber = strings.ToUpper(assignment.PlateNumber)
	assignment.AssignedAt = time.Now()

	// One seat per employee. An employee moving cars must be unassigned first.
	count, err := r.assignments.CountDocuments(ctx, bson.M{"employee_id": assignment.EmployeeID})
	if err != nil {
		return fmt.Errorf("failed to check existing assignment: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("employee is already assigned to a car")
	}

	_, err = r.assignments.InsertOne(ctx, assignment)
	if err != nil {
		return fmt.Errorf("failed to create car assignment: %w", err)
	}
	return nil
}

func (r *employeeRepository) RemoveAssignment(ctx context.Context, assignmentID primitive.ObjectID) error {
	result, err := r.assignments.DeleteOne(ctx, bson.M{"_id": assignmentID})
	if err != nil {
		return fmt.Errorf("failed to remove car assignment: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("car assignment not found")
	}
	return nil
}

func (r *employeeRepository) AssignedEmployeesByPlate(ctx context.Context) (map[string][]models.Employee, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         "employees",
			"localField":   "employee_id",
			"foreignField": "_id",
			"as":           "employee",
		}}},
		{{Key: "$unwind", Value: "$employee"}},
	}

	cursor, err := r.assignments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate car assignments: %w", err)
	}
	defer cursor.Close(ctx)

	type assignedRow struct {
		PlateNumber string          `bson:"plate_number"`
		Employee    models.Employee `bson:"employee"`
	}

	byPlate := make(map[string][]models.Employee)
	for cursor.Next(ctx) {
		var row assignedRow
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode car assignment: %w", err)
		}
		byPlate[row.PlateNumber] = append(byPlate[row.PlateNumber], row.Employee)
	}
	return byPlate, nil
}

func (r *employeeRepository) CountAssignmentsByPlate(ctx context.Context, plateNumber string) (int64, error) {
	count, err := r.assignments.CountDocuments(ctx, bson.M{"plate_number": strings.ToUpper(plateNumber)})
	if err != nil {
		return 0, fmt.Errorf("failed to count car assignments: %w", err)
	}
	return count, nil
}
