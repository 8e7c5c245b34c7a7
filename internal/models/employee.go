package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Employee struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	EmployeeID string             `json:"employeeId" bson:"employee_id" validate:"required"`
	FullName   string             `json:"fullName" bson:"full_name" validate:"required"`
	Department string             `json:"department,omitempty" bson:"department,omitempty"`
	Phone      string             `json:"phone,omitempty" bson:"phone,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"created_at"`
}

// CarAssignment links an employee to a car seat by plate number.
type CarAssignment struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	EmployeeID  primitive.ObjectID `json:"employeeId" bson:"employee_id" validate:"required"`
	PlateNumber string             `json:"plateNumber" bson:"plate_number" validate:"required"`
	CarSource   CarSource          `json:"carSource" bson:"car_source"`
	AssignedAt  time.Time          `json:"assignedAt" bson:"assigned_at"`
}
