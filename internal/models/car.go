package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CarSource distinguishes the two upstream car collections.
type CarSource string

const (
	CarSourceService CarSource = "service"
	CarSourceRent    CarSource = "rent"
)

type CarStatus string

const (
	CarStatusAvailable     CarStatus = "Available"
	CarStatusInMaintenance CarStatus = "InMaintenance"
	CarStatusInTransfer    CarStatus = "InTransfer"
	CarStatusNotReady      CarStatus = "NotReady"
)

// Car is a record from either the organization ("service") or rent car
// collection. The Source field is set by the repository, never stored.
type Car struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Source           CarSource          `json:"source" bson:"-"`
	PlateNumber      string             `json:"plateNumber" bson:"plate_number" validate:"required"`
	Model            string             `json:"model" bson:"model"`
	VehicleType      string             `json:"vehicleType" bson:"vehicle_type"`
	TotalSeats       int                `json:"totalSeats" bson:"total_seats"`
	LoadCapacity     float64            `json:"loadCapacity,omitempty" bson:"load_capacity,omitempty"`
	Status           CarStatus          `json:"status" bson:"status"`
	Inspected        bool               `json:"inspected" bson:"inspected"`
	InspectionResult InspectionStatus   `json:"inspectionResult,omitempty" bson:"inspection_result,omitempty"`
	LatestInspection primitive.ObjectID `json:"latestInspectionId,omitempty" bson:"latest_inspection_id,omitempty"`
	CreatedAt        time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updatedAt" bson:"updated_at"`
}

// PublicID is the source-prefixed identifier the read model exposes, e.g.
// "service-64f1..." or "rent-64f1...", so callers can tell the two
// collections apart.
func (c *Car) PublicID() string {
	return fmt.Sprintf("%s-%s", c.Source, c.ID.Hex())
}

// Waypoint is one lat/lng point on an assigned route. Name is resolved by
// reverse geocoding and never stored.
type Waypoint struct {
	Latitude  float64 `json:"lat" bson:"lat"`
	Longitude float64 `json:"lng" bson:"lng"`
	Name      string  `json:"name,omitempty" bson:"-"`
}

// Route is a car's assigned service route, keyed by plate number.
type Route struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PlateNumber string             `json:"plateNumber" bson:"plate_number"`
	Source      CarSource          `json:"source" bson:"source"`
	Destination string             `json:"destination,omitempty" bson:"destination,omitempty"`
	Waypoints   []Waypoint         `json:"waypoints" bson:"waypoints"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
}

// CarSeatView is the joined read model for the seat-assignment screens.
// AvailableSeats is recomputed on every read, never persisted.
type CarSeatView struct {
	ID                string     `json:"id"`
	PlateNumber       string     `json:"plateNumber"`
	Model             string     `json:"model"`
	TotalSeats        int        `json:"totalSeats"`
	AssignedEmployees []Employee `json:"assignedEmployees"`
	AvailableSeats    int        `json:"availableSeats"`
	Destination       string     `json:"destination,omitempty"`
	Waypoints         []Waypoint `json:"waypoints,omitempty"`
}
