package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FuelRequestStatus string

const (
	FuelRequestStatusDraft     FuelRequestStatus = "DRAFT"
	FuelRequestStatusPending   FuelRequestStatus = "PENDING"
	FuelRequestStatusChecked   FuelRequestStatus = "CHECKED"
	FuelRequestStatusApproved  FuelRequestStatus = "APPROVED"
	FuelRequestStatusRejected  FuelRequestStatus = "REJECTED"
	FuelRequestStatusFulfilled FuelRequestStatus = "FULFILLED"
)

type NezekStatus string

const (
	NezekStatusPending  NezekStatus = "PENDING"
	NezekStatusApproved NezekStatus = "APPROVED"
	NezekStatusRejected NezekStatus = "REJECTED"
)

// FillDetails holds one measured quantity, used for both the requested and
// the actually filled side of a request item.
type FillDetails struct {
	Measurement string  `json:"measurement" bson:"measurement"`
	Amount      float64 `json:"amount" bson:"amount"`
	Price       float64 `json:"price" bson:"price"`
}

// RequestItem is one consumable section of a fuel/oil/grease request.
type RequestItem struct {
	Type      string      `json:"type" bson:"type"`
	Requested FillDetails `json:"requested" bson:"requested"`
	Filled    FillDetails `json:"filled" bson:"filled"`
	Details   string      `json:"details,omitempty" bson:"details,omitempty"`
}

type FuelOilGreaseRequest struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RequestDate      time.Time          `json:"requestDate" bson:"request_date"`
	CarType          string             `json:"carType" bson:"car_type" validate:"required"`
	PlateNumber      string             `json:"plateNumber" bson:"plate_number" validate:"required"`
	KmReading        float64            `json:"kmReading" bson:"km_reading"`
	ShortExplanation string             `json:"shortExplanation" bson:"short_explanation"`

	Fuel          *RequestItem `json:"fuel,omitempty" bson:"fuel,omitempty"`
	MotorOil      *RequestItem `json:"motorOil,omitempty" bson:"motor_oil,omitempty"`
	BrakeFluid    *RequestItem `json:"brakeFluid,omitempty" bson:"brake_fluid,omitempty"`
	SteeringFluid *RequestItem `json:"steeringFluid,omitempty" bson:"steering_fluid,omitempty"`
	Grease        *RequestItem `json:"grease,omitempty" bson:"grease,omitempty"`

	MechanicName         string            `json:"mechanicName" bson:"mechanic_name" validate:"required"`
	HeadMechanicName     string            `json:"headMechanicName,omitempty" bson:"head_mechanic_name,omitempty"`
	HeadMechanicApproved *bool             `json:"headMechanicApproved" bson:"head_mechanic_approved"`
	NezekOfficialName    string            `json:"nezekOfficialName,omitempty" bson:"nezek_official_name,omitempty"`
	NezekOfficialStatus  NezekStatus       `json:"nezekOfficialStatus" bson:"nezek_official_status"`
	IsFulfilled          bool              `json:"isFulfilled" bson:"is_fulfilled"`
	Status               FuelRequestStatus `json:"status" bson:"status"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// Items returns the populated consumable sections in a stable order.
func (r *FuelOilGreaseRequest) Items() []*RequestItem {
	var items []*RequestItem
	for _, item := range []*RequestItem{r.Fuel, r.MotorOil, r.BrakeFluid, r.SteeringFluid, r.Grease} {
		if item != nil {
			items = append(items, item)
		}
	}
	return items
}

// FulfillmentPayload carries the filled.* values the originating mechanic
// records once the NEZEK official has approved the request.
type FulfillmentPayload struct {
	MechanicName  string       `json:"mechanicName"`
	Fuel          *FillDetails `json:"fuel,omitempty"`
	MotorOil      *FillDetails `json:"motorOil,omitempty"`
	BrakeFluid    *FillDetails `json:"brakeFluid,omitempty"`
	SteeringFluid *FillDetails `json:"steeringFluid,omitempty"`
	Grease        *FillDetails `json:"grease,omitempty"`
}
