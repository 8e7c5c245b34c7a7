package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InspectionStatus string

const (
	InspectionStatusApproved                  InspectionStatus = "Approved"
	InspectionStatusRejected                  InspectionStatus = "Rejected"
	InspectionStatusConditionallyApproved     InspectionStatus = "ConditionallyApproved"
	InspectionStatusPendingBodyInspection     InspectionStatus = "PendingBodyInspection"
	InspectionStatusPendingInteriorInspection InspectionStatus = "PendingInteriorInspection"
)

type ServiceStatus string

const (
	ServiceStatusReady            ServiceStatus = "Ready"
	ServiceStatusReadyWithWarning ServiceStatus = "ReadyWithWarning"
	ServiceStatusNotReady         ServiceStatus = "NotReady"
)

type SeverityLevel string

const (
	SeverityNone     SeverityLevel = "none"
	SeverityMinor    SeverityLevel = "minor"
	SeverityModerate SeverityLevel = "moderate"
	SeveritySevere   SeverityLevel = "severe"
)

// MechanicalChecklist is phase 1: ten pass/fail checks, all of which must
// pass before the body and interior phases are reachable.
type MechanicalChecklist struct {
	EngineCondition bool `json:"engineCondition" bson:"engine_condition"`
	EnginePower     bool `json:"enginePower" bson:"engine_power"`
	Suspension      bool `json:"suspension" bson:"suspension"`
	Brakes          bool `json:"brakes" bson:"brakes"`
	Steering        bool `json:"steering" bson:"steering"`
	Gearbox         bool `json:"gearbox" bson:"gearbox"`
	Mileage         bool `json:"mileage" bson:"mileage"`
	FuelGauge       bool `json:"fuelGauge" bson:"fuel_gauge"`
	TempGauge       bool `json:"tempGauge" bson:"temp_gauge"`
	OilGauge        bool `json:"oilGauge" bson:"oil_gauge"`
}

// ItemCondition is one body or interior defect check.
type ItemCondition struct {
	Problem  bool          `json:"problem" bson:"problem"`
	Severity SeverityLevel `json:"severity" bson:"severity"`
	Notes    string        `json:"notes,omitempty" bson:"notes,omitempty"`
}

// BodyChecklist is phase 2: five named exterior defect checks.
type BodyChecklist struct {
	BodyCollision  ItemCondition `json:"bodyCollision" bson:"body_collision"`
	BodyScratches  ItemCondition `json:"bodyScratches" bson:"body_scratches"`
	PaintCondition ItemCondition `json:"paintCondition" bson:"paint_condition"`
	Breakages      ItemCondition `json:"breakages" bson:"breakages"`
	Cracks         ItemCondition `json:"cracks" bson:"cracks"`
}

// InteriorChecklist is phase 3: twenty-three interior and electrical checks.
type InteriorChecklist struct {
	EngineExhaust       ItemCondition `json:"engineExhaust" bson:"engine_exhaust"`
	SeatComfort         ItemCondition `json:"seatComfort" bson:"seat_comfort"`
	SeatFabric          ItemCondition `json:"seatFabric" bson:"seat_fabric"`
	FloorMat            ItemCondition `json:"floorMat" bson:"floor_mat"`
	RearViewMirror      ItemCondition `json:"rearViewMirror" bson:"rear_view_mirror"`
	CarTab              ItemCondition `json:"carTab" bson:"car_tab"`
	MirrorAdjustment    ItemCondition `json:"mirrorAdjustment" bson:"mirror_adjustment"`
	DoorLock            ItemCondition `json:"doorLock" bson:"door_lock"`
	VentilationSystem   ItemCondition `json:"ventilationSystem" bson:"ventilation_system"`
	DashboardDecoration ItemCondition `json:"dashboardDecoration" bson:"dashboard_decoration"`
	SeatBelt            ItemCondition `json:"seatBelt" bson:"seat_belt"`
	Sunshade            ItemCondition `json:"sunshade" bson:"sunshade"`
	WindowCurtain       ItemCondition `json:"windowCurtain" bson:"window_curtain"`
	InteriorRoof        ItemCondition `json:"interiorRoof" bson:"interior_roof"`
	CarIgnition         ItemCondition `json:"carIgnition" bson:"car_ignition"`
	FuelConsumption     ItemCondition `json:"fuelConsumption" bson:"fuel_consumption"`
	Headlights          ItemCondition `json:"headlights" bson:"headlights"`
	RainWiper           ItemCondition `json:"rainWiper" bson:"rain_wiper"`
	TurnSignalLight     ItemCondition `json:"turnSignalLight" bson:"turn_signal_light"`
	BrakeLight          ItemCondition `json:"brakeLight" bson:"brake_light"`
	LicensePlateLight   ItemCondition `json:"licensePlateLight" bson:"license_plate_light"`
	BatteryStatus       ItemCondition `json:"batteryStatus" bson:"battery_status"`
	ChargingIndicator   ItemCondition `json:"chargingIndicator" bson:"charging_indicator"`
}

func (b *BodyChecklist) Items() []ItemCondition {
	return []ItemCondition{b.BodyCollision, b.BodyScratches, b.PaintCondition, b.Breakages, b.Cracks}
}

func (i *InteriorChecklist) Items() []ItemCondition {
	return []ItemCondition{
		i.EngineExhaust, i.SeatComfort, i.SeatFabric, i.FloorMat, i.RearViewMirror,
		i.CarTab, i.MirrorAdjustment, i.DoorLock, i.VentilationSystem, i.DashboardDecoration,
		i.SeatBelt, i.Sunshade, i.WindowCurtain, i.InteriorRoof, i.CarIgnition,
		i.FuelConsumption, i.Headlights, i.RainWiper, i.TurnSignalLight, i.BrakeLight,
		i.LicensePlateLight, i.BatteryStatus, i.ChargingIndicator,
	}
}

func (m *MechanicalChecklist) Items() []bool {
	return []bool{
		m.EngineCondition, m.EnginePower, m.Suspension, m.Brakes, m.Steering,
		m.Gearbox, m.Mileage, m.FuelGauge, m.TempGauge, m.OilGauge,
	}
}

type Inspection struct {
	ID              primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	PlateNumber     string              `json:"plateNumber" bson:"plate_number" validate:"required"`
	CarSource       CarSource           `json:"carSource" bson:"car_source"`
	InspectorName   string              `json:"inspectorName" bson:"inspector_name" validate:"required"`
	InspectionDate  time.Time           `json:"inspectionDate" bson:"inspection_date"`
	Mechanical      MechanicalChecklist `json:"mechanical" bson:"mechanical"`
	Body            BodyChecklist       `json:"body" bson:"body"`
	Interior        InteriorChecklist   `json:"interior" bson:"interior"`
	OverallStatus   InspectionStatus    `json:"overallStatus" bson:"overall_status"`
	ServiceStatus   ServiceStatus       `json:"serviceStatus" bson:"service_status"`
	BodyScore       int                 `json:"bodyScore" bson:"body_score"`
	InteriorScore   int                 `json:"interiorScore" bson:"interior_score"`
	Notes           string              `json:"notes,omitempty" bson:"notes,omitempty"`
	WarningMessage  string              `json:"warningMessage,omitempty" bson:"warning_message,omitempty"`
	WarningDeadline *time.Time          `json:"warningDeadline,omitempty" bson:"warning_deadline,omitempty"`
	RejectionReason string              `json:"rejectionReason,omitempty" bson:"rejection_reason,omitempty"`
	CreatedAt       time.Time           `json:"createdAt" bson:"created_at"`
}
