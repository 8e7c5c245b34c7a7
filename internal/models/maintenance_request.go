package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MaintenanceStatus string

const (
	MaintenanceStatusPending    MaintenanceStatus = "PENDING"
	MaintenanceStatusChecked    MaintenanceStatus = "CHECKED"
	MaintenanceStatusRejected   MaintenanceStatus = "REJECTED"
	MaintenanceStatusApproved   MaintenanceStatus = "APPROVED"
	MaintenanceStatusInspection MaintenanceStatus = "INSPECTION"
	MaintenanceStatusCompleted  MaintenanceStatus = "COMPLETED"
	MaintenanceStatusFinished   MaintenanceStatus = "FINISHED"
)

type WorkCategory string

const (
	WorkCategoryEngine       WorkCategory = "Engine"
	WorkCategoryTransmission WorkCategory = "Transmission"
	WorkCategoryBrakes       WorkCategory = "Brakes"
	WorkCategorySuspension   WorkCategory = "Suspension"
	WorkCategoryElectrical   WorkCategory = "Electrical"
	WorkCategoryBody         WorkCategory = "Body"
	WorkCategoryInterior     WorkCategory = "Interior"
	WorkCategoryTires        WorkCategory = "Tires"
	WorkCategoryOther        WorkCategory = "Other"
)

// Signature is a captured sign-off by one workflow actor.
type Signature struct {
	Role      string    `json:"role" bson:"role"`
	Name      string    `json:"name" bson:"name"`
	Signature string    `json:"signature" bson:"signature"`
	Date      time.Time `json:"date" bson:"date"`
}

type MaintenanceRequest struct {
	ID                  primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PlateNumber         string             `json:"plateNumber" bson:"plate_number" validate:"required"`
	VehicleType         string             `json:"vehicleType" bson:"vehicle_type" validate:"required"`
	ReportingDriver     string             `json:"reportingDriver" bson:"reporting_driver" validate:"required"`
	CategoryWorkProcess WorkCategory       `json:"categoryWorkProcess" bson:"category_work_process" validate:"required"`
	KilometerReading    float64            `json:"kilometerReading" bson:"kilometer_reading"`
	DefectDetails       string             `json:"defectDetails" bson:"defect_details" validate:"required"`
	MechanicDiagnosis   string             `json:"mechanicDiagnosis,omitempty" bson:"mechanic_diagnosis,omitempty"`
	Status              MaintenanceStatus  `json:"status" bson:"status"`

	// Acceptance payload, written once when the approved request is handed
	// over to the workshop.
	RequestingPersonnel  string      `json:"requestingPersonnel,omitempty" bson:"requesting_personnel,omitempty"`
	AuthorizingPersonnel string      `json:"authorizingPersonnel,omitempty" bson:"authorizing_personnel,omitempty"`
	FuelAmount           float64     `json:"fuelAmount,omitempty" bson:"fuel_amount,omitempty"`
	Attachments          []string    `json:"attachments,omitempty" bson:"attachments,omitempty"`
	PhysicalContent      []string    `json:"physicalContent,omitempty" bson:"physical_content,omitempty"`
	Notes                []string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CarImages            []string    `json:"carImages,omitempty" bson:"car_images,omitempty"`
	Signatures           []Signature `json:"signatures,omitempty" bson:"signatures,omitempty"`

	// Return payload, written once when the inspector closes out a completed
	// request.
	ReturnKilometerReading float64     `json:"returnKilometerReading,omitempty" bson:"return_kilometer_reading,omitempty"`
	ReturnFuelAmount       float64     `json:"returnFuelAmount,omitempty" bson:"return_fuel_amount,omitempty"`
	ReturnNotes            string      `json:"returnNotes,omitempty" bson:"return_notes,omitempty"`
	ReturnFiles            []string    `json:"returnFiles,omitempty" bson:"return_files,omitempty"`
	ReturnSignatures       []Signature `json:"returnSignatures,omitempty" bson:"return_signatures,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// AcceptancePayload is the single atomic submission that enriches an approved
// request. Files arrive in the same multipart request and are stored before
// the transactional update.
type AcceptancePayload struct {
	FuelAmount           float64     `json:"fuelAmount"`
	RequestingPersonnel  string      `json:"requestingPersonnel"`
	AuthorizingPersonnel string      `json:"authorizingPersonnel"`
	PhysicalContent      []string    `json:"physicalContent"`
	Notes                []string    `json:"notes"`
	Attachments          []string    `json:"attachments"`
	CarImages            []string    `json:"carImages"`
	Signatures           []Signature `json:"signatures"`
}

// ReturnPayload closes out a completed request.
type ReturnPayload struct {
	ReturnKilometerReading float64     `json:"returnKilometerReading"`
	ReturnFuelAmount       float64     `json:"returnFuelAmount"`
	ReturnNotes            string      `json:"returnNotes"`
	ReturnFiles            []string    `json:"returnFiles"`
	ReturnSignatures       []Signature `json:"returnSignatures"`
}

func (s MaintenanceStatus) IsTerminal() bool {
	return s == MaintenanceStatusRejected || s == MaintenanceStatusFinished
}

func (s MaintenanceStatus) Valid() bool {
	switch s {
	case MaintenanceStatusPending, MaintenanceStatusChecked, MaintenanceStatusRejected,
		MaintenanceStatusApproved, MaintenanceStatusInspection, MaintenanceStatusCompleted,
		MaintenanceStatusFinished:
		return true
	}
	return false
}

func (c WorkCategory) Valid() bool {
	switch c {
	case WorkCategoryEngine, WorkCategoryTransmission, WorkCategoryBrakes,
		WorkCategorySuspension, WorkCategoryElectrical, WorkCategoryBody,
		WorkCategoryInterior, WorkCategoryTires, WorkCategoryOther:
		return true
	}
	return false
}
