package validators

import (
	"fmt"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
	"github.com/MhiretKiros/TTMS-sub002/internal/utils"
)

// ValidateMaintenanceRequest checks the origination fields a driver submits.
func ValidateMaintenanceRequest(req *models.MaintenanceRequest) ValidationErrors {
	errors := ValidateStruct(req)

	if err := validate.Var(req.PlateNumber, "license_plate"); err != nil {
		errors = append(errors, ValidationError{
			Field:   "plateNumber",
			Tag:     "license_plate",
			Value:   req.PlateNumber,
			Message: "Invalid license plate format",
		})
	}

	if !req.CategoryWorkProcess.Valid() {
		errors = append(errors, ValidationError{
			Field:   "categoryWorkProcess",
			Tag:     "oneof",
			Value:   string(req.CategoryWorkProcess),
			Message: fmt.Sprintf("unknown work category %q", req.CategoryWorkProcess),
		})
	}

	if req.KilometerReading < 0 {
		errors = append(errors, ValidationError{
			Field:   "kilometerReading",
			Tag:     "min",
			Value:   fmt.Sprintf("%v", req.KilometerReading),
			Message: "kilometer reading must not be negative",
		})
	}

	if len(req.DefectDetails) > utils.MaxDefectDetailsLength {
		errors = append(errors, ValidationError{
			Field:   "defectDetails",
			Tag:     "max",
			Value:   fmt.Sprintf("%d chars", len(req.DefectDetails)),
			Message: fmt.Sprintf("defect details must be at most %d characters", utils.MaxDefectDetailsLength),
		})
	}

	if len(req.MechanicDiagnosis) > utils.MaxDiagnosisLength {
		errors = append(errors, ValidationError{
			Field:   "mechanicDiagnosis",
			Tag:     "max",
			Value:   fmt.Sprintf("%d chars", len(req.MechanicDiagnosis)),
			Message: fmt.Sprintf("mechanic diagnosis must be at most %d characters", utils.MaxDiagnosisLength),
		})
	}

	return errors
}

// ValidateAcceptancePayload checks the workshop hand-over submission.
func ValidateAcceptancePayload(p *models.AcceptancePayload) ValidationErrors {
	var errors ValidationErrors

	if p.FuelAmount < 0 {
		errors = append(errors, ValidationError{
			Field:   "fuelAmount",
			Tag:     "min",
			Value:   fmt.Sprintf("%v", p.FuelAmount),
			Message: "fuel amount must not be negative",
		})
	}
	if p.RequestingPersonnel == "" {
		errors = append(errors, ValidationError{
			Field:   "requestingPersonnel",
			Tag:     "required",
			Message: "requestingPersonnel is required",
		})
	}
	if len(p.Signatures) == 0 {
		errors = append(errors, ValidationError{
			Field:   "signatures",
			Tag:     "required",
			Message: "at least one signature is required",
		})
	}

	return errors
}

// ValidateReturnPayload checks the close-out submission.
func ValidateReturnPayload(p *models.ReturnPayload) ValidationErrors {
	var errors ValidationErrors

	if p.ReturnKilometerReading < 0 {
		errors = append(errors, ValidationError{
			Field:   "returnKilometerReading",
			Tag:     "min",
			Value:   fmt.Sprintf("%v", p.ReturnKilometerReading),
			Message: "return kilometer reading must not be negative",
		})
	}
	if p.ReturnFuelAmount < 0 {
		errors = append(errors, ValidationError{
			Field:   "returnFuelAmount",
			Tag:     "min",
			Value:   fmt.Sprintf("%v", p.ReturnFuelAmount),
			Message: "return fuel amount must not be negative",
		})
	}
	if len(p.ReturnNotes) > utils.MaxNotesLength {
		errors = append(errors, ValidationError{
			Field:   "returnNotes",
			Tag:     "max",
			Value:   fmt.Sprintf("%d chars", len(p.ReturnNotes)),
			Message: fmt.Sprintf("return notes must be at most %d characters", utils.MaxNotesLength),
		})
	}

	return errors
}
