package validators

import (
	"fmt"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
	"github.com/MhiretKiros/TTMS-sub002/internal/utils"
)

// ValidateFuelRequest checks a new fuel/oil/grease request. At least one
// consumable section must be present and every requested amount must be
// positive.
func ValidateFuelRequest(req *models.FuelOilGreaseRequest) ValidationErrors {
	errors := ValidateStruct(req)

	if req.KmReading < 0 {
		errors = append(errors, ValidationError{
			Field:   "kmReading",
			Tag:     "min",
			Value:   fmt.Sprintf("%v", req.KmReading),
			Message: "km reading must not be negative",
		})
	}

	if len(req.ShortExplanation) > utils.MaxNotesLength {
		errors = append(errors, ValidationError{
			Field:   "shortExplanation",
			Tag:     "max",
			Value:   fmt.Sprintf("%d chars", len(req.ShortExplanation)),
			Message: fmt.Sprintf("short explanation must be at most %d characters", utils.MaxNotesLength),
		})
	}

	items := req.Items()
	if len(items) == 0 {
		errors = append(errors, ValidationError{
			Field:   "items",
			Tag:     "required",
			Message: "at least one of fuel, motorOil, brakeFluid, steeringFluid or grease is required",
		})
	}
	for _, item := range items {
		if item.Requested.Amount <= 0 {
			errors = append(errors, ValidationError{
				Field:   item.Type,
				Tag:     "min",
				Value:   fmt.Sprintf("%v", item.Requested.Amount),
				Message: fmt.Sprintf("requested %s amount must be positive", item.Type),
			})
		}
	}

	return errors
}

// ValidateFulfillmentPayload checks the filled amounts the mechanic records.
func ValidateFulfillmentPayload(p *models.FulfillmentPayload) ValidationErrors {
	var errors ValidationErrors

	check := func(field string, details *models.FillDetails) {
		if details == nil {
			return
		}
		if details.Amount < 0 {
			errors = append(errors, ValidationError{
				Field:   field,
				Tag:     "min",
				Value:   fmt.Sprintf("%v", details.Amount),
				Message: fmt.Sprintf("filled %s amount must not be negative", field),
			})
		}
		if details.Price < 0 {
			errors = append(errors, ValidationError{
				Field:   field,
				Tag:     "min",
				Value:   fmt.Sprintf("%v", details.Price),
				Message: fmt.Sprintf("filled %s price must not be negative", field),
			})
		}
	}
	check("fuel", p.Fuel)
	check("motorOil", p.MotorOil)
	check("brakeFluid", p.BrakeFluid)
	check("steeringFluid", p.SteeringFluid)
	check("grease", p.Grease)

	if p.Fuel == nil && p.MotorOil == nil && p.BrakeFluid == nil && p.SteeringFluid == nil && p.Grease == nil {
		errors = append(errors, ValidationError{
			Field:   "items",
			Tag:     "required",
			Message: "at least one filled section is required",
		})
	}

	return errors
}
