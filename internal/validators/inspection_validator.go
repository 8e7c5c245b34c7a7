package validators

import (
	"fmt"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
)

// ValidateInspection checks an inspection submission. Severity levels only
// make sense on items flagged as a problem.
func ValidateInspection(insp *models.Inspection) ValidationErrors {
	errors := ValidateStruct(insp)

	checkItems := func(prefix string, items []models.ItemCondition) {
		for i, item := range items {
			if !item.Problem && item.Severity != "" && item.Severity != models.SeverityNone {
				errors = append(errors, ValidationError{
					Field:   fmt.Sprintf("%s[%d].severity", prefix, i),
					Tag:     "oneof",
					Value:   string(item.Severity),
					Message: "severity may only be set on items marked as a problem",
				})
			}
			if item.Problem {
				switch item.Severity {
				case models.SeverityMinor, models.SeverityModerate, models.SeveritySevere:
				default:
					errors = append(errors, ValidationError{
						Field:   fmt.Sprintf("%s[%d].severity", prefix, i),
						Tag:     "required",
						Value:   string(item.Severity),
						Message: "problem items require a severity of minor, moderate or severe",
					})
				}
			}
		}
	}

	checkItems("body", insp.Body.Items())
	checkItems("interior", insp.Interior.Items())

	return errors
}
