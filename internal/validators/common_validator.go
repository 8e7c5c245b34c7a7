package validators

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var plateRegex = regexp.MustCompile(`^[A-Za-z0-9-]{2,15}$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("license_plate", validateLicensePlate)
}

// ValidationError is one failed field check, flattened for the API error
// envelope.
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v))
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// ValidateStruct runs the tag-based checks and returns one entry per failed
// field, or nil when the struct is valid.
func ValidateStruct(s interface{}) ValidationErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var out ValidationErrors
	for _, fieldErr := range err.(validator.ValidationErrors) {
		out = append(out, ValidationError{
			Field:   fieldErr.Field(),
			Tag:     fieldErr.Tag(),
			Value:   fmt.Sprintf("%v", fieldErr.Value()),
			Message: errorMessage(fieldErr),
		})
	}
	return out
}

func errorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
	case "license_plate":
		return "Invalid license plate format"
	default:
		return fmt.Sprintf("Validation failed for %s", err.Field())
	}
}

// Empty plates are left to the required tag so the two checks compose.
func validateLicensePlate(fl validator.FieldLevel) bool {
	plate := fl.Field().String()
	if plate == "" {
		return true
	}
	return plateRegex.MatchString(plate)
}
