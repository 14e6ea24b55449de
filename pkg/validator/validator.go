package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FormatValidationErrors turns binding failures into a field -> messages map
// suitable for the 422 response body. Non-validator errors map to a single
// generic entry so the caller never branches on the error shape.
func FormatValidationErrors(err error) map[string][]string {
	formatted := make(map[string][]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		formatted["body"] = []string{err.Error()}
		return formatted
	}

	for _, fieldError := range validationErrors {
		field := fieldError.Field()
		formatted[field] = append(formatted[field], fieldErrorMessage(fieldError))
	}

	return formatted
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or greater", field, fe.Param())
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
