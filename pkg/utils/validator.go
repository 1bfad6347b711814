// Package utils holds request validation helpers shared by the HTTP and CLI adapters.
package utils

import (
	stderrors "errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/turtacn/gdmrisk/pkg/errors"
)

// defaultValidator reads the same `binding` tags gin validates.
var defaultValidator *validator.Validate

var (
	matchFirstCap = regexp.MustCompile("(.)([A-Z][a-z]+)")
	matchAllCap   = regexp.MustCompile("([a-z0-9])([A-Z])")
)

func init() {
	defaultValidator = validator.New()
	defaultValidator.SetTagName("binding")
}

// ValidateStruct validates a struct using its binding tags.
// It returns an invalid_request AppError carrying one metadata entry per field.
func ValidateStruct(s interface{}) error {
	err := defaultValidator.Struct(s)
	if err == nil {
		return nil
	}
	details, ok := ValidationDetails(err)
	if !ok {
		return errors.ErrInvalidRequest(err.Error())
	}
	appErr := errors.ErrInvalidRequest(summarize(details))
	for field, msg := range details {
		appErr = appErr.WithMetadata(field, msg)
	}
	return appErr
}

// ValidationDetails maps validator failures to snake_case field names and
// user-facing messages. ok is false when err holds no field errors.
func ValidationDetails(err error) (map[string]string, bool) {
	var validationErrors validator.ValidationErrors
	if !stderrors.As(err, &validationErrors) {
		return nil, false
	}
	details := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		details[toSnakeCase(fe.Field())] = formatValidationError(fe)
	}
	return details, true
}

// formatValidationError creates a user-friendly error message for a validation error.
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' tag", fe.Tag())
	}
}

func summarize(details map[string]string) string {
	fields := make([]string, 0, len(details))
	for f := range details {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + " " + details[f]
	}
	return strings.Join(parts, "; ")
}

// toSnakeCase converts a string from CamelCase to snake_case.
// This is used to format field names in the validation error response.
func toSnakeCase(str string) string {
	snake := matchFirstCap.ReplaceAllString(str, "${1}_${2}")
	snake = matchAllCap.ReplaceAllString(snake, "${1}_${2}")
	return strings.ToLower(snake)
}
