package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator configures the binding validator to report JSON field names
// in validation errors instead of Go struct field names
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	}
}

// ValidationMessage translates a binding error into a field name and a
// human-readable message. For non-validator errors the field is empty.
func ValidationMessage(err error) (field, message string) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return "", err.Error()
	}

	e := validationErrors[0]
	switch e.Tag() {
	case "required":
		return e.Field(), "This field is required"
	case "min":
		if e.Type().Kind() == reflect.String {
			return e.Field(), "Must be at least " + e.Param() + " characters"
		}
		return e.Field(), "Must be at least " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return e.Field(), "Must be at most " + e.Param() + " characters"
		}
		return e.Field(), "Must be at most " + e.Param()
	case "uuid":
		return e.Field(), "Invalid UUID format"
	case "oneof":
		return e.Field(), "Must be one of: " + e.Param()
	case "gt":
		return e.Field(), "Must be greater than " + e.Param()
	case "gte":
		return e.Field(), "Must be greater than or equal to " + e.Param()
	case "lte":
		return e.Field(), "Must be less than or equal to " + e.Param()
	case "dive":
		return e.Field(), "Invalid value"
	default:
		return e.Field(), "Invalid value"
	}
}
