package appvalidator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type AppValidator struct {
	validator *validator.Validate
}

// FieldError describes a single failed rule in client-facing terms.
type FieldError struct {
	Field   string `json:"field" example:"title"`
	Message string `json:"message" example:"Title is required"`
}

func New() *AppValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names so errors line up with request bodies
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("color", ValidateColor)

	return &AppValidator{validator: v}
}

func (av *AppValidator) Validate(i any) error {
	if err := av.validator.Struct(i); err != nil {
		return err
	}

	return nil
}

// FormatErrors turns validator errors into FieldErrors. Any other error,
// including nil, yields an empty slice.
func (av *AppValidator) FormatErrors(err error) []FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []FieldError{}
	}

	formatted := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		formatted = append(formatted, FieldError{
			Field:   fieldPath(fe),
			Message: message(fe),
		})
	}

	return formatted
}

// fieldPath drops the root struct name: "DrinkDTO.recipe[0].name" -> "recipe[0].name".
func fieldPath(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}

	return path
}

func message(fe validator.FieldError) string {
	name := fe.Field()
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s item(s)", name, fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "http_url", "url":
		return fmt.Sprintf("%s must be a valid URL", name)
	case "uri":
		return fmt.Sprintf("%s must be a valid URI", name)
	case "color":
		return fmt.Sprintf("%s must be a hex color or a color name", name)
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}
