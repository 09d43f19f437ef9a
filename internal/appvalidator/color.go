package appvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Hex notation (#abc, #aabbcc, with optional alpha) or a CSS color keyword
var color = regexp.MustCompile(`^(#([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})|[a-zA-Z]{3,20})$`)

func ValidateColor(fl validator.FieldLevel) bool {
	return color.MatchString(fl.Field().String())
}
