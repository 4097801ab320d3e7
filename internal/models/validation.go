package models

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// phonePattern matches an E.164-like number: optional +, no leading zero,
// at most 16 digits.
var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)

// ValidPhone reports whether s looks like a phone number we accept.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// RegisterValidators wires the custom "phone" tag into gin's binding
// validator. Call once at startup before the router handles traffic.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})
}
