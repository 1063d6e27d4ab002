package utils

import (
	"sync"

	"meet-halfway/internal/models"

	"github.com/go-playground/validator/v10"
)

// Validator wraps a validator.Validate with the domain tags registered.
type Validator struct {
	validate *validator.Validate
}

var (
	validatorOnce sync.Once
	validatorInst *Validator
)

// GetValidator returns the shared request validator. Besides the built-in
// tags it understands "category" and "radius".
func GetValidator() *Validator {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
			return models.Category(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("radius", func(fl validator.FieldLevel) bool {
			return models.ValidRadius(int(fl.Field().Int()))
		})
		validatorInst = &Validator{validate: v}
	})
	return validatorInst
}

// Validate checks a request struct. It also satisfies echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
