package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/localloop/backend/internal/domain/catalog"
)

// RegisterValidators installs custom binding validators on gin's validator
// engine. Call once at startup.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("event_category", validCategory)
}

// validCategory accepts only values from the fixed category set
func validCategory(fl validator.FieldLevel) bool {
	return catalog.IsValidCategory(fl.Field().String())
}
