package dto

import (
	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations hooks domain-aware validations into gin's binding
// engine. Must be called once before the router starts serving.
func RegisterCustomValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency", validateCurrency)
	}
}

// validateCurrency accepts only the supported currency codes.
func validateCurrency(fl validator.FieldLevel) bool {
	return domain.Currency(fl.Field().String()).IsSupported()
}
