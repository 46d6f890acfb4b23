package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// decimalGtZero validates that a decimal.Decimal field is strictly positive.
// Monetary fields never accept zero or negative values at the boundary.
func decimalGtZero(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return value.IsPositive()
}

// RegisterCustomValidations wires the decimal validation rules into gin's
// validator engine. Must be called once before routes are served.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("decimal_gt_zero", decimalGtZero)
}
