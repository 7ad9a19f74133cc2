// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("recurrence_type", validateRecurrenceType)
		_ = v.RegisterValidation("recurrence_period", validateRecurrencePeriod)
		_ = v.RegisterValidation("aggregation_mode", validateAggregationMode)
	}
}

func validateRecurrenceType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "one-time", "recurring":
		return true
	}
	return false
}

func validateRecurrencePeriod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "daily", "weekly", "monthly", "yearly", "custom":
		return true
	}
	return false
}

func validateAggregationMode(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "all", "current":
		return true
	}
	return false
}
