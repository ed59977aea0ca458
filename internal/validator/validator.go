// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/justmenoble-ux/mano-web-app/internal/categories"
	"github.com/justmenoble-ux/mano-web-app/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("owner", validateOwner)
		_ = v.RegisterValidation("category", validateCategory)
		_ = v.RegisterValidation("recurrence_frequency", validateRecurrenceFrequency)
		_ = v.RegisterValidation("split_type", validateSplitType)
	}
}

func validateOwner(fl validator.FieldLevel) bool {
	return models.Owner(fl.Field().String()).Valid()
}

func validateCategory(fl validator.FieldLevel) bool {
	return categories.Valid(fl.Field().String())
}

func validateRecurrenceFrequency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "weekly", "bi-weekly", "monthly", "quarterly", "yearly":
		return true
	}
	return false
}

func validateSplitType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "50-50", "custom":
		return true
	}
	return false
}
