package validator

import (
	"reflect"
	"strings"

	apperrors "github.com/SAP-F-2025/gradebook-service/internal/errors"
	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"github.com/go-playground/validator/v10"
)

type (
	ValidationError  = apperrors.ValidationError
	ValidationErrors = apperrors.ValidationErrors
)

// Validator is the main validator instance that combines all validation types
type Validator struct {
	structValidator   *validator.Validate
	businessValidator *BusinessValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:   structValidator,
		businessValidator: NewBusinessValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// ValidateBusiness validates business rules only. Only gradebook snapshots
// carry business rules; any other value passes.
func (v *Validator) ValidateBusiness(s interface{}) ValidationErrors {
	switch book := s.(type) {
	case *models.Gradebook:
		return v.businessValidator.ValidateGradebook(book)
	case models.Gradebook:
		return v.businessValidator.ValidateGradebook(&book)
	}
	return nil
}

// Validate performs complete validation (struct + business rules). Struct tag
// failures are returned as ValidationErrors too.
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		if errs := apperrors.ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}

	if errs := v.ValidateBusiness(s); len(errs) > 0 {
		return errs
	}

	return nil
}

// Business returns the business validator
func (v *Validator) Business() *BusinessValidator {
	return v.businessValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("evaluation_method", validateEvaluationMethod)
	validate.RegisterValidation("category_type", validateCategoryType)
	validate.RegisterValidation("tool_type", validateToolType)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateEvaluationMethod(fl validator.FieldLevel) bool {
	switch models.EvaluationMethod(fl.Field().String()) {
	case models.MethodDirectGrade, models.MethodChecklist, models.MethodRatingScale, models.MethodRubric:
		return true
	}
	return false
}

// An empty category type is read as normal.
func validateCategoryType(fl validator.FieldLevel) bool {
	switch models.CategoryType(fl.Field().String()) {
	case "", models.CategoryNormal, models.CategoryRecovery:
		return true
	}
	return false
}

func validateToolType(fl validator.FieldLevel) bool {
	switch models.ToolType(fl.Field().String()) {
	case models.ToolChecklist, models.ToolRatingScale, models.ToolRubric:
		return true
	}
	return false
}
