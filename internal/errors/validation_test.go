package errors

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("weight", "must be at most 100", 120)

	assert.Equal(t, "weight", err.Field)
	assert.Equal(t, "must be at most 100", err.Message)
	assert.Equal(t, 120, err.Value)
	assert.Equal(t, "validation error on field 'weight': must be at most 100", err.Error())
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	assert.Equal(t, "validation failed", errs.Error())

	errs = append(errs, *NewValidationError("field1", "message1", nil))
	assert.Equal(t, "validation failed: field1 message1", errs.Error())

	errs = append(errs, *NewValidationError("field2", "message2", nil))
	assert.Equal(t, "validation failed: 2 field errors", errs.Error())
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("type", "must be a valid category type (normal, recovery)", "category_type", "bonus")

	assert.Equal(t, "category_type", err.Rule)
	assert.Equal(t, "type", err.Field)
}

type category struct {
	ID     string  `json:"id" validate:"required"`
	Weight float64 `json:"weight" validate:"min=0,max=100"`
}

type snapshot struct {
	Categories []category `json:"categories" validate:"dive"`
}

func TestToValidationErrors(t *testing.T) {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})

	err := v.Struct(snapshot{Categories: []category{{ID: "exams", Weight: 40}, {Weight: 140}}})
	require.Error(t, err)

	errs := ToValidationErrors(fmt.Errorf("save gradebook: %w", err))
	require.Len(t, errs, 2)

	byField := map[string]ValidationError{}
	for _, e := range errs {
		byField[e.Field] = e
	}
	assert.Equal(t, "is required", byField["categories[1].id"].Message)
	assert.Equal(t, "must be at most 100", byField["categories[1].weight"].Message)
	assert.Equal(t, "max", byField["categories[1].weight"].Rule)
}

func TestToValidationErrors_OtherErrors(t *testing.T) {
	assert.Empty(t, ToValidationErrors(fmt.Errorf("boom")))
	assert.Empty(t, ToValidationErrors(nil))
}
