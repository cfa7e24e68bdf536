package grading

import (
	"math"
	"testing"

	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestColorClass(t *testing.T) {
	scale := models.GradeScale{
		{Min: 0, Color: "red", Label: "Fail"},
		{Min: 5, Color: "yellow", Label: "Pass"},
		{Min: 7, Color: "green", Label: "Good"},
	}

	tests := []struct {
		name  string
		grade *float64
		scale models.GradeScale
		color string
	}{
		{name: "just below a boundary", grade: ptr(6.99), scale: scale, color: "yellow"},
		{name: "on a boundary", grade: ptr(7.0), scale: scale, color: "green"},
		{name: "bottom of the scale", grade: ptr(0), scale: scale, color: "red"},
		{name: "top of the scale", grade: ptr(10), scale: scale, color: "green"},
		{name: "missing grade", grade: nil, scale: scale, color: "gray"},
		{name: "not a number", grade: ptr(math.NaN()), scale: scale, color: "gray"},
		{name: "below every rule", grade: ptr(-1), scale: scale, color: "gray"},
		{
			name:  "unsorted scale",
			grade: ptr(5.5),
			scale: models.GradeScale{scale[2], scale[0], scale[1]},
			color: "yellow",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.color, ColorClass(tt.grade, tt.scale).Color)
		})
	}
}

func TestColorClass_StyleClasses(t *testing.T) {
	got := ColorClass(ptr(9.5), DefaultGradeScale)

	assert.Equal(t, "green", got.Color)
	assert.Equal(t, "Outstanding", got.Label)
	assert.Equal(t, "bg-green-100 text-green-800", got.StyleClasses)
	assert.Equal(t, NoData, ColorClass(nil, DefaultGradeScale))
}

func TestScaleOrDefault(t *testing.T) {
	assert.Equal(t, DefaultGradeScale, scaleOrDefault(nil))

	custom := models.GradeScale{{Min: 0, Color: "black"}}
	assert.Equal(t, custom, scaleOrDefault(custom))
}
