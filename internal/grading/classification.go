package grading

import (
	"fmt"
	"math"

	"github.com/SAP-F-2025/gradebook-service/internal/models"
)

// Classification is how a score is presented: the grade-scale color and label
// plus the style classes the front end applies.
type Classification struct {
	Color        string `json:"color"`
	Label        string `json:"label,omitempty"`
	StyleClasses string `json:"style_classes"`
}

// NoData is the classification of a missing score.
var NoData = Classification{
	Color:        "gray",
	Label:        "-",
	StyleClasses: "bg-gray-100 text-gray-400",
}

// DefaultGradeScale is used whenever a caller does not configure one.
var DefaultGradeScale = models.GradeScale{
	{Min: 0, Color: "red", Label: "Insufficient"},
	{Min: 5, Color: "orange", Label: "Sufficient"},
	{Min: 6, Color: "yellow", Label: "Good"},
	{Min: 7, Color: "blue", Label: "Notable"},
	{Min: 9, Color: "green", Label: "Outstanding"},
}

// ColorClass classifies a score with the rule of highest min not above it.
// The scale does not need to be sorted.
func ColorClass(grade *float64, scale models.GradeScale) Classification {
	if grade == nil || math.IsNaN(*grade) {
		return NoData
	}

	var best *models.GradeRule
	for i := range scale {
		rule := &scale[i]
		if *grade >= rule.Min && (best == nil || rule.Min > best.Min) {
			best = rule
		}
	}
	if best == nil {
		return NoData
	}

	return Classification{
		Color:        best.Color,
		Label:        best.Label,
		StyleClasses: styleClasses(best.Color),
	}
}

func styleClasses(color string) string {
	return fmt.Sprintf("bg-%s-100 text-%s-800", color, color)
}

func scaleOrDefault(scale models.GradeScale) models.GradeScale {
	if len(scale) == 0 {
		return DefaultGradeScale
	}
	return scale
}
