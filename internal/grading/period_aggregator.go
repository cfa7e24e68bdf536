package grading

import (
	"fmt"

	"github.com/SAP-F-2025/gradebook-service/internal/models"
)

// NotAvailable is the final grade shown when no weighted period has a grade.
const NotAvailable = "N/A"

type PeriodGrade struct {
	Grade          *float64       `json:"grade"`
	Classification Classification `json:"classification"`
}

type FinalGrade struct {
	Grade          string         `json:"grade"`
	Value          *float64       `json:"value"`
	Classification Classification `json:"classification"`
}

// EvaluationPeriodGrade weights the category averages of one period. Recovery
// scores replace the scores of the assignments they retake before averaging.
// An empty scale falls back to DefaultGradeScale.
func EvaluationPeriodGrade(studentID string, class models.ClassData, periodID string, scale models.GradeScale) PeriodGrade {
	grade := periodGrade(studentID, class, periodID)
	return PeriodGrade{
		Grade:          grade,
		Classification: ColorClass(grade, scaleOrDefault(scale)),
	}
}

func periodGrade(studentID string, class models.ClassData, periodID string) *float64 {
	grades := studentGrades(studentID, class.Grades)
	_, recoveryAssignments := partitionAssignments(class, periodID)
	substitutes := assignmentRecoveries(collectRecoveries(recoveryAssignments, grades))

	var period weightedMean
	for _, cat := range class.Categories {
		if cat.IsRecovery() || cat.EvaluationPeriodID != periodID {
			continue
		}

		var category mean
		for i := range class.Assignments {
			a := &class.Assignments[i]
			if a.CategoryID != cat.ID {
				continue
			}
			if substitute, ok := substitutes[a.ID]; ok {
				category.add(substitute)
				continue
			}
			category.addScore(SingleAssignmentScore(*a, grades[a.ID]))
		}

		if avg := category.value(); avg != nil {
			period.add(*avg, cat.Weight)
		}
	}
	return period.value()
}

// OverallFinalGrade weights the period grades with the configured period
// weights. Periods without a weight contribute nothing. The grade is rendered
// with two decimals, or NotAvailable when nothing was weighted.
func OverallFinalGrade(studentID string, class models.ClassData, config models.AcademicConfiguration) FinalGrade {
	scale := scaleOrDefault(config.GradeScale)

	var final weightedMean
	for _, p := range config.EvaluationPeriods {
		weight, ok := config.EvaluationPeriodWeights[p.ID]
		if !ok || weight <= 0 {
			continue
		}
		if grade := periodGrade(studentID, class, p.ID); grade != nil {
			final.add(*grade, weight)
		}
	}

	value := final.value()
	if value == nil {
		return FinalGrade{Grade: NotAvailable, Classification: NoData}
	}
	return FinalGrade{
		Grade:          fmt.Sprintf("%.2f", *value),
		Value:          value,
		Classification: ColorClass(value, scale),
	}
}
