package services

import (
	"fmt"

	"github.com/SAP-F-2025/gradebook-service/internal/grading"
	"github.com/SAP-F-2025/gradebook-service/internal/models"
)

const (
	ruleToolResultsWithoutTool = "tool_results_without_tool"
	ruleUnknownCategory        = "unknown_category"
)

// projectGrade resolves the assignment of a grade entry inside the snapshot
// and builds the Grade record stored for it.
func projectGrade(book *models.Gradebook, entry GradeEntry) (*models.ClassData, models.Grade, error) {
	class, ok := book.Class(entry.ClassID)
	if !ok {
		return nil, models.Grade{}, fmt.Errorf("%w: %s", ErrClassNotFound, entry.ClassID)
	}
	if _, ok := class.Student(entry.StudentID); !ok {
		return nil, models.Grade{}, fmt.Errorf("%w: %s", ErrStudentNotFound, entry.StudentID)
	}
	assignment, ok := class.Assignment(entry.AssignmentID)
	if !ok {
		return nil, models.Grade{}, fmt.Errorf("%w: %s", ErrAssignmentNotFound, entry.AssignmentID)
	}
	category, ok := class.Category(assignment.CategoryID)
	if !ok {
		return nil, models.Grade{}, NewBusinessRuleError(ruleUnknownCategory, "assignment category does not exist", map[string]interface{}{
			"assignment_id": assignment.ID,
			"category_id":   assignment.CategoryID,
		})
	}

	var tool *models.EvaluationTool
	if assignment.UsesTool() && assignment.EvaluationToolID != "" {
		if tool, ok = book.Tool(assignment.EvaluationToolID); !ok {
			return nil, models.Grade{}, fmt.Errorf("%w: %s", ErrToolNotFound, assignment.EvaluationToolID)
		}
	}
	if entry.ToolResults != nil && tool == nil {
		return nil, models.Grade{}, NewBusinessRuleError(ruleToolResultsWithoutTool, "assignment has no evaluation tool to score the results with", map[string]interface{}{
			"assignment_id":     assignment.ID,
			"evaluation_method": assignment.EvaluationMethod,
		})
	}

	grade := grading.BuildGrade(*assignment, *category, tool, grading.GradeInput{
		StudentID:       entry.StudentID,
		ToolResults:     entry.ToolResults,
		CriterionScores: entry.CriterionScores,
		Score:           entry.Score,
	})
	return class, grade, nil
}

// upsertGrade replaces the grade of the same student and assignment, or
// appends it.
func upsertGrade(class *models.ClassData, grade models.Grade) {
	for i := range class.Grades {
		if class.Grades[i].StudentID == grade.StudentID && class.Grades[i].AssignmentID == grade.AssignmentID {
			class.Grades[i] = grade
			return
		}
	}
	class.Grades = append(class.Grades, grade)
}
