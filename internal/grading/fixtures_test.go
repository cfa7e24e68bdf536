package grading

import "github.com/SAP-F-2025/gradebook-service/internal/models"

func ptr(v float64) *float64 {
	return &v
}

func scores(kv map[string]float64) map[string]*float64 {
	out := make(map[string]*float64, len(kv))
	for k, v := range kv {
		out[k] = ptr(v)
	}
	return out
}

func linked(ids ...string) []models.LinkedCriterion {
	out := make([]models.LinkedCriterion, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.LinkedCriterion{CriterionID: id, Ratio: 1})
	}
	return out
}

func directAssignment(id, categoryID, periodID string, criteria ...string) models.Assignment {
	return models.Assignment{
		ID:                 id,
		Name:               id,
		CategoryID:         categoryID,
		EvaluationPeriodID: periodID,
		EvaluationMethod:   models.MethodDirectGrade,
		LinkedCriteria:     linked(criteria...),
	}
}

func recoveryAssignment(id, categoryID, periodID string, recovers ...string) models.Assignment {
	a := directAssignment(id, categoryID, periodID)
	a.RecoversAssignmentIDs = recovers
	return a
}

func grade(studentID, assignmentID string, kv map[string]float64) models.Grade {
	return models.Grade{
		StudentID:       studentID,
		AssignmentID:    assignmentID,
		CriterionScores: scores(kv),
	}
}

// examsClass has one normal "Exams" category (weight 100) holding a1 linked to
// c1, graded 6 for s1, and an empty recovery category "Retake".
func examsClass() models.ClassData {
	return models.ClassData{
		ID:       "class-1",
		Name:     "1A",
		CourseID: "course-1",
		Students: []models.Student{
			{ID: "s1", FirstName: "Ana", LastName: "Ruiz"},
		},
		Categories: []models.Category{
			{ID: "exams", Name: "Exams", Weight: 100, EvaluationPeriodID: "p1", Type: models.CategoryNormal},
			{ID: "retake", Name: "Retake", Weight: 0, EvaluationPeriodID: "p1", Type: models.CategoryRecovery},
		},
		Assignments: []models.Assignment{
			directAssignment("a1", "exams", "p1", "c1"),
		},
		Grades: []models.Grade{
			grade("s1", "a1", map[string]float64{"c1": 6}),
		},
	}
}

func criteria(ids ...string) []models.Criterion {
	out := make([]models.Criterion, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Criterion{ID: id, Code: id, CourseID: "course-1"})
	}
	return out
}

func ratingScale() models.EvaluationTool {
	return models.EvaluationTool{
		ID:   "scale-1",
		Type: models.ToolRatingScale,
		Name: "Oral presentation",
		Levels: []models.ToolLevel{
			{ID: "low", Name: "Low", Points: 1},
			{ID: "mid", Name: "Mid", Points: 2},
			{ID: "high", Name: "High", Points: 4},
		},
		Items: []models.EvaluationItem{
			{ID: "i1", Description: "Clarity", Weight: 1, LinkedCriteriaIDs: []string{"c1"}},
			{ID: "i2", Description: "Content", Weight: 2, LinkedCriteriaIDs: []string{"c1", "c2"}},
		},
	}
}
