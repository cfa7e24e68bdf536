package grading

import "github.com/SAP-F-2025/gradebook-service/internal/models"

// ProjectToolResults computes the criterionScores stored with a tool-based
// grade. When the assignment links criteria, each of them receives the tool's
// global score; otherwise the per-criterion scores derived from the tool items
// are stored.
func ProjectToolResults(a models.Assignment, tool models.EvaluationTool, results map[string]models.ToolResult) map[string]*float64 {
	scores := make(map[string]*float64)

	if len(a.LinkedCriteria) > 0 {
		global := ToolGlobalScore(tool, results)
		for _, lc := range a.LinkedCriteria {
			scores[lc.CriterionID] = Score(global)
		}
		return scores
	}

	for criterionID, v := range CriterionScoresFromTool(tool, results) {
		scores[criterionID] = Score(v)
	}
	return scores
}

// ProjectDirectGrade computes the criterionScores stored for a single directly
// entered score. A recovery assignment with no linked criteria keeps the value
// under RecoveryGradeKey. A nil score clears every linked criterion.
func ProjectDirectGrade(a models.Assignment, category models.Category, score *float64) map[string]*float64 {
	scores := make(map[string]*float64)

	if category.IsRecovery() && len(a.LinkedCriteria) == 0 {
		scores[models.RecoveryGradeKey] = clampScore(score)
		return scores
	}

	for _, lc := range a.LinkedCriteria {
		scores[lc.CriterionID] = clampScore(score)
	}
	return scores
}

// GradeInput is what a teacher records for one student on one assignment.
// Exactly one of ToolResults, CriterionScores or Score is expected; when
// several are set they are tried in that order.
type GradeInput struct {
	StudentID       string
	ToolResults     map[string]models.ToolResult
	CriterionScores map[string]*float64
	Score           *float64
}

// BuildGrade turns a grade entry into the Grade record the aggregators read.
// tool may be nil for direct-grade assignments.
func BuildGrade(a models.Assignment, category models.Category, tool *models.EvaluationTool, in GradeInput) models.Grade {
	g := models.Grade{
		StudentID:    in.StudentID,
		AssignmentID: a.ID,
	}

	switch {
	case a.UsesTool() && tool != nil && in.ToolResults != nil:
		g.ToolResults = in.ToolResults
		g.CriterionScores = ProjectToolResults(a, *tool, in.ToolResults)
	case in.CriterionScores != nil:
		g.CriterionScores = make(map[string]*float64, len(in.CriterionScores))
		for criterionID, v := range in.CriterionScores {
			g.CriterionScores[criterionID] = clampScore(v)
		}
	default:
		g.CriterionScores = ProjectDirectGrade(a, category, in.Score)
	}
	return g
}

func clampScore(v *float64) *float64 {
	if !hasScore(v) {
		return nil
	}
	switch {
	case *v < 0:
		return Score(0)
	case *v > MaxScore:
		return Score(MaxScore)
	}
	return Score(*v)
}
