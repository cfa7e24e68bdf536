package grading

import "github.com/SAP-F-2025/gradebook-service/internal/models"

type scoringRule int

const (
	ruleRecoveryOverride scoringRule = iota
	ruleGlobalTool
	ruleInternalTool
	ruleDirectGrade
)

// selectRule picks how a grade is read. The order of the guards matters: the
// first matching rule wins.
func selectRule(a models.Assignment, g models.Grade) scoringRule {
	if hasScore(g.CriterionScores[models.RecoveryGradeKey]) {
		return ruleRecoveryOverride
	}
	if a.UsesTool() && a.EvaluationToolID != "" && len(a.LinkedCriteria) > 0 {
		return ruleGlobalTool
	}
	if a.UsesTool() {
		return ruleInternalTool
	}
	return ruleDirectGrade
}

// SingleAssignmentScore returns the 0-10 score of one assignment for the
// student the grade belongs to, or nil when there is nothing to score.
func SingleAssignmentScore(a models.Assignment, g *models.Grade) *float64 {
	if g == nil {
		return nil
	}

	switch selectRule(a, *g) {
	case ruleRecoveryOverride:
		return Score(*g.CriterionScores[models.RecoveryGradeKey])

	case ruleGlobalTool:
		// Every linked criterion got the same global score when the grade was saved.
		v := g.CriterionScores[a.LinkedCriteria[0].CriterionID]
		if !hasScore(v) {
			return nil
		}
		return Score(*v)

	case ruleInternalTool:
		var m mean
		for _, v := range g.CriterionScores {
			m.addScore(v)
		}
		return m.value()

	default:
		var w weightedMean
		for _, lc := range a.LinkedCriteria {
			v := g.CriterionScores[lc.CriterionID]
			if !hasScore(v) {
				continue
			}
			w.add(*v, lc.Ratio)
		}
		return w.value()
	}
}

// AssignmentScoresForStudent scores every assignment for one student. Ungraded
// assignments map to nil.
func AssignmentScoresForStudent(studentID string, assignments []models.Assignment, grades []models.Grade) map[string]*float64 {
	index := studentGrades(studentID, grades)
	scores := make(map[string]*float64, len(assignments))
	for _, a := range assignments {
		scores[a.ID] = SingleAssignmentScore(a, index[a.ID])
	}
	return scores
}
