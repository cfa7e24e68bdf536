package grading

import "github.com/SAP-F-2025/gradebook-service/internal/models"

// recovery is one graded recovery assignment together with the assignments it
// retakes.
type recovery struct {
	score   float64
	targets []string
}

// collectRecoveries scores the recovery assignments a student has a usable
// grade for. Recoveries without a score are dropped.
func collectRecoveries(recoveryAssignments []*models.Assignment, grades map[string]*models.Grade) []recovery {
	var recoveries []recovery
	for _, a := range recoveryAssignments {
		g := grades[a.ID]
		if g == nil || !hasAnyScore(g) {
			continue
		}
		score := SingleAssignmentScore(*a, g)
		if score == nil {
			continue
		}
		recoveries = append(recoveries, recovery{
			score:   *score,
			targets: a.RecoversAssignmentIDs,
		})
	}
	return recoveries
}

func hasAnyScore(g *models.Grade) bool {
	for _, v := range g.CriterionScores {
		if hasScore(v) {
			return true
		}
	}
	return false
}

// recoveredCriteria lists the criteria a retaken assignment touches: the
// criterion keys saved on its grade when there are any, otherwise its linked
// criteria. An ungraded tool assignment without linked criteria touches none.
func recoveredCriteria(target *models.Assignment, g *models.Grade) []string {
	if g != nil {
		var keys []string
		for criterionID := range g.CriterionScores {
			if criterionID != models.RecoveryGradeKey {
				keys = append(keys, criterionID)
			}
		}
		if len(keys) > 0 {
			return keys
		}
	}
	return target.LinkedCriterionIDs()
}

// applyCriterionRecoveries raises criterion grades with recovery scores. A
// recovery fills a missing grade or replaces a strictly lower one, so the
// outcome does not depend on the order recoveries are visited in.
func applyCriterionRecoveries(result map[string]*float64, recoveries []recovery, assignments map[string]*models.Assignment, grades map[string]*models.Grade) {
	for _, rec := range recoveries {
		criteriaToRecover := make(map[string]struct{})
		for _, targetID := range rec.targets {
			target, ok := assignments[targetID]
			if !ok {
				continue
			}
			for _, criterionID := range recoveredCriteria(target, grades[targetID]) {
				criteriaToRecover[criterionID] = struct{}{}
			}
		}

		for criterionID := range criteriaToRecover {
			current, tracked := result[criterionID]
			if !tracked {
				continue
			}
			if current == nil || rec.score > *current {
				result[criterionID] = Score(rec.score)
			}
		}
	}
}

// assignmentRecoveries maps each retaken assignment to its recovery score.
// When several recoveries retake the same assignment the highest one is kept.
func assignmentRecoveries(recoveries []recovery) map[string]float64 {
	substitutes := make(map[string]float64)
	for _, rec := range recoveries {
		for _, targetID := range rec.targets {
			if current, ok := substitutes[targetID]; !ok || rec.score > current {
				substitutes[targetID] = rec.score
			}
		}
	}
	return substitutes
}
