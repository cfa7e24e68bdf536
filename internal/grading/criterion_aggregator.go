package grading

import "github.com/SAP-F-2025/gradebook-service/internal/models"

// StudentCriterionGrades computes a 0-10 grade per criterion for one student.
// The base grade is the plain mean of every score recorded for the criterion
// on normal assignments; recovery assignments can then raise it. periodID
// limits the assignments to one evaluation period, empty means all.
func StudentCriterionGrades(studentID string, class models.ClassData, criteria []models.Criterion, periodID string) map[string]*float64 {
	grades := studentGrades(studentID, class.Grades)
	normal, recoveryAssignments := partitionAssignments(class, periodID)

	result := make(map[string]*float64, len(criteria))
	for _, c := range criteria {
		var m mean
		for _, a := range normal {
			g := grades[a.ID]
			if g == nil {
				continue
			}
			m.addScore(g.CriterionScores[c.ID])
		}
		result[c.ID] = m.value()
	}

	recoveries := collectRecoveries(recoveryAssignments, grades)
	applyCriterionRecoveries(result, recoveries, assignmentIndex(class.Assignments), grades)

	return result
}
