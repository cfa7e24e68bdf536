// Package grading turns recorded grades into assignment, criterion,
// competence, period and course scores. Every function is pure: it reads the
// snapshot it is given and returns freshly computed values. A nil *float64
// always means "no data" and is never folded into an average as zero.
package grading

import (
	"math"

	"github.com/SAP-F-2025/gradebook-service/internal/models"
)

// MaxScore is the top of the closed 0-10 scale every score lives on.
const MaxScore = 10.0

// Score wraps a value as a present score.
func Score(v float64) *float64 {
	return &v
}

func hasScore(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

type mean struct {
	sum   float64
	count int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.count++
}

func (m *mean) addScore(v *float64) {
	if hasScore(v) {
		m.add(*v)
	}
}

func (m mean) value() *float64 {
	if m.count == 0 {
		return nil
	}
	return Score(m.sum / float64(m.count))
}

type weightedMean struct {
	sum    float64
	weight float64
}

func (w *weightedMean) add(v, weight float64) {
	w.sum += v * weight
	w.weight += weight
}

func (w weightedMean) value() *float64 {
	if w.weight <= 0 {
		return nil
	}
	return Score(w.sum / w.weight)
}

// studentGrades indexes the grades of one student by assignment id. The first
// grade recorded for a pair wins.
func studentGrades(studentID string, grades []models.Grade) map[string]*models.Grade {
	index := make(map[string]*models.Grade)
	for i := range grades {
		g := &grades[i]
		if g.StudentID != studentID {
			continue
		}
		if _, seen := index[g.AssignmentID]; !seen {
			index[g.AssignmentID] = g
		}
	}
	return index
}

func categoryIndex(categories []models.Category) map[string]*models.Category {
	index := make(map[string]*models.Category, len(categories))
	for i := range categories {
		index[categories[i].ID] = &categories[i]
	}
	return index
}

func assignmentIndex(assignments []models.Assignment) map[string]*models.Assignment {
	index := make(map[string]*models.Assignment, len(assignments))
	for i := range assignments {
		index[assignments[i].ID] = &assignments[i]
	}
	return index
}

// partitionAssignments splits the class assignments of a period (all periods
// when periodID is empty) into normal and recovery ones. An assignment whose
// category cannot be resolved counts as normal.
func partitionAssignments(class models.ClassData, periodID string) (normal, recovery []*models.Assignment) {
	categories := categoryIndex(class.Categories)
	for i := range class.Assignments {
		a := &class.Assignments[i]
		if periodID != "" && a.EvaluationPeriodID != periodID {
			continue
		}
		if cat, ok := categories[a.CategoryID]; ok && cat.IsRecovery() {
			recovery = append(recovery, a)
			continue
		}
		normal = append(normal, a)
	}
	return normal, recovery
}
