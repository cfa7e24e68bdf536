package grading

import (
	"testing"

	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentCriterionGrades_NoGrades(t *testing.T) {
	class := examsClass()
	class.Grades = nil

	got := StudentCriterionGrades("s1", class, criteria("c1", "c2"), "")

	require.Len(t, got, 2)
	for id, v := range got {
		assert.Nil(t, v, "criterion %s", id)
	}
}

func TestStudentCriterionGrades_BaseMean(t *testing.T) {
	class := examsClass()
	class.Assignments = append(class.Assignments,
		directAssignment("a2", "exams", "p1", "c1", "c2"),
		directAssignment("a3", "exams", "p2", "c1"),
	)
	class.Grades = append(class.Grades,
		grade("s1", "a2", map[string]float64{"c1": 9, "c2": 4}),
		grade("s1", "a3", map[string]float64{"c1": 0}),
		grade("s2", "a2", map[string]float64{"c1": 1}),
	)

	all := StudentCriterionGrades("s1", class, criteria("c1", "c2", "c3"), "")
	assert.InDelta(t, 5.0, *all["c1"], 1e-9)
	assert.InDelta(t, 4.0, *all["c2"], 1e-9)
	assert.Nil(t, all["c3"])

	p1 := StudentCriterionGrades("s1", class, criteria("c1"), "p1")
	assert.InDelta(t, 7.5, *p1["c1"], 1e-9)
}

func TestStudentCriterionGrades_RecoveryOverride(t *testing.T) {
	withRecovery := func(recoveryScore float64) models.ClassData {
		class := examsClass()
		class.Grades[0] = grade("s1", "a1", map[string]float64{"c1": 8})
		class.Assignments = append(class.Assignments, recoveryAssignment("r1", "retake", "p1", "a1"))
		class.Grades = append(class.Grades, grade("s1", "r1", map[string]float64{models.RecoveryGradeKey: recoveryScore}))
		return class
	}

	t.Run("lower recovery never lowers the grade", func(t *testing.T) {
		got := StudentCriterionGrades("s1", withRecovery(6), criteria("c1"), "")
		assert.InDelta(t, 8.0, *got["c1"], 1e-9)
	})

	t.Run("higher recovery replaces the grade", func(t *testing.T) {
		got := StudentCriterionGrades("s1", withRecovery(9), criteria("c1"), "")
		assert.InDelta(t, 9.0, *got["c1"], 1e-9)
	})

	t.Run("recovery assignments do not count as normal assignments", func(t *testing.T) {
		class := withRecovery(9)
		class.Grades[1].CriterionScores["c1"] = ptr(0)
		got := StudentCriterionGrades("s1", class, criteria("c1"), "")
		assert.InDelta(t, 9.0, *got["c1"], 1e-9)
	})
}

func TestStudentCriterionGrades_RecoveryFillsGaps(t *testing.T) {
	class := examsClass()
	class.Assignments = append(class.Assignments,
		directAssignment("a2", "exams", "p1", "c2"),
		recoveryAssignment("r1", "retake", "p1", "a2"),
	)
	class.Grades = append(class.Grades, grade("s1", "r1", map[string]float64{models.RecoveryGradeKey: 4}))

	got := StudentCriterionGrades("s1", class, criteria("c1", "c2"), "")

	require.NotNil(t, got["c2"])
	assert.InDelta(t, 4.0, *got["c2"], 1e-9)
	assert.InDelta(t, 6.0, *got["c1"], 1e-9, "c1 is not touched by a2")
}

func TestStudentCriterionGrades_RecoveryUsesSavedCriterionKeys(t *testing.T) {
	class := examsClass()
	// a1 is linked to c1 only, but its saved grade also carries c2.
	class.Grades[0] = grade("s1", "a1", map[string]float64{"c1": 3, "c2": 2})
	class.Assignments = append(class.Assignments, recoveryAssignment("r1", "retake", "p1", "a1"))
	class.Grades = append(class.Grades, grade("s1", "r1", map[string]float64{models.RecoveryGradeKey: 7}))

	got := StudentCriterionGrades("s1", class, criteria("c1", "c2", "c3"), "")

	assert.InDelta(t, 7.0, *got["c1"], 1e-9)
	assert.InDelta(t, 7.0, *got["c2"], 1e-9)
	assert.Nil(t, got["c3"], "criteria outside the recovered set stay untouched")
}

func TestStudentCriterionGrades_RecoveryOrderIndependent(t *testing.T) {
	build := func(first, second float64) models.ClassData {
		class := examsClass()
		class.Assignments = append(class.Assignments,
			recoveryAssignment("r1", "retake", "p1", "a1"),
			recoveryAssignment("r2", "retake", "p1", "a1"),
		)
		class.Grades = append(class.Grades,
			grade("s1", "r1", map[string]float64{models.RecoveryGradeKey: first}),
			grade("s1", "r2", map[string]float64{models.RecoveryGradeKey: second}),
		)
		return class
	}

	a := StudentCriterionGrades("s1", build(7, 9), criteria("c1"), "")
	b := StudentCriterionGrades("s1", build(9, 7), criteria("c1"), "")

	assert.InDelta(t, 9.0, *a["c1"], 1e-9)
	assert.Equal(t, *a["c1"], *b["c1"])
}

func TestStudentCriterionGrades_UngradedToolTargetRecoversNothing(t *testing.T) {
	class := examsClass()
	class.Assignments = append(class.Assignments,
		models.Assignment{
			ID:                 "a2",
			CategoryID:         "exams",
			EvaluationPeriodID: "p1",
			EvaluationMethod:   models.MethodChecklist,
			EvaluationToolID:   "check-1",
		},
		recoveryAssignment("r1", "retake", "p1", "a2"),
	)
	class.Grades = append(class.Grades, grade("s1", "r1", map[string]float64{models.RecoveryGradeKey: 10}))

	got := StudentCriterionGrades("s1", class, criteria("c1", "c2"), "")

	assert.InDelta(t, 6.0, *got["c1"], 1e-9)
	assert.Nil(t, got["c2"])
}

func TestStudentCriterionGrades_RecoveryScopedToPeriod(t *testing.T) {
	class := examsClass()
	class.Categories = append(class.Categories, models.Category{
		ID: "retake-p2", EvaluationPeriodID: "p2", Type: models.CategoryRecovery,
	})
	class.Assignments = append(class.Assignments, recoveryAssignment("r1", "retake-p2", "p2", "a1"))
	class.Grades = append(class.Grades, grade("s1", "r1", map[string]float64{models.RecoveryGradeKey: 10}))

	p1 := StudentCriterionGrades("s1", class, criteria("c1"), "p1")
	assert.InDelta(t, 6.0, *p1["c1"], 1e-9)

	all := StudentCriterionGrades("s1", class, criteria("c1"), "")
	assert.InDelta(t, 10.0, *all["c1"], 1e-9)
}

func TestStudentCriterionGrades_Idempotent(t *testing.T) {
	class := examsClass()
	class.Assignments = append(class.Assignments, recoveryAssignment("r1", "retake", "p1", "a1"))
	class.Grades = append(class.Grades, grade("s1", "r1", map[string]float64{models.RecoveryGradeKey: 9}))

	first := StudentCriterionGrades("s1", class, criteria("c1"), "")
	second := StudentCriterionGrades("s1", class, criteria("c1"), "")

	assert.Equal(t, first, second)
	assert.InDelta(t, 6.0, *class.Grades[0].CriterionScores["c1"], 1e-9, "input snapshot must not change")
}
