package grading

import (
	"testing"

	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportBook() *models.Gradebook {
	class := twoPeriodClass()
	class.Students = append(class.Students, models.Student{ID: "s2", FirstName: "Luis"})
	class.Grades = append(class.Grades,
		grade("s2", "a1", map[string]float64{"c1": 4}),
		grade("s2", "b1", map[string]float64{"c1": 10}),
	)

	return &models.Gradebook{
		Classes: []models.ClassData{class},
		Criteria: []models.Criterion{
			{ID: "c1", CompetenceID: "comp1", CourseID: "course-1"},
			{ID: "x1", CompetenceID: "comp-x", CourseID: "course-2"},
		},
		Competences: []models.SpecificCompetence{
			{ID: "comp1", DescriptorIDs: []string{"d1"}, CourseID: "course-1"},
			{ID: "comp-x", DescriptorIDs: []string{"d1"}, CourseID: "course-2"},
		},
		KeyCompetences: []models.KeyCompetence{
			{ID: "k1", Descriptors: []models.Descriptor{{ID: "d1"}}},
		},
		AcademicConfiguration: models.AcademicConfiguration{
			EvaluationPeriods:       []models.EvaluationPeriod{{ID: "p1"}, {ID: "p2"}},
			EvaluationPeriodWeights: map[string]float64{"p1": 50, "p2": 50},
		},
	}
}

func TestBuildStudentReport(t *testing.T) {
	book := reportBook()
	in := NewReportInput(book, book.Classes[0])

	report := BuildStudentReport(in, book.Classes[0].Students[0], "")

	assert.Equal(t, "s1", report.StudentID)
	assert.Equal(t, "Ana Ruiz", report.StudentName)
	assert.InDelta(t, 6.0, *report.Assignments["a1"].Score, 1e-9)
	assert.InDelta(t, 8.0, *report.Assignments["b1"].Score, 1e-9)
	assert.InDelta(t, 6.0, *report.Periods["p1"].Grade, 1e-9)
	assert.InDelta(t, 8.0, *report.Periods["p2"].Grade, 1e-9)
	assert.Equal(t, "7.00", report.Final.Grade)

	require.Contains(t, report.Criteria, "c1")
	assert.NotContains(t, report.Criteria, "x1", "criteria of other courses are left out")
	assert.InDelta(t, 7.0, *report.Criteria["c1"].Score, 1e-9)
	assert.InDelta(t, 7.0, *report.Competences["comp1"].Score, 1e-9)
	assert.InDelta(t, 7.0, *report.KeyCompetences["k1"].Score, 1e-9)
	assert.Equal(t, "blue", report.KeyCompetences["k1"].Classification.Color)
}

func TestBuildStudentReport_PeriodFilter(t *testing.T) {
	book := reportBook()
	in := NewReportInput(book, book.Classes[0])

	report := BuildStudentReport(in, book.Classes[0].Students[0], "p2")

	assert.NotContains(t, report.Assignments, "a1")
	assert.InDelta(t, 8.0, *report.Criteria["c1"].Score, 1e-9)
	assert.Len(t, report.Periods, 2, "period grades always cover every period")
}

func TestBuildClassReport(t *testing.T) {
	book := reportBook()
	in := NewReportInput(book, book.Classes[0])

	report := BuildClassReport(in, "")

	assert.Equal(t, "class-1", report.ClassID)
	require.Len(t, report.Students, 2)
	assert.Equal(t, "s1", report.Students[0].StudentID)
	assert.Equal(t, "Luis", report.Students[1].StudentName)

	assert.InDelta(t, 5.0, *report.AssignmentAverages["a1"].Score, 1e-9)
	assert.InDelta(t, 9.0, *report.AssignmentAverages["b1"].Score, 1e-9)
	assert.InDelta(t, 5.0, *report.PeriodAverages["p1"].Score, 1e-9)
	assert.InDelta(t, 7.0, *report.FinalAverage.Score, 1e-9)
	assert.Equal(t, "blue", report.FinalAverage.Classification.Color)
}

func TestBuildClassReport_Empty(t *testing.T) {
	class := examsClass()
	class.Grades = nil
	in := ReportInput{Class: class, Criteria: criteria("c1")}

	report := BuildClassReport(in, "")

	assert.Nil(t, report.FinalAverage.Score)
	assert.Equal(t, NoData, report.FinalAverage.Classification)
	assert.Nil(t, report.AssignmentAverages["a1"].Score)
	assert.Equal(t, NotAvailable, report.Students[0].Final.Grade)
}

func TestBuildClassReport_Idempotent(t *testing.T) {
	book := reportBook()
	in := NewReportInput(book, book.Classes[0])

	assert.Equal(t, BuildClassReport(in, "p1"), BuildClassReport(in, "p1"))
}
