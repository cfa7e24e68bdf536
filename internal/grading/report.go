package grading

import "github.com/SAP-F-2025/gradebook-service/internal/models"

// ScoredValue pairs a score with its classification.
type ScoredValue struct {
	Score          *float64       `json:"score"`
	Classification Classification `json:"classification"`
}

type StudentReport struct {
	StudentID      string                 `json:"student_id"`
	StudentName    string                 `json:"student_name"`
	Assignments    map[string]ScoredValue `json:"assignments"`
	Periods        map[string]PeriodGrade `json:"periods"`
	Final          FinalGrade             `json:"final"`
	Criteria       map[string]ScoredValue `json:"criteria"`
	Competences    map[string]ScoredValue `json:"competences"`
	KeyCompetences map[string]ScoredValue `json:"key_competences"`
}

type ClassReport struct {
	ClassID            string                 `json:"class_id"`
	ClassName          string                 `json:"class_name"`
	PeriodID           string                 `json:"period_id,omitempty"`
	Students           []StudentReport        `json:"students"`
	AssignmentAverages map[string]ScoredValue `json:"assignment_averages"`
	PeriodAverages     map[string]ScoredValue `json:"period_averages"`
	FinalAverage       ScoredValue            `json:"final_average"`
}

// ReportInput is the slice of a snapshot a class report is computed from.
// Criteria and competences are expected to be already narrowed to the course
// of the class.
type ReportInput struct {
	Class          models.ClassData
	Criteria       []models.Criterion
	Competences    []models.SpecificCompetence
	KeyCompetences []models.KeyCompetence
	Config         models.AcademicConfiguration
}

// NewReportInput narrows a gradebook snapshot to one class.
func NewReportInput(book *models.Gradebook, class models.ClassData) ReportInput {
	return ReportInput{
		Class:          class,
		Criteria:       book.CourseCriteria(class.CourseID),
		Competences:    book.CourseCompetences(class.CourseID),
		KeyCompetences: book.KeyCompetences,
		Config:         book.AcademicConfiguration,
	}
}

// BuildStudentReport computes every aggregate of one student. periodID limits
// assignment, criterion and competence values to one period; period and final
// grades always cover the whole configuration.
func BuildStudentReport(in ReportInput, student models.Student, periodID string) StudentReport {
	scale := scaleOrDefault(in.Config.GradeScale)

	report := StudentReport{
		StudentID:   student.ID,
		StudentName: student.FullName(),
		Periods:     make(map[string]PeriodGrade, len(in.Config.EvaluationPeriods)),
		Final:       OverallFinalGrade(student.ID, in.Class, in.Config),
	}

	report.Assignments = classify(AssignmentScoresForStudent(student.ID, periodAssignments(in.Class, periodID), in.Class.Grades), scale)
	for _, p := range in.Config.EvaluationPeriods {
		report.Periods[p.ID] = EvaluationPeriodGrade(student.ID, in.Class, p.ID, scale)
	}
	report.Criteria = classify(StudentCriterionGrades(student.ID, in.Class, in.Criteria, periodID), scale)
	report.Competences = classify(StudentCompetenceGrades(student.ID, in.Class, in.Criteria, in.Competences, periodID), scale)
	report.KeyCompetences = classify(StudentKeyCompetenceGrades(student.ID, in.Class, in.Criteria, in.Competences, in.KeyCompetences, periodID), scale)

	return report
}

// BuildClassReport computes a report row for every student of the class and
// the class averages of the assignment, period and final columns.
func BuildClassReport(in ReportInput, periodID string) ClassReport {
	scale := scaleOrDefault(in.Config.GradeScale)

	report := ClassReport{
		ClassID:   in.Class.ID,
		ClassName: in.Class.Name,
		PeriodID:  periodID,
		Students:  make([]StudentReport, 0, len(in.Class.Students)),
	}

	assignmentMeans := make(map[string]*mean)
	periodMeans := make(map[string]*mean)
	var finalMean mean

	for _, student := range in.Class.Students {
		row := BuildStudentReport(in, student, periodID)
		report.Students = append(report.Students, row)

		for id, v := range row.Assignments {
			accumulate(assignmentMeans, id, v.Score)
		}
		for id, p := range row.Periods {
			accumulate(periodMeans, id, p.Grade)
		}
		finalMean.addScore(row.Final.Value)
	}

	report.AssignmentAverages = classifyMeans(assignmentMeans, scale)
	report.PeriodAverages = classifyMeans(periodMeans, scale)
	avg := finalMean.value()
	report.FinalAverage = ScoredValue{Score: avg, Classification: ColorClass(avg, scale)}

	return report
}

func periodAssignments(class models.ClassData, periodID string) []models.Assignment {
	if periodID == "" {
		return class.Assignments
	}
	assignments := make([]models.Assignment, 0, len(class.Assignments))
	for _, a := range class.Assignments {
		if a.EvaluationPeriodID == periodID {
			assignments = append(assignments, a)
		}
	}
	return assignments
}

func classify(scores map[string]*float64, scale models.GradeScale) map[string]ScoredValue {
	values := make(map[string]ScoredValue, len(scores))
	for id, v := range scores {
		values[id] = ScoredValue{Score: v, Classification: ColorClass(v, scale)}
	}
	return values
}

func accumulate(means map[string]*mean, id string, v *float64) {
	m, ok := means[id]
	if !ok {
		m = &mean{}
		means[id] = m
	}
	m.addScore(v)
}

func classifyMeans(means map[string]*mean, scale models.GradeScale) map[string]ScoredValue {
	values := make(map[string]ScoredValue, len(means))
	for id, m := range means {
		v := m.value()
		values[id] = ScoredValue{Score: v, Classification: ColorClass(v, scale)}
	}
	return values
}
