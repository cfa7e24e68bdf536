package models

type EvaluationMethod string

const (
	MethodDirectGrade EvaluationMethod = "direct_grade"
	MethodChecklist   EvaluationMethod = "checklist"
	MethodRatingScale EvaluationMethod = "rating_scale"
	MethodRubric      EvaluationMethod = "rubric"
)

type CategoryType string

const (
	CategoryNormal   CategoryType = "normal"
	CategoryRecovery CategoryType = "recovery"
)

// RecoveryGradeKey is the criterionScores key used by recovery assignments
// that carry no linked criteria.
const RecoveryGradeKey = "recovery_grade"

type Student struct {
	ID        string `json:"id" validate:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (s Student) FullName() string {
	switch {
	case s.FirstName == "":
		return s.LastName
	case s.LastName == "":
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

// Criterion is the leaf unit of competency measurement, scoped to one course.
type Criterion struct {
	ID           string `json:"id" validate:"required"`
	Code         string `json:"code"`
	Description  string `json:"description"`
	CompetenceID string `json:"competence_id"`
	CourseID     string `json:"course_id"`
}

type SpecificCompetence struct {
	ID            string   `json:"id" validate:"required"`
	Code          string   `json:"code"`
	Description   string   `json:"description"`
	DescriptorIDs []string `json:"descriptor_ids"`
	CourseID      string   `json:"course_id"`
}

type Descriptor struct {
	ID          string `json:"id" validate:"required"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

type KeyCompetence struct {
	ID          string       `json:"id" validate:"required"`
	Code        string       `json:"code"`
	Description string       `json:"description"`
	Descriptors []Descriptor `json:"descriptors" validate:"dive"`
}

type Category struct {
	ID                 string       `json:"id" validate:"required"`
	Name               string       `json:"name"`
	Weight             float64      `json:"weight" validate:"min=0,max=100"`
	EvaluationPeriodID string       `json:"evaluation_period_id" validate:"required"`
	Type               CategoryType `json:"type" validate:"category_type"`
}

func (c Category) IsRecovery() bool {
	return c.Type == CategoryRecovery
}

type LinkedCriterion struct {
	CriterionID           string   `json:"criterion_id" validate:"required"`
	Ratio                 float64  `json:"ratio" validate:"min=0"`
	SelectedDescriptorIDs []string `json:"selected_descriptor_ids,omitempty"`
}

type Assignment struct {
	ID                    string            `json:"id" validate:"required"`
	Name                  string            `json:"name"`
	CategoryID            string            `json:"category_id" validate:"required"`
	EvaluationPeriodID    string            `json:"evaluation_period_id" validate:"required"`
	Date                  string            `json:"date,omitempty"`
	EvaluationMethod      EvaluationMethod  `json:"evaluation_method" validate:"evaluation_method"`
	EvaluationToolID      string            `json:"evaluation_tool_id,omitempty"`
	LinkedCriteria        []LinkedCriterion `json:"linked_criteria" validate:"dive"`
	RecoversAssignmentIDs []string          `json:"recovers_assignment_ids,omitempty"`
}

func (a Assignment) UsesTool() bool {
	return a.EvaluationMethod != MethodDirectGrade
}

func (a Assignment) LinkedCriterionIDs() []string {
	ids := make([]string, 0, len(a.LinkedCriteria))
	for _, lc := range a.LinkedCriteria {
		ids = append(ids, lc.CriterionID)
	}
	return ids
}

// Grade is the recorded result of one student on one assignment.
// CriterionScores is always populated, whatever the evaluation method.
type Grade struct {
	StudentID       string                `json:"student_id" validate:"required"`
	AssignmentID    string                `json:"assignment_id" validate:"required"`
	CriterionScores map[string]*float64   `json:"criterion_scores"`
	ToolResults     map[string]ToolResult `json:"tool_results,omitempty"`
}

type EvaluationPeriod struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type GradeRule struct {
	Min   float64 `json:"min" validate:"min=0,max=10"`
	Color string  `json:"color" validate:"required"`
	Label string  `json:"label,omitempty"`
}

type GradeScale []GradeRule

type AcademicConfiguration struct {
	EvaluationPeriods       []EvaluationPeriod `json:"evaluation_periods" validate:"dive"`
	EvaluationPeriodWeights map[string]float64 `json:"evaluation_period_weights"`
	GradeScale              GradeScale         `json:"grade_scale" validate:"dive"`
}

// ClassData is the per-class part of a snapshot that the aggregators read.
type ClassData struct {
	ID          string       `json:"id" validate:"required"`
	Name        string       `json:"name"`
	CourseID    string       `json:"course_id"`
	Students    []Student    `json:"students" validate:"dive"`
	Categories  []Category   `json:"categories" validate:"dive"`
	Assignments []Assignment `json:"assignments" validate:"dive"`
	Grades      []Grade      `json:"grades" validate:"dive"`
}

// Gradebook is the full state snapshot handed to the grade engine.
type Gradebook struct {
	Classes               []ClassData           `json:"classes" validate:"dive"`
	Criteria              []Criterion           `json:"criteria" validate:"dive"`
	Competences           []SpecificCompetence  `json:"competences" validate:"dive"`
	KeyCompetences        []KeyCompetence       `json:"key_competences" validate:"dive"`
	EvaluationTools       []EvaluationTool      `json:"evaluation_tools" validate:"dive"`
	AcademicConfiguration AcademicConfiguration `json:"academic_configuration"`
}
