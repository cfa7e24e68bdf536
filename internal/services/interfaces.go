package services

import (
	"context"
	"time"

	"github.com/SAP-F-2025/gradebook-service/internal/grading"
	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"github.com/SAP-F-2025/gradebook-service/internal/repositories"
)

// ServiceManager gives handlers access to every service
type ServiceManager interface {
	Gradebook() GradebookService
	Evaluation() EvaluationService
	Export() ExportService
}

// GradebookService stores gradebook snapshots and computes their reports
type GradebookService interface {
	Create(ctx context.Context, req *SaveGradebookRequest, ownerID string) (*GradebookResponse, error)
	Update(ctx context.Context, id uint, req *SaveGradebookRequest, ownerID string) (*GradebookResponse, error)
	GetByID(ctx context.Context, id uint, ownerID string) (*GradebookResponse, error)
	List(ctx context.Context, ownerID string, filters repositories.GradebookFilters) (*GradebookListResponse, error)
	Delete(ctx context.Context, id uint, ownerID string) error

	ClassReport(ctx context.Context, id uint, classID, periodID, ownerID string) (*grading.ClassReport, error)
	StudentReport(ctx context.Context, id uint, classID, studentID, periodID, ownerID string) (*grading.StudentReport, error)
	ExportClassGrades(ctx context.Context, id uint, classID, periodID string, format ExportFormat, ownerID string) (*ExportResult, error)

	RecordGrade(ctx context.Context, id uint, req *RecordGradeRequest, ownerID string) (*RecordGradeResponse, error)
}

// EvaluationService runs the grade engine on submitted data without storing it
type EvaluationService interface {
	ScoreTool(ctx context.Context, req *ScoreToolRequest) (*ScoreToolResponse, error)
	EvaluateStudent(ctx context.Context, req *EvaluateStudentRequest) (*grading.StudentReport, error)
	EvaluateClass(ctx context.Context, req *EvaluateClassRequest) (*grading.ClassReport, error)
	EvaluateGrade(ctx context.Context, req *EvaluateGradeRequest) (*models.Grade, error)
}

// ExportService renders computed class reports as files
type ExportService interface {
	ExportClassReport(book *models.Gradebook, class *models.ClassData, report *grading.ClassReport, format ExportFormat) (*ExportResult, error)
}

// ===== REQUESTS =====

type SaveGradebookRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
	// Version is the version the client read; required when updating.
	Version   int              `json:"version" validate:"min=0"`
	Gradebook models.Gradebook `json:"gradebook"`
}

type ScoreToolRequest struct {
	Tool    models.EvaluationTool        `json:"tool"`
	Results map[string]models.ToolResult `json:"results"`
	// Assignment is optional; when set the response also carries the
	// criterion scores a grade would store for it.
	Assignment *models.Assignment `json:"assignment,omitempty"`
}

type EvaluateStudentRequest struct {
	Gradebook models.Gradebook `json:"gradebook"`
	ClassID   string           `json:"class_id" validate:"required"`
	StudentID string           `json:"student_id" validate:"required"`
	PeriodID  string           `json:"period_id,omitempty"`
}

type EvaluateClassRequest struct {
	Gradebook models.Gradebook `json:"gradebook"`
	ClassID   string           `json:"class_id" validate:"required"`
	PeriodID  string           `json:"period_id,omitempty"`
}

// GradeEntry is what a teacher records for one student on one assignment.
// ToolResults, CriterionScores and Score are tried in that order; an entry
// with none of them clears the grade.
type GradeEntry struct {
	ClassID         string                       `json:"class_id" validate:"required"`
	AssignmentID    string                       `json:"assignment_id" validate:"required"`
	StudentID       string                       `json:"student_id" validate:"required"`
	ToolResults     map[string]models.ToolResult `json:"tool_results,omitempty"`
	CriterionScores map[string]*float64          `json:"criterion_scores,omitempty"`
	Score           *float64                     `json:"score,omitempty"`
}

// RecordGradeRequest stores one grade in a saved gradebook. Version is the
// gradebook version the client read.
type RecordGradeRequest struct {
	Version int `json:"version" validate:"min=0"`
	GradeEntry
}

// EvaluateGradeRequest projects one grade entry against a submitted snapshot
// without storing it.
type EvaluateGradeRequest struct {
	Gradebook models.Gradebook `json:"gradebook"`
	GradeEntry
}

// ===== RESPONSES =====

type GradebookResponse struct {
	ID        uint              `json:"id"`
	OwnerID   string            `json:"owner_id"`
	Name      string            `json:"name"`
	Version   int               `json:"version"`
	Gradebook *models.Gradebook `json:"gradebook,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type GradebookListResponse struct {
	Gradebooks []GradebookResponse `json:"gradebooks"`
	Total      int64               `json:"total"`
	Limit      int                 `json:"limit"`
	Offset     int                 `json:"offset"`
}

type ScoreToolResponse struct {
	GlobalScore     float64                `json:"global_score"`
	Classification  grading.Classification `json:"classification"`
	CriterionScores map[string]float64     `json:"criterion_scores"`
	StoredScores    map[string]*float64    `json:"stored_scores,omitempty"`
}

type RecordGradeResponse struct {
	GradebookID uint         `json:"gradebook_id"`
	Version     int          `json:"version"`
	Grade       models.Grade `json:"grade"`
}

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

type ExportResult struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}
