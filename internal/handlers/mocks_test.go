package handlers

import (
	"context"
	"io"
	"log/slog"

	"github.com/SAP-F-2025/gradebook-service/internal/grading"
	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"github.com/SAP-F-2025/gradebook-service/internal/repositories"
	"github.com/SAP-F-2025/gradebook-service/internal/services"
	"github.com/SAP-F-2025/gradebook-service/internal/utils"
	"github.com/stretchr/testify/mock"
)

type mockGradebookService struct {
	mock.Mock
}

func (m *mockGradebookService) Create(ctx context.Context, req *services.SaveGradebookRequest, ownerID string) (*services.GradebookResponse, error) {
	args := m.Called(ctx, req, ownerID)
	resp, _ := args.Get(0).(*services.GradebookResponse)
	return resp, args.Error(1)
}

func (m *mockGradebookService) Update(ctx context.Context, id uint, req *services.SaveGradebookRequest, ownerID string) (*services.GradebookResponse, error) {
	args := m.Called(ctx, id, req, ownerID)
	resp, _ := args.Get(0).(*services.GradebookResponse)
	return resp, args.Error(1)
}

func (m *mockGradebookService) GetByID(ctx context.Context, id uint, ownerID string) (*services.GradebookResponse, error) {
	args := m.Called(ctx, id, ownerID)
	resp, _ := args.Get(0).(*services.GradebookResponse)
	return resp, args.Error(1)
}

func (m *mockGradebookService) List(ctx context.Context, ownerID string, filters repositories.GradebookFilters) (*services.GradebookListResponse, error) {
	args := m.Called(ctx, ownerID, filters)
	resp, _ := args.Get(0).(*services.GradebookListResponse)
	return resp, args.Error(1)
}

func (m *mockGradebookService) Delete(ctx context.Context, id uint, ownerID string) error {
	return m.Called(ctx, id, ownerID).Error(0)
}

func (m *mockGradebookService) ClassReport(ctx context.Context, id uint, classID, periodID, ownerID string) (*grading.ClassReport, error) {
	args := m.Called(ctx, id, classID, periodID, ownerID)
	report, _ := args.Get(0).(*grading.ClassReport)
	return report, args.Error(1)
}

func (m *mockGradebookService) StudentReport(ctx context.Context, id uint, classID, studentID, periodID, ownerID string) (*grading.StudentReport, error) {
	args := m.Called(ctx, id, classID, studentID, periodID, ownerID)
	report, _ := args.Get(0).(*grading.StudentReport)
	return report, args.Error(1)
}

func (m *mockGradebookService) ExportClassGrades(ctx context.Context, id uint, classID, periodID string, format services.ExportFormat, ownerID string) (*services.ExportResult, error) {
	args := m.Called(ctx, id, classID, periodID, format, ownerID)
	result, _ := args.Get(0).(*services.ExportResult)
	return result, args.Error(1)
}

func (m *mockGradebookService) RecordGrade(ctx context.Context, id uint, req *services.RecordGradeRequest, ownerID string) (*services.RecordGradeResponse, error) {
	args := m.Called(ctx, id, req, ownerID)
	resp, _ := args.Get(0).(*services.RecordGradeResponse)
	return resp, args.Error(1)
}

type mockEvaluationService struct {
	mock.Mock
}

func (m *mockEvaluationService) ScoreTool(ctx context.Context, req *services.ScoreToolRequest) (*services.ScoreToolResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*services.ScoreToolResponse)
	return resp, args.Error(1)
}

func (m *mockEvaluationService) EvaluateStudent(ctx context.Context, req *services.EvaluateStudentRequest) (*grading.StudentReport, error) {
	args := m.Called(ctx, req)
	report, _ := args.Get(0).(*grading.StudentReport)
	return report, args.Error(1)
}

func (m *mockEvaluationService) EvaluateClass(ctx context.Context, req *services.EvaluateClassRequest) (*grading.ClassReport, error) {
	args := m.Called(ctx, req)
	report, _ := args.Get(0).(*grading.ClassReport)
	return report, args.Error(1)
}

func (m *mockEvaluationService) EvaluateGrade(ctx context.Context, req *services.EvaluateGradeRequest) (*models.Grade, error) {
	args := m.Called(ctx, req)
	grade, _ := args.Get(0).(*models.Grade)
	return grade, args.Error(1)
}

type stubServiceManager struct {
	gradebook  services.GradebookService
	evaluation services.EvaluationService
}

func (s stubServiceManager) Gradebook() services.GradebookService   { return s.gradebook }
func (s stubServiceManager) Evaluation() services.EvaluationService { return s.evaluation }
func (s stubServiceManager) Export() services.ExportService         { return nil }

type stubTokenParser map[string]string

func (p stubTokenParser) ParseToken(token string) (string, error) {
	if userID, ok := p[token]; ok {
		return userID, nil
	}
	return "", io.ErrUnexpectedEOF
}

func discardLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sampleResponse(id uint, ownerID string) *services.GradebookResponse {
	return &services.GradebookResponse{
		ID:        id,
		OwnerID:   ownerID,
		Name:      "2026 Maths",
		Version:   1,
		Gradebook: &models.Gradebook{},
	}
}
