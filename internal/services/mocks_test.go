package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"github.com/SAP-F-2025/gradebook-service/internal/repositories"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type mockGradebookRepository struct {
	mock.Mock
}

func (m *mockGradebookRepository) Create(ctx context.Context, tx *gorm.DB, record *models.GradebookRecord) error {
	args := m.Called(ctx, tx, record)
	return args.Error(0)
}

func (m *mockGradebookRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.GradebookRecord, error) {
	args := m.Called(ctx, tx, id)
	record, _ := args.Get(0).(*models.GradebookRecord)
	return record, args.Error(1)
}

func (m *mockGradebookRepository) Update(ctx context.Context, tx *gorm.DB, record *models.GradebookRecord) error {
	args := m.Called(ctx, tx, record)
	return args.Error(0)
}

func (m *mockGradebookRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *mockGradebookRepository) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID string, filters repositories.GradebookFilters) ([]*models.GradebookRecord, int64, error) {
	args := m.Called(ctx, tx, ownerID, filters)
	records, _ := args.Get(0).([]*models.GradebookRecord)
	return records, args.Get(1).(int64), args.Error(2)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *mockCache) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testServiceLogger() *ServiceLogger {
	return NewServiceLogger(discardLogger(), LogConfig{Service: "gradebook-service", Component: "test"})
}

func score(v float64) *float64 {
	return &v
}

// sampleGradebook holds one class with an exams category, a retake category
// and two students: s1 scored 6 on a1 and retook it with 9, s2 scored 4.
func sampleGradebook() models.Gradebook {
	return models.Gradebook{
		Classes: []models.ClassData{{
			ID:       "class-1",
			Name:     "1A",
			CourseID: "course-1",
			Students: []models.Student{
				{ID: "s1", FirstName: "Ana", LastName: "Ruiz"},
				{ID: "s2", FirstName: "Luis", LastName: "Gil"},
			},
			Categories: []models.Category{
				{ID: "exams", Name: "Exams", Weight: 100, EvaluationPeriodID: "p1", Type: models.CategoryNormal},
				{ID: "retake", Name: "Retake", EvaluationPeriodID: "p1", Type: models.CategoryRecovery},
			},
			Assignments: []models.Assignment{
				{
					ID:                 "a1",
					Name:               "Unit 1 exam",
					CategoryID:         "exams",
					EvaluationPeriodID: "p1",
					EvaluationMethod:   models.MethodDirectGrade,
					LinkedCriteria:     []models.LinkedCriterion{{CriterionID: "c1", Ratio: 1}},
				},
				{
					ID:                    "r1",
					Name:                  "Unit 1 retake",
					CategoryID:            "retake",
					EvaluationPeriodID:    "p1",
					EvaluationMethod:      models.MethodDirectGrade,
					RecoversAssignmentIDs: []string{"a1"},
				},
			},
			Grades: []models.Grade{
				{StudentID: "s1", AssignmentID: "a1", CriterionScores: map[string]*float64{"c1": score(6)}},
				{StudentID: "s1", AssignmentID: "r1", CriterionScores: map[string]*float64{models.RecoveryGradeKey: score(9)}},
				{StudentID: "s2", AssignmentID: "a1", CriterionScores: map[string]*float64{"c1": score(4)}},
			},
		}},
		Criteria:    []models.Criterion{{ID: "c1", CompetenceID: "comp1", CourseID: "course-1"}},
		Competences: []models.SpecificCompetence{{ID: "comp1", DescriptorIDs: []string{"d1"}, CourseID: "course-1"}},
		KeyCompetences: []models.KeyCompetence{
			{ID: "k1", Descriptors: []models.Descriptor{{ID: "d1"}}},
		},
		AcademicConfiguration: models.AcademicConfiguration{
			EvaluationPeriods:       []models.EvaluationPeriod{{ID: "p1", Name: "First term"}},
			EvaluationPeriodWeights: map[string]float64{"p1": 100},
		},
	}
}

func sampleRecord(ownerID string) *models.GradebookRecord {
	book := sampleGradebook()
	record := &models.GradebookRecord{ID: 7, OwnerID: ownerID, Name: "2026 Maths", Version: 3}
	if err := record.SetGradebook(&book); err != nil {
		panic(err)
	}
	return record
}

// labGradebook extends sampleGradebook with a checklist assignment "lab"
// scored with checklistTool and linked to c1.
func labGradebook() models.Gradebook {
	book := sampleGradebook()
	book.EvaluationTools = []models.EvaluationTool{checklistTool()}
	book.Classes[0].Assignments = append(book.Classes[0].Assignments, models.Assignment{
		ID:                 "lab",
		Name:               "Lab practice",
		CategoryID:         "exams",
		EvaluationPeriodID: "p1",
		EvaluationMethod:   models.MethodChecklist,
		EvaluationToolID:   "check-1",
		LinkedCriteria:     []models.LinkedCriterion{{CriterionID: "c1", Ratio: 1}},
	})
	return book
}

func recordOf(ownerID string, book models.Gradebook) *models.GradebookRecord {
	record := &models.GradebookRecord{ID: 7, OwnerID: ownerID, Name: "2026 Maths", Version: 3}
	if err := record.SetGradebook(&book); err != nil {
		panic(err)
	}
	return record
}
