package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SAP-F-2025/gradebook-service/internal/cache"
	"github.com/SAP-F-2025/gradebook-service/internal/events"
	"github.com/SAP-F-2025/gradebook-service/internal/grading"
	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"github.com/SAP-F-2025/gradebook-service/internal/repositories"
	"github.com/SAP-F-2025/gradebook-service/internal/validator"
)

const resourceGradebook = "gradebook"

type gradebookService struct {
	repo      repositories.GradebookRepository
	cache     cache.CacheService
	publisher events.EventPublisher
	exporter  ExportService
	validator *validator.Validator
	logger    *ServiceLogger
	cacheTTL  time.Duration
}

// GradebookServiceDeps groups the collaborators of the gradebook service.
// Cache may be nil, reports are then computed on every request.
type GradebookServiceDeps struct {
	Repo      repositories.GradebookRepository
	Cache     cache.CacheService
	Publisher events.EventPublisher
	Exporter  ExportService
	Validator *validator.Validator
	Logger    *ServiceLogger
	CacheTTL  time.Duration
}

func NewGradebookService(deps GradebookServiceDeps) GradebookService {
	return &gradebookService{
		repo:      deps.Repo,
		cache:     deps.Cache,
		publisher: deps.Publisher,
		exporter:  deps.Exporter,
		validator: deps.Validator,
		logger:    deps.Logger,
		cacheTTL:  deps.CacheTTL,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *gradebookService) Create(ctx context.Context, req *SaveGradebookRequest, ownerID string) (resp *GradebookResponse, err error) {
	op := s.logger.WithOperation(ctx, "create_gradebook", ownerID)
	defer func() { op.LogResult(responseID(resp), resourceGradebook, err) }()

	if err = s.validate(req); err != nil {
		return nil, err
	}

	record := &models.GradebookRecord{OwnerID: ownerID, Name: req.Name}
	if err = record.SetGradebook(&req.Gradebook); err != nil {
		return nil, err
	}
	if err = s.repo.Create(ctx, nil, record); err != nil {
		return nil, fmt.Errorf("failed to create gradebook: %w", err)
	}

	s.publishSaved(ctx, record, &req.Gradebook)
	return buildGradebookResponse(record, &req.Gradebook), nil
}

func (s *gradebookService) Update(ctx context.Context, id uint, req *SaveGradebookRequest, ownerID string) (resp *GradebookResponse, err error) {
	op := s.logger.WithOperation(ctx, "update_gradebook", ownerID)
	defer func() { op.LogResult(id, resourceGradebook, err) }()

	if err = s.validate(req); err != nil {
		return nil, err
	}

	record, err := s.loadOwned(ctx, id, ownerID, "update")
	if err != nil {
		return nil, err
	}
	if err = checkVersion(record, req.Version); err != nil {
		return nil, err
	}

	record.Name = req.Name
	if err = s.save(ctx, record, &req.Gradebook); err != nil {
		return nil, err
	}
	return buildGradebookResponse(record, &req.Gradebook), nil
}

// RecordGrade projects one grade entry and stores it in the gradebook,
// replacing any previous grade of the student on that assignment.
func (s *gradebookService) RecordGrade(ctx context.Context, id uint, req *RecordGradeRequest, ownerID string) (resp *RecordGradeResponse, err error) {
	op := s.logger.WithOperation(ctx, "record_grade", ownerID)
	defer func() { op.LogResult(id, resourceGradebook, err) }()

	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}

	record, book, err := s.loadBook(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if err = checkVersion(record, req.Version); err != nil {
		return nil, err
	}

	class, grade, err := projectGrade(book, req.GradeEntry)
	if err != nil {
		return nil, err
	}
	upsertGrade(class, grade)

	if err = s.save(ctx, record, book); err != nil {
		return nil, err
	}
	return &RecordGradeResponse{GradebookID: record.ID, Version: record.Version, Grade: grade}, nil
}

func (s *gradebookService) GetByID(ctx context.Context, id uint, ownerID string) (resp *GradebookResponse, err error) {
	op := s.logger.WithOperation(ctx, "get_gradebook", ownerID)
	defer func() { op.LogResult(id, resourceGradebook, err) }()

	record, book, err := s.loadBook(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	return buildGradebookResponse(record, book), nil
}

func (s *gradebookService) List(ctx context.Context, ownerID string, filters repositories.GradebookFilters) (resp *GradebookListResponse, err error) {
	op := s.logger.WithOperation(ctx, "list_gradebooks", ownerID)
	defer func() { op.LogResult(0, resourceGradebook, err) }()

	records, total, err := s.repo.ListByOwner(ctx, nil, ownerID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list gradebooks: %w", err)
	}

	resp = &GradebookListResponse{
		Gradebooks: make([]GradebookResponse, 0, len(records)),
		Total:      total,
		Limit:      filters.Limit,
		Offset:     filters.Offset,
	}
	for _, record := range records {
		resp.Gradebooks = append(resp.Gradebooks, *buildGradebookResponse(record, nil))
	}
	return resp, nil
}

func (s *gradebookService) Delete(ctx context.Context, id uint, ownerID string) (err error) {
	op := s.logger.WithOperation(ctx, "delete_gradebook", ownerID)
	defer func() { op.LogResult(id, resourceGradebook, err) }()

	record, err := s.loadOwned(ctx, id, ownerID, "delete")
	if err != nil {
		return err
	}
	if err = s.repo.Delete(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrGradebookNotFound
		}
		return fmt.Errorf("failed to delete gradebook: %w", err)
	}

	s.invalidate(ctx, id, record.Version)
	return nil
}

// ===== REPORTS =====

func (s *gradebookService) ClassReport(ctx context.Context, id uint, classID, periodID, ownerID string) (report *grading.ClassReport, err error) {
	op := s.logger.WithOperation(ctx, "class_report", ownerID)
	defer func() { op.LogResult(id, resourceGradebook, err) }()

	record, book, err := s.loadBook(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	report, _, err = s.classReport(ctx, record, book, classID, periodID)
	return report, err
}

func (s *gradebookService) StudentReport(ctx context.Context, id uint, classID, studentID, periodID, ownerID string) (report *grading.StudentReport, err error) {
	op := s.logger.WithOperation(ctx, "student_report", ownerID)
	defer func() { op.LogResult(id, resourceGradebook, err) }()

	_, book, err := s.loadBook(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	return studentReport(book, classID, studentID, periodID)
}

func (s *gradebookService) ExportClassGrades(ctx context.Context, id uint, classID, periodID string, format ExportFormat, ownerID string) (result *ExportResult, err error) {
	op := s.logger.WithOperation(ctx, "export_class_grades", ownerID)
	defer func() { op.LogResult(id, resourceGradebook, err) }()

	if format != ExportCSV && format != ExportXLSX {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	record, book, err := s.loadBook(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	report, class, err := s.classReport(ctx, record, book, classID, periodID)
	if err != nil {
		return nil, err
	}
	return s.exporter.ExportClassReport(book, class, report, format)
}

// classReport serves a class report from the cache, computing and storing it
// on a miss. Cache failures only cost a recomputation.
func (s *gradebookService) classReport(ctx context.Context, record *models.GradebookRecord, book *models.Gradebook, classID, periodID string) (*grading.ClassReport, *models.ClassData, error) {
	class, err := resolveClass(book, classID, periodID)
	if err != nil {
		return nil, nil, err
	}

	key := cache.ClassReportKey(record.ID, record.Version, classID, periodID)
	if s.cache != nil {
		var cached grading.ClassReport
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			s.logger.Debug(ctx, "Class report served from cache", "key", key)
			return &cached, class, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn(ctx, "Failed to read class report cache", "key", key, "error", err)
		}
	}

	report := grading.BuildClassReport(grading.NewReportInput(book, *class), periodID)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, report, s.cacheTTL); err != nil {
			s.logger.Warn(ctx, "Failed to cache class report", "key", key, "error", err)
		}
	}
	s.publish(ctx, events.NewGradesRecomputedEvent(record.ID, record.Version, classID, periodID, len(report.Students), report.FinalAverage.Score))

	return &report, class, nil
}

// ===== HELPERS =====

func (s *gradebookService) validate(req *SaveGradebookRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}
	if errs := s.validator.ValidateBusiness(&req.Gradebook); len(errs) > 0 {
		return errs
	}
	return nil
}

// save writes the snapshot under optimistic versioning, then drops the
// reports of the previous version and announces the save.
func (s *gradebookService) save(ctx context.Context, record *models.GradebookRecord, book *models.Gradebook) error {
	previousVersion := record.Version
	if err := record.SetGradebook(book); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, nil, record); err != nil {
		switch {
		case repositories.IsVersionConflict(err):
			return fmt.Errorf("%w: %v", ErrGradebookStale, err)
		case repositories.IsNotFoundError(err):
			return ErrGradebookNotFound
		}
		return fmt.Errorf("failed to update gradebook: %w", err)
	}

	s.invalidate(ctx, record.ID, previousVersion)
	s.publishSaved(ctx, record, book)
	return nil
}

func checkVersion(record *models.GradebookRecord, version int) error {
	if version != record.Version {
		return fmt.Errorf("%w: have version %d, current is %d", ErrGradebookStale, version, record.Version)
	}
	return nil
}

func (s *gradebookService) loadOwned(ctx context.Context, id uint, ownerID, action string) (*models.GradebookRecord, error) {
	record, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrGradebookNotFound
		}
		return nil, fmt.Errorf("failed to get gradebook: %w", err)
	}
	if record.OwnerID != ownerID {
		return nil, NewPermissionError(ownerID, id, resourceGradebook, action, "not owner")
	}
	return record, nil
}

func (s *gradebookService) loadBook(ctx context.Context, id uint, ownerID string) (*models.GradebookRecord, *models.Gradebook, error) {
	record, err := s.loadOwned(ctx, id, ownerID, "read")
	if err != nil {
		return nil, nil, err
	}
	book, err := record.Gradebook()
	if err != nil {
		return nil, nil, err
	}
	return record, book, nil
}

func (s *gradebookService) invalidate(ctx context.Context, id uint, version int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, cache.GradebookPattern(id)); err != nil {
		s.logger.Warn(ctx, "Failed to invalidate gradebook cache", "gradebook_id", id, "version", version, "error", err)
	}
}

func (s *gradebookService) publishSaved(ctx context.Context, record *models.GradebookRecord, book *models.Gradebook) {
	classIDs := make([]string, 0, len(book.Classes))
	for _, class := range book.Classes {
		classIDs = append(classIDs, class.ID)
	}
	s.publish(ctx, events.NewGradebookSavedEvent(record.ID, record.OwnerID, record.Version, classIDs))
}

// publish never fails the request; the event is logged and dropped.
func (s *gradebookService) publish(ctx context.Context, event *events.GradebookEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn(ctx, "Failed to publish event", "event_type", event.Type, "error", err)
	}
}

func resolveClass(book *models.Gradebook, classID, periodID string) (*models.ClassData, error) {
	class, ok := book.Class(classID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrClassNotFound, classID)
	}
	if periodID != "" {
		if _, ok := book.AcademicConfiguration.Period(periodID); !ok {
			return nil, fmt.Errorf("%w: %s", ErrPeriodNotFound, periodID)
		}
	}
	return class, nil
}

func studentReport(book *models.Gradebook, classID, studentID, periodID string) (*grading.StudentReport, error) {
	class, err := resolveClass(book, classID, periodID)
	if err != nil {
		return nil, err
	}
	student, ok := class.Student(studentID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStudentNotFound, studentID)
	}
	report := grading.BuildStudentReport(grading.NewReportInput(book, *class), *student, periodID)
	return &report, nil
}

func buildGradebookResponse(record *models.GradebookRecord, book *models.Gradebook) *GradebookResponse {
	return &GradebookResponse{
		ID:        record.ID,
		OwnerID:   record.OwnerID,
		Name:      record.Name,
		Version:   record.Version,
		Gradebook: book,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func responseID(resp *GradebookResponse) uint {
	if resp == nil {
		return 0
	}
	return resp.ID
}
