package services

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/gradebook-service/internal/grading"
	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"github.com/SAP-F-2025/gradebook-service/internal/validator"
)

const resourceSnapshot = "snapshot"

type evaluationService struct {
	validator *validator.Validator
	logger    *ServiceLogger
}

func NewEvaluationService(validator *validator.Validator, logger *ServiceLogger) EvaluationService {
	return &evaluationService{
		validator: validator,
		logger:    logger,
	}
}

// ScoreTool scores tool results on the 0-10 scale. With an assignment it also
// returns the criterion scores a saved grade would carry.
func (s *evaluationService) ScoreTool(ctx context.Context, req *ScoreToolRequest) (resp *ScoreToolResponse, err error) {
	op := s.logger.WithOperation(ctx, "score_tool", "")
	defer func() { op.LogResult(0, resourceSnapshot, err) }()

	if err = s.validator.Validate(&req.Tool); err != nil {
		return nil, err
	}
	if req.Assignment != nil {
		if !req.Assignment.UsesTool() {
			return nil, NewBusinessRuleError("tool_assignment", "assignment is not evaluated with a tool", map[string]interface{}{
				"assignment_id":     req.Assignment.ID,
				"evaluation_method": req.Assignment.EvaluationMethod,
			})
		}
		if string(req.Assignment.EvaluationMethod) != string(req.Tool.Type) {
			return nil, NewBusinessRuleError("tool_type_mismatch", fmt.Sprintf("assignment expects a %s tool", req.Assignment.EvaluationMethod), map[string]interface{}{
				"assignment_id": req.Assignment.ID,
				"tool_type":     req.Tool.Type,
			})
		}
	}

	global := grading.ToolGlobalScore(req.Tool, req.Results)
	resp = &ScoreToolResponse{
		GlobalScore:     global,
		Classification:  grading.ColorClass(&global, grading.DefaultGradeScale),
		CriterionScores: grading.CriterionScoresFromTool(req.Tool, req.Results),
	}
	if req.Assignment != nil {
		resp.StoredScores = grading.ProjectToolResults(*req.Assignment, req.Tool, req.Results)
	}
	return resp, nil
}

// EvaluateStudent computes one student's report from a submitted snapshot.
func (s *evaluationService) EvaluateStudent(ctx context.Context, req *EvaluateStudentRequest) (report *grading.StudentReport, err error) {
	op := s.logger.WithOperation(ctx, "evaluate_student", "")
	defer func() { op.LogResult(0, resourceSnapshot, err) }()

	if err = s.validateSnapshot(req, &req.Gradebook); err != nil {
		return nil, err
	}
	return studentReport(&req.Gradebook, req.ClassID, req.StudentID, req.PeriodID)
}

// EvaluateClass computes a class report from a submitted snapshot.
func (s *evaluationService) EvaluateClass(ctx context.Context, req *EvaluateClassRequest) (report *grading.ClassReport, err error) {
	op := s.logger.WithOperation(ctx, "evaluate_class", "")
	defer func() { op.LogResult(0, resourceSnapshot, err) }()

	if err = s.validateSnapshot(req, &req.Gradebook); err != nil {
		return nil, err
	}
	class, err := resolveClass(&req.Gradebook, req.ClassID, req.PeriodID)
	if err != nil {
		return nil, err
	}
	result := grading.BuildClassReport(grading.NewReportInput(&req.Gradebook, *class), req.PeriodID)
	return &result, nil
}

// EvaluateGrade returns the Grade record a grade entry would store in the
// submitted snapshot.
func (s *evaluationService) EvaluateGrade(ctx context.Context, req *EvaluateGradeRequest) (grade *models.Grade, err error) {
	op := s.logger.WithOperation(ctx, "evaluate_grade", "")
	defer func() { op.LogResult(0, resourceSnapshot, err) }()

	if err = s.validateSnapshot(req, &req.Gradebook); err != nil {
		return nil, err
	}
	_, projected, err := projectGrade(&req.Gradebook, req.GradeEntry)
	if err != nil {
		return nil, err
	}
	return &projected, nil
}

func (s *evaluationService) validateSnapshot(req interface{}, book *models.Gradebook) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}
	if errs := s.validator.ValidateBusiness(book); len(errs) > 0 {
		return errs
	}
	return nil
}
