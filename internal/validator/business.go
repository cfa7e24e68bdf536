package validator

import (
	"fmt"

	apperrors "github.com/SAP-F-2025/gradebook-service/internal/errors"
	"github.com/SAP-F-2025/gradebook-service/internal/models"
)

// Business rule names reported in ValidationError.Rule.
const (
	RuleUnknownCategory    = "unknown_category"
	RulePeriodMismatch     = "period_mismatch"
	RuleUnknownPeriod      = "unknown_period"
	RuleUnknownTool        = "unknown_tool"
	RuleToolTypeMismatch   = "tool_type_mismatch"
	RuleDuplicateLevel     = "duplicate_level_points"
	RuleUnknownRecovery    = "unknown_recovery_target"
	RuleRecoveryOutsideCat = "recovery_outside_category"
	RuleDuplicateScaleMin  = "duplicate_scale_min"
	RuleDuplicateID        = "duplicate_id"
)

// BusinessValidator checks the cross references of a gradebook snapshot that
// struct tags cannot express. It never inspects grades.
type BusinessValidator struct{}

func NewBusinessValidator() *BusinessValidator {
	return &BusinessValidator{}
}

// ValidateGradebook returns every rule violation of the snapshot.
func (v *BusinessValidator) ValidateGradebook(book *models.Gradebook) ValidationErrors {
	var errs ValidationErrors

	periods := make(map[string]struct{}, len(book.AcademicConfiguration.EvaluationPeriods))
	for _, p := range book.AcademicConfiguration.EvaluationPeriods {
		periods[p.ID] = struct{}{}
	}

	tools := make(map[string]models.EvaluationTool, len(book.EvaluationTools))
	for i, tool := range book.EvaluationTools {
		if _, dup := tools[tool.ID]; dup {
			errs = append(errs, violation(fmt.Sprintf("evaluation_tools[%d].id", i), "must be unique", RuleDuplicateID, tool.ID))
		}
		tools[tool.ID] = tool
		errs = append(errs, v.validateToolLevels(i, tool)...)
	}

	classIDs := make(map[string]struct{}, len(book.Classes))
	for i, class := range book.Classes {
		if _, dup := classIDs[class.ID]; dup {
			errs = append(errs, violation(fmt.Sprintf("classes[%d].id", i), "must be unique", RuleDuplicateID, class.ID))
		}
		classIDs[class.ID] = struct{}{}
		errs = append(errs, v.validateClass(fmt.Sprintf("classes[%d]", i), class, periods, tools)...)
	}

	errs = append(errs, v.validateGradeScale(book.AcademicConfiguration.GradeScale)...)
	return errs
}

func (v *BusinessValidator) validateClass(path string, class models.ClassData, periods map[string]struct{}, tools map[string]models.EvaluationTool) ValidationErrors {
	var errs ValidationErrors

	categories := make(map[string]models.Category, len(class.Categories))
	for i, cat := range class.Categories {
		catPath := fmt.Sprintf("%s.categories[%d]", path, i)
		if _, dup := categories[cat.ID]; dup {
			errs = append(errs, violation(catPath+".id", "must be unique", RuleDuplicateID, cat.ID))
		}
		categories[cat.ID] = cat
		if len(periods) > 0 {
			if _, ok := periods[cat.EvaluationPeriodID]; !ok {
				errs = append(errs, violation(catPath+".evaluation_period_id", "must reference a configured evaluation period", RuleUnknownPeriod, cat.EvaluationPeriodID))
			}
		}
	}

	assignments := make(map[string]struct{}, len(class.Assignments))
	for _, a := range class.Assignments {
		assignments[a.ID] = struct{}{}
	}

	for i, a := range class.Assignments {
		aPath := fmt.Sprintf("%s.assignments[%d]", path, i)

		cat, ok := categories[a.CategoryID]
		if !ok {
			errs = append(errs, violation(aPath+".category_id", "must reference a category of the class", RuleUnknownCategory, a.CategoryID))
		} else if cat.EvaluationPeriodID != a.EvaluationPeriodID {
			errs = append(errs, violation(aPath+".evaluation_period_id", "must match the period of its category", RulePeriodMismatch, a.EvaluationPeriodID))
		}

		if a.UsesTool() && a.EvaluationToolID != "" {
			tool, ok := tools[a.EvaluationToolID]
			switch {
			case !ok:
				errs = append(errs, violation(aPath+".evaluation_tool_id", "must reference an existing evaluation tool", RuleUnknownTool, a.EvaluationToolID))
			case string(tool.Type) != string(a.EvaluationMethod):
				errs = append(errs, violation(aPath+".evaluation_tool_id", fmt.Sprintf("must reference a %s tool", a.EvaluationMethod), RuleToolTypeMismatch, a.EvaluationToolID))
			}
		}

		if len(a.RecoversAssignmentIDs) > 0 && ok && !cat.IsRecovery() {
			errs = append(errs, violation(aPath+".recovers_assignment_ids", "only assignments of a recovery category can recover others", RuleRecoveryOutsideCat, a.RecoversAssignmentIDs))
		}
		for _, target := range a.RecoversAssignmentIDs {
			if _, exists := assignments[target]; !exists || target == a.ID {
				errs = append(errs, violation(aPath+".recovers_assignment_ids", "must reference other assignments of the class", RuleUnknownRecovery, target))
			}
		}
	}

	return errs
}

func (v *BusinessValidator) validateToolLevels(index int, tool models.EvaluationTool) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[float64]struct{}, len(tool.Levels))
	for i, level := range tool.Levels {
		if _, dup := seen[level.Points]; dup {
			errs = append(errs, violation(fmt.Sprintf("evaluation_tools[%d].levels[%d].points", index, i), "must be distinct within a tool", RuleDuplicateLevel, level.Points))
		}
		seen[level.Points] = struct{}{}
	}
	return errs
}

func (v *BusinessValidator) validateGradeScale(scale models.GradeScale) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[float64]struct{}, len(scale))
	for i, rule := range scale {
		if _, dup := seen[rule.Min]; dup {
			errs = append(errs, violation(fmt.Sprintf("academic_configuration.grade_scale[%d].min", i), "must be distinct", RuleDuplicateScaleMin, rule.Min))
		}
		seen[rule.Min] = struct{}{}
	}
	return errs
}

func violation(field, message, rule string, value interface{}) ValidationError {
	return *apperrors.NewValidationErrorWithRule(field, message, rule, value)
}
