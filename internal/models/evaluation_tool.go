package models

import (
	"encoding/json"
	"fmt"
)

type ToolType string

const (
	ToolChecklist   ToolType = "checklist"
	ToolRatingScale ToolType = "rating_scale"
	ToolRubric      ToolType = "rubric"
)

// EvaluationItem is one row of a checklist, rating scale or rubric.
// LevelDescriptions is only meaningful for rubrics.
type EvaluationItem struct {
	ID                string            `json:"id" validate:"required"`
	Description       string            `json:"description"`
	Weight            float64           `json:"weight" validate:"min=0"`
	LinkedCriteriaIDs []string          `json:"linked_criteria_ids"`
	LevelDescriptions map[string]string `json:"level_descriptions,omitempty"`
}

type ToolLevel struct {
	ID     string  `json:"id" validate:"required"`
	Name   string  `json:"name"`
	Points float64 `json:"points"`
}

type EvaluationTool struct {
	ID     string           `json:"id" validate:"required"`
	Type   ToolType         `json:"type" validate:"tool_type"`
	Name   string           `json:"name"`
	Items  []EvaluationItem `json:"items" validate:"dive"`
	Levels []ToolLevel      `json:"levels,omitempty" validate:"dive"`
}

// MaxLevelPoints returns the highest level value of the tool, or 0 when it
// defines no levels.
func (t EvaluationTool) MaxLevelPoints() float64 {
	if len(t.Levels) == 0 {
		return 0
	}
	maxPoints := t.Levels[0].Points
	for _, level := range t.Levels[1:] {
		if level.Points > maxPoints {
			maxPoints = level.Points
		}
	}
	return maxPoints
}

func (t EvaluationTool) Level(id string) (ToolLevel, bool) {
	for _, level := range t.Levels {
		if level.ID == id {
			return level, true
		}
	}
	return ToolLevel{}, false
}

// ToolResult holds what was recorded for a single tool item: a checkbox state
// for checklists, or the selected level id for rating scales and rubrics.
// On the wire it is either a JSON boolean or a JSON string.
type ToolResult struct {
	Checked *bool
	LevelID string
}

func CheckedResult(checked bool) ToolResult {
	return ToolResult{Checked: &checked}
}

func LevelResult(levelID string) ToolResult {
	return ToolResult{LevelID: levelID}
}

func (r ToolResult) IsChecked() bool {
	return r.Checked != nil && *r.Checked
}

func (r ToolResult) MarshalJSON() ([]byte, error) {
	if r.Checked != nil {
		return json.Marshal(*r.Checked)
	}
	if r.LevelID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.LevelID)
}

func (r *ToolResult) UnmarshalJSON(data []byte) error {
	*r = ToolResult{}
	if string(data) == "null" {
		return nil
	}

	var checked bool
	if err := json.Unmarshal(data, &checked); err == nil {
		r.Checked = &checked
		return nil
	}

	var levelID string
	if err := json.Unmarshal(data, &levelID); err != nil {
		return fmt.Errorf("tool result must be a boolean or a level id: %w", err)
	}
	r.LevelID = levelID
	return nil
}
