package grading

import "github.com/SAP-F-2025/gradebook-service/internal/models"

// ToolGlobalScore converts the results of a checklist, rating scale or rubric
// into one 0-10 score. Missing results add nothing to the earned points. A tool
// with nothing gradeable scores 0 rather than nil.
func ToolGlobalScore(tool models.EvaluationTool, results map[string]models.ToolResult) float64 {
	var totalPoints, maxPoints float64
	maxLevel := tool.MaxLevelPoints()

	for _, item := range tool.Items {
		result, answered := results[item.ID]

		if tool.Type == models.ToolChecklist {
			maxPoints += item.Weight
			if answered && result.IsChecked() {
				totalPoints += item.Weight
			}
			continue
		}

		maxPoints += maxLevel * item.Weight
		if !answered {
			continue
		}
		if level, ok := tool.Level(result.LevelID); ok {
			totalPoints += level.Points * item.Weight
		}
	}

	if maxPoints == 0 {
		return 0
	}
	return totalPoints / maxPoints * MaxScore
}

// CriterionScoresFromTool projects tool results onto the criteria linked to
// each item. Criteria that no answered item addresses are left out of the map.
func CriterionScoresFromTool(tool models.EvaluationTool, results map[string]models.ToolResult) map[string]float64 {
	acc := make(map[string]*weightedMean)
	maxLevel := tool.MaxLevelPoints()

	for _, item := range tool.Items {
		itemScore, ok := itemScore(tool, item, results, maxLevel)
		if !ok {
			continue
		}
		for _, criterionID := range item.LinkedCriteriaIDs {
			w, exists := acc[criterionID]
			if !exists {
				w = &weightedMean{}
				acc[criterionID] = w
			}
			w.add(itemScore, item.Weight)
		}
	}

	scores := make(map[string]float64, len(acc))
	for criterionID, w := range acc {
		if v := w.value(); v != nil {
			scores[criterionID] = *v
		}
	}
	return scores
}

// itemScore is the 0-10 score of a single item. Checklist items always score
// (unchecked is 0); leveled items only score when a known level is selected.
func itemScore(tool models.EvaluationTool, item models.EvaluationItem, results map[string]models.ToolResult, maxLevel float64) (float64, bool) {
	result, answered := results[item.ID]

	if tool.Type == models.ToolChecklist {
		if answered && result.IsChecked() {
			return MaxScore, true
		}
		return 0, true
	}

	if !answered || maxLevel <= 0 {
		return 0, false
	}
	level, ok := tool.Level(result.LevelID)
	if !ok {
		return 0, false
	}
	return level.Points / maxLevel * MaxScore, true
}
