package grading

import (
	"sort"

	"github.com/SAP-F-2025/gradebook-service/internal/models"
)

// StudentCompetenceGrades averages the criterion grades of each specific
// competence. A competence with no graded criteria maps to nil.
func StudentCompetenceGrades(studentID string, class models.ClassData, criteria []models.Criterion, competences []models.SpecificCompetence, periodID string) map[string]*float64 {
	criterionGrades := StudentCriterionGrades(studentID, class, criteria, periodID)

	byCompetence := make(map[string]*mean, len(competences))
	for _, c := range criteria {
		m, ok := byCompetence[c.CompetenceID]
		if !ok {
			m = &mean{}
			byCompetence[c.CompetenceID] = m
		}
		m.addScore(criterionGrades[c.ID])
	}

	result := make(map[string]*float64, len(competences))
	for _, comp := range competences {
		if m, ok := byCompetence[comp.ID]; ok {
			result[comp.ID] = m.value()
			continue
		}
		result[comp.ID] = nil
	}
	return result
}

// StudentKeyCompetenceGrades averages, for each key competence, the grades of
// the specific competences linked to it through shared descriptors.
func StudentKeyCompetenceGrades(studentID string, class models.ClassData, criteria []models.Criterion, competences []models.SpecificCompetence, keyCompetences []models.KeyCompetence, periodID string) map[string]*float64 {
	competenceGrades := StudentCompetenceGrades(studentID, class, criteria, competences, periodID)
	links := KeyCompetenceLinks(keyCompetences, competences)

	result := make(map[string]*float64, len(keyCompetences))
	for _, key := range keyCompetences {
		var m mean
		for _, competenceID := range links[key.ID] {
			m.addScore(competenceGrades[competenceID])
		}
		result[key.ID] = m.value()
	}
	return result
}

// KeyCompetenceLinks derives which specific competences belong to which key
// competence: a pair is linked when the competence lists at least one of the
// key competence's descriptor ids. The relation is rebuilt on every call.
// Competence ids are returned sorted.
func KeyCompetenceLinks(keyCompetences []models.KeyCompetence, competences []models.SpecificCompetence) map[string][]string {
	owners := descriptorOwners(keyCompetences)

	linked := make(map[string]map[string]struct{}, len(keyCompetences))
	for _, comp := range competences {
		for _, descriptorID := range comp.DescriptorIDs {
			for _, keyID := range owners[descriptorID] {
				set, ok := linked[keyID]
				if !ok {
					set = make(map[string]struct{})
					linked[keyID] = set
				}
				set[comp.ID] = struct{}{}
			}
		}
	}

	links := make(map[string][]string, len(linked))
	for keyID, set := range linked {
		ids := make([]string, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		links[keyID] = ids
	}
	return links
}

func descriptorOwners(keyCompetences []models.KeyCompetence) map[string][]string {
	owners := make(map[string][]string)
	for _, key := range keyCompetences {
		for _, d := range key.Descriptors {
			owners[d.ID] = append(owners[d.ID], key.ID)
		}
	}
	return owners
}
