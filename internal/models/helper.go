package models

func (g *Gradebook) Class(id string) (*ClassData, bool) {
	for i := range g.Classes {
		if g.Classes[i].ID == id {
			return &g.Classes[i], true
		}
	}
	return nil, false
}

func (g *Gradebook) Tool(id string) (*EvaluationTool, bool) {
	for i := range g.EvaluationTools {
		if g.EvaluationTools[i].ID == id {
			return &g.EvaluationTools[i], true
		}
	}
	return nil, false
}

// CourseCriteria returns the criteria of one course. An empty courseID keeps
// every criterion.
func (g *Gradebook) CourseCriteria(courseID string) []Criterion {
	if courseID == "" {
		return g.Criteria
	}
	criteria := make([]Criterion, 0, len(g.Criteria))
	for _, c := range g.Criteria {
		if c.CourseID == courseID {
			criteria = append(criteria, c)
		}
	}
	return criteria
}

func (g *Gradebook) CourseCompetences(courseID string) []SpecificCompetence {
	if courseID == "" {
		return g.Competences
	}
	competences := make([]SpecificCompetence, 0, len(g.Competences))
	for _, c := range g.Competences {
		if c.CourseID == courseID {
			competences = append(competences, c)
		}
	}
	return competences
}

func (c *ClassData) Student(id string) (*Student, bool) {
	for i := range c.Students {
		if c.Students[i].ID == id {
			return &c.Students[i], true
		}
	}
	return nil, false
}

func (c *ClassData) Category(id string) (*Category, bool) {
	for i := range c.Categories {
		if c.Categories[i].ID == id {
			return &c.Categories[i], true
		}
	}
	return nil, false
}

func (c *ClassData) Assignment(id string) (*Assignment, bool) {
	for i := range c.Assignments {
		if c.Assignments[i].ID == id {
			return &c.Assignments[i], true
		}
	}
	return nil, false
}

func (a *AcademicConfiguration) Period(id string) (*EvaluationPeriod, bool) {
	for i := range a.EvaluationPeriods {
		if a.EvaluationPeriods[i].ID == id {
			return &a.EvaluationPeriods[i], true
		}
	}
	return nil, false
}
