package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/SAP-F-2025/gradebook-service/internal/grading"
	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"github.com/SAP-F-2025/gradebook-service/internal/validator"
	"github.com/charmbracelet/lipgloss"
)

// Foreground colors for the classification colors of the grade scale.
var classificationColors = map[string]lipgloss.Color{
	"red":    lipgloss.Color("#DC2626"),
	"orange": lipgloss.Color("#EA580C"),
	"yellow": lipgloss.Color("#CA8A04"),
	"blue":   lipgloss.Color("#2563EB"),
	"green":  lipgloss.Color("#16A34A"),
	"gray":   lipgloss.Color("#9CA3AF"),
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle  = lipgloss.NewStyle().Faint(true)
)

func loadSnapshot(path string) (*models.Gradebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading snapshot: %w", err)
	}

	var book models.Gradebook
	if err := json.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("error parsing snapshot: %w", err)
	}

	if err := validator.New().Validate(&book); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	return &book, nil
}

func findClass(book *models.Gradebook, classID, periodID string) (*models.ClassData, error) {
	class, ok := book.Class(classID)
	if !ok {
		return nil, fmt.Errorf("class %q not found", classID)
	}
	if periodID != "" {
		if _, ok := book.AcademicConfiguration.Period(periodID); !ok {
			return nil, fmt.Errorf("evaluation period %q not found", periodID)
		}
	}
	return class, nil
}

func printClassReport(w io.Writer, book *models.Gradebook, classID, periodID string, asJSON bool) error {
	class, err := findClass(book, classID, periodID)
	if err != nil {
		return err
	}
	report := grading.BuildClassReport(grading.NewReportInput(book, *class), periodID)
	if asJSON {
		return writeJSON(w, report)
	}

	var assignments []models.Assignment
	for _, a := range class.Assignments {
		if periodID == "" || a.EvaluationPeriodID == periodID {
			assignments = append(assignments, a)
		}
	}
	periods := book.AcademicConfiguration.EvaluationPeriods

	header := []string{"Student"}
	for _, a := range assignments {
		header = append(header, displayName(a.Name, a.ID))
	}
	for _, p := range periods {
		header = append(header, displayName(p.Name, p.ID))
	}
	header = append(header, "Final")

	rows := make([][]string, 0, len(report.Students)+1)
	for _, student := range report.Students {
		row := []string{student.StudentName}
		for _, a := range assignments {
			row = append(row, scored(student.Assignments[a.ID]))
		}
		for _, p := range periods {
			period := student.Periods[p.ID]
			row = append(row, scored(grading.ScoredValue{Score: period.Grade, Classification: period.Classification}))
		}
		row = append(row, colored(student.Final.Grade, student.Final.Classification))
		rows = append(rows, row)
	}

	average := []string{labelStyle.Render("Class average")}
	for _, a := range assignments {
		average = append(average, scored(report.AssignmentAverages[a.ID]))
	}
	for _, p := range periods {
		average = append(average, scored(report.PeriodAverages[p.ID]))
	}
	average = append(average, scored(report.FinalAverage))
	rows = append(rows, average)

	fmt.Fprintln(w, titleStyle.Render(displayName(class.Name, class.ID)))
	fmt.Fprintln(w, renderTable(header, rows))
	return nil
}

func printStudentReport(w io.Writer, book *models.Gradebook, classID, studentID, periodID string, asJSON bool) error {
	class, err := findClass(book, classID, periodID)
	if err != nil {
		return err
	}
	student, ok := class.Student(studentID)
	if !ok {
		return fmt.Errorf("student %q not found in class %q", studentID, classID)
	}
	report := grading.BuildStudentReport(grading.NewReportInput(book, *class), *student, periodID)
	if asJSON {
		return writeJSON(w, report)
	}

	fmt.Fprintln(w, titleStyle.Render(report.StudentName))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Final grade:"), colored(report.Final.Grade, report.Final.Classification))

	periodScores := make(map[string]grading.ScoredValue, len(report.Periods))
	for id, p := range report.Periods {
		periodScores[id] = grading.ScoredValue{Score: p.Grade, Classification: p.Classification}
	}

	sections := []struct {
		title  string
		values map[string]grading.ScoredValue
	}{
		{"Evaluation periods", periodScores},
		{"Assignments", report.Assignments},
		{"Criteria", report.Criteria},
		{"Specific competences", report.Competences},
		{"Key competences", report.KeyCompetences},
	}
	for _, section := range sections {
		if len(section.values) == 0 {
			continue
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render(section.title))
		for _, id := range sortedKeys(section.values) {
			fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(id+":"), scored(section.values[id]))
		}
	}
	return nil
}

// renderTable pads every column to its widest cell. Widths are measured with
// lipgloss so styled cells line up.
func renderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if width := lipgloss.Width(cell); width > widths[i] {
				widths[i] = width
			}
		}
	}

	pad := func(cells []string) string {
		padded := make([]string, len(cells))
		for i, cell := range cells {
			padded[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		}
		return strings.TrimRight(strings.Join(padded, "  "), " ")
	}

	headerCells := make([]string, len(header))
	for i, h := range header {
		headerCells[i] = headerStyle.Render(h)
	}

	lines := []string{pad(headerCells)}
	for _, row := range rows {
		lines = append(lines, pad(row))
	}
	return strings.Join(lines, "\n")
}

func scored(v grading.ScoredValue) string {
	if v.Score == nil {
		return colored("-", v.Classification)
	}
	return colored(fmt.Sprintf("%.2f", *v.Score), v.Classification)
}

func colored(text string, class grading.Classification) string {
	color, ok := classificationColors[class.Color]
	if !ok {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func displayName(name, id string) string {
	if strings.TrimSpace(name) == "" {
		return id
	}
	return name
}

func sortedKeys(values map[string]grading.ScoredValue) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
