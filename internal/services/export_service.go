package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"

	"github.com/SAP-F-2025/gradebook-service/internal/grading"
	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	gradesSheet     = "Grades"
)

// Light fills matching the bg-<color>-100 classes used by the front end.
var classificationFills = map[string]string{
	"red":    "#FEE2E2",
	"orange": "#FFEDD5",
	"yellow": "#FEF9C3",
	"blue":   "#DBEAFE",
	"green":  "#DCFCE7",
	"gray":   "#F3F4F6",
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

type exportService struct {
	logger *slog.Logger
}

func NewExportService(logger *slog.Logger) ExportService {
	return &exportService{logger: logger}
}

// exportCell is one rendered value and the classification color used to fill
// it in spreadsheets.
type exportCell struct {
	text  string
	value *float64
	color string
}

// ExportClassReport renders one row per student with the assignment, period
// and final columns of the report, followed by a class average row.
func (s *exportService) ExportClassReport(book *models.Gradebook, class *models.ClassData, report *grading.ClassReport, format ExportFormat) (*ExportResult, error) {
	headers, rows := s.buildTable(book, class, report)
	filename := exportFilename(class, report.PeriodID, format)

	switch format {
	case ExportCSV:
		data, err := s.writeCSV(headers, rows)
		if err != nil {
			return nil, err
		}
		return &ExportResult{Filename: filename, ContentType: csvContentType, Data: data}, nil
	case ExportXLSX:
		data, err := s.writeXLSX(headers, rows)
		if err != nil {
			return nil, err
		}
		return &ExportResult{Filename: filename, ContentType: xlsxContentType, Data: data}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func (s *exportService) buildTable(book *models.Gradebook, class *models.ClassData, report *grading.ClassReport) ([]string, [][]exportCell) {
	var assignments []models.Assignment
	for _, a := range class.Assignments {
		if report.PeriodID == "" || a.EvaluationPeriodID == report.PeriodID {
			assignments = append(assignments, a)
		}
	}
	periods := book.AcademicConfiguration.EvaluationPeriods

	headers := make([]string, 0, len(assignments)+len(periods)+2)
	headers = append(headers, "Student")
	for _, a := range assignments {
		headers = append(headers, columnName(a.Name, a.ID))
	}
	for _, p := range periods {
		headers = append(headers, columnName(p.Name, p.ID))
	}
	headers = append(headers, "Final")

	rows := make([][]exportCell, 0, len(report.Students)+1)
	for _, student := range report.Students {
		row := []exportCell{{text: student.StudentName}}
		for _, a := range assignments {
			row = append(row, scoredCell(student.Assignments[a.ID]))
		}
		for _, p := range periods {
			period := student.Periods[p.ID]
			row = append(row, scoredCell(grading.ScoredValue{Score: period.Grade, Classification: period.Classification}))
		}
		row = append(row, exportCell{text: student.Final.Grade, value: student.Final.Value, color: student.Final.Classification.Color})
		rows = append(rows, row)
	}

	average := []exportCell{{text: "Class average"}}
	for _, a := range assignments {
		average = append(average, scoredCell(report.AssignmentAverages[a.ID]))
	}
	for _, p := range periods {
		average = append(average, scoredCell(report.PeriodAverages[p.ID]))
	}
	average = append(average, scoredCell(report.FinalAverage))
	rows = append(rows, average)

	return headers, rows
}

func (s *exportService) writeCSV(headers []string, rows [][]exportCell) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = cell.text
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *exportService) writeXLSX(headers []string, rows [][]exportCell) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close Excel file", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", gradesSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel style: %w", err)
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(gradesSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write Excel header: %w", err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(gradesSheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style Excel header: %w", err)
	}

	fills := make(map[string]int)
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}

			var content interface{} = value.text
			if value.value != nil {
				content = math.Round(*value.value*100) / 100
			}
			if err := f.SetCellValue(gradesSheet, cell, content); err != nil {
				return nil, fmt.Errorf("failed to write Excel cell %s: %w", cell, err)
			}

			style, err := s.fillStyle(f, fills, value.color)
			if err != nil {
				return nil, err
			}
			if style != 0 {
				if err := f.SetCellStyle(gradesSheet, cell, cell, style); err != nil {
					return nil, fmt.Errorf("failed to style Excel cell %s: %w", cell, err)
				}
			}
		}
	}

	if err := f.SetColWidth(gradesSheet, "A", "A", 28); err != nil {
		return nil, fmt.Errorf("failed to size Excel column: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

// fillStyle returns the style id for a classification color, creating it on
// first use. Unknown colors get no style.
func (s *exportService) fillStyle(f *excelize.File, cache map[string]int, color string) (int, error) {
	hex, ok := classificationFills[color]
	if !ok {
		return 0, nil
	}
	if id, ok := cache[color]; ok {
		return id, nil
	}
	id, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{hex}, Pattern: 1},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create Excel style: %w", err)
	}
	cache[color] = id
	return id, nil
}

func scoredCell(v grading.ScoredValue) exportCell {
	cell := exportCell{value: v.Score, color: v.Classification.Color}
	if v.Score != nil {
		cell.text = fmt.Sprintf("%.2f", *v.Score)
	}
	return cell
}

func columnName(name, id string) string {
	if strings.TrimSpace(name) == "" {
		return id
	}
	return name
}

func exportFilename(class *models.ClassData, periodID string, format ExportFormat) string {
	base := unsafeFilenameChars.ReplaceAllString(columnName(class.Name, class.ID), "_")
	if periodID != "" {
		base += "-" + unsafeFilenameChars.ReplaceAllString(periodID, "_")
	}
	return fmt.Sprintf("%s-grades.%s", base, format)
}
