package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/SAP-F-2025/gradebook-service/internal/grading"
	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleClassReport(t *testing.T, periodID string) (*models.Gradebook, *models.ClassData, *grading.ClassReport) {
	t.Helper()
	book := sampleGradebook()
	class, ok := book.Class("class-1")
	require.True(t, ok)
	report := grading.BuildClassReport(grading.NewReportInput(&book, *class), periodID)
	return &book, class, &report
}

func TestExportService_CSV(t *testing.T) {
	book, class, report := sampleClassReport(t, "")
	exporter := NewExportService(discardLogger())

	result, err := exporter.ExportClassReport(book, class, report, ExportCSV)
	require.NoError(t, err)

	assert.Equal(t, "1A-grades.csv", result.Filename)
	assert.Equal(t, csvContentType, result.ContentType)

	records, err := csv.NewReader(bytes.NewReader(result.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, []string{"Student", "Unit 1 exam", "Unit 1 retake", "First term", "Final"}, records[0])
	assert.Equal(t, []string{"Ana Ruiz", "6.00", "9.00", "9.00", "9.00"}, records[1])
	assert.Equal(t, []string{"Luis Gil", "4.00", "", "4.00", "4.00"}, records[2])
	assert.Equal(t, []string{"Class average", "5.00", "9.00", "6.50", "6.50"}, records[3])
}

func TestExportService_XLSX(t *testing.T) {
	book, class, report := sampleClassReport(t, "p1")
	exporter := NewExportService(discardLogger())

	result, err := exporter.ExportClassReport(book, class, report, ExportXLSX)
	require.NoError(t, err)

	assert.Equal(t, "1A-p1-grades.xlsx", result.Filename)
	assert.Equal(t, xlsxContentType, result.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(result.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(gradesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Student", rows[0][0])
	assert.Equal(t, "Final", rows[0][len(rows[0])-1])
	assert.Equal(t, "Ana Ruiz", rows[1][0])
	assert.Equal(t, "9", rows[1][len(rows[1])-1])

	styleID, err := f.GetCellStyle(gradesSheet, "E2")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	assert.Equal(t, 1, style.Fill.Pattern)
	assert.Len(t, style.Fill.Color, 1)

	headerStyle, err := f.GetCellStyle(gradesSheet, "A1")
	require.NoError(t, err)
	assert.NotEqual(t, styleID, headerStyle)
}

func TestExportService_UnsupportedFormat(t *testing.T) {
	book, class, report := sampleClassReport(t, "")

	_, err := NewExportService(discardLogger()).ExportClassReport(book, class, report, ExportFormat("pdf"))

	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		name     string
		class    models.ClassData
		periodID string
		format   ExportFormat
		expected string
	}{
		{"class name", models.ClassData{ID: "c1", Name: "2º ESO B"}, "", ExportCSV, "2_ESO_B-grades.csv"},
		{"falls back to the id", models.ClassData{ID: "c1"}, "", ExportXLSX, "c1-grades.xlsx"},
		{"with period", models.ClassData{ID: "c1", Name: "1A"}, "term 2", ExportCSV, "1A-term_2-grades.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, exportFilename(&tt.class, tt.periodID, tt.format))
		})
	}
}
