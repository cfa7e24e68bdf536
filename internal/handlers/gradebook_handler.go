package handlers

import (
	"net/http"
	"strings"

	"github.com/SAP-F-2025/gradebook-service/internal/repositories"
	"github.com/SAP-F-2025/gradebook-service/internal/services"
	"github.com/SAP-F-2025/gradebook-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type GradebookHandler struct {
	BaseHandler
	gradebookService services.GradebookService
}

func NewGradebookHandler(gradebookService services.GradebookService, logger utils.Logger) *GradebookHandler {
	return &GradebookHandler{
		BaseHandler:      NewBaseHandler(logger),
		gradebookService: gradebookService,
	}
}

// CreateGradebook stores a new gradebook snapshot
// @Summary Create gradebook
// @Tags gradebooks
// @Accept json
// @Produce json
// @Param gradebook body services.SaveGradebookRequest true "Gradebook snapshot"
// @Success 201 {object} services.GradebookResponse
// @Failure 400 {object} ErrorResponse
// @Router /gradebooks [post]
func (h *GradebookHandler) CreateGradebook(c *gin.Context) {
	h.LogRequest(c, "Creating gradebook")

	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req services.SaveGradebookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	resp, err := h.gradebookService.Create(h.requestContext(c), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListGradebooks lists the gradebooks of the current teacher
// @Summary List gradebooks
// @Tags gradebooks
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Param search query string false "Name filter"
// @Success 200 {object} services.GradebookListResponse
// @Router /gradebooks [get]
func (h *GradebookHandler) ListGradebooks(c *gin.Context) {
	h.LogRequest(c, "Listing gradebooks")

	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	resp, err := h.gradebookService.List(h.requestContext(c), userID, h.parseGradebookFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetGradebook returns a stored gradebook snapshot
// @Summary Get gradebook
// @Tags gradebooks
// @Produce json
// @Param id path uint true "Gradebook ID"
// @Success 200 {object} services.GradebookResponse
// @Failure 404 {object} ErrorResponse
// @Router /gradebooks/{id} [get]
func (h *GradebookHandler) GetGradebook(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Getting gradebook", "gradebook_id", id)

	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	resp, err := h.gradebookService.GetByID(h.requestContext(c), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateGradebook replaces a snapshot; the body must carry the version read
// @Summary Update gradebook
// @Tags gradebooks
// @Accept json
// @Produce json
// @Param id path uint true "Gradebook ID"
// @Param gradebook body services.SaveGradebookRequest true "Gradebook snapshot"
// @Success 200 {object} services.GradebookResponse
// @Failure 409 {object} ErrorResponse
// @Router /gradebooks/{id} [put]
func (h *GradebookHandler) UpdateGradebook(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Updating gradebook", "gradebook_id", id)

	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req services.SaveGradebookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	resp, err := h.gradebookService.Update(h.requestContext(c), id, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteGradebook removes a gradebook
// @Summary Delete gradebook
// @Tags gradebooks
// @Param id path uint true "Gradebook ID"
// @Success 204
// @Router /gradebooks/{id} [delete]
func (h *GradebookHandler) DeleteGradebook(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting gradebook", "gradebook_id", id)

	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	if err := h.gradebookService.Delete(h.requestContext(c), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RecordGrade stores one student's result on an assignment
// @Summary Record grade
// @Tags gradebooks
// @Accept json
// @Produce json
// @Param id path uint true "Gradebook ID"
// @Param grade body services.RecordGradeRequest true "Grade entry and the version read"
// @Success 200 {object} services.RecordGradeResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /gradebooks/{id}/grades [put]
func (h *GradebookHandler) RecordGrade(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Recording grade", "gradebook_id", id)

	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req services.RecordGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	resp, err := h.gradebookService.RecordGrade(h.requestContext(c), id, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetClassReport computes the grades of every student of a class
// @Summary Class report
// @Tags reports
// @Produce json
// @Param id path uint true "Gradebook ID"
// @Param class_id path string true "Class ID"
// @Param period_id query string false "Evaluation period limiting assignment, criterion and competence values; period and final grades always cover every period"
// @Success 200 {object} grading.ClassReport
// @Failure 404 {object} ErrorResponse
// @Router /gradebooks/{id}/classes/{class_id}/report [get]
func (h *GradebookHandler) GetClassReport(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	classID := ParseStringIDParam(c, "class_id")
	if classID == "" {
		return
	}
	periodID := strings.TrimSpace(c.Query("period_id"))

	h.LogRequest(c, "Getting class report", "gradebook_id", id, "class_id", classID, "period_id", periodID)

	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	report, err := h.gradebookService.ClassReport(h.requestContext(c), id, classID, periodID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetStudentReport computes every aggregate of one student
// @Summary Student report
// @Tags reports
// @Produce json
// @Param id path uint true "Gradebook ID"
// @Param class_id path string true "Class ID"
// @Param student_id path string true "Student ID"
// @Param period_id query string false "Evaluation period limiting assignment, criterion and competence values; period and final grades always cover every period"
// @Success 200 {object} grading.StudentReport
// @Failure 404 {object} ErrorResponse
// @Router /gradebooks/{id}/classes/{class_id}/students/{student_id}/report [get]
func (h *GradebookHandler) GetStudentReport(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	classID := ParseStringIDParam(c, "class_id")
	if classID == "" {
		return
	}
	studentID := ParseStringIDParam(c, "student_id")
	if studentID == "" {
		return
	}
	periodID := strings.TrimSpace(c.Query("period_id"))

	h.LogRequest(c, "Getting student report", "gradebook_id", id, "class_id", classID, "student_id", studentID)

	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	report, err := h.gradebookService.StudentReport(h.requestContext(c), id, classID, studentID, periodID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportClassGrades downloads the class grades as CSV or XLSX
// @Summary Export class grades
// @Tags reports
// @Produce application/octet-stream
// @Param id path uint true "Gradebook ID"
// @Param class_id path string true "Class ID"
// @Param format query string false "csv or xlsx" default(csv)
// @Param period_id query string false "Evaluation period limiting assignment, criterion and competence values; period and final grades always cover every period"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Router /gradebooks/{id}/classes/{class_id}/export [get]
func (h *GradebookHandler) ExportClassGrades(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	classID := ParseStringIDParam(c, "class_id")
	if classID == "" {
		return
	}
	format := services.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(services.ExportCSV))))
	periodID := strings.TrimSpace(c.Query("period_id"))

	h.LogRequest(c, "Exporting class grades", "gradebook_id", id, "class_id", classID, "format", format)

	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	result, err := h.gradebookService.ExportClassGrades(h.requestContext(c), id, classID, periodID, format, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

func (h *GradebookHandler) parseGradebookFilters(c *gin.Context) repositories.GradebookFilters {
	page := h.parseIntQuery(c, "page", 1)
	size := h.parseIntQuery(c, "size", 20)

	return repositories.GradebookFilters{
		Search:    strings.TrimSpace(c.Query("search")),
		Limit:     size,
		Offset:    (page - 1) * size,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
}
