package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/gradebook-service/internal/services"
	"github.com/SAP-F-2025/gradebook-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// EvaluationHandler runs the grade engine on snapshots sent in the request
// body. Nothing is stored.
type EvaluationHandler struct {
	BaseHandler
	evaluationService services.EvaluationService
}

func NewEvaluationHandler(evaluationService services.EvaluationService, logger utils.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		BaseHandler:       NewBaseHandler(logger),
		evaluationService: evaluationService,
	}
}

// ScoreTool scores the results recorded on an evaluation tool
// @Summary Score evaluation tool
// @Tags evaluation
// @Accept json
// @Produce json
// @Param request body services.ScoreToolRequest true "Tool and results"
// @Success 200 {object} services.ScoreToolResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /evaluate/tool [post]
func (h *EvaluationHandler) ScoreTool(c *gin.Context) {
	h.LogRequest(c, "Scoring evaluation tool")

	var req services.ScoreToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	resp, err := h.evaluationService.ScoreTool(h.requestContext(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// EvaluateStudent computes one student's report from a submitted snapshot
// @Summary Evaluate student
// @Tags evaluation
// @Accept json
// @Produce json
// @Param request body services.EvaluateStudentRequest true "Snapshot and student"
// @Success 200 {object} grading.StudentReport
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /evaluate/student [post]
func (h *EvaluationHandler) EvaluateStudent(c *gin.Context) {
	h.LogRequest(c, "Evaluating student")

	var req services.EvaluateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	report, err := h.evaluationService.EvaluateStudent(h.requestContext(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// EvaluateGrade returns the grade record an entry would store
// @Summary Evaluate grade entry
// @Tags evaluation
// @Accept json
// @Produce json
// @Param request body services.EvaluateGradeRequest true "Snapshot and grade entry"
// @Success 200 {object} models.Grade
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /evaluate/grade [post]
func (h *EvaluationHandler) EvaluateGrade(c *gin.Context) {
	h.LogRequest(c, "Evaluating grade entry")

	var req services.EvaluateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	grade, err := h.evaluationService.EvaluateGrade(h.requestContext(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, grade)
}

// EvaluateClass computes a class report from a submitted snapshot
// @Summary Evaluate class
// @Tags evaluation
// @Accept json
// @Produce json
// @Param request body services.EvaluateClassRequest true "Snapshot and class"
// @Success 200 {object} grading.ClassReport
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /evaluate/class [post]
func (h *EvaluationHandler) EvaluateClass(c *gin.Context) {
	h.LogRequest(c, "Evaluating class")

	var req services.EvaluateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	report, err := h.evaluationService.EvaluateClass(h.requestContext(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
