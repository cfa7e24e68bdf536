package handlers

import (
	"github.com/SAP-F-2025/gradebook-service/internal/services"
	"github.com/SAP-F-2025/gradebook-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	gradebookHandler  *GradebookHandler
	evaluationHandler *EvaluationHandler
	tokenParser       TokenParser
	logger            utils.Logger
}

// NewHandlerManager wires the handlers of every service. A nil tokenParser
// disables authentication.
func NewHandlerManager(serviceManager services.ServiceManager, tokenParser TokenParser, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		gradebookHandler:  NewGradebookHandler(serviceManager.Gradebook(), logger),
		evaluationHandler: NewEvaluationHandler(serviceManager.Evaluation(), logger),
		tokenParser:       tokenParser,
		logger:            logger,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.Use(utils.RequestID(), utils.LoggerMiddleware(hm.logger))

	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(AuthMiddleware(hm.tokenParser, hm.logger))
	{
		gradebooks := v1.Group("/gradebooks")
		{
			gradebooks.POST("", hm.gradebookHandler.CreateGradebook)
			gradebooks.GET("", hm.gradebookHandler.ListGradebooks)
			gradebooks.GET("/:id", hm.gradebookHandler.GetGradebook)
			gradebooks.PUT("/:id", hm.gradebookHandler.UpdateGradebook)
			gradebooks.DELETE("/:id", hm.gradebookHandler.DeleteGradebook)
			gradebooks.PUT("/:id/grades", hm.gradebookHandler.RecordGrade)

			// Computed grades
			gradebooks.GET("/:id/classes/:class_id/report", hm.gradebookHandler.GetClassReport)
			gradebooks.GET("/:id/classes/:class_id/students/:student_id/report", hm.gradebookHandler.GetStudentReport)
			gradebooks.GET("/:id/classes/:class_id/export", hm.gradebookHandler.ExportClassGrades)
		}

		evaluate := v1.Group("/evaluate")
		{
			evaluate.POST("/tool", hm.evaluationHandler.ScoreTool)
			evaluate.POST("/student", hm.evaluationHandler.EvaluateStudent)
			evaluate.POST("/class", hm.evaluationHandler.EvaluateClass)
			evaluate.POST("/grade", hm.evaluationHandler.EvaluateGrade)
		}
	}
}
