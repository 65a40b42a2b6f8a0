package controller

import (
	"errors"

	"quiz_platform_backend/internal/service"
	"quiz_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

func respondAnalyticsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound):
		util.NotFound(c, "Quiz not found")
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(c, "You do not own this quiz")
	default:
		util.LogInternalError(c, err)
	}
}

// GetAttempts godoc
// @Summary List every attempt on an owned quiz
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} util.Response{data=[]model.QuizSubmission}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id}/attempts [get]
func (ctrl *AnalyticsController) GetAttempts(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	quizID := util.ParseID(c.Param("id"))
	if quizID == 0 {
		util.BadRequest(c, "Invalid quiz ID")
		return
	}

	attempts, err := ctrl.AnalyticsService.Attempts(quizID, claims.UserID)
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}
	util.Success(c, attempts)
}

// GetAnalytics godoc
// @Summary Aggregate statistics for an owned quiz
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} util.Response{data=service.QuizAnalytics}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id}/analytics [get]
func (ctrl *AnalyticsController) GetAnalytics(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	quizID := util.ParseID(c.Param("id"))
	if quizID == 0 {
		util.BadRequest(c, "Invalid quiz ID")
		return
	}

	analytics, err := ctrl.AnalyticsService.GetAnalytics(c.Request.Context(), quizID, claims.UserID)
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}
	util.Success(c, analytics)
}

// GetReport godoc
// @Summary Per-submission report for an owned quiz
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} util.Response{data=[]service.SubmissionReportRow}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id}/report [get]
func (ctrl *AnalyticsController) GetReport(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	quizID := util.ParseID(c.Param("id"))
	if quizID == 0 {
		util.BadRequest(c, "Invalid quiz ID")
		return
	}

	report, err := ctrl.AnalyticsService.Report(quizID, claims.UserID)
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}
	util.Success(c, report)
}
