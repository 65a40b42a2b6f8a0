package controller

import (
	"errors"

	"quiz_platform_backend/internal/service"
	"quiz_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
}

func NewSubmissionController(submissionService *service.SubmissionService) *SubmissionController {
	return &SubmissionController{SubmissionService: submissionService}
}

type SubmitRequest struct {
	Answers map[string]interface{} `json:"answers"`
}

// StartSubmission godoc
// @Summary Start an attempt on a published quiz
// @Description Returns the existing attempt when one is already in progress
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Success 201 {object} util.Response{data=model.QuizSubmission}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id}/start [post]
func (ctrl *SubmissionController) StartSubmission(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	quizID := util.ParseID(c.Param("id"))
	if quizID == 0 {
		util.BadRequest(c, "Invalid quiz ID")
		return
	}

	submission, err := ctrl.SubmissionService.Start(quizID, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(c, "Quiz not found")
		case errors.Is(err, util.ErrQuizNotPublished):
			util.Forbidden(c, "Quiz is not published")
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.Created(c, submission)
}

// SubmitAnswers godoc
// @Summary Submit answers for the active attempt
// @Description Grades every answer, records the score, and completes the attempt atomically
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Param request body SubmitRequest true "Question ID to answer value map"
// @Success 200 {object} util.Response{data=model.QuizSubmission}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "quiz missing or no active attempt"
// @Router /api/quizzes/{id}/submit [post]
func (ctrl *SubmissionController) SubmitAnswers(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	quizID := util.ParseID(c.Param("id"))
	if quizID == 0 {
		util.BadRequest(c, "Invalid quiz ID")
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "Invalid submission payload: "+err.Error())
		return
	}

	submission, err := ctrl.SubmissionService.Submit(c.Request.Context(), quizID, claims.UserID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(c, "Quiz not found")
		case errors.Is(err, util.ErrNoActiveSubmission):
			util.NotFound(c, "No active attempt for this quiz, start one first")
		case util.IsValidation(err):
			util.BadRequest(c, err.Error())
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.Success(c, submission)
}

// GetMySubmission godoc
// @Summary Get the caller's latest attempt for a quiz
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} util.Response{data=model.QuizSubmission}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id}/submission [get]
func (ctrl *SubmissionController) GetMySubmission(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	quizID := util.ParseID(c.Param("id"))
	if quizID == 0 {
		util.BadRequest(c, "Invalid quiz ID")
		return
	}

	submission, err := ctrl.SubmissionService.GetForStudent(quizID, claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrSubmissionNotFound) {
			util.NotFound(c, "No attempt found for this quiz")
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, submission)
}

// GetSubmission godoc
// @Summary Get a submission by ID
// @Description Visible to the student who owns it and to the instructor who owns the quiz
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Submission ID"
// @Success 200 {object} util.Response{data=model.QuizSubmission}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/submissions/{id} [get]
func (ctrl *SubmissionController) GetSubmission(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	id := util.ParseID(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "Invalid submission ID")
		return
	}

	submission, err := ctrl.SubmissionService.GetByID(id, claims)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSubmissionNotFound):
			util.NotFound(c, "Submission not found")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(c, "You do not have access to this submission")
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.Success(c, submission)
}
