package controller

import (
	"errors"

	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/internal/service"
	"quiz_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

func respondQuizError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound):
		util.NotFound(c, "Quiz not found")
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(c, "You do not own this quiz")
	case util.IsValidation(err):
		util.BadRequest(c, err.Error())
	default:
		util.LogInternalError(c, err)
	}
}

// CreateQuiz godoc
// @Summary Create a quiz
// @Description Creates a draft quiz with its questions in one call
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.QuizReq true "Quiz payload"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/quizzes [post]
func (ctrl *QuizController) CreateQuiz(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req service.QuizReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "Invalid quiz payload: "+err.Error())
		return
	}

	quiz, err := ctrl.QuizService.CreateQuiz(claims.UserID, req)
	if err != nil {
		respondQuizError(c, err)
		return
	}
	util.Created(c, quiz)
}

// ListQuizzes godoc
// @Summary List quizzes
// @Description Instructors get their own quizzes with answers; students get published summaries
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/quizzes [get]
func (ctrl *QuizController) ListQuizzes(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	if claims.Role == model.Instructor {
		quizzes, err := ctrl.QuizService.ListForInstructor(claims.UserID)
		if err != nil {
			util.LogInternalError(c, err)
			return
		}
		util.Success(c, quizzes)
		return
	}

	summaries, err := ctrl.QuizService.ListPublished()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, summaries)
}

// ListPublished godoc
// @Summary List published quizzes
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]repository.QuizSummary}
// @Router /api/quizzes/published [get]
func (ctrl *QuizController) ListPublished(c *gin.Context) {
	summaries, err := ctrl.QuizService.ListPublished()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, summaries)
}

// GetQuiz godoc
// @Summary Get a quiz by ID
// @Description Owners see the full quiz with correctness flags; students see a redacted view of published quizzes
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (ctrl *QuizController) GetQuiz(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	id := util.ParseID(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "Invalid quiz ID")
		return
	}

	if claims.Role == model.Instructor {
		quiz, err := ctrl.QuizService.GetForInstructor(id, claims.UserID)
		if err != nil {
			respondQuizError(c, err)
			return
		}
		util.Success(c, quiz)
		return
	}

	view, err := ctrl.QuizService.GetForStudent(id)
	if err != nil {
		respondQuizError(c, err)
		return
	}
	util.Success(c, view)
}

// UpdateQuiz godoc
// @Summary Update a quiz
// @Description Replaces the provided fields; sending questions replaces the full question set
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Param request body service.QuizReq true "Fields to update"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id} [put]
func (ctrl *QuizController) UpdateQuiz(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	id := util.ParseID(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "Invalid quiz ID")
		return
	}

	var req service.QuizReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "Invalid quiz payload: "+err.Error())
		return
	}

	quiz, err := ctrl.QuizService.UpdateQuiz(id, claims.UserID, req)
	if err != nil {
		respondQuizError(c, err)
		return
	}
	util.Success(c, quiz)
}

// AddQuestion godoc
// @Summary Append a question to a quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Param request body service.QuestionReq true "Question payload"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id}/questions [post]
func (ctrl *QuizController) AddQuestion(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	id := util.ParseID(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "Invalid quiz ID")
		return
	}

	var req service.QuestionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "Invalid question payload: "+err.Error())
		return
	}

	question, err := ctrl.QuizService.AddQuestion(id, claims.UserID, req)
	if err != nil {
		respondQuizError(c, err)
		return
	}
	util.Created(c, question)
}

// PublishQuiz godoc
// @Summary Publish a quiz
// @Description Runs the publish gate and makes the quiz visible to students; publishing is one-way
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id}/publish [post]
func (ctrl *QuizController) PublishQuiz(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	id := util.ParseID(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "Invalid quiz ID")
		return
	}

	quiz, err := ctrl.QuizService.Publish(id, claims.UserID)
	if err != nil {
		respondQuizError(c, err)
		return
	}
	util.Success(c, quiz)
}

// DeleteQuiz godoc
// @Summary Delete a quiz
// @Description Refuses with 409 when submissions exist unless force=true is passed
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Param force query bool false "Delete even when submissions exist"
// @Success 204
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/quizzes/{id} [delete]
func (ctrl *QuizController) DeleteQuiz(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	id := util.ParseID(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "Invalid quiz ID")
		return
	}

	force := c.Query("force") == "true"

	if err := ctrl.QuizService.DeleteQuiz(id, claims.UserID, force); err != nil {
		if errors.Is(err, util.ErrQuizHasSubmissions) {
			util.ErrorWithData(c, 409, "Quiz has submissions; pass force=true to delete anyway", gin.H{"hasSubmissions": true})
			return
		}
		respondQuizError(c, err)
		return
	}
	util.NoContent(c)
}
