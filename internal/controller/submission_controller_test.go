package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/internal/repository"
	"quiz_platform_backend/internal/service"
	"quiz_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

func newSubmissionRouter(t *testing.T) (*gin.Engine, *service.QuizService, *model.User, *model.User) {
	t.Helper()
	db := newTestDB(t)
	quizRepo := repository.NewQuizRepository(db)
	subRepo := repository.NewSubmissionRepository(db)

	quizSvc := service.NewQuizService(quizRepo)
	subSvc := service.NewSubmissionService(subRepo, quizRepo, nil)
	ctrl := NewSubmissionController(subSvc)

	instructor := newTestUser(t, db, "owner@example.com", model.Instructor)
	student := newTestUser(t, db, "student@example.com", model.Student)

	router := gin.New()
	router.POST("/api/quizzes/:id/start", injectClaims(student), ctrl.StartSubmission)
	router.POST("/api/quizzes/:id/submit", injectClaims(student), ctrl.SubmitAnswers)
	return router, quizSvc, instructor, student
}

func publishTestQuiz(t *testing.T, svc *service.QuizService, instructorID uint) *model.Quiz {
	t.Helper()
	title := "Status codes"
	quiz, err := svc.CreateQuiz(instructorID, service.QuizReq{
		Title: &title,
		Questions: &[]service.QuestionReq{
			{
				Text: "True or false?",
				Type: model.TrueFalse,
				Answers: []service.AnswerReq{
					{Text: "True", IsCorrect: true},
					{Text: "False"},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	published, err := svc.Publish(quiz.ID, instructorID)
	if err != nil {
		t.Fatalf("publish quiz: %v", err)
	}
	return published
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSubmitAnswersStatusCodes(t *testing.T) {
	router, quizSvc, instructor, _ := newSubmissionRouter(t)
	quiz := publishTestQuiz(t, quizSvc, instructor.ID)
	submitPath := "/api/quizzes/" + util.FormatID(quiz.ID) + "/submit"

	t.Run("no active attempt answers 404", func(t *testing.T) {
		rec := postJSON(t, router, submitPath, `{"answers":{}}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}

		var envelope util.Response
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if envelope.Code != http.StatusNotFound {
			t.Errorf("envelope code = %d, want %d", envelope.Code, http.StatusNotFound)
		}
	})

	t.Run("after start the same submit answers 200", func(t *testing.T) {
		startRec := postJSON(t, router, "/api/quizzes/"+util.FormatID(quiz.ID)+"/start", "")
		if startRec.Code != http.StatusCreated {
			t.Fatalf("start status = %d, want %d", startRec.Code, http.StatusCreated)
		}

		rec := postJSON(t, router, submitPath, `{"answers":{}}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("missing quiz answers 404", func(t *testing.T) {
		rec := postJSON(t, router, "/api/quizzes/9999/submit", `{"answers":{}}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}
