package service

import (
	"fmt"
	"testing"

	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/pkg/logger"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a throwaway in-memory database per test. The uuid in the
// DSN keeps parallel tests from sharing state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.Log = zap.NewNop()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Quiz{},
		&model.Question{},
		&model.Answer{},
		&model.QuizSubmission{},
		&model.SubmissionAnswer{},
	); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, email string, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		Email:     email,
		Password:  "hashed",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

func strPtr(s string) *string { return &s }

func questionsPtr(qs []QuestionReq) *[]QuestionReq { return &qs }

// validQuizReq is a two-question quiz that passes the publish gate as-is.
func validQuizReq(title string) QuizReq {
	return QuizReq{
		Title: strPtr(title),
		Questions: questionsPtr([]QuestionReq{
			{
				Text: "Water boils at 100C at sea level.",
				Type: model.TrueFalse,
				Answers: []AnswerReq{
					{Text: "True", IsCorrect: true},
					{Text: "False"},
				},
			},
			{
				Text:   "Pick the prime number.",
				Type:   model.MultipleChoice,
				Points: 2,
				Answers: []AnswerReq{
					{Text: "4"},
					{Text: "7", IsCorrect: true},
					{Text: "9"},
				},
			},
		}),
	}
}

func createPublishedQuiz(t *testing.T, svc *QuizService, instructorID uint) *model.Quiz {
	t.Helper()
	quiz, err := svc.CreateQuiz(instructorID, validQuizReq("Published quiz"))
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	published, err := svc.Publish(quiz.ID, instructorID)
	if err != nil {
		t.Fatalf("publish quiz: %v", err)
	}
	return published
}
