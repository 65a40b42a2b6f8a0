// Seeds a local database with a demo instructor, a student, and one
// published quiz so the API can be exercised right after a fresh migration.
//
// Usage: go run scripts/seed.go
package main

import (
	"log"

	"quiz_platform_backend/internal/config"
	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/internal/repository"
	"quiz_platform_backend/internal/service"
	"quiz_platform_backend/pkg/database"
	"quiz_platform_backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	users := repository.NewUserRepository(db)
	quizzes := repository.NewQuizRepository(db)
	quizService := service.NewQuizService(quizzes)

	instructor := seedUser(users, "instructor@example.com", "Ada", "Lovelace", model.Instructor)
	seedUser(users, "student@example.com", "Alan", "Turing", model.Student)

	title := "Getting started"
	description := "A short demo quiz"
	questions := []service.QuestionReq{
		{
			Text: "The capital of France is Paris.",
			Type: model.TrueFalse,
			Answers: []service.AnswerReq{
				{Text: "True", IsCorrect: true},
				{Text: "False"},
			},
		},
		{
			Text:   "Which year did the first moon landing happen?",
			Type:   model.MultipleChoice,
			Points: 2,
			Answers: []service.AnswerReq{
				{Text: "1965"},
				{Text: "1969", IsCorrect: true},
				{Text: "1972"},
			},
		},
	}

	quiz, err := quizService.CreateQuiz(instructor.ID, service.QuizReq{
		Title:       &title,
		Description: &description,
		Questions:   &questions,
	})
	if err != nil {
		log.Fatalf("Failed to create demo quiz: %v", err)
	}
	if _, err := quizService.Publish(quiz.ID, instructor.ID); err != nil {
		log.Fatalf("Failed to publish demo quiz: %v", err)
	}

	log.Printf("Seed complete: quiz %d published", quiz.ID)
}

func seedUser(users *repository.UserRepository, email, first, last string, role model.UserRole) *model.User {
	if existing, err := users.FindByEmail(email); err == nil {
		return existing
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}
	user := &model.User{
		Email:     email,
		Password:  string(hashed),
		FirstName: first,
		LastName:  last,
		Role:      role,
	}
	if err := users.Create(user); err != nil {
		log.Fatalf("Failed to create seed user %s: %v", email, err)
	}
	return user
}
