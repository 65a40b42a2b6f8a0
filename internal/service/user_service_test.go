package service

import (
	"errors"
	"testing"

	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/internal/repository"
	"quiz_platform_backend/internal/util"
)

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	user := newTestUser(t, db, "profile@example.com", model.Student)
	newTestUser(t, db, "taken@example.com", model.Student)

	t.Run("partial update keeps role and untouched fields", func(t *testing.T) {
		updated, err := svc.UpdateProfile(user.ID, &ProfileUpdate{FirstName: strPtr("Changed")})
		if err != nil {
			t.Fatalf("UpdateProfile() error = %v", err)
		}
		if updated.FirstName != "Changed" {
			t.Errorf("FirstName = %q, want %q", updated.FirstName, "Changed")
		}
		if updated.Role != model.Student {
			t.Errorf("Role = %q, want %q", updated.Role, model.Student)
		}
		if updated.Email != "profile@example.com" {
			t.Errorf("Email = %q changed unexpectedly", updated.Email)
		}
	})

	t.Run("email conflict", func(t *testing.T) {
		_, err := svc.UpdateProfile(user.ID, &ProfileUpdate{Email: strPtr("taken@example.com")})
		if !errors.Is(err, util.ErrEmailRegistered) {
			t.Errorf("UpdateProfile() error = %v, want ErrEmailRegistered", err)
		}
	})

	t.Run("password is rehashed", func(t *testing.T) {
		updated, err := svc.UpdateProfile(user.ID, &ProfileUpdate{Password: strPtr("newsecret")})
		if err != nil {
			t.Fatalf("UpdateProfile() error = %v", err)
		}
		if updated.Password == "newsecret" {
			t.Error("password stored in plain text")
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.UpdateProfile(9999, &ProfileUpdate{FirstName: strPtr("Nobody")})
		if !errors.Is(err, util.ErrUserNotFound) {
			t.Errorf("UpdateProfile() error = %v, want ErrUserNotFound", err)
		}
	})
}

func TestDeleteUserCascades(t *testing.T) {
	db := newTestDB(t)
	userSvc := NewUserService(repository.NewUserRepository(db))
	quizRepo := repository.NewQuizRepository(db)
	quizSvc := NewQuizService(quizRepo)
	subSvc := NewSubmissionService(repository.NewSubmissionRepository(db), quizRepo, nil)

	instructor := newTestUser(t, db, "owner@example.com", model.Instructor)
	student := newTestUser(t, db, "student@example.com", model.Student)
	quiz := createPublishedQuiz(t, quizSvc, instructor.ID)

	if _, err := subSvc.Start(quiz.ID, student.ID); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := userSvc.Delete(instructor.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := userSvc.GetByID(instructor.ID); !errors.Is(err, util.ErrUserNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrUserNotFound", err)
	}

	var quizCount, subCount int64
	db.Model(&model.Quiz{}).Where("instructor_id = ?", instructor.ID).Count(&quizCount)
	db.Model(&model.QuizSubmission{}).Where("quiz_id = ?", quiz.ID).Count(&subCount)
	if quizCount != 0 || subCount != 0 {
		t.Errorf("left quizzes=%d submissions=%d after cascade, want 0/0", quizCount, subCount)
	}
}
