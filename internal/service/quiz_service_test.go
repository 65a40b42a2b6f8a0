package service

import (
	"errors"
	"testing"

	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/internal/repository"
	"quiz_platform_backend/internal/util"
)

func TestCreateQuizDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(repository.NewQuizRepository(db))
	instructor := newTestUser(t, db, "owner@example.com", model.Instructor)

	quiz, err := svc.CreateQuiz(instructor.ID, validQuizReq("Defaults"))
	if err != nil {
		t.Fatalf("CreateQuiz() error = %v", err)
	}

	if quiz.TimeLimit != 30 {
		t.Errorf("TimeLimit = %d, want default 30", quiz.TimeLimit)
	}
	if quiz.IsPublished {
		t.Error("new quiz must start unpublished")
	}
	if len(quiz.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(quiz.Questions))
	}
	if quiz.Questions[0].Points != 1 {
		t.Errorf("question points = %d, want default 1", quiz.Questions[0].Points)
	}
	if quiz.Questions[0].Order != 1 || quiz.Questions[1].Order != 2 {
		t.Errorf("question order = %d,%d, want 1,2", quiz.Questions[0].Order, quiz.Questions[1].Order)
	}
}

func TestCreateQuizValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(repository.NewQuizRepository(db))
	instructor := newTestUser(t, db, "owner@example.com", model.Instructor)

	tests := []struct {
		name string
		req  QuizReq
	}{
		{"missing title", QuizReq{Questions: questionsPtr([]QuestionReq{})}},
		{"no questions", QuizReq{Title: strPtr("Empty")}},
		{
			"question without answers",
			QuizReq{
				Title: strPtr("Broken"),
				Questions: questionsPtr([]QuestionReq{
					{Text: "Dangling", Type: model.MultipleChoice},
				}),
			},
		},
		{
			"choice question without a correct answer",
			QuizReq{
				Title: strPtr("Broken"),
				Questions: questionsPtr([]QuestionReq{
					{
						Text: "No key",
						Type: model.MultipleChoice,
						Answers: []AnswerReq{
							{Text: "A"},
							{Text: "B"},
						},
					},
				}),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateQuiz(instructor.ID, tt.req)
			if !util.IsValidation(err) {
				t.Errorf("CreateQuiz() error = %v, want validation error", err)
			}
		})
	}
}

func TestPublishGate(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(repository.NewQuizRepository(db))
	instructor := newTestUser(t, db, "owner@example.com", model.Instructor)

	t.Run("exactly one correct answer passes", func(t *testing.T) {
		quiz, err := svc.CreateQuiz(instructor.ID, validQuizReq("Gate pass"))
		if err != nil {
			t.Fatalf("CreateQuiz() error = %v", err)
		}
		published, err := svc.Publish(quiz.ID, instructor.ID)
		if err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
		if !published.IsPublished || published.PublishedAt == nil {
			t.Error("Publish() did not set the published state")
		}
	})

	t.Run("two correct answers blocks publish", func(t *testing.T) {
		req := QuizReq{
			Title: strPtr("Gate fail"),
			Questions: questionsPtr([]QuestionReq{
				{
					Text: "Ambiguous",
					Type: model.MultipleChoice,
					Answers: []AnswerReq{
						{Text: "A", IsCorrect: true},
						{Text: "B", IsCorrect: true},
					},
				},
			}),
		}
		quiz, err := svc.CreateQuiz(instructor.ID, req)
		if err != nil {
			t.Fatalf("CreateQuiz() error = %v", err)
		}
		if _, err := svc.Publish(quiz.ID, instructor.ID); !util.IsValidation(err) {
			t.Errorf("Publish() error = %v, want validation error", err)
		}
	})

	t.Run("short answer questions are exempt", func(t *testing.T) {
		req := QuizReq{
			Title: strPtr("Accepted answers"),
			Questions: questionsPtr([]QuestionReq{
				{
					Text: "Capital of France?",
					Type: model.ShortAnswer,
					Answers: []AnswerReq{
						{Text: "Paris", IsCorrect: true},
						{Text: "paris", IsCorrect: true},
					},
				},
			}),
		}
		quiz, err := svc.CreateQuiz(instructor.ID, req)
		if err != nil {
			t.Fatalf("CreateQuiz() error = %v", err)
		}
		if _, err := svc.Publish(quiz.ID, instructor.ID); err != nil {
			t.Errorf("Publish() error = %v, want nil", err)
		}
	})
}

func TestQuizOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(repository.NewQuizRepository(db))
	owner := newTestUser(t, db, "owner@example.com", model.Instructor)
	other := newTestUser(t, db, "other@example.com", model.Instructor)

	quiz, err := svc.CreateQuiz(owner.ID, validQuizReq("Mine"))
	if err != nil {
		t.Fatalf("CreateQuiz() error = %v", err)
	}

	if _, err := svc.GetForInstructor(quiz.ID, other.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("GetForInstructor() error = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.UpdateQuiz(quiz.ID, other.ID, QuizReq{Title: strPtr("Stolen")}); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("UpdateQuiz() error = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.Publish(quiz.ID, other.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("Publish() error = %v, want ErrPermissionDenied", err)
	}
	if err := svc.DeleteQuiz(quiz.ID, other.ID, false); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("DeleteQuiz() error = %v, want ErrPermissionDenied", err)
	}
}

func TestGetForStudent(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(repository.NewQuizRepository(db))
	instructor := newTestUser(t, db, "owner@example.com", model.Instructor)

	draft, err := svc.CreateQuiz(instructor.ID, validQuizReq("Draft"))
	if err != nil {
		t.Fatalf("CreateQuiz() error = %v", err)
	}

	if _, err := svc.GetForStudent(draft.ID); !errors.Is(err, util.ErrQuizNotFound) {
		t.Errorf("GetForStudent(draft) error = %v, want ErrQuizNotFound", err)
	}

	published := createPublishedQuiz(t, svc, instructor.ID)
	view, err := svc.GetForStudent(published.ID)
	if err != nil {
		t.Fatalf("GetForStudent() error = %v", err)
	}
	if len(view.Questions) != 2 {
		t.Fatalf("student view questions = %d, want 2", len(view.Questions))
	}
	for _, q := range view.Questions {
		if len(q.Answers) == 0 {
			t.Errorf("question %d has no answer options", q.ID)
		}
	}
}

func TestUpdatePublishedQuizKeepsGate(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(repository.NewQuizRepository(db))
	instructor := newTestUser(t, db, "owner@example.com", model.Instructor)
	quiz := createPublishedQuiz(t, svc, instructor.ID)

	badQuestions := []QuestionReq{
		{
			Text: "Ambiguous",
			Type: model.TrueFalse,
			Answers: []AnswerReq{
				{Text: "True", IsCorrect: true},
				{Text: "False", IsCorrect: true},
			},
		},
	}
	if _, err := svc.UpdateQuiz(quiz.ID, instructor.ID, QuizReq{Questions: questionsPtr(badQuestions)}); !util.IsValidation(err) {
		t.Errorf("UpdateQuiz() error = %v, want validation error", err)
	}

	// metadata-only updates stay allowed
	updated, err := svc.UpdateQuiz(quiz.ID, instructor.ID, QuizReq{Title: strPtr("Renamed")})
	if err != nil {
		t.Fatalf("UpdateQuiz() error = %v", err)
	}
	if updated.Title != "Renamed" {
		t.Errorf("Title = %q, want %q", updated.Title, "Renamed")
	}
	if !updated.IsPublished {
		t.Error("update must not unpublish the quiz")
	}
}

func TestAddQuestionToPublishedQuiz(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(repository.NewQuizRepository(db))
	instructor := newTestUser(t, db, "owner@example.com", model.Instructor)
	quiz := createPublishedQuiz(t, svc, instructor.ID)

	bad := QuestionReq{
		Text: "No correct option",
		Type: model.MultipleChoice,
		Answers: []AnswerReq{
			{Text: "A"},
			{Text: "B"},
		},
	}
	if _, err := svc.AddQuestion(quiz.ID, instructor.ID, bad); !util.IsValidation(err) {
		t.Errorf("AddQuestion() error = %v, want validation error", err)
	}

	good := QuestionReq{
		Text: "Valid addition",
		Type: model.TrueFalse,
		Answers: []AnswerReq{
			{Text: "True", IsCorrect: true},
			{Text: "False"},
		},
	}
	question, err := svc.AddQuestion(quiz.ID, instructor.ID, good)
	if err != nil {
		t.Fatalf("AddQuestion() error = %v", err)
	}
	if question.Order != 3 {
		t.Errorf("new question order = %d, want 3", question.Order)
	}
}

func TestDeleteQuizGuard(t *testing.T) {
	db := newTestDB(t)
	quizRepo := repository.NewQuizRepository(db)
	subRepo := repository.NewSubmissionRepository(db)
	svc := NewQuizService(quizRepo)
	subSvc := NewSubmissionService(subRepo, quizRepo, nil)

	instructor := newTestUser(t, db, "owner@example.com", model.Instructor)
	student := newTestUser(t, db, "student@example.com", model.Student)
	quiz := createPublishedQuiz(t, svc, instructor.ID)

	if _, err := subSvc.Start(quiz.ID, student.ID); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := svc.DeleteQuiz(quiz.ID, instructor.ID, false); !errors.Is(err, util.ErrQuizHasSubmissions) {
		t.Errorf("DeleteQuiz() error = %v, want ErrQuizHasSubmissions", err)
	}

	if err := svc.DeleteQuiz(quiz.ID, instructor.ID, true); err != nil {
		t.Fatalf("DeleteQuiz(force) error = %v", err)
	}
	if _, err := svc.GetForInstructor(quiz.ID, instructor.ID); !errors.Is(err, util.ErrQuizNotFound) {
		t.Errorf("GetForInstructor() after delete error = %v, want ErrQuizNotFound", err)
	}

	var count int64
	db.Model(&model.QuizSubmission{}).Where("quiz_id = ?", quiz.ID).Count(&count)
	if count != 0 {
		t.Errorf("submissions left after cascade = %d, want 0", count)
	}
}

func TestListPublished(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(repository.NewQuizRepository(db))
	instructor := newTestUser(t, db, "owner@example.com", model.Instructor)

	if _, err := svc.CreateQuiz(instructor.ID, validQuizReq("Draft only")); err != nil {
		t.Fatalf("CreateQuiz() error = %v", err)
	}
	published := createPublishedQuiz(t, svc, instructor.ID)

	summaries, err := svc.ListPublished()
	if err != nil {
		t.Fatalf("ListPublished() error = %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("ListPublished() = %d quizzes, want 1", len(summaries))
	}
	if summaries[0].ID != published.ID {
		t.Errorf("published quiz ID = %d, want %d", summaries[0].ID, published.ID)
	}
	if summaries[0].QuestionCount != 2 {
		t.Errorf("QuestionCount = %d, want 2", summaries[0].QuestionCount)
	}
}
