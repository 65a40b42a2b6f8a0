package service

import (
	"errors"
	"time"

	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/internal/repository"
	"quiz_platform_backend/internal/util"

	"gorm.io/gorm"
)

type QuizService struct {
	Repo *repository.QuizRepository
}

func NewQuizService(repo *repository.QuizRepository) *QuizService {
	return &QuizService{Repo: repo}
}

type AnswerReq struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
	Order     int    `json:"order"`
}

type QuestionReq struct {
	Text    string             `json:"text" binding:"required"`
	Type    model.QuestionType `json:"type" binding:"required"`
	Points  int                `json:"points"`
	Order   int                `json:"order"`
	Answers []AnswerReq        `json:"answers"`
}

type QuizReq struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	TimeLimit   *int           `json:"timeLimitMinutes"`
	Questions   *[]QuestionReq `json:"questions"`
}

func buildQuestion(req QuestionReq, position int) model.Question {
	question := model.Question{
		Text:   req.Text,
		Type:   req.Type,
		Points: req.Points,
		Order:  req.Order,
	}
	if question.Points <= 0 {
		question.Points = 1
	}
	if question.Order <= 0 {
		question.Order = position
	}
	for i, a := range req.Answers {
		answer := model.Answer{
			Text:      a.Text,
			IsCorrect: a.IsCorrect,
			Order:     a.Order,
		}
		if answer.Order <= 0 {
			answer.Order = i + 1
		}
		question.Answers = append(question.Answers, answer)
	}
	return question
}

func buildQuestions(reqs []QuestionReq) []model.Question {
	questions := make([]model.Question, 0, len(reqs))
	for i, q := range reqs {
		questions = append(questions, buildQuestion(q, i+1))
	}
	return questions
}

// validateStructure applies the authoring-time rules: a quiz needs at least
// one question, every question at least one answer, and choice questions at
// least one correct answer. The stricter exactly-one rule belongs to the
// publish gate.
func validateStructure(questions []model.Question) error {
	if len(questions) == 0 {
		return util.Validationf("quiz must have at least one question")
	}
	for _, q := range questions {
		if len(q.Answers) == 0 {
			return util.Validationf("each question must have at least one answer")
		}
		if q.Type.ChoiceBased() {
			hasCorrect := false
			for _, a := range q.Answers {
				if a.IsCorrect {
					hasCorrect = true
					break
				}
			}
			if !hasCorrect {
				return util.Validationf("multiple choice and true/false questions must have one correct answer")
			}
		}
	}
	return nil
}

// ValidatePublish is the publish gate: a pure predicate over a fully loaded
// quiz. Choice questions must have exactly one correct answer; short-answer
// questions are exempt from the correctness count because their answer rows
// form an accepted-answers list.
func ValidatePublish(quiz *model.Quiz) error {
	if len(quiz.Questions) == 0 {
		return util.Validationf("quiz must have at least one question")
	}
	for _, q := range quiz.Questions {
		if len(q.Answers) == 0 {
			return util.Validationf("question %d must have at least one answer", q.Order)
		}
		if !q.Type.ChoiceBased() {
			continue
		}
		correct := 0
		for _, a := range q.Answers {
			if a.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return util.Validationf("question %d must have exactly one correct answer, has %d", q.Order, correct)
		}
	}
	return nil
}

func (s *QuizService) CreateQuiz(instructorID uint, req QuizReq) (*model.Quiz, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, util.Validationf("title is required")
	}

	quiz := &model.Quiz{
		Title:        *req.Title,
		InstructorID: instructorID,
		TimeLimit:    30,
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.TimeLimit != nil && *req.TimeLimit > 0 {
		quiz.TimeLimit = *req.TimeLimit
	}
	if req.Questions != nil {
		quiz.Questions = buildQuestions(*req.Questions)
	}

	if err := validateStructure(quiz.Questions); err != nil {
		return nil, err
	}

	if err := s.Repo.CreateWithQuestions(quiz); err != nil {
		return nil, err
	}

	return s.Repo.FindByIDWithAnswers(quiz.ID)
}

// GetForInstructor loads the full quiz including answer correctness; only
// the owner may see it.
func (s *QuizService) GetForInstructor(quizID, callerID uint) (*model.Quiz, error) {
	quiz, err := s.Repo.FindByIDWithAnswers(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if quiz.InstructorID != callerID {
		return nil, util.ErrPermissionDenied
	}
	return quiz, nil
}

// GetForStudent returns the redacted view of a published quiz. Unpublished
// quizzes are invisible to students.
func (s *QuizService) GetForStudent(quizID uint) (*model.StudentQuiz, error) {
	quiz, err := s.Repo.FindByIDWithAnswers(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if !quiz.IsPublished {
		return nil, util.ErrQuizNotFound
	}
	return quiz.ForStudent(), nil
}

func (s *QuizService) ListForInstructor(instructorID uint) ([]model.Quiz, error) {
	return s.Repo.FindByInstructor(instructorID)
}

func (s *QuizService) ListPublished() ([]repository.QuizSummary, error) {
	return s.Repo.FindPublished()
}

// UpdateQuiz mutates an owned quiz. Updates to an already published quiz
// re-run the publish gate so a published quiz can never drift into an
// invalid state.
func (s *QuizService) UpdateQuiz(quizID, callerID uint, req QuizReq) (*model.Quiz, error) {
	quiz, err := s.Repo.FindByIDWithAnswers(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if quiz.InstructorID != callerID {
		return nil, util.ErrPermissionDenied
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, util.Validationf("title is required")
		}
		quiz.Title = *req.Title
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.TimeLimit != nil && *req.TimeLimit > 0 {
		quiz.TimeLimit = *req.TimeLimit
	}

	var questions []model.Question
	if req.Questions != nil {
		questions = buildQuestions(*req.Questions)
		if err := validateStructure(questions); err != nil {
			return nil, err
		}
	}

	if quiz.IsPublished {
		candidate := *quiz
		if questions != nil {
			candidate.Questions = questions
		}
		if err := ValidatePublish(&candidate); err != nil {
			return nil, err
		}
	}

	if err := s.Repo.SaveWithQuestions(quiz, questions); err != nil {
		return nil, err
	}

	return s.Repo.FindByIDWithAnswers(quizID)
}

// AddQuestion appends a question to an owned quiz. When the quiz is already
// published the new question must itself pass the gate's per-question rules.
func (s *QuizService) AddQuestion(quizID, callerID uint, req QuestionReq) (*model.Question, error) {
	quiz, err := s.Repo.FindByIDWithAnswers(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if quiz.InstructorID != callerID {
		return nil, util.ErrPermissionDenied
	}

	question := buildQuestion(req, len(quiz.Questions)+1)
	question.QuizID = quizID

	if len(question.Answers) == 0 {
		return nil, util.Validationf("each question must have at least one answer")
	}
	if quiz.IsPublished {
		probe := *quiz
		probe.Questions = append(append([]model.Question{}, quiz.Questions...), question)
		if err := ValidatePublish(&probe); err != nil {
			return nil, err
		}
	}

	if err := s.Repo.AddQuestion(&question); err != nil {
		return nil, err
	}
	return &question, nil
}

// Publish flips the one-way published flag after the gate passes.
func (s *QuizService) Publish(quizID, callerID uint) (*model.Quiz, error) {
	quiz, err := s.Repo.FindByIDWithAnswers(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if quiz.InstructorID != callerID {
		return nil, util.ErrPermissionDenied
	}

	if err := ValidatePublish(quiz); err != nil {
		return nil, err
	}

	now := time.Now()
	quiz.IsPublished = true
	quiz.PublishedAt = &now
	if err := s.Repo.Update(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// DeleteQuiz removes an owned quiz. When attempts exist the caller must
// confirm with force; the delete then cascades through questions, answers
// and submissions.
func (s *QuizService) DeleteQuiz(quizID, callerID uint, force bool) error {
	quiz, err := s.Repo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuizNotFound
		}
		return err
	}
	if quiz.InstructorID != callerID {
		return util.ErrPermissionDenied
	}

	hasSubmissions, err := s.Repo.HasSubmissions(quizID)
	if err != nil {
		return err
	}
	if hasSubmissions && !force {
		return util.ErrQuizHasSubmissions
	}

	return s.Repo.DeleteCascade(quizID)
}
