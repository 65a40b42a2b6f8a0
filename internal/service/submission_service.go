package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/internal/repository"
	"quiz_platform_backend/internal/util"
	"quiz_platform_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// SubmissionService drives the attempt state machine: NotStarted ->
// InProgress -> Completed, with Completed terminal.
type SubmissionService struct {
	Subs      *repository.SubmissionRepository
	Quizzes   *repository.QuizRepository
	Analytics *AnalyticsService
}

func NewSubmissionService(subs *repository.SubmissionRepository, quizzes *repository.QuizRepository, analytics *AnalyticsService) *SubmissionService {
	return &SubmissionService{Subs: subs, Quizzes: quizzes, Analytics: analytics}
}

// Start opens an attempt at a published quiz. Starting while an attempt is
// already in progress resumes it instead of opening a second one.
func (s *SubmissionService) Start(quizID, studentID uint) (*model.QuizSubmission, error) {
	quiz, err := s.Quizzes.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if !quiz.IsPublished {
		return nil, util.ErrQuizNotPublished
	}

	if existing, err := s.Subs.FindActive(quizID, studentID); err == nil {
		existing.LoadAnswerMap()
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	submission := &model.QuizSubmission{
		QuizID:    quizID,
		StudentID: studentID,
		Score:     0,
		StartedAt: time.Now(),
	}
	if err := s.Subs.Create(submission); err != nil {
		return nil, err
	}
	submission.LoadAnswerMap()
	return submission, nil
}

// Submit grades the active attempt and completes it. The whole request fails
// on a malformed question key; nothing is partially scored. The submission
// row and its answer rows are written in one transaction.
func (s *SubmissionService) Submit(ctx context.Context, quizID, studentID uint, rawAnswers map[string]interface{}) (*model.QuizSubmission, error) {
	submission, err := s.Subs.FindActive(quizID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNoActiveSubmission
		}
		return nil, err
	}

	quiz, err := s.Quizzes.FindByIDWithAnswers(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	normalized, err := NormalizeAnswers(rawAnswers)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	submission.Score = ScoreQuiz(quiz, normalized)
	submission.CompletedAt = &now
	submission.SubmittedAt = &now

	questionIDs := make([]uint, 0, len(normalized))
	for questionID := range normalized {
		questionIDs = append(questionIDs, questionID)
	}
	sort.Slice(questionIDs, func(i, j int) bool { return questionIDs[i] < questionIDs[j] })

	answers := make([]model.SubmissionAnswer, 0, len(questionIDs))
	for _, questionID := range questionIDs {
		answers = append(answers, model.SubmissionAnswer{
			QuestionID: questionID,
			Value:      FormatAnswerValue(normalized[questionID]),
		})
	}

	if err := s.Subs.Complete(submission, answers); err != nil {
		return nil, err
	}
	monitoring.SubmissionsGraded.Inc()

	if s.Analytics != nil {
		s.Analytics.InvalidateCache(ctx, quizID)
	}

	submission.Answers = answers
	submission.LoadAnswerMap()
	return submission, nil
}

// GetForStudent returns the student's own newest attempt, active or
// completed.
func (s *SubmissionService) GetForStudent(quizID, studentID uint) (*model.QuizSubmission, error) {
	submission, err := s.Subs.FindLatest(quizID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	submission.LoadAnswerMap()
	return submission, nil
}

// GetByID fetches one submission for its student or for the instructor who
// owns the quiz; everyone else is refused.
func (s *SubmissionService) GetByID(submissionID uint, caller *util.Claims) (*model.QuizSubmission, error) {
	submission, err := s.Subs.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}

	if submission.StudentID != caller.UserID {
		if caller.Role != model.Instructor {
			return nil, util.ErrPermissionDenied
		}
		quiz, err := s.Quizzes.FindByID(submission.QuizID)
		if err != nil {
			return nil, err
		}
		if quiz.InstructorID != caller.UserID {
			return nil, util.ErrPermissionDenied
		}
	}

	submission.LoadAnswerMap()
	return submission, nil
}
