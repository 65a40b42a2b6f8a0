package repository

import (
	"quiz_platform_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(submission *model.QuizSubmission) error {
	return r.DB.Create(submission).Error
}

// FindActive returns the most recently started in-progress attempt for the
// (student, quiz) pair. Older in-progress rows, should any exist, lose.
func (r *SubmissionRepository) FindActive(quizID, studentID uint) (*model.QuizSubmission, error) {
	var submission model.QuizSubmission
	err := r.DB.
		Where("quiz_id = ? AND student_id = ? AND completed_at IS NULL", quizID, studentID).
		Order("started_at DESC, id DESC").
		First(&submission).Error
	return &submission, err
}

// FindLatest returns the student's newest attempt for the quiz regardless of
// state, answers loaded.
func (r *SubmissionRepository) FindLatest(quizID, studentID uint) (*model.QuizSubmission, error) {
	var submission model.QuizSubmission
	err := r.DB.
		Preload("Answers").
		Where("quiz_id = ? AND student_id = ?", quizID, studentID).
		Order("started_at DESC, id DESC").
		First(&submission).Error
	return &submission, err
}

func (r *SubmissionRepository) FindByID(id uint) (*model.QuizSubmission, error) {
	var submission model.QuizSubmission
	err := r.DB.Preload("Answers").First(&submission, id).Error
	return &submission, err
}

func (r *SubmissionRepository) FindByQuizID(quizID uint) ([]model.QuizSubmission, error) {
	var submissions []model.QuizSubmission
	err := r.DB.
		Preload("Answers").
		Where("quiz_id = ?", quizID).
		Order("started_at, id").
		Find(&submissions).Error
	return submissions, err
}

// Complete persists the graded attempt and its answer rows atomically.
func (r *SubmissionRepository) Complete(submission *model.QuizSubmission, answers []model.SubmissionAnswer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Answers").Save(submission).Error; err != nil {
			return err
		}
		for i := range answers {
			answers[i].SubmissionID = submission.ID
			if err := tx.Create(&answers[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
