package repository

import (
	"quiz_platform_backend/internal/model"

	"gorm.io/gorm"
)

// deleteQuizCascade removes a quiz and everything hanging off it: questions,
// answers, submissions and submission answers. Must run inside a transaction.
func deleteQuizCascade(tx *gorm.DB, quizID uint) error {
	var questionIDs []uint
	if err := tx.Model(&model.Question{}).Where("quiz_id = ?", quizID).Pluck("id", &questionIDs).Error; err != nil {
		return err
	}
	if len(questionIDs) > 0 {
		if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quizID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
	}

	var submissionIDs []uint
	if err := tx.Model(&model.QuizSubmission{}).Where("quiz_id = ?", quizID).Pluck("id", &submissionIDs).Error; err != nil {
		return err
	}
	if len(submissionIDs) > 0 {
		if err := tx.Where("submission_id IN ?", submissionIDs).Delete(&model.SubmissionAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quizID).Delete(&model.QuizSubmission{}).Error; err != nil {
			return err
		}
	}

	return tx.Delete(&model.Quiz{}, quizID).Error
}

// deleteSubmissionsForStudent removes a student's attempts and their answer rows.
func deleteSubmissionsForStudent(tx *gorm.DB, studentID uint) error {
	var submissionIDs []uint
	if err := tx.Model(&model.QuizSubmission{}).Where("student_id = ?", studentID).Pluck("id", &submissionIDs).Error; err != nil {
		return err
	}
	if len(submissionIDs) == 0 {
		return nil
	}
	if err := tx.Where("submission_id IN ?", submissionIDs).Delete(&model.SubmissionAnswer{}).Error; err != nil {
		return err
	}
	return tx.Where("student_id = ?", studentID).Delete(&model.QuizSubmission{}).Error
}
