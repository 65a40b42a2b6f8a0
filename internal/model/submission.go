package model

import (
	"strconv"
	"time"
)

// QuizSubmission is one student attempt at one quiz. It is created by start
// with a zero score, mutated exactly once by submit, and read-only afterward.
// A nil CompletedAt marks the attempt as still in progress.
//
// swagger:model QuizSubmission
type QuizSubmission struct {
	BaseModel
	QuizID      uint               `gorm:"index;not null" json:"quizId"`
	StudentID   uint               `gorm:"index;not null" json:"studentId"`
	Score       int                `gorm:"default:0" json:"score"`
	StartedAt   time.Time          `json:"startedAt"`
	CompletedAt *time.Time         `json:"completedAt"`
	SubmittedAt *time.Time         `json:"submittedAt"`
	Answers     []SubmissionAnswer `gorm:"foreignKey:SubmissionID" json:"-"`

	// AnswerValues mirrors the persisted answer rows as a questionId -> value
	// map for API payloads.
	AnswerValues map[string]string `gorm:"-" json:"answers"`
}

func (QuizSubmission) TableName() string {
	return "quiz_submissions"
}

// InProgress reports whether the attempt has not been submitted yet.
func (s *QuizSubmission) InProgress() bool {
	return s.CompletedAt == nil
}

// LoadAnswerMap fills AnswerValues from the loaded answer rows.
func (s *QuizSubmission) LoadAnswerMap() {
	s.AnswerValues = make(map[string]string, len(s.Answers))
	for _, a := range s.Answers {
		s.AnswerValues[a.QuestionKey()] = a.Value
	}
}

// SubmissionAnswer is one submitted value for one question of an attempt.
// Choice answers hold the selected answer id in string form, short answers
// hold the free text as submitted.
type SubmissionAnswer struct {
	BaseModel
	SubmissionID uint   `gorm:"index;not null" json:"submissionId"`
	QuestionID   uint   `gorm:"index;not null" json:"questionId"`
	Value        string `gorm:"type:text" json:"value"`
}

func (SubmissionAnswer) TableName() string {
	return "submission_answers"
}

// QuestionKey is the question id in the string form used by answer maps.
func (a *SubmissionAnswer) QuestionKey() string {
	return strconv.FormatUint(uint64(a.QuestionID), 10)
}
