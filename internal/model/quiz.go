package model

import "time"

type QuestionType string

const (
	MultipleChoice QuestionType = "MULTIPLE_CHOICE"
	TrueFalse      QuestionType = "TRUE_FALSE"
	ShortAnswer    QuestionType = "SHORT_ANSWER"
)

// ChoiceBased reports whether the type is graded by answer id lookup.
func (t QuestionType) ChoiceBased() bool {
	return t == MultipleChoice || t == TrueFalse
}

// swagger:model Quiz
type Quiz struct {
	BaseModel
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	InstructorID uint       `gorm:"index;not null" json:"instructorId"`
	TimeLimit    int        `gorm:"default:30" json:"timeLimitMinutes"`
	IsPublished  bool       `gorm:"default:false" json:"isPublished"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
	Questions    []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model Question
type Question struct {
	BaseModel
	QuizID  uint         `gorm:"index;not null" json:"quizId"`
	Text    string       `gorm:"type:text;not null" json:"text"`
	Type    QuestionType `gorm:"size:50;not null" json:"type"`
	Points  int          `gorm:"default:1" json:"points"`
	Order   int          `gorm:"column:position;default:0" json:"order"`
	Answers []Answer     `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model Answer
type Answer struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
	Order      int    `gorm:"column:position;default:0" json:"order"`
}

func (Answer) TableName() string {
	return "answers"
}

// StudentAnswer is the answers-redacted view served to quiz takers.
type StudentAnswer struct {
	ID    uint   `json:"id"`
	Text  string `json:"text"`
	Order int    `json:"order"`
}

// StudentQuestion strips correctness flags from a question's answers.
type StudentQuestion struct {
	ID      uint            `json:"id"`
	QuizID  uint            `json:"quizId"`
	Text    string          `json:"text"`
	Type    QuestionType    `json:"type"`
	Points  int             `json:"points"`
	Order   int             `json:"order"`
	Answers []StudentAnswer `json:"answers"`
}

// StudentQuiz is a quiz as seen by a student: full structure, no answer key.
type StudentQuiz struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	TimeLimit   int               `json:"timeLimitMinutes"`
	IsPublished bool              `json:"isPublished"`
	Questions   []StudentQuestion `json:"questions"`
}

// ForStudent redacts the quiz for student consumption. Scoring must never
// run against this view; it has no correctness data.
func (q *Quiz) ForStudent() *StudentQuiz {
	view := &StudentQuiz{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		TimeLimit:   q.TimeLimit,
		IsPublished: q.IsPublished,
		Questions:   make([]StudentQuestion, 0, len(q.Questions)),
	}
	for _, question := range q.Questions {
		sq := StudentQuestion{
			ID:      question.ID,
			QuizID:  question.QuizID,
			Text:    question.Text,
			Type:    question.Type,
			Points:  question.Points,
			Order:   question.Order,
			Answers: make([]StudentAnswer, 0, len(question.Answers)),
		}
		for _, a := range question.Answers {
			sq.Answers = append(sq.Answers, StudentAnswer{ID: a.ID, Text: a.Text, Order: a.Order})
		}
		view.Questions = append(view.Questions, sq)
	}
	return view
}
