package repository

import (
	"quiz_platform_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// CreateWithQuestions inserts the quiz and its nested questions and answers
// as one transaction; a failure partway leaves nothing behind.
func (r *QuizRepository) CreateWithQuestions(quiz *model.Quiz) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(quiz).Error
	})
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, id).Error
	return &quiz, err
}

// FindByIDWithAnswers loads the full quiz including correctness flags. This
// is the instructor-scoped fetch the scoring engine requires.
func (r *QuizRepository) FindByIDWithAnswers(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.position, questions.id")
		}).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.position, answers.id")
		}).
		First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) FindByInstructor(instructorID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.position, questions.id")
		}).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.position, answers.id")
		}).
		Where("instructor_id = ?", instructorID).
		Order("id").
		Find(&quizzes).Error
	return quizzes, err
}

// QuizSummary is a list row for the student-facing published quiz list.
type QuizSummary struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	TimeLimit     int    `json:"timeLimitMinutes"`
	QuestionCount int    `json:"questionCount"`
}

func (r *QuizRepository) FindPublished() ([]QuizSummary, error) {
	var rows []QuizSummary
	err := r.DB.Model(&model.Quiz{}).
		Select("quizzes.id, quizzes.title, quizzes.description, quizzes.time_limit, COUNT(questions.id) AS question_count").
		Joins("LEFT JOIN questions ON questions.quiz_id = quizzes.id AND questions.deleted_at IS NULL").
		Where("quizzes.is_published = ?", true).
		Group("quizzes.id, quizzes.title, quizzes.description, quizzes.time_limit").
		Order("quizzes.id").
		Scan(&rows).Error
	return rows, err
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Omit("Questions").Save(quiz).Error
}

// SaveWithQuestions updates the quiz row and, when a replacement question set
// is given, swaps the questions in the same transaction.
func (r *QuizRepository) SaveWithQuestions(quiz *model.Quiz, questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Questions").Save(quiz).Error; err != nil {
			return err
		}
		if questions == nil {
			return nil
		}
		return replaceQuestions(tx, quiz.ID, questions)
	})
}

// AddQuestion appends a question (with its answers) to an existing quiz.
func (r *QuizRepository) AddQuestion(question *model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(question).Error
	})
}

func replaceQuestions(tx *gorm.DB, quizID uint, questions []model.Question) error {
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
	for i := range questions {
		questions[i].QuizID = quizID
		if err := tx.Create(&questions[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *QuizRepository) HasSubmissions(quizID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.QuizSubmission{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count > 0, err
}

// DeleteCascade removes the quiz, its questions, answers, submissions and
// submission answers in one transaction.
func (r *QuizRepository) DeleteCascade(quizID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return deleteQuizCascade(tx, quizID)
	})
}
