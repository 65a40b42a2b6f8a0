package repository

import (
	"quiz_platform_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindAll() ([]model.User, error) {
	var users []model.User
	err := r.DB.Order("id").Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

// DeleteCascade removes the user together with everything they own: their
// attempts, and for instructors every authored quiz with its full subtree.
func (r *UserRepository) DeleteCascade(user *model.User) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteSubmissionsForStudent(tx, user.ID); err != nil {
			return err
		}

		if user.Role == model.Instructor {
			var quizIDs []uint
			if err := tx.Model(&model.Quiz{}).Where("instructor_id = ?", user.ID).Pluck("id", &quizIDs).Error; err != nil {
				return err
			}
			for _, quizID := range quizIDs {
				if err := deleteQuizCascade(tx, quizID); err != nil {
					return err
				}
			}
		}

		return tx.Delete(&model.User{}, user.ID).Error
	})
}
