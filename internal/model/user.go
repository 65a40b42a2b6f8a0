package model

type UserRole string

const (
	Instructor UserRole = "INSTRUCTOR"
	Student    UserRole = "STUDENT"
)

// swagger:model User
type User struct {
	BaseModel
	Email     string   `gorm:"size:100;unique;not null" json:"email"`
	Password  string   `gorm:"size:100;not null" json:"-"`
	FirstName string   `gorm:"size:100;not null" json:"firstName"`
	LastName  string   `gorm:"size:100;not null" json:"lastName"`
	Role      UserRole `gorm:"size:20;default:'STUDENT'" json:"role"`
	Avatar    string   `gorm:"size:255" json:"avatar,omitempty"`
}

func (User) TableName() string {
	return "users"
}
