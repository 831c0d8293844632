// file: internals/features/users/user/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	UserID           uuid.UUID `json:"user_id" gorm:"column:user_id;type:uuid;primaryKey"`
	UserAccountID    string    `json:"user_account_id" gorm:"column:user_account_id;size:20;uniqueIndex;not null"`
	UserName         string    `json:"user_name" gorm:"column:user_name;size:50;not null"`
	UserRole         string    `json:"user_role" gorm:"column:user_role;size:20;not null"` // student/teacher/secretary/admin
	UserDepartment   string    `json:"user_department" gorm:"column:user_department;size:100;not null"`
	UserEmail        string    `json:"user_email" gorm:"column:user_email;size:100;uniqueIndex;not null"`
	UserPasswordHash string    `json:"-" gorm:"column:user_password_hash;size:128;not null"`
	UserAdvisorID    *string   `json:"user_advisor_id" gorm:"column:user_advisor_id;size:20"`
	UserIsActive     bool      `json:"user_is_active" gorm:"column:user_is_active;not null;default:true"`
	UserCreatedAt    time.Time `json:"user_created_at" gorm:"column:user_created_at;autoCreateTime"`
	UserCreatedBy    string    `json:"user_created_by" gorm:"column:user_created_by;size:50;not null"`
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	return nil
}
