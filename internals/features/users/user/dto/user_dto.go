// file: internals/features/users/user/dto/user_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "prestasiku_backend/internals/features/users/user/model"
)

/* =========================================================
   LOGIN
   ========================================================= */

type LoginRequest struct {
	AccountID string `json:"account_id" form:"account_id" validate:"required,min=1,max=20"`
	Password  string `json:"password" form:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.AccountID = strings.TrimSpace(r.AccountID)
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

/* =========================================================
   CREATE / UPDATE
   ========================================================= */

type CreateUserRequest struct {
	AccountID  string  `json:"user_account_id" form:"user_account_id" validate:"required,min=1,max=20"`
	Name       string  `json:"user_name" form:"user_name" validate:"required,min=1,max=50"`
	Role       string  `json:"user_role" form:"user_role" validate:"required,oneof=student teacher secretary admin"`
	Department string  `json:"user_department" form:"user_department" validate:"required,min=1,max=100"`
	Email      string  `json:"user_email" form:"user_email" validate:"required,email"`
	Password   string  `json:"user_password" form:"user_password" validate:"omitempty,min=8,max=50"`
	AdvisorID  *string `json:"user_advisor_id" form:"user_advisor_id" validate:"omitempty,len=8,numeric"`
}

func (r *CreateUserRequest) Normalize() {
	r.AccountID = strings.TrimSpace(r.AccountID)
	r.Name = strings.TrimSpace(r.Name)
	r.Role = strings.TrimSpace(strings.ToLower(r.Role))
	r.Department = strings.TrimSpace(r.Department)
	r.Email = strings.TrimSpace(r.Email)
	if r.AdvisorID != nil {
		v := strings.TrimSpace(*r.AdvisorID)
		if v == "" {
			r.AdvisorID = nil
		} else {
			r.AdvisorID = &v
		}
	}
}

type UpdateUserRequest struct {
	Name       *string `json:"user_name" form:"user_name" validate:"omitempty,min=1,max=50"`
	Role       *string `json:"user_role" form:"user_role" validate:"omitempty,oneof=student teacher secretary admin"`
	Department *string `json:"user_department" form:"user_department" validate:"omitempty,min=1,max=100"`
	Email      *string `json:"user_email" form:"user_email" validate:"omitempty,email"`
	AdvisorID  *string `json:"user_advisor_id" form:"user_advisor_id" validate:"omitempty,len=8,numeric"`
	IsActive   *bool   `json:"user_is_active" form:"user_is_active"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" form:"password" validate:"required,min=8,max=50"`
}

/* =========================================================
   RESPONSE
   ========================================================= */

type UserResponse struct {
	UserID     uuid.UUID `json:"user_id"`
	AccountID  string    `json:"user_account_id"`
	Name       string    `json:"user_name"`
	Role       string    `json:"user_role"`
	Department string    `json:"user_department"`
	Email      string    `json:"user_email"`
	AdvisorID  *string   `json:"user_advisor_id,omitempty"`
	IsActive   bool      `json:"user_is_active"`
	CreatedAt  time.Time `json:"user_created_at"`
	CreatedBy  string    `json:"user_created_by"`
}

func FromUserModel(u m.UserModel) UserResponse {
	return UserResponse{
		UserID:     u.UserID,
		AccountID:  u.UserAccountID,
		Name:       u.UserName,
		Role:       u.UserRole,
		Department: u.UserDepartment,
		Email:      u.UserEmail,
		AdvisorID:  u.UserAdvisorID,
		IsActive:   u.UserIsActive,
		CreatedAt:  u.UserCreatedAt,
		CreatedBy:  u.UserCreatedBy,
	}
}
