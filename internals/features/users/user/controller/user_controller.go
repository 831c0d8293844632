// file: internals/features/users/user/controller/user_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	userDTO "prestasiku_backend/internals/features/users/user/dto"
	userModel "prestasiku_backend/internals/features/users/user/model"
	userService "prestasiku_backend/internals/features/users/user/service"
	helper "prestasiku_backend/internals/helpers"
	helperAuth "prestasiku_backend/internals/helpers/auth"
)

type UserController struct {
	DB *gorm.DB
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

// LOGIN
// POST /auth/login
func (h *UserController) Login(c *fiber.Ctx) error {
	var req userDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	req.Normalize()
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorFields(err))
	}

	user, err := userService.Authenticate(h.DB, req.AccountID, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, userService.ErrInvalidCredentials):
			return helper.JsonError(c, fiber.StatusUnauthorized, "invalid account or password")
		case errors.Is(err, userService.ErrAccountDisabled):
			return helper.JsonError(c, fiber.StatusForbidden, "account has been disabled")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "login failed")
		}
	}

	token, err := userService.IssueAccessToken(user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to issue token")
	}

	return helper.JsonOK(c, "login successful", userDTO.LoginResponse{
		AccessToken: token,
		User:        userDTO.FromUserModel(*user),
	})
}

// ME
// GET /api/users/me
func (h *UserController) Me(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}
	var user userModel.UserModel
	if err := h.DB.First(&user, "user_id = ?", actor.UserID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "user not found")
	}
	return helper.JsonOK(c, "ok", userDTO.FromUserModel(user))
}

/* =========================================================
   ADMIN CRUD
   ========================================================= */

// CREATE
// POST /admin/users
func (h *UserController) Create(c *fiber.Ctx) error {
	var req userDTO.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	req.Normalize()
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorFields(err))
	}

	// admin imports without a password get account-id-derived default
	password := req.Password
	if password == "" {
		password = userService.DefaultPassword(req.AccountID)
	}
	hash, err := userService.HashPassword(password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to hash password")
	}

	user := userModel.UserModel{
		UserAccountID:    req.AccountID,
		UserName:         req.Name,
		UserRole:         req.Role,
		UserDepartment:   req.Department,
		UserEmail:        req.Email,
		UserPasswordHash: hash,
		UserAdvisorID:    req.AdvisorID,
		UserIsActive:     true,
		UserCreatedBy:    "admin_import",
	}
	if err := h.DB.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "account id or email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create user")
	}
	return helper.JsonCreated(c, "user created", userDTO.FromUserModel(user))
}

// LIST
// GET /admin/users?role=&department=
func (h *UserController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&userModel.UserModel{})
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		q = q.Where("user_role = ?", role)
	}
	if dept := strings.TrimSpace(c.Query("department")); dept != "" {
		q = q.Where("user_department = ?", dept)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count users")
	}

	var users []userModel.UserModel
	if err := q.Order("user_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list users")
	}

	out := make([]userDTO.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userDTO.FromUserModel(u))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPagination(total, paging))
}

// UPDATE
// PUT /admin/users/:id
func (h *UserController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	var req userDTO.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorFields(err))
	}

	var user userModel.UserModel
	if err := h.DB.First(&user, "user_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "user not found")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["user_name"] = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		updates["user_role"] = strings.TrimSpace(strings.ToLower(*req.Role))
	}
	if req.Department != nil {
		updates["user_department"] = strings.TrimSpace(*req.Department)
	}
	if req.Email != nil {
		updates["user_email"] = strings.TrimSpace(*req.Email)
	}
	if req.AdvisorID != nil {
		updates["user_advisor_id"] = strings.TrimSpace(*req.AdvisorID)
	}
	if req.IsActive != nil {
		updates["user_is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "nothing to update", userDTO.FromUserModel(user))
	}

	if err := h.DB.Model(&user).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update user")
	}
	return helper.JsonUpdated(c, "user updated", userDTO.FromUserModel(user))
}

// RESET PASSWORD
// POST /admin/users/:id/reset-password
func (h *UserController) ResetPassword(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	var req userDTO.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorFields(err))
	}

	var user userModel.UserModel
	if err := h.DB.First(&user, "user_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "user not found")
	}

	hash, err := userService.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to hash password")
	}
	if err := h.DB.Model(&user).Update("user_password_hash", hash).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to reset password")
	}
	return helper.JsonUpdated(c, "password reset", nil)
}
