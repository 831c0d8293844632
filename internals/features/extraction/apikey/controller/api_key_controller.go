// file: internals/features/extraction/apikey/controller/api_key_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	apiKeyDTO "prestasiku_backend/internals/features/extraction/apikey/dto"
	apiKeyModel "prestasiku_backend/internals/features/extraction/apikey/model"
	helper "prestasiku_backend/internals/helpers"
)

type APIKeyController struct {
	DB *gorm.DB
}

func NewAPIKeyController(db *gorm.DB) *APIKeyController {
	return &APIKeyController{DB: db}
}

/* ==============================
   POST /admin/api-keys
============================== */

func (ctl *APIKeyController) Create(c *fiber.Ctx) error {
	var req apiKeyDTO.CreateAPIKeyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorFields(err))
	}

	m := req.ToModel()
	if err := ctl.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create API key")
	}
	resp := apiKeyDTO.FromAPIKeyModel(m)
	return helper.JsonCreated(c, "API key created", resp)
}

/* ==============================
   GET /admin/api-keys
============================== */

func (ctl *APIKeyController) List(c *fiber.Ctx) error {
	var keys []apiKeyModel.APIKeyModel
	if err := ctl.DB.Order("api_key_created_at DESC").Find(&keys).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list API keys")
	}
	out := make([]apiKeyDTO.APIKeyResponse, 0, len(keys))
	for i := range keys {
		out = append(out, apiKeyDTO.FromAPIKeyModel(&keys[i]))
	}
	return helper.JsonOK(c, "OK", out)
}

/* ==============================
   PUT /admin/api-keys/:id
============================== */

func (ctl *APIKeyController) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var m apiKeyModel.APIKeyModel
	if err := ctl.DB.First(&m, "api_key_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "API key not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load API key")
	}

	var req apiKeyDTO.UpdateAPIKeyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorFields(err))
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["api_key_name"] = *req.Name
	}
	if req.ModelName != nil {
		updates["api_key_model_name"] = *req.ModelName
	}
	if req.Prompt != nil {
		updates["api_key_prompt"] = *req.Prompt
	}
	if req.MaxUsage != nil {
		updates["api_key_max_usage"] = *req.MaxUsage
	}
	if req.IsActive != nil {
		updates["api_key_is_active"] = *req.IsActive
	}
	if len(updates) > 0 {
		if err := ctl.DB.Model(&m).Updates(updates).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update API key")
		}
	}

	if err := ctl.DB.First(&m, "api_key_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reload API key")
	}
	return helper.JsonUpdated(c, "API key updated", apiKeyDTO.FromAPIKeyModel(&m))
}

/* ==============================
   DELETE /admin/api-keys/:id
============================== */

func (ctl *APIKeyController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	res := ctl.DB.Delete(&apiKeyModel.APIKeyModel{}, "api_key_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete API key")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "API key not found")
	}
	return helper.JsonDeleted(c, "API key deleted", fiber.Map{"id": id})
}
