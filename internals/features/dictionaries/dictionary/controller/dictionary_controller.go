// file: internals/features/dictionaries/dictionary/controller/dictionary_controller.go
package controller

import (
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dictDTO "prestasiku_backend/internals/features/dictionaries/dictionary/dto"
	dictModel "prestasiku_backend/internals/features/dictionaries/dictionary/model"
	dictService "prestasiku_backend/internals/features/dictionaries/dictionary/service"
	helper "prestasiku_backend/internals/helpers"
)

type DictionaryController struct {
	DB *gorm.DB
}

// RESOLVE
// GET /api/dictionaries/:category — option names for form dropdowns.
func (h *DictionaryController) Resolve(c *fiber.Ctx) error {
	category := strings.TrimSpace(c.Params("category"))
	if category == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "missing category name")
	}
	// path params arrive percent-encoded for non-ASCII names
	if decoded, derr := url.PathUnescape(category); derr == nil {
		category = decoded
	}

	options, err := dictService.Options(h.DB, category)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to resolve dictionary")
	}
	return helper.JsonOK(c, "ok", options)
}

/* =========================================================
   ADMIN CRUD
   ========================================================= */

// POST /admin/dictionaries/categories
func (h *DictionaryController) CreateCategory(c *fiber.Ctx) error {
	var req dictDTO.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	req.Normalize()
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorFields(err))
	}

	category := dictModel.DictionaryCategoryModel{
		DictCategoryName:     req.Name,
		DictCategoryIsActive: true,
	}
	if err := h.DB.Create(&category).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "category name already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create category")
	}
	return helper.JsonCreated(c, "category created", dictDTO.FromCategoryModel(category))
}

// GET /admin/dictionaries/categories
func (h *DictionaryController) ListCategories(c *fiber.Ctx) error {
	var categories []dictModel.DictionaryCategoryModel
	if err := h.DB.Order("dict_category_created_at DESC").Find(&categories).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list categories")
	}
	out := make([]dictDTO.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, dictDTO.FromCategoryModel(cat))
	}
	return helper.JsonOK(c, "ok", out)
}

// POST /admin/dictionaries/options
func (h *DictionaryController) CreateOption(c *fiber.Ctx) error {
	var req dictDTO.CreateOptionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	req.Normalize()
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorFields(err))
	}

	var category dictModel.DictionaryCategoryModel
	if err := h.DB.First(&category, "dict_category_id = ?", req.CategoryID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "category not found")
	}

	option := dictModel.DictionaryOptionModel{
		DictOptionCategoryID:  category.DictCategoryID,
		DictOptionName:        req.Name,
		DictOptionDescription: req.Description,
		DictOptionIsActive:    true,
	}
	if err := h.DB.Create(&option).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create option")
	}
	return helper.JsonCreated(c, "option created", dictDTO.FromOptionModel(option))
}

// PUT /admin/dictionaries/options/:id
func (h *DictionaryController) UpdateOption(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid option id")
	}

	var req dictDTO.UpdateOptionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorFields(err))
	}

	var option dictModel.DictionaryOptionModel
	if err := h.DB.First(&option, "dict_option_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "option not found")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["dict_option_name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["dict_option_description"] = strings.TrimSpace(*req.Description)
	}
	if req.IsActive != nil {
		updates["dict_option_is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "nothing to update", dictDTO.FromOptionModel(option))
	}

	if err := h.DB.Model(&option).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update option")
	}
	return helper.JsonUpdated(c, "option updated", dictDTO.FromOptionModel(option))
}

// DELETE /admin/dictionaries/options/:id — soft delete via status flag.
func (h *DictionaryController) DeleteOption(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid option id")
	}

	var option dictModel.DictionaryOptionModel
	if err := h.DB.First(&option, "dict_option_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "option not found")
	}
	if err := h.DB.Model(&option).Update("dict_option_is_active", false).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete option")
	}
	return helper.JsonDeleted(c, "option disabled", dictDTO.FromOptionModel(option))
}
