// file: internals/features/system/config/controller/system_config_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	configModel "prestasiku_backend/internals/features/system/config/model"
	configService "prestasiku_backend/internals/features/system/config/service"
	helper "prestasiku_backend/internals/helpers"
	helperAuth "prestasiku_backend/internals/helpers/auth"
)

type SystemConfigController struct {
	DB *gorm.DB
}

type setConfigRequest struct {
	Value       string  `json:"config_value" form:"config_value" validate:"required"`
	Description *string `json:"config_description" form:"config_description"`
}

// GET /admin/configs/:key
func (h *SystemConfigController) Get(c *fiber.Ctx) error {
	key := strings.TrimSpace(c.Params("key"))
	if key == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "missing config key")
	}
	value, err := configService.GetValue(h.DB, key)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to read config")
	}
	return helper.JsonOK(c, "ok", fiber.Map{"config_key": key, "config_value": value})
}

// PUT /admin/configs/:key
func (h *SystemConfigController) Set(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}

	key := strings.TrimSpace(c.Params("key"))
	if key == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "missing config key")
	}

	var req setConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorFields(err))
	}

	// deadline must be storable in the canonical layout
	if key == configModel.KeyDeadline {
		if _, perr := time.ParseInLocation(configService.DeadlineLayout, strings.TrimSpace(req.Value), time.Local); perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "deadline must be formatted as YYYY-MM-DD HH:MM")
		}
		req.Value = strings.TrimSpace(req.Value)
	}

	if err := configService.SetValue(h.DB, key, req.Value, req.Description, &actor.UserID); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to save config")
	}
	return helper.JsonUpdated(c, "config saved", fiber.Map{"config_key": key, "config_value": req.Value})
}

// GET /api/deadline — readable by every authenticated role so clients
// can show the cutoff before a submit attempt.
func (h *SystemConfigController) Deadline(c *fiber.Ctx) error {
	deadline, err := configService.GetDeadline(h.DB)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to read deadline")
	}
	display := ""
	if deadline != nil {
		display = deadline.Format(configService.DeadlineLayout)
	}
	before, err := configService.IsBeforeDeadline(h.DB, time.Now())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to read deadline")
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"deadline":        display,
		"before_deadline": before,
	})
}
