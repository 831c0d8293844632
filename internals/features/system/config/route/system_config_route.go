// file: internals/features/system/config/route/system_config_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"prestasiku_backend/internals/constants"
	configController "prestasiku_backend/internals/features/system/config/controller"
	authMiddleware "prestasiku_backend/internals/middlewares/auth"
)

func ConfigRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &configController.SystemConfigController{DB: db}
	r.Get("/deadline", ctl.Deadline) // GET /api/deadline
}

func AdminConfigRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &configController.SystemConfigController{DB: db}
	configs := r.Group("/configs",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("system configuration"), constants.AdminOnly...))
	configs.Get("/:key", ctl.Get) // GET /admin/configs/:key
	configs.Put("/:key", ctl.Set) // PUT /admin/configs/:key
}
