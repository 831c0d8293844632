// file: internals/features/extraction/apikey/route/api_key_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"prestasiku_backend/internals/constants"
	apiKeyController "prestasiku_backend/internals/features/extraction/apikey/controller"
	authMiddleware "prestasiku_backend/internals/middlewares/auth"
)

// AdminAPIKeyRoutes mounts the credential pool management endpoints.
func AdminAPIKeyRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := apiKeyController.NewAPIKeyController(db)

	keys := admin.Group("/api-keys",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("API key management"), constants.AdminOnly...),
	)
	keys.Post("/", ctl.Create)
	keys.Get("/", ctl.List)
	keys.Put("/:id", ctl.Update)
	keys.Delete("/:id", ctl.Delete)
}
