// file: internals/features/files/file/route/file_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	fileController "prestasiku_backend/internals/features/files/file/controller"
)

// FileRoutes mounts file serving under an authenticated group.
func FileRoutes(api fiber.Router, db *gorm.DB) {
	ctl := fileController.NewFileController(db)
	api.Get("/uploads/*", ctl.Serve)
}
