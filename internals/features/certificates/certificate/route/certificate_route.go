// file: internals/features/certificates/certificate/route/certificate_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	certController "prestasiku_backend/internals/features/certificates/certificate/controller"
)

// CertificateRoutes mounts the submission workflow endpoints under an
// authenticated group. Role checks happen per row inside the service,
// not at the router: every role may hit these paths.
func CertificateRoutes(api fiber.Router, db *gorm.DB) {
	ctl := certController.NewCertificateController(db)

	certs := api.Group("/certificates")
	certs.Post("/upload", ctl.Upload)
	certs.Get("/stats", ctl.Stats)
	certs.Get("/options", ctl.FormOptions)
	certs.Post("/", ctl.Create)
	certs.Get("/", ctl.List)
	certs.Get("/:id", ctl.Get)
	certs.Get("/:id/file", ctl.File)
	certs.Put("/:id", ctl.Update)
	certs.Post("/:id/approve", ctl.Approve)
	certs.Delete("/:id", ctl.Delete)
}
