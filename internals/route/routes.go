// file: internals/route/routes.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	certRoute "prestasiku_backend/internals/features/certificates/certificate/route"
	dictRoute "prestasiku_backend/internals/features/dictionaries/dictionary/route"
	apiKeyRoute "prestasiku_backend/internals/features/extraction/apikey/route"
	fileRoute "prestasiku_backend/internals/features/files/file/route"
	configRoute "prestasiku_backend/internals/features/system/config/route"
	userRoute "prestasiku_backend/internals/features/users/user/route"
	authMiddleware "prestasiku_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up public routes...")
	userRoute.PublicUserRoutes(app, db)

	// ===================== AUTHENTICATED =====================
	log.Println("[INFO] Setting up authenticated /api group...")
	api := app.Group("/api", authMiddleware.AuthMiddleware())

	userRoute.UserRoutes(api, db)
	configRoute.ConfigRoutes(api, db)
	dictRoute.DictionaryRoutes(api, db)
	certRoute.CertificateRoutes(api, db)
	fileRoute.FileRoutes(api, db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up /api/admin group...")
	admin := app.Group("/api/admin", authMiddleware.AuthMiddleware())

	userRoute.AdminUserRoutes(admin, db)
	configRoute.AdminConfigRoutes(admin, db)
	dictRoute.AdminDictionaryRoutes(admin, db)
	apiKeyRoute.AdminAPIKeyRoutes(admin, db)
}
