// file: internals/features/dictionaries/dictionary/route/dictionary_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"prestasiku_backend/internals/constants"
	dictController "prestasiku_backend/internals/features/dictionaries/dictionary/controller"
	authMiddleware "prestasiku_backend/internals/middlewares/auth"
)

func DictionaryRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &dictController.DictionaryController{DB: db}
	r.Get("/dictionaries/:category", ctl.Resolve) // GET /api/dictionaries/:category
}

func AdminDictionaryRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &dictController.DictionaryController{DB: db}
	dict := r.Group("/dictionaries",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("dictionary management"), constants.AdminOnly...))
	dict.Post("/categories", ctl.CreateCategory)  // POST   /admin/dictionaries/categories
	dict.Get("/categories", ctl.ListCategories)   // GET    /admin/dictionaries/categories
	dict.Post("/options", ctl.CreateOption)       // POST   /admin/dictionaries/options
	dict.Put("/options/:id", ctl.UpdateOption)    // PUT    /admin/dictionaries/options/:id
	dict.Delete("/options/:id", ctl.DeleteOption) // DELETE /admin/dictionaries/options/:id
}
