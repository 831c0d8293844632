// file: internals/features/users/user/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"prestasiku_backend/internals/constants"
	userController "prestasiku_backend/internals/features/users/user/controller"
	authMiddleware "prestasiku_backend/internals/middlewares/auth"
)

// PublicUserRoutes: login only, no auth middleware.
func PublicUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &userController.UserController{DB: db}
	r.Post("/auth/login", ctl.Login)
}

// UserRoutes: authenticated self-service.
func UserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &userController.UserController{DB: db}
	r.Get("/users/me", ctl.Me)
}

// AdminUserRoutes: full account management.
func AdminUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &userController.UserController{DB: db}
	users := r.Group("/users",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("user management"), constants.AdminOnly...))
	users.Post("/", ctl.Create)                        // POST   /admin/users
	users.Get("/", ctl.List)                           // GET    /admin/users
	users.Put("/:id", ctl.Update)                      // PUT    /admin/users/:id
	users.Post("/:id/reset-password", ctl.ResetPassword) // POST /admin/users/:id/reset-password
}
