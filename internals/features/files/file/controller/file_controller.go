// file: internals/features/files/file/controller/file_controller.go
package controller

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	fileService "prestasiku_backend/internals/features/files/file/service"
	helper "prestasiku_backend/internals/helpers"
	helperAuth "prestasiku_backend/internals/helpers/auth"
)

type FileController struct {
	DB *gorm.DB
}

func NewFileController(db *gorm.DB) *FileController {
	return &FileController{DB: db}
}

/* =======================================================
   GET /api/uploads/* — serve a stored certificate image
======================================================= */

// Serve streams a file from the upload root. Students only ever see
// their own folder; reviewer roles can fetch anything under the root.
func (ctl *FileController) Serve(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	raw := c.Params("*")
	rel, err := url.PathUnescape(raw)
	if err != nil || rel == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid file path")
	}

	if actor.IsStudent() {
		ownFolder := fileService.UserFolder(actor.AccountID, actor.Name)
		if !strings.HasPrefix(rel, ownFolder+"/") {
			return helper.JsonError(c, fiber.StatusNotFound, "File not found")
		}
	}

	abs, err := fileService.ResolvePath(rel)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid file path")
	}
	if !fileService.ExistsOnDisk(rel) {
		return helper.JsonError(c, fiber.StatusNotFound, "File not found")
	}
	return c.SendFile(abs)
}
