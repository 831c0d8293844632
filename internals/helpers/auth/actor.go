// file: internals/helpers/auth/actor.go
package helperAuth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"prestasiku_backend/internals/constants"
)

// Actor is the authenticated identity every core operation receives
// explicitly. Controllers build it from token claims; services never
// read ambient session state.
type Actor struct {
	UserID     uuid.UUID
	AccountID  string
	Name       string
	Role       string
	Department string
}

func (a Actor) IsStudent() bool   { return a.Role == constants.RoleStudent }
func (a Actor) IsTeacher() bool   { return a.Role == constants.RoleTeacher }
func (a Actor) IsSecretary() bool { return a.Role == constants.RoleSecretary }
func (a Actor) IsAdmin() bool     { return a.Role == constants.RoleAdmin }

// GetActor reads the identity the auth middleware stored in c.Locals.
func GetActor(c *fiber.Ctx) (Actor, error) {
	rawID, _ := c.Locals("user_id").(string)
	userID, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return Actor{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing user ID")
	}

	role, _ := c.Locals("user_role").(string)
	if !constants.IsValidRole(role) {
		return Actor{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing role information")
	}

	accountID, _ := c.Locals("account_id").(string)
	name, _ := c.Locals("user_name").(string)
	department, _ := c.Locals("department").(string)

	return Actor{
		UserID:     userID,
		AccountID:  accountID,
		Name:       name,
		Role:       role,
		Department: department,
	}, nil
}
