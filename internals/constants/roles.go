// file: internals/constants/roles.go
package constants

import "fmt"

const (
	RoleStudent   = "student"
	RoleTeacher   = "teacher"
	RoleSecretary = "secretary"
	RoleAdmin     = "admin"
)

// Role error message templates
const (
	ErrOnlyReviewersCanAccess = "only teacher, secretary or admin may access %s"
	ErrOnlyAdminsCanAccess    = "only admin may access %s"
)

func RoleErrorReviewer(feature string) string {
	return fmt.Sprintf(ErrOnlyReviewersCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleStudent,
		RoleTeacher,
		RoleSecretary,
		RoleAdmin,
	}

	ReviewerRoles = []string{
		RoleTeacher,
		RoleSecretary,
		RoleAdmin,
	}

	// Roles exempt from the submission deadline gate.
	PrivilegedRoles = []string{
		RoleSecretary,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

func IsPrivileged(role string) bool {
	return role == RoleSecretary || role == RoleAdmin
}
