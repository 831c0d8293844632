// file: internals/features/certificates/workflow/workflow.go

// Package workflow holds the certificate approval state machine. Every
// caller that moves a certificate between states goes through Decide so
// the role rules live in exactly one place.
package workflow

import (
	"errors"

	"prestasiku_backend/internals/constants"
)

type Status string

const (
	StatusDraft          Status = "draft"
	StatusPendingTeacher Status = "pending_teacher"
	StatusPendingAdmin   Status = "pending_admin"
	StatusApproved       Status = "approved"

	// legacySubmitted shows up in rows imported from the old system.
	// It is normalized on read and never written back.
	legacySubmitted Status = "submitted"
)

type Action string

const (
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
)

var (
	ErrNotAllowed = errors.New("role may not perform this action")
	ErrBadState   = errors.New("certificate is not in a state that allows this action")
)

// NormalizeStatus maps legacy literals onto the canonical enum.
func NormalizeStatus(s Status) Status {
	if s == legacySubmitted {
		return StatusPendingAdmin
	}
	return s
}

func ValidStatus(s Status) bool {
	switch NormalizeStatus(s) {
	case StatusDraft, StatusPendingTeacher, StatusPendingAdmin, StatusApproved:
		return true
	}
	return false
}

// Decide maps (actor role, current status, action) to the next status.
// A disallowed pair returns ErrNotAllowed when the role can never take
// the action, or ErrBadState when the role could but the certificate
// is in the wrong state. Callers outside this package still enforce
// ownership scoping (advisor match, department match).
func Decide(role string, current Status, action Action) (Status, error) {
	current = NormalizeStatus(current)

	switch action {
	case ActionSubmit:
		switch role {
		case constants.RoleStudent:
			if current != StatusDraft {
				return current, ErrBadState
			}
			return StatusPendingTeacher, nil
		case constants.RoleTeacher:
			if current != StatusDraft && current != StatusPendingTeacher {
				return current, ErrBadState
			}
			return StatusPendingAdmin, nil
		case constants.RoleAdmin:
			return StatusApproved, nil
		}
		return current, ErrNotAllowed

	case ActionApprove:
		switch role {
		case constants.RoleTeacher:
			if current != StatusPendingTeacher {
				return current, ErrBadState
			}
			return StatusPendingAdmin, nil
		case constants.RoleSecretary, constants.RoleAdmin:
			return StatusApproved, nil
		}
		return current, ErrNotAllowed
	}
	return current, ErrNotAllowed
}

/* =======================================================
   Permission gates (edit / delete / view), role-scoped
======================================================= */

// Ref carries just enough of a certificate for permission decisions.
type Ref struct {
	SubmitterID string
	AdvisorID   string
	Department  string
	Status      Status
}

// Viewer describes the acting user for the gates below.
type Viewer struct {
	UserID     string
	AccountID  string
	Role       string
	Department string
}

// CanView reports read access. Students see their own submissions,
// teachers the certificates naming them as advisor, secretaries their
// department, admins everything.
func CanView(v Viewer, ref Ref) bool {
	switch v.Role {
	case constants.RoleStudent:
		return ref.SubmitterID == v.UserID
	case constants.RoleTeacher:
		return ref.SubmitterID == v.UserID || ref.AdvisorID == v.AccountID
	case constants.RoleSecretary:
		return ref.Department == v.Department
	case constants.RoleAdmin:
		return true
	}
	return false
}

// CanEdit reports write access to field values.
func CanEdit(v Viewer, ref Ref) bool {
	status := NormalizeStatus(ref.Status)
	switch v.Role {
	case constants.RoleStudent:
		return ref.SubmitterID == v.UserID && status == StatusDraft
	case constants.RoleTeacher:
		if ref.SubmitterID != v.UserID && ref.AdvisorID != v.AccountID {
			return false
		}
		return status == StatusDraft || status == StatusPendingTeacher
	case constants.RoleSecretary:
		return ref.Department == v.Department
	case constants.RoleAdmin:
		return true
	}
	return false
}

// CanDelete mirrors CanEdit; only admins may remove approved rows.
func CanDelete(v Viewer, ref Ref) bool {
	if v.Role == constants.RoleAdmin {
		return true
	}
	return CanEdit(v, ref)
}

// CanApprove reports whether the viewer may run the approve action on
// this row, including the ownership scoping the transition table
// leaves to callers.
func CanApprove(v Viewer, ref Ref) bool {
	switch v.Role {
	case constants.RoleTeacher:
		return ref.AdvisorID == v.AccountID
	case constants.RoleSecretary:
		return ref.Department == v.Department
	case constants.RoleAdmin:
		return true
	}
	return false
}
