// file: internals/features/certificates/workflow/workflow_test.go
package workflow

import (
	"errors"
	"testing"

	"prestasiku_backend/internals/constants"
)

func TestDecideAllowedTransitions(t *testing.T) {
	cases := []struct {
		name    string
		role    string
		current Status
		action  Action
		want    Status
	}{
		{"student submits draft", constants.RoleStudent, StatusDraft, ActionSubmit, StatusPendingTeacher},
		{"teacher submits draft", constants.RoleTeacher, StatusDraft, ActionSubmit, StatusPendingAdmin},
		{"teacher resubmits pending", constants.RoleTeacher, StatusPendingTeacher, ActionSubmit, StatusPendingAdmin},
		{"teacher approves pending", constants.RoleTeacher, StatusPendingTeacher, ActionApprove, StatusPendingAdmin},
		{"secretary approves draft", constants.RoleSecretary, StatusDraft, ActionApprove, StatusApproved},
		{"secretary approves pending admin", constants.RoleSecretary, StatusPendingAdmin, ActionApprove, StatusApproved},
		{"admin submits pending teacher", constants.RoleAdmin, StatusPendingTeacher, ActionSubmit, StatusApproved},
		{"admin approves anything", constants.RoleAdmin, StatusDraft, ActionApprove, StatusApproved},
		{"legacy submitted treated as pending admin", constants.RoleSecretary, legacySubmitted, ActionApprove, StatusApproved},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decide(tc.role, tc.current, tc.action)
			if err != nil {
				t.Fatalf("Decide(%s, %s, %s) returned error: %v", tc.role, tc.current, tc.action, err)
			}
			if got != tc.want {
				t.Fatalf("Decide(%s, %s, %s) = %s, want %s", tc.role, tc.current, tc.action, got, tc.want)
			}
		})
	}
}

func TestDecideRejectedTransitions(t *testing.T) {
	cases := []struct {
		name    string
		role    string
		current Status
		action  Action
		wantErr error
	}{
		{"student resubmits pending teacher", constants.RoleStudent, StatusPendingTeacher, ActionSubmit, ErrBadState},
		{"student submits approved", constants.RoleStudent, StatusApproved, ActionSubmit, ErrBadState},
		{"student approves", constants.RoleStudent, StatusPendingTeacher, ActionApprove, ErrNotAllowed},
		{"teacher submits pending admin", constants.RoleTeacher, StatusPendingAdmin, ActionSubmit, ErrBadState},
		{"teacher approves draft", constants.RoleTeacher, StatusDraft, ActionApprove, ErrBadState},
		{"teacher approves approved", constants.RoleTeacher, StatusApproved, ActionApprove, ErrBadState},
		{"secretary submits", constants.RoleSecretary, StatusDraft, ActionSubmit, ErrNotAllowed},
		{"unknown role", "auditor", StatusDraft, ActionSubmit, ErrNotAllowed},
		{"unknown action", constants.RoleAdmin, StatusDraft, Action("reject"), ErrNotAllowed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decide(tc.role, tc.current, tc.action)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Decide(%s, %s, %s) error = %v, want %v", tc.role, tc.current, tc.action, err, tc.wantErr)
			}
			if got != NormalizeStatus(tc.current) {
				t.Fatalf("rejected transition mutated status: got %s, had %s", got, tc.current)
			}
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	if got := NormalizeStatus(legacySubmitted); got != StatusPendingAdmin {
		t.Fatalf("NormalizeStatus(submitted) = %s, want %s", got, StatusPendingAdmin)
	}
	if got := NormalizeStatus(StatusDraft); got != StatusDraft {
		t.Fatalf("NormalizeStatus(draft) = %s, want draft", got)
	}
	if ValidStatus(Status("rejected")) {
		t.Fatal("ValidStatus accepted an unknown literal")
	}
}

func TestPermissionGates(t *testing.T) {
	ref := Ref{SubmitterID: "u1", AdvisorID: "20240001", Department: "计算机学院", Status: StatusPendingTeacher}

	student := Viewer{UserID: "u1", Role: constants.RoleStudent}
	otherStudent := Viewer{UserID: "u2", Role: constants.RoleStudent}
	advisor := Viewer{UserID: "t1", AccountID: "20240001", Role: constants.RoleTeacher}
	otherTeacher := Viewer{UserID: "t2", AccountID: "20249999", Role: constants.RoleTeacher}
	secretary := Viewer{UserID: "s1", Role: constants.RoleSecretary, Department: "计算机学院"}
	otherSecretary := Viewer{UserID: "s2", Role: constants.RoleSecretary, Department: "外国语学院"}
	admin := Viewer{UserID: "a1", Role: constants.RoleAdmin}

	if !CanView(student, ref) || CanView(otherStudent, ref) {
		t.Fatal("student visibility must be limited to own submissions")
	}
	if !CanView(advisor, ref) || CanView(otherTeacher, ref) {
		t.Fatal("teacher visibility must require advisor match")
	}
	if !CanView(secretary, ref) || CanView(otherSecretary, ref) {
		t.Fatal("secretary visibility must require department match")
	}
	if !CanView(admin, ref) {
		t.Fatal("admin must see everything")
	}

	// Student edits only drafts they own.
	if CanEdit(student, ref) {
		t.Fatal("student must not edit after leaving draft")
	}
	draftRef := ref
	draftRef.Status = StatusDraft
	if !CanEdit(student, draftRef) {
		t.Fatal("student must edit own draft")
	}

	if !CanEdit(advisor, ref) {
		t.Fatal("advisor must edit while pending teacher review")
	}
	approvedRef := ref
	approvedRef.Status = StatusApproved
	if CanEdit(advisor, approvedRef) {
		t.Fatal("teacher must not edit approved rows")
	}
	if !CanEdit(secretary, approvedRef) || CanEdit(otherSecretary, approvedRef) {
		t.Fatal("secretary edit must be scoped to own department")
	}

	if !CanDelete(admin, approvedRef) {
		t.Fatal("admin must delete in any state")
	}
	if CanDelete(advisor, approvedRef) {
		t.Fatal("teacher must not delete approved rows")
	}

	if !CanApprove(advisor, ref) || CanApprove(otherTeacher, ref) {
		t.Fatal("teacher approval must require advisor match")
	}
	if !CanApprove(secretary, ref) || CanApprove(otherSecretary, ref) {
		t.Fatal("secretary approval must require department match")
	}
}
