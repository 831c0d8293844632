// file: internals/features/certificates/certificate/service/certificate_service_test.go
package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"prestasiku_backend/internals/configs"
	"prestasiku_backend/internals/constants"
	certModel "prestasiku_backend/internals/features/certificates/certificate/model"
	"prestasiku_backend/internals/features/certificates/workflow"
	configModel "prestasiku_backend/internals/features/system/config/model"
	configService "prestasiku_backend/internals/features/system/config/service"
	helperAuth "prestasiku_backend/internals/helpers/auth"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&certModel.CertificateModel{}, &configModel.SystemConfigModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	configs.UploadDir = t.TempDir()
	return db
}

func studentActor(name string) *helperAuth.Actor {
	return &helperAuth.Actor{
		UserID:     uuid.New(),
		AccountID:  "20210001",
		Name:       name,
		Role:       constants.RoleStudent,
		Department: "计算机学院",
	}
}

func teacherActor(account string) *helperAuth.Actor {
	return &helperAuth.Actor{
		UserID:     uuid.New(),
		AccountID:  account,
		Name:       "李老师",
		Role:       constants.RoleTeacher,
		Department: "计算机学院",
	}
}

func adminActor() *helperAuth.Actor {
	return &helperAuth.Actor{UserID: uuid.New(), AccountID: "admin001", Name: "管理员", Role: constants.RoleAdmin}
}

func secretaryActor(dept string) *helperAuth.Actor {
	return &helperAuth.Actor{UserID: uuid.New(), AccountID: "sec00001", Name: "秘书", Role: constants.RoleSecretary, Department: dept}
}

func baseCert() *certModel.CertificateModel {
	return &certModel.CertificateModel{
		CertStudentID:         "20210001",
		CertStudentName:       "张三",
		CertStudentDepartment: "计算机学院",
		CertCompetitionName:   "蓝桥杯程序设计大赛",
		CertAwardCategory:     "学科竞赛",
		CertAwardLevel:        "一等奖",
		CertCompetitionType:   "国家级",
		CertAdvisor:           "李老师",
		CertAdvisorID:         "10080001",
	}
}

// writeStoredFile drops a fake certificate image under the upload root
// so the dedup path's disk check passes.
func writeStoredFile(t *testing.T, rel string) {
	t.Helper()
	abs := filepath.Join(configs.UploadDir, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(abs, []byte("jpeg-bytes"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func mustCreate(t *testing.T, db *gorm.DB, actor *helperAuth.Actor, m *certModel.CertificateModel, in CreateInput) {
	t.Helper()
	if in.FilePath == "" {
		in.FilePath = "owner/cert.jpg"
	}
	if in.FileMD5 == "" {
		in.FileMD5 = "0123456789abcdef0123456789abcdef"
	}
	if err := Create(db, actor, m, in); err != nil {
		t.Fatalf("Create: %v", err)
	}
}

/* ==============================
   Deadline gate
============================== */

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation(configService.DeadlineLayout, value, time.Local)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return ts
}

func setDeadline(t *testing.T, db *gorm.DB, value string) {
	t.Helper()
	if err := configService.SetValue(db, configModel.KeyDeadline, value, nil, nil); err != nil {
		t.Fatalf("set deadline: %v", err)
	}
}

func TestDeadlineGate(t *testing.T) {
	db := openTestDB(t)
	setDeadline(t, db, "2025-01-01 00:00")
	late := mustParse(t, "2025-01-02 00:00")

	if err := CheckDeadline(db, studentActor("张三"), late); err == nil {
		t.Fatal("late student write must be rejected")
	} else {
		var dl *DeadlineError
		if !errors.As(err, &dl) {
			t.Fatalf("error type = %T, want DeadlineError", err)
		}
		if dl.Deadline != "2025-01-01 00:00" {
			t.Fatalf("deadline in error = %q", dl.Deadline)
		}
	}

	if err := CheckDeadline(db, teacherActor("10080001"), late); err == nil {
		t.Fatal("late teacher write must be rejected")
	}
	if err := CheckDeadline(db, adminActor(), late); err != nil {
		t.Fatalf("admin must be exempt: %v", err)
	}
	if err := CheckDeadline(db, secretaryActor("计算机学院"), late); err != nil {
		t.Fatalf("secretary must be exempt: %v", err)
	}

	early := mustParse(t, "2024-12-31 23:59")
	if err := CheckDeadline(db, studentActor("张三"), early); err != nil {
		t.Fatalf("on-time student write must pass: %v", err)
	}
}

func TestNoDeadlineConfigured(t *testing.T) {
	db := openTestDB(t)
	if err := CheckDeadline(db, studentActor("张三"), mustParse(t, "2099-01-01 00:00")); err != nil {
		t.Fatalf("missing deadline must always pass: %v", err)
	}
}

/* ==============================
   Create / lifecycle
============================== */

func TestCreateDraftThenSubmit(t *testing.T) {
	db := openTestDB(t)
	student := studentActor("张三")

	m := baseCert()
	mustCreate(t, db, student, m, CreateInput{Submit: false})
	if m.CertStatus != string(workflow.StatusDraft) {
		t.Fatalf("status = %s, want draft", m.CertStatus)
	}
	if m.CertSubmittedAt != nil {
		t.Fatal("draft must not carry submitted_at")
	}

	got, err := Get(db, student, m.CertID.String())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.CertCompetitionName != m.CertCompetitionName || got.CertAdvisorID != m.CertAdvisorID {
		t.Fatal("round-trip changed field values")
	}

	updated, err := Update(db, student, m.CertID.String(), true, func(c *certModel.CertificateModel) {})
	if err != nil {
		t.Fatalf("Update submit: %v", err)
	}
	if updated.CertStatus != string(workflow.StatusPendingTeacher) {
		t.Fatalf("status = %s, want pending_teacher", updated.CertStatus)
	}
	if updated.CertSubmittedAt == nil {
		t.Fatal("submitted_at must be set on first non-draft transition")
	}
	first := *updated.CertSubmittedAt

	// A student can no longer edit after submitting.
	if _, err := Update(db, student, m.CertID.String(), false, func(c *certModel.CertificateModel) {}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("post-submit student edit = %v, want ErrForbidden", err)
	}

	// The advisor pushes it along; submitted_at stays put.
	advisor := teacherActor(m.CertAdvisorID)
	approved, err := Approve(db, advisor, m.CertID.String(), nil, nil)
	if err != nil {
		t.Fatalf("teacher approve: %v", err)
	}
	if approved.CertStatus != string(workflow.StatusPendingAdmin) {
		t.Fatalf("status = %s, want pending_admin", approved.CertStatus)
	}
	if approved.CertSubmittedAt == nil || !approved.CertSubmittedAt.Equal(first) {
		t.Fatal("submitted_at must be set exactly once")
	}
}

func TestCreateSubmitByStudent(t *testing.T) {
	db := openTestDB(t)
	m := baseCert()
	mustCreate(t, db, studentActor("张三"), m, CreateInput{Submit: true})
	if m.CertStatus != string(workflow.StatusPendingTeacher) {
		t.Fatalf("status = %s, want pending_teacher", m.CertStatus)
	}
	if m.CertSubmittedAt == nil {
		t.Fatal("submitted_at must be set")
	}
}

func TestCreateSubmitByAdminSkipsChain(t *testing.T) {
	db := openTestDB(t)
	m := baseCert()
	mustCreate(t, db, adminActor(), m, CreateInput{Submit: true})
	if m.CertStatus != string(workflow.StatusApproved) {
		t.Fatalf("status = %s, want approved", m.CertStatus)
	}
}

func TestApproveScoping(t *testing.T) {
	db := openTestDB(t)
	student := studentActor("张三")
	m := baseCert()
	mustCreate(t, db, student, m, CreateInput{Submit: true})

	// A teacher who is not the advisor cannot even see the row.
	if _, err := Approve(db, teacherActor("99999999"), m.CertID.String(), nil, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("non-advisor approve = %v, want ErrNotFound", err)
	}

	// A secretary from another department cannot see it either.
	if _, err := Approve(db, secretaryActor("外国语学院"), m.CertID.String(), nil, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-department approve = %v, want ErrNotFound", err)
	}

	// The right secretary approves straight to terminal state with scores.
	score, contrib := "90", "5"
	approved, err := Approve(db, secretaryActor("计算机学院"), m.CertID.String(), &score, &contrib)
	if err != nil {
		t.Fatalf("secretary approve: %v", err)
	}
	if approved.CertStatus != string(workflow.StatusApproved) {
		t.Fatalf("status = %s, want approved", approved.CertStatus)
	}
	if approved.CertStandardScore == nil || *approved.CertStandardScore != "90" {
		t.Fatal("standard score not recorded")
	}
}

func TestRejectedTransitionLeavesRowUntouched(t *testing.T) {
	db := openTestDB(t)
	student := studentActor("张三")
	m := baseCert()
	mustCreate(t, db, student, m, CreateInput{Submit: true})

	// Students have no approve action at all.
	if _, err := Approve(db, student, m.CertID.String(), nil, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("student approve = %v, want ErrForbidden", err)
	}

	var reloaded certModel.CertificateModel
	if err := db.First(&reloaded, "cert_id = ?", m.CertID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.CertStatus != string(workflow.StatusPendingTeacher) {
		t.Fatal("rejected action must not change status")
	}
	if reloaded.CertSubmittedAt == nil || !reloaded.CertSubmittedAt.Equal(*m.CertSubmittedAt) {
		t.Fatal("rejected action must not change submitted_at")
	}
}

/* ==============================
   Visibility
============================== */

func TestVisibilityScoping(t *testing.T) {
	db := openTestDB(t)
	owner := studentActor("张三")
	m := baseCert()
	mustCreate(t, db, owner, m, CreateInput{Submit: false})

	other := studentActor("李四")
	if _, err := Get(db, other, m.CertID.String()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign student Get = %v, want ErrNotFound", err)
	}

	rows, total, err := List(db, other, ListFilter{}, 20, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 0 || len(rows) != 0 {
		t.Fatal("foreign student must see an empty list")
	}

	rows, total, err = List(db, adminActor(), ListFilter{}, 20, 0)
	if err != nil {
		t.Fatalf("admin List: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("admin must see all rows, got %d", total)
	}
}

func TestLegacyStatusNormalizedOnRead(t *testing.T) {
	db := openTestDB(t)
	owner := studentActor("张三")
	m := baseCert()
	mustCreate(t, db, owner, m, CreateInput{Submit: false})
	if err := db.Model(m).Update("cert_status", "submitted").Error; err != nil {
		t.Fatalf("force legacy literal: %v", err)
	}

	rows, _, err := List(db, adminActor(), ListFilter{Status: "pending_admin"}, 20, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 1 || rows[0].CertStatus != string(workflow.StatusPendingAdmin) {
		t.Fatalf("legacy literal must list as pending_admin, got %+v", rows)
	}
}

/* ==============================
   Dedup (quick upload)
============================== */

func TestFindDuplicate(t *testing.T) {
	db := openTestDB(t)
	owner := studentActor("张三")
	md5 := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

	writeStoredFile(t, "owner/first.jpg")
	m := baseCert()
	mustCreate(t, db, owner, m, CreateInput{FilePath: "owner/first.jpg", FileMD5: md5})

	hit, err := FindDuplicate(db, owner, md5)
	if err != nil {
		t.Fatalf("FindDuplicate: %v", err)
	}
	if hit == nil || hit.CertID != m.CertID {
		t.Fatal("same submitter + same bytes must hit")
	}

	// Same bytes from a different submitter is not a hit.
	hit, err = FindDuplicate(db, studentActor("李四"), md5)
	if err != nil {
		t.Fatalf("FindDuplicate other submitter: %v", err)
	}
	if hit != nil {
		t.Fatal("dedup key must include the submitter")
	}

	// A matching row whose file vanished from disk is not a hit.
	if err := os.Remove(filepath.Join(configs.UploadDir, "owner/first.jpg")); err != nil {
		t.Fatalf("remove stored file: %v", err)
	}
	hit, err = FindDuplicate(db, owner, md5)
	if err != nil {
		t.Fatalf("FindDuplicate after removal: %v", err)
	}
	if hit != nil {
		t.Fatal("missing file on disk must fall through to a fresh upload")
	}
}

/* ==============================
   Delete
============================== */

func TestDeletePermissions(t *testing.T) {
	db := openTestDB(t)
	owner := studentActor("张三")
	m := baseCert()
	mustCreate(t, db, owner, m, CreateInput{Submit: true})

	// Owner lost delete rights once the draft was submitted.
	if err := Delete(db, owner, m.CertID.String()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("post-submit student delete = %v, want ErrForbidden", err)
	}

	if err := Delete(db, adminActor(), m.CertID.String()); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := Get(db, adminActor(), m.CertID.String()); !errors.Is(err, ErrNotFound) {
		t.Fatal("deleted row must be gone")
	}
}

/* ==============================
   Statistics
============================== */

func TestGroupCountsScopedToDepartment(t *testing.T) {
	db := openTestDB(t)

	cs := baseCert()
	mustCreate(t, db, studentActor("张三"), cs, CreateInput{Submit: true})

	other := baseCert()
	other.CertStudentDepartment = "外国语学院"
	other.CertAwardCategory = ""
	mustCreate(t, db, adminActor(), other, CreateInput{FileMD5: "ffffffffffffffffffffffffffffffff"})

	byDept, err := GroupCounts(db, adminActor(), "department")
	if err != nil {
		t.Fatalf("GroupCounts: %v", err)
	}
	if byDept["计算机学院"] != 1 || byDept["外国语学院"] != 1 {
		t.Fatalf("admin department counts = %v", byDept)
	}

	byDept, err = GroupCounts(db, secretaryActor("计算机学院"), "department")
	if err != nil {
		t.Fatalf("GroupCounts secretary: %v", err)
	}
	if byDept["计算机学院"] != 1 || byDept["外国语学院"] != 0 {
		t.Fatalf("secretary must only see own department, got %v", byDept)
	}

	byCat, err := GroupCounts(db, adminActor(), "category")
	if err != nil {
		t.Fatalf("GroupCounts category: %v", err)
	}
	if byCat["学科竞赛"] != 1 || byCat["未填写"] != 1 {
		t.Fatalf("category counts = %v", byCat)
	}

	if _, err := GroupCounts(db, adminActor(), "cert_file_md5"); err == nil {
		t.Fatal("unknown group label must be rejected")
	}
}
