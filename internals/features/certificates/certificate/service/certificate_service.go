// file: internals/features/certificates/certificate/service/certificate_service.go
package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	certModel "prestasiku_backend/internals/features/certificates/certificate/model"
	"prestasiku_backend/internals/features/certificates/workflow"
	fileService "prestasiku_backend/internals/features/files/file/service"
	configService "prestasiku_backend/internals/features/system/config/service"
	helperAuth "prestasiku_backend/internals/helpers/auth"
)

var (
	// ErrNotFound also covers rows the actor may not see, so an
	// unauthorized probe is indistinguishable from a missing row.
	ErrNotFound  = errors.New("certificate not found")
	ErrForbidden = errors.New("operation not permitted")
)

// DeadlineError rejects a late non-privileged write and carries the
// configured cutoff for the response message.
type DeadlineError struct {
	Deadline string
}

func (e *DeadlineError) Error() string {
	return fmt.Sprintf("submission deadline has passed (%s)", e.Deadline)
}

// CheckDeadline enforces the submission cutoff for students and
// teachers. It runs before field validation so a late submitter sees
// the deadline, not field errors. Privileged roles pass unconditionally.
func CheckDeadline(db *gorm.DB, actor *helperAuth.Actor, now time.Time) error {
	if actor.IsSecretary() || actor.IsAdmin() {
		return nil
	}
	open, err := configService.IsBeforeDeadline(db, now)
	if err != nil {
		return err
	}
	if !open {
		return &DeadlineError{Deadline: configService.DeadlineDisplay(db)}
	}
	return nil
}

func viewerOf(actor *helperAuth.Actor) workflow.Viewer {
	return workflow.Viewer{
		UserID:     actor.UserID.String(),
		AccountID:  actor.AccountID,
		Role:       actor.Role,
		Department: actor.Department,
	}
}

func refOf(m *certModel.CertificateModel) workflow.Ref {
	return workflow.Ref{
		SubmitterID: m.CertSubmitterID.String(),
		AdvisorID:   m.CertAdvisorID,
		Department:  m.CertStudentDepartment,
		Status:      workflow.Status(m.CertStatus),
	}
}

// fetchVisible loads a certificate and applies the visibility gate in
// one step.
func fetchVisible(db *gorm.DB, actor *helperAuth.Actor, id string) (*certModel.CertificateModel, error) {
	var m certModel.CertificateModel
	if err := db.First(&m, "cert_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !workflow.CanView(viewerOf(actor), refOf(&m)) {
		return nil, ErrNotFound
	}
	return &m, nil
}

/* =======================================================
   Create / Update
======================================================= */

// CreateInput bundles everything Create needs beyond the form fields.
type CreateInput struct {
	FilePath         string
	FileMD5          string
	ExtractionMethod string
	Submit           bool
}

// Create persists a new certificate for the actor. With Submit set the
// row immediately takes its first transition per the actor's role;
// otherwise it stays draft.
func Create(db *gorm.DB, actor *helperAuth.Actor, m *certModel.CertificateModel, in CreateInput) error {
	if err := CheckDeadline(db, actor, time.Now()); err != nil {
		return err
	}

	m.CertSubmitterID = actor.UserID
	m.CertSubmitterRole = actor.Role
	m.CertSubmitterAccount = actor.AccountID
	m.CertFilePath = in.FilePath
	m.CertFileMD5 = in.FileMD5
	m.CertExtractionMethod = in.ExtractionMethod
	m.CertStatus = string(workflow.StatusDraft)

	if in.Submit {
		next, err := workflow.Decide(actor.Role, workflow.StatusDraft, workflow.ActionSubmit)
		if err != nil {
			return ErrForbidden
		}
		m.CertStatus = string(next)
		now := time.Now()
		m.CertSubmittedAt = &now
	}
	return db.Create(m).Error
}

// Update edits an existing certificate's fields and optionally submits
// it. apply mutates the loaded row with the new field values.
func Update(db *gorm.DB, actor *helperAuth.Actor, id string, submit bool, apply func(*certModel.CertificateModel)) (*certModel.CertificateModel, error) {
	if err := CheckDeadline(db, actor, time.Now()); err != nil {
		return nil, err
	}

	m, err := fetchVisible(db, actor, id)
	if err != nil {
		return nil, err
	}
	if !workflow.CanEdit(viewerOf(actor), refOf(m)) {
		return nil, ErrForbidden
	}

	apply(m)

	if submit {
		next, derr := workflow.Decide(actor.Role, workflow.Status(m.CertStatus), workflow.ActionSubmit)
		if derr != nil {
			return nil, ErrForbidden
		}
		m.CertStatus = string(next)
		if m.CertSubmittedAt == nil && next != workflow.StatusDraft {
			now := time.Now()
			m.CertSubmittedAt = &now
		}
	}
	if err := db.Save(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

/* =======================================================
   Approve / Delete / Read
======================================================= */

// Approve advances a certificate along the review chain and lets the
// reviewer attach scoring values.
func Approve(db *gorm.DB, actor *helperAuth.Actor, id string, standardScore, contribution *string) (*certModel.CertificateModel, error) {
	m, err := fetchVisible(db, actor, id)
	if err != nil {
		return nil, err
	}
	if !workflow.CanApprove(viewerOf(actor), refOf(m)) {
		return nil, ErrForbidden
	}
	next, err := workflow.Decide(actor.Role, workflow.Status(m.CertStatus), workflow.ActionApprove)
	if err != nil {
		return nil, ErrForbidden
	}

	m.CertStatus = string(next)
	if m.CertSubmittedAt == nil && next != workflow.StatusDraft {
		now := time.Now()
		m.CertSubmittedAt = &now
	}
	if standardScore != nil {
		m.CertStandardScore = standardScore
	}
	if contribution != nil {
		m.CertContribution = contribution
	}
	if err := db.Save(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes a certificate row. The stored image is kept on disk:
// other rows from the quick-upload path may still reference it.
func Delete(db *gorm.DB, actor *helperAuth.Actor, id string) error {
	m, err := fetchVisible(db, actor, id)
	if err != nil {
		return err
	}
	if !workflow.CanDelete(viewerOf(actor), refOf(m)) {
		return ErrForbidden
	}
	return db.Delete(&certModel.CertificateModel{}, "cert_id = ?", m.CertID).Error
}

// Get returns one certificate the actor may see.
func Get(db *gorm.DB, actor *helperAuth.Actor, id string) (*certModel.CertificateModel, error) {
	return fetchVisible(db, actor, id)
}

/* =======================================================
   Listing / statistics
======================================================= */

// ScopeFor narrows a query to the rows the actor may see.
func ScopeFor(db *gorm.DB, actor *helperAuth.Actor) *gorm.DB {
	switch {
	case actor.IsStudent():
		return db.Where("cert_submitter_id = ?", actor.UserID)
	case actor.IsTeacher():
		return db.Where("cert_submitter_id = ? OR cert_advisor_id = ?", actor.UserID, actor.AccountID)
	case actor.IsSecretary():
		return db.Where("cert_student_department = ?", actor.Department)
	default:
		return db
	}
}

type ListFilter struct {
	Status     string
	Department string
	Keyword    string
}

func List(db *gorm.DB, actor *helperAuth.Actor, f ListFilter, limit, offset int) ([]certModel.CertificateModel, int64, error) {
	q := ScopeFor(db.Model(&certModel.CertificateModel{}), actor)
	if f.Status != "" {
		status := workflow.NormalizeStatus(workflow.Status(f.Status))
		if status == workflow.StatusPendingAdmin {
			// Match rows still carrying the legacy literal.
			q = q.Where("cert_status IN ?", []string{string(workflow.StatusPendingAdmin), "submitted"})
		} else {
			q = q.Where("cert_status = ?", string(status))
		}
	}
	if f.Department != "" {
		q = q.Where("cert_student_department = ?", f.Department)
	}
	if f.Keyword != "" {
		like := "%" + f.Keyword + "%"
		q = q.Where("cert_student_name LIKE ? OR cert_competition_name LIKE ? OR cert_student_id LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []certModel.CertificateModel
	if err := q.Order("cert_created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	for i := range rows {
		rows[i].CertStatus = string(workflow.NormalizeStatus(workflow.Status(rows[i].CertStatus)))
	}
	return rows, total, nil
}

// StatusCounts tallies visible certificates by canonical status.
func StatusCounts(db *gorm.DB, actor *helperAuth.Actor) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	err := ScopeFor(db.Model(&certModel.CertificateModel{}), actor).
		Select("cert_status AS status, COUNT(*) AS total").
		Group("cert_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := map[string]int64{
		string(workflow.StatusDraft):          0,
		string(workflow.StatusPendingTeacher): 0,
		string(workflow.StatusPendingAdmin):   0,
		string(workflow.StatusApproved):       0,
	}
	for _, r := range rows {
		canon := string(workflow.NormalizeStatus(workflow.Status(r.Status)))
		out[canon] += r.Total
	}
	return out, nil
}

// GroupCounts tallies visible certificates grouped by an arbitrary column.
// Only columns listed here are accepted.
var groupColumns = map[string]string{
	"department": "cert_student_department",
	"category":   "cert_award_category",
	"level":      "cert_award_level",
}

func GroupCounts(db *gorm.DB, actor *helperAuth.Actor, group string) (map[string]int64, error) {
	col, ok := groupColumns[group]
	if !ok {
		return nil, fmt.Errorf("unknown group %q", group)
	}
	type row struct {
		Label string
		Total int64
	}
	var rows []row
	err := ScopeFor(db.Model(&certModel.CertificateModel{}), actor).
		Select(col + " AS label, COUNT(*) AS total").
		Group(col).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		label := r.Label
		if label == "" {
			label = "未填写"
		}
		out[label] += r.Total
	}
	return out, nil
}

/* =======================================================
   Quick upload (dedup)
======================================================= */

// FindDuplicate looks for a previous upload of the same content by the
// same submitter. A matching row whose file vanished from disk is not a
// hit: the caller must store the new bytes.
func FindDuplicate(db *gorm.DB, actor *helperAuth.Actor, fileMD5 string) (*certModel.CertificateModel, error) {
	var m certModel.CertificateModel
	err := db.
		Where("cert_file_md5 = ? AND cert_submitter_id = ?", fileMD5, actor.UserID).
		Order("cert_created_at DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !fileService.ExistsOnDisk(m.CertFilePath) {
		return nil, nil
	}
	m.CertStatus = string(workflow.NormalizeStatus(workflow.Status(m.CertStatus)))
	return &m, nil
}
