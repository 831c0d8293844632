// file: internals/features/certificates/certificate/dto/certificate_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	certModel "prestasiku_backend/internals/features/certificates/certificate/model"
	"prestasiku_backend/internals/helpers/dates"
)

/* ==============================
   Requests
============================== */

// CertificateFormRequest carries the editable field set shared by
// create and update. Organizer and award date stay optional; everything
// else is required before any non-draft transition.
type CertificateFormRequest struct {
	StudentID         string `json:"student_id" form:"student_id" validate:"required,min=1,max=50"`
	StudentName       string `json:"student_name" form:"student_name" validate:"required,min=1,max=100"`
	StudentDepartment string `json:"student_department" form:"student_department" validate:"required,min=1,max=100"`
	CompetitionName   string `json:"competition_name" form:"competition_name" validate:"required,min=1,max=255"`
	AwardCategory     string `json:"award_category" form:"award_category" validate:"required,min=1,max=100"`
	AwardLevel        string `json:"award_level" form:"award_level" validate:"required,min=1,max=100"`
	CompetitionType   string `json:"competition_type" form:"competition_type" validate:"required,min=1,max=100"`
	Organizer         string `json:"organizer" form:"organizer" validate:"omitempty,max=255"`
	AwardDate         string `json:"award_date" form:"award_date" validate:"omitempty,max=30"`
	Advisor           string `json:"advisor" form:"advisor" validate:"required,min=1,max=100"`
	AdvisorID         string `json:"advisor_id" form:"advisor_id" validate:"required,len=8,numeric"`

	// Reviewer-only scoring fields; ignored for student submitters.
	StandardScore *string `json:"standard_score" form:"standard_score" validate:"omitempty,max=20"`
	Contribution  *string `json:"contribution" form:"contribution" validate:"omitempty,max=20"`

	// Action selects the transition: "draft" keeps the row editable,
	// "submit" pushes it along the approval chain.
	Action string `json:"action" form:"action" validate:"omitempty,oneof=draft submit"`
}

func (r *CertificateFormRequest) Normalize() {
	r.StudentID = strings.TrimSpace(r.StudentID)
	r.StudentName = strings.TrimSpace(r.StudentName)
	r.StudentDepartment = strings.TrimSpace(r.StudentDepartment)
	r.CompetitionName = strings.TrimSpace(r.CompetitionName)
	r.AwardCategory = strings.TrimSpace(r.AwardCategory)
	r.AwardLevel = strings.TrimSpace(r.AwardLevel)
	r.CompetitionType = strings.TrimSpace(r.CompetitionType)
	r.Organizer = strings.TrimSpace(r.Organizer)
	r.AwardDate = strings.TrimSpace(r.AwardDate)
	r.Advisor = strings.TrimSpace(r.Advisor)
	r.AdvisorID = strings.TrimSpace(r.AdvisorID)
	r.Action = strings.TrimSpace(r.Action)
}

// ApplyTo copies the form fields onto a model. Submitter identity and
// lifecycle columns are left untouched.
func (r *CertificateFormRequest) ApplyTo(m *certModel.CertificateModel) {
	m.CertStudentID = r.StudentID
	m.CertStudentName = r.StudentName
	m.CertStudentDepartment = r.StudentDepartment
	m.CertCompetitionName = r.CompetitionName
	m.CertAwardCategory = r.AwardCategory
	m.CertAwardLevel = r.AwardLevel
	m.CertCompetitionType = r.CompetitionType
	m.CertOrganizer = r.Organizer
	m.CertAdvisor = r.Advisor
	m.CertAdvisorID = r.AdvisorID
	if t := dates.ParseAwardDate(r.AwardDate); t != nil {
		d := datatypes.Date(*t)
		m.CertAwardDate = &d
	} else {
		m.CertAwardDate = nil
	}
}

type ApproveRequest struct {
	StandardScore *string `json:"standard_score" validate:"omitempty,max=20"`
	Contribution  *string `json:"contribution" validate:"omitempty,max=20"`
}

/* ==============================
   Responses
============================== */

type CertificateResponse struct {
	ID                uuid.UUID  `json:"id"`
	SubmitterID       uuid.UUID  `json:"submitter_id"`
	SubmitterRole     string     `json:"submitter_role"`
	StudentID         string     `json:"student_id"`
	StudentName       string     `json:"student_name"`
	StudentDepartment string     `json:"student_department"`
	CompetitionName   string     `json:"competition_name"`
	AwardCategory     string     `json:"award_category"`
	AwardLevel        string     `json:"award_level"`
	CompetitionType   string     `json:"competition_type"`
	Organizer         string     `json:"organizer"`
	AwardDate         string     `json:"award_date"`
	Advisor           string     `json:"advisor"`
	AdvisorID         string     `json:"advisor_id"`
	FilePath          string     `json:"file_path"`
	FileMD5           string     `json:"file_md5"`
	ExtractionMethod  string     `json:"extraction_method"`
	StandardScore     *string    `json:"standard_score"`
	Contribution      *string    `json:"contribution"`
	Status            string     `json:"status"`
	SubmittedAt       *time.Time `json:"submitted_at"`
	CreatedAt         time.Time  `json:"created_at"`
}

func FromCertificateModel(m *certModel.CertificateModel) CertificateResponse {
	awardDate := ""
	if m.CertAwardDate != nil {
		t := time.Time(*m.CertAwardDate)
		awardDate = dates.FormatAwardDate(&t)
	}
	return CertificateResponse{
		ID:                m.CertID,
		SubmitterID:       m.CertSubmitterID,
		SubmitterRole:     m.CertSubmitterRole,
		StudentID:         m.CertStudentID,
		StudentName:       m.CertStudentName,
		StudentDepartment: m.CertStudentDepartment,
		CompetitionName:   m.CertCompetitionName,
		AwardCategory:     m.CertAwardCategory,
		AwardLevel:        m.CertAwardLevel,
		CompetitionType:   m.CertCompetitionType,
		Organizer:         m.CertOrganizer,
		AwardDate:         awardDate,
		Advisor:           m.CertAdvisor,
		AdvisorID:         m.CertAdvisorID,
		FilePath:          m.CertFilePath,
		FileMD5:           m.CertFileMD5,
		ExtractionMethod:  m.CertExtractionMethod,
		StandardScore:     m.CertStandardScore,
		Contribution:      m.CertContribution,
		Status:            m.CertStatus,
		SubmittedAt:       m.CertSubmittedAt,
		CreatedAt:         m.CertCreatedAt,
	}
}

// UploadResponse is what the upload endpoint returns to prefill the
// submission form.
type UploadResponse struct {
	FilePath         string                 `json:"file_path"`
	FileMD5          string                 `json:"file_md5"`
	ExtractionMethod string                 `json:"extraction_method"`
	QuickUpload      bool                   `json:"quick_upload"`
	Fields           map[string]interface{} `json:"fields"`
}
