// file: internals/features/certificates/certificate/model/certificate_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CertificateModel struct {
	CertID uuid.UUID `gorm:"column:cert_id;type:uuid;primaryKey" json:"cert_id"`

	// Submitter identity is captured at creation and never changes,
	// even when a reviewer later edits the row.
	CertSubmitterID      uuid.UUID `gorm:"column:cert_submitter_id;type:uuid;not null;index:idx_certs_md5_submitter,priority:2" json:"cert_submitter_id"`
	CertSubmitterRole    string    `gorm:"column:cert_submitter_role;type:varchar(20);not null" json:"cert_submitter_role"`
	CertSubmitterAccount string    `gorm:"column:cert_submitter_account;type:varchar(50);not null" json:"cert_submitter_account"`

	CertStudentID         string `gorm:"column:cert_student_id;type:varchar(50);not null" json:"cert_student_id"`
	CertStudentName       string `gorm:"column:cert_student_name;type:varchar(100);not null" json:"cert_student_name"`
	CertStudentDepartment string `gorm:"column:cert_student_department;type:varchar(100);not null;index" json:"cert_student_department"`

	CertCompetitionName string          `gorm:"column:cert_competition_name;type:varchar(255);not null" json:"cert_competition_name"`
	CertAwardCategory   string          `gorm:"column:cert_award_category;type:varchar(100);not null" json:"cert_award_category"`
	CertAwardLevel      string          `gorm:"column:cert_award_level;type:varchar(100);not null" json:"cert_award_level"`
	CertCompetitionType string          `gorm:"column:cert_competition_type;type:varchar(100);not null" json:"cert_competition_type"`
	CertOrganizer       string          `gorm:"column:cert_organizer;type:varchar(255)" json:"cert_organizer"`
	CertAwardDate       *datatypes.Date `gorm:"column:cert_award_date" json:"cert_award_date"`

	CertAdvisor   string `gorm:"column:cert_advisor;type:varchar(100);not null" json:"cert_advisor"`
	CertAdvisorID string `gorm:"column:cert_advisor_id;type:char(8);not null;index" json:"cert_advisor_id"`

	CertFilePath         string `gorm:"column:cert_file_path;type:text;not null" json:"cert_file_path"`
	CertFileMD5          string `gorm:"column:cert_file_md5;type:char(32);not null;index:idx_certs_md5_submitter,priority:1" json:"cert_file_md5"`
	CertExtractionMethod string `gorm:"column:cert_extraction_method;type:varchar(20)" json:"cert_extraction_method"`

	CertStandardScore *string `gorm:"column:cert_standard_score;type:varchar(20)" json:"cert_standard_score"`
	CertContribution  *string `gorm:"column:cert_contribution;type:varchar(20)" json:"cert_contribution"`

	CertStatus      string     `gorm:"column:cert_status;type:varchar(20);not null;default:draft;index" json:"cert_status"`
	CertSubmittedAt *time.Time `gorm:"column:cert_submitted_at" json:"cert_submitted_at"`
	CertCreatedAt   time.Time  `gorm:"column:cert_created_at;autoCreateTime" json:"cert_created_at"`
	CertUpdatedAt   time.Time  `gorm:"column:cert_updated_at;autoUpdateTime" json:"cert_updated_at"`
}

func (CertificateModel) TableName() string {
	return "certificates"
}

func (m *CertificateModel) BeforeCreate(tx *gorm.DB) error {
	if m.CertID == uuid.Nil {
		m.CertID = uuid.New()
	}
	return nil
}
