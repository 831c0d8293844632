// file: internals/features/files/file/model/file_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FileModel struct {
	FileID         uuid.UUID `gorm:"column:file_id;type:uuid;primaryKey" json:"file_id"`
	FileUserID     uuid.UUID `gorm:"column:file_user_id;type:uuid;not null;index" json:"file_user_id"`
	FileName       string    `gorm:"column:file_name;type:varchar(255);not null" json:"file_name"`
	FilePath       string    `gorm:"column:file_path;type:text;not null" json:"file_path"`
	FileType       string    `gorm:"column:file_type;type:varchar(50)" json:"file_type"`
	FileSize       int64     `gorm:"column:file_size" json:"file_size"`
	FileMD5        string    `gorm:"column:file_md5;type:char(32);index" json:"file_md5"`
	FileUploadedAt time.Time `gorm:"column:file_uploaded_at;autoCreateTime" json:"file_uploaded_at"`
}

func (FileModel) TableName() string {
	return "files"
}

func (m *FileModel) BeforeCreate(tx *gorm.DB) error {
	if m.FileID == uuid.Nil {
		m.FileID = uuid.New()
	}
	return nil
}
