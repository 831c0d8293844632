// file: internals/features/system/config/model/system_config_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Keys with defined semantics. Everything else is free-form.
const (
	KeyDeadline = "deadline"  // submission cutoff, "2006-01-02 15:04"
	KeyAIPrompt = "ai_prompt" // extraction prompt override
)

type SystemConfigModel struct {
	ConfigID          uuid.UUID  `json:"config_id" gorm:"column:config_id;type:uuid;primaryKey"`
	ConfigKey         string     `json:"config_key" gorm:"column:config_key;size:100;uniqueIndex;not null"`
	ConfigValue       string     `json:"config_value" gorm:"column:config_value;type:text;not null"`
	ConfigDescription *string    `json:"config_description" gorm:"column:config_description;size:200"`
	ConfigUpdatedAt   time.Time  `json:"config_updated_at" gorm:"column:config_updated_at;autoUpdateTime"`
	ConfigUpdatedBy   *uuid.UUID `json:"config_updated_by" gorm:"column:config_updated_by;type:uuid"`
}

func (SystemConfigModel) TableName() string {
	return "system_configs"
}

func (m *SystemConfigModel) BeforeCreate(tx *gorm.DB) error {
	if m.ConfigID == uuid.Nil {
		m.ConfigID = uuid.New()
	}
	return nil
}
