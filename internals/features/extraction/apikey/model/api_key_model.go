// file: internals/features/extraction/apikey/model/api_key_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type APIKeyModel struct {
	APIKeyID         uuid.UUID  `gorm:"column:api_key_id;type:uuid;primaryKey" json:"api_key_id"`
	APIKeyName       string     `gorm:"column:api_key_name;type:varchar(100);not null" json:"api_key_name"`
	APIKeyValue      string     `gorm:"column:api_key_value;type:text;not null" json:"-"`
	APIKeyModelName  string     `gorm:"column:api_key_model_name;type:varchar(100)" json:"api_key_model_name"`
	APIKeyPrompt     string     `gorm:"column:api_key_prompt;type:text" json:"api_key_prompt"`
	APIKeyMaxUsage   *int       `gorm:"column:api_key_max_usage" json:"api_key_max_usage"`
	APIKeyUsedCount  int        `gorm:"column:api_key_used_count;not null;default:0" json:"api_key_used_count"`
	APIKeyIsActive   bool       `gorm:"column:api_key_is_active;not null;default:true" json:"api_key_is_active"`
	APIKeyLastUsedAt *time.Time `gorm:"column:api_key_last_used_at" json:"api_key_last_used_at"`
	APIKeyCreatedAt  time.Time  `gorm:"column:api_key_created_at;autoCreateTime" json:"api_key_created_at"`
	APIKeyUpdatedAt  time.Time  `gorm:"column:api_key_updated_at;autoUpdateTime" json:"api_key_updated_at"`
}

func (APIKeyModel) TableName() string {
	return "api_keys"
}

func (m *APIKeyModel) BeforeCreate(tx *gorm.DB) error {
	if m.APIKeyID == uuid.Nil {
		m.APIKeyID = uuid.New()
	}
	return nil
}

// Exhausted reports whether the key hit its usage cap. A nil cap means
// unlimited use.
func (m *APIKeyModel) Exhausted() bool {
	return m.APIKeyMaxUsage != nil && m.APIKeyUsedCount >= *m.APIKeyMaxUsage
}

// MaskedKey hides the middle of the secret for admin listings.
func (m *APIKeyModel) MaskedKey() string {
	v := m.APIKeyValue
	if len(v) <= 12 {
		return "****"
	}
	return v[:8] + "****" + v[len(v)-4:]
}
