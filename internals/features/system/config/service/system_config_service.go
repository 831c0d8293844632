// file: internals/features/system/config/service/system_config_service.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	m "prestasiku_backend/internals/features/system/config/model"
)

// DeadlineLayout is the stored format of the submission cutoff.
const DeadlineLayout = "2006-01-02 15:04"

// GetValue returns the configured value, "" when the key is absent.
func GetValue(db *gorm.DB, key string) (string, error) {
	var cfg m.SystemConfigModel
	err := db.Where("config_key = ?", key).First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return cfg.ConfigValue, nil
}

// SetValue upserts a config row.
func SetValue(db *gorm.DB, key, value string, description *string, updatedBy *uuid.UUID) error {
	var cfg m.SystemConfigModel
	err := db.Where("config_key = ?", key).First(&cfg).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		cfg = m.SystemConfigModel{
			ConfigKey:         key,
			ConfigValue:       value,
			ConfigDescription: description,
			ConfigUpdatedBy:   updatedBy,
		}
		return db.Create(&cfg).Error
	case err != nil:
		return err
	}

	updates := map[string]interface{}{"config_value": value}
	if description != nil {
		updates["config_description"] = *description
	}
	if updatedBy != nil {
		updates["config_updated_by"] = *updatedBy
	}
	return db.Model(&cfg).Updates(updates).Error
}

/* =========================================================
   DEADLINE POLICY
   ========================================================= */

// GetDeadline parses the configured cutoff. Missing or malformed
// values mean no deadline.
func GetDeadline(db *gorm.DB) (*time.Time, error) {
	raw, err := GetValue(db, m.KeyDeadline)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	t, perr := time.ParseInLocation(DeadlineLayout, raw, time.Local)
	if perr != nil {
		return nil, nil
	}
	return &t, nil
}

// IsBeforeDeadline: true when no deadline is configured or checkTime
// has not passed it.
func IsBeforeDeadline(db *gorm.DB, checkTime time.Time) (bool, error) {
	deadline, err := GetDeadline(db)
	if err != nil {
		return false, err
	}
	if deadline == nil {
		return true, nil
	}
	return !checkTime.After(*deadline), nil
}

// DeadlineDisplay renders the cutoff for error messages, "" when unset.
func DeadlineDisplay(db *gorm.DB) string {
	deadline, err := GetDeadline(db)
	if err != nil || deadline == nil {
		return ""
	}
	return deadline.Format(DeadlineLayout)
}
