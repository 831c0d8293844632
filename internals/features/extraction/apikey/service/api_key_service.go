// file: internals/features/extraction/apikey/service/api_key_service.go
package service

import (
	"errors"
	"sync/atomic"
	"time"

	"gorm.io/gorm"

	apiKeyModel "prestasiku_backend/internals/features/extraction/apikey/model"
)

// ErrNoCredential is returned when no active key with remaining quota
// exists in the pool.
var ErrNoCredential = errors.New("no usable API credential configured")

// cursor is process-local round-robin state. It deliberately survives
// pool edits: fairness across a restart is not worth a table write per
// extraction.
var cursor uint64

// activeKeys loads the usable pool, newest first.
func activeKeys(db *gorm.DB) ([]apiKeyModel.APIKeyModel, error) {
	var keys []apiKeyModel.APIKeyModel
	err := db.
		Where("api_key_is_active = ?", true).
		Order("api_key_created_at DESC").
		Find(&keys).Error
	return keys, err
}

// Pick selects the next key round-robin over the active pool. Keys
// found exhausted are deactivated on the spot and selection retries on
// the shrunken pool.
func Pick(db *gorm.DB) (*apiKeyModel.APIKeyModel, error) {
	for {
		keys, err := activeKeys(db)
		if err != nil {
			return nil, err
		}
		if len(keys) == 0 {
			return nil, ErrNoCredential
		}

		idx := int((atomic.AddUint64(&cursor, 1) - 1) % uint64(len(keys)))
		key := keys[idx]
		if !key.Exhausted() {
			return &key, nil
		}

		// Quota spent: retire the key and reselect.
		if err := db.Model(&apiKeyModel.APIKeyModel{}).
			Where("api_key_id = ?", key.APIKeyID).
			Update("api_key_is_active", false).Error; err != nil {
			return nil, err
		}
	}
}

// MarkUsed bumps the usage counter after a successful call. Failed
// calls do not consume quota.
func MarkUsed(db *gorm.DB, key *apiKeyModel.APIKeyModel) error {
	return db.Model(&apiKeyModel.APIKeyModel{}).
		Where("api_key_id = ?", key.APIKeyID).
		Updates(map[string]interface{}{
			"api_key_used_count":   gorm.Expr("api_key_used_count + 1"),
			"api_key_last_used_at": time.Now(),
		}).Error
}
