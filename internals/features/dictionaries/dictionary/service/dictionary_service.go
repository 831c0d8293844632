// file: internals/features/dictionaries/dictionary/service/dictionary_service.go
package service

import (
	"errors"

	"gorm.io/gorm"

	m "prestasiku_backend/internals/features/dictionaries/dictionary/model"
)

// Options resolves the active option names under a category name,
// newest first. An unknown or inactive category yields an empty list,
// not an error.
func Options(db *gorm.DB, categoryName string) ([]string, error) {
	var category m.DictionaryCategoryModel
	err := db.Where("dict_category_name = ? AND dict_category_is_active = ?", categoryName, true).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []string{}, nil
		}
		return nil, err
	}

	var options []m.DictionaryOptionModel
	if err := db.Where("dict_option_category_id = ? AND dict_option_is_active = ?", category.DictCategoryID, true).
		Order("dict_option_created_at DESC").
		Find(&options).Error; err != nil {
		return nil, err
	}

	names := make([]string, 0, len(options))
	for _, opt := range options {
		names = append(names, opt.DictOptionName)
	}
	return names, nil
}

// CertificateOptions bundles every option list the certificate form needs.
func CertificateOptions(db *gorm.DB, includeScoring bool) (map[string][]string, error) {
	keys := map[string]string{
		"colleges":   m.CategoryColleges,
		"categories": m.CategoryAwardCategory,
		"levels":     m.CategoryAwardLevel,
		"comp_types": m.CategoryCompType,
	}
	if includeScoring {
		keys["standard_scores"] = m.CategoryStandardScore
		keys["contributions"] = m.CategoryContribution
	}

	out := make(map[string][]string, len(keys))
	for field, category := range keys {
		opts, err := Options(db, category)
		if err != nil {
			return nil, err
		}
		out[field] = opts
	}
	return out, nil
}
