// file: internals/features/dictionaries/dictionary/model/dictionary_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Well-known category names consumed by the certificate form.
const (
	CategoryColleges      = "学院"
	CategoryAwardCategory = "获奖类别"
	CategoryAwardLevel    = "获奖等级"
	CategoryCompType      = "竞赛类型"
	CategoryStandardScore = "标准分"
	CategoryContribution  = "贡献值"
)

// DictionaryCategoryModel is a named option list. Options hang exactly
// one level below their category.
type DictionaryCategoryModel struct {
	DictCategoryID        uuid.UUID `json:"dict_category_id" gorm:"column:dict_category_id;type:uuid;primaryKey"`
	DictCategoryName      string    `json:"dict_category_name" gorm:"column:dict_category_name;size:100;uniqueIndex;not null"`
	DictCategoryIsActive  bool      `json:"dict_category_is_active" gorm:"column:dict_category_is_active;not null;default:true"`
	DictCategoryCreatedAt time.Time `json:"dict_category_created_at" gorm:"column:dict_category_created_at;autoCreateTime"`
	DictCategoryUpdatedAt time.Time `json:"dict_category_updated_at" gorm:"column:dict_category_updated_at;autoUpdateTime"`
}

func (DictionaryCategoryModel) TableName() string {
	return "dictionary_categories"
}

func (m *DictionaryCategoryModel) BeforeCreate(tx *gorm.DB) error {
	if m.DictCategoryID == uuid.Nil {
		m.DictCategoryID = uuid.New()
	}
	return nil
}

type DictionaryOptionModel struct {
	DictOptionID          uuid.UUID  `json:"dict_option_id" gorm:"column:dict_option_id;type:uuid;primaryKey"`
	DictOptionCategoryID  uuid.UUID  `json:"dict_option_category_id" gorm:"column:dict_option_category_id;type:uuid;index;not null"`
	DictOptionName        string     `json:"dict_option_name" gorm:"column:dict_option_name;size:100;not null"`
	DictOptionDescription *string    `json:"dict_option_description" gorm:"column:dict_option_description;size:200"`
	DictOptionIsActive    bool       `json:"dict_option_is_active" gorm:"column:dict_option_is_active;not null;default:true"`
	DictOptionCreatedAt   time.Time  `json:"dict_option_created_at" gorm:"column:dict_option_created_at;autoCreateTime"`
	DictOptionUpdatedAt   time.Time  `json:"dict_option_updated_at" gorm:"column:dict_option_updated_at;autoUpdateTime"`
	DictOptionUpdatedBy   *uuid.UUID `json:"dict_option_updated_by" gorm:"column:dict_option_updated_by;type:uuid"`
}

func (DictionaryOptionModel) TableName() string {
	return "dictionary_options"
}

func (m *DictionaryOptionModel) BeforeCreate(tx *gorm.DB) error {
	if m.DictOptionID == uuid.Nil {
		m.DictOptionID = uuid.New()
	}
	return nil
}
