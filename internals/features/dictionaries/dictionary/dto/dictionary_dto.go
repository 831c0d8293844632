// file: internals/features/dictionaries/dictionary/dto/dictionary_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "prestasiku_backend/internals/features/dictionaries/dictionary/model"
)

type CreateCategoryRequest struct {
	Name string `json:"dict_category_name" form:"dict_category_name" validate:"required,min=1,max=100"`
}

func (r *CreateCategoryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

type CreateOptionRequest struct {
	CategoryID  uuid.UUID `json:"dict_option_category_id" form:"dict_option_category_id" validate:"required"`
	Name        string    `json:"dict_option_name" form:"dict_option_name" validate:"required,min=1,max=100"`
	Description *string   `json:"dict_option_description" form:"dict_option_description" validate:"omitempty,max=200"`
}

func (r *CreateOptionRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	if r.Description != nil {
		d := strings.TrimSpace(*r.Description)
		if d == "" {
			r.Description = nil
		} else {
			r.Description = &d
		}
	}
}

type UpdateOptionRequest struct {
	Name        *string `json:"dict_option_name" form:"dict_option_name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"dict_option_description" form:"dict_option_description" validate:"omitempty,max=200"`
	IsActive    *bool   `json:"dict_option_is_active" form:"dict_option_is_active"`
}

type CategoryResponse struct {
	CategoryID uuid.UUID `json:"dict_category_id"`
	Name       string    `json:"dict_category_name"`
	IsActive   bool      `json:"dict_category_is_active"`
	CreatedAt  time.Time `json:"dict_category_created_at"`
}

func FromCategoryModel(c m.DictionaryCategoryModel) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.DictCategoryID,
		Name:       c.DictCategoryName,
		IsActive:   c.DictCategoryIsActive,
		CreatedAt:  c.DictCategoryCreatedAt,
	}
}

type OptionResponse struct {
	OptionID    uuid.UUID `json:"dict_option_id"`
	CategoryID  uuid.UUID `json:"dict_option_category_id"`
	Name        string    `json:"dict_option_name"`
	Description *string   `json:"dict_option_description,omitempty"`
	IsActive    bool      `json:"dict_option_is_active"`
	CreatedAt   time.Time `json:"dict_option_created_at"`
}

func FromOptionModel(o m.DictionaryOptionModel) OptionResponse {
	return OptionResponse{
		OptionID:    o.DictOptionID,
		CategoryID:  o.DictOptionCategoryID,
		Name:        o.DictOptionName,
		Description: o.DictOptionDescription,
		IsActive:    o.DictOptionIsActive,
		CreatedAt:   o.DictOptionCreatedAt,
	}
}
