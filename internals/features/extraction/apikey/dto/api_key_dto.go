// file: internals/features/extraction/apikey/dto/api_key_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apiKeyModel "prestasiku_backend/internals/features/extraction/apikey/model"
)

type CreateAPIKeyRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	Value     string `json:"value" validate:"required,min=8"`
	ModelName string `json:"model_name" validate:"omitempty,max=100"`
	Prompt    string `json:"prompt" validate:"omitempty"`
	MaxUsage  *int   `json:"max_usage" validate:"omitempty,min=1"`
}

func (r *CreateAPIKeyRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Value = strings.TrimSpace(r.Value)
	r.ModelName = strings.TrimSpace(r.ModelName)
	r.Prompt = strings.TrimSpace(r.Prompt)
}

func (r *CreateAPIKeyRequest) ToModel() *apiKeyModel.APIKeyModel {
	return &apiKeyModel.APIKeyModel{
		APIKeyName:      r.Name,
		APIKeyValue:     r.Value,
		APIKeyModelName: r.ModelName,
		APIKeyPrompt:    r.Prompt,
		APIKeyMaxUsage:  r.MaxUsage,
		APIKeyIsActive:  true,
	}
}

type UpdateAPIKeyRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=100"`
	ModelName *string `json:"model_name" validate:"omitempty,max=100"`
	Prompt    *string `json:"prompt" validate:"omitempty"`
	MaxUsage  *int    `json:"max_usage" validate:"omitempty,min=1"`
	IsActive  *bool   `json:"is_active"`
}

type APIKeyResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	MaskedKey string    `json:"masked_key"`
	ModelName string    `json:"model_name"`
	Prompt    string    `json:"prompt"`
	MaxUsage  *int      `json:"max_usage"`
	UsedCount int       `json:"used_count"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func FromAPIKeyModel(m *apiKeyModel.APIKeyModel) APIKeyResponse {
	return APIKeyResponse{
		ID:        m.APIKeyID,
		Name:      m.APIKeyName,
		MaskedKey: m.MaskedKey(),
		ModelName: m.APIKeyModelName,
		Prompt:    m.APIKeyPrompt,
		MaxUsage:  m.APIKeyMaxUsage,
		UsedCount: m.APIKeyUsedCount,
		IsActive:  m.APIKeyIsActive,
		CreatedAt: m.APIKeyCreatedAt,
	}
}
