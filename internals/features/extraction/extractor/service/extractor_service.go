// file: internals/features/extraction/extractor/service/extractor_service.go
package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"prestasiku_backend/internals/configs"
	apiKeyModel "prestasiku_backend/internals/features/extraction/apikey/model"
	apiKeyService "prestasiku_backend/internals/features/extraction/apikey/service"
	configModel "prestasiku_backend/internals/features/system/config/model"
	configService "prestasiku_backend/internals/features/system/config/service"
)

const (
	primaryModel  = "glm-4.6v"
	legacyModel   = "glm-4v"
	requestPeriod = 60 * time.Second
)

// defaultPrompt is the built-in instruction used when neither the key
// nor the system configuration carries one.
const defaultPrompt = `请从这张获奖证书图片中提取以下信息，以JSON格式返回：
{"student_department":"学生所在学院","competition_name":"竞赛名称","student_id":"学号","student_name":"学生姓名","award_category":"获奖类别","award_level":"获奖等级","competition_type":"竞赛类型","organizer":"主办方","award_date":"获奖日期","advisor":"指导教师"}
无法识别的字段请返回空字符串。只返回JSON，不要其他内容。`

// Outcome tags which path produced the extraction result.
type Outcome string

const (
	OutcomePrimary  Outcome = "primary"
	OutcomeFallback Outcome = "fallback"
	OutcomeFailed   Outcome = "failed"
)

type Extractor struct {
	DB     *gorm.DB
	Client *http.Client
	BaseV4 string
	BaseV3 string
}

func NewExtractor(db *gorm.DB) *Extractor {
	return &Extractor{
		DB:     db,
		Client: &http.Client{Timeout: requestPeriod},
		BaseV4: configs.VisionAPIBase,
		BaseV3: configs.VisionAPIBaseOld,
	}
}

// resolvePrompt prefers the key's own prompt, then the ai_prompt system
// setting, then the built-in default.
func (e *Extractor) resolvePrompt(key *apiKeyModel.APIKeyModel) string {
	if key.APIKeyPrompt != "" {
		return key.APIKeyPrompt
	}
	if v, err := configService.GetValue(e.DB, configModel.KeyAIPrompt); err == nil && v != "" {
		return v
	}
	return defaultPrompt
}

// Extract runs the vision model over a certificate image. It only
// fails outright when no credential is usable; any model-side problem
// degrades to empty fields with OutcomeFailed so the caller can still
// hand the form back for manual entry.
func (e *Extractor) Extract(imageData []byte) (Fields, Outcome, error) {
	key, err := apiKeyService.Pick(e.DB)
	if err != nil {
		return EmptyFields(), OutcomeFailed, err
	}
	prompt := e.resolvePrompt(key)
	encoded := base64.StdEncoding.EncodeToString(imageData)

	content, outcome := e.callWithFallback(key, prompt, encoded)
	if outcome == OutcomeFailed {
		return EmptyFields(), OutcomeFailed, nil
	}
	if err := apiKeyService.MarkUsed(e.DB, key); err != nil {
		log.Printf("⚠️ failed to record API key usage: %v", err)
	}
	return ParseFields(content), outcome, nil
}

func (e *Extractor) callWithFallback(key *apiKeyModel.APIKeyModel, prompt, encoded string) (string, Outcome) {
	content, err := e.callPrimary(key, prompt, encoded)
	if err == nil {
		return content, OutcomePrimary
	}
	log.Printf("⚠️ primary vision call failed, trying legacy endpoint: %v", err)

	content, err = e.callLegacy(key, prompt, encoded)
	if err == nil {
		return content, OutcomeFallback
	}
	log.Printf("❌ legacy vision call failed: %v", err)
	return "", OutcomeFailed
}

/* =======================================================
   Primary endpoint (v4 chat completions, vision input)
======================================================= */

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Thinking *chatThinking `json:"thinking,omitempty"`
}

type chatThinking struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []messagePart `json:"content"`
}

type messagePart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (e *Extractor) callPrimary(key *apiKeyModel.APIKeyModel, prompt, encoded string) (string, error) {
	model := key.APIKeyModelName
	if model == "" {
		model = primaryModel
	}
	body := chatRequest{
		Model:    model,
		Thinking: &chatThinking{Type: "enabled"},
		Messages: []chatMessage{{
			Role: "user",
			Content: []messagePart{
				{Type: "image_url", ImageURL: &imageURL{URL: encoded}},
				{Type: "text", Text: prompt},
			},
		}},
	}
	return e.post(e.BaseV4+"/chat/completions", key.APIKeyValue, body)
}

/* =======================================================
   Legacy endpoint (v3, data URI image)
======================================================= */

func (e *Extractor) callLegacy(key *apiKeyModel.APIKeyModel, prompt, encoded string) (string, error) {
	model := key.APIKeyModelName
	if model == "" {
		model = legacyModel
	}
	body := chatRequest{
		Model: model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []messagePart{
				{Type: "image_url", ImageURL: &imageURL{URL: "data:image/jpeg;base64," + encoded}},
				{Type: "text", Text: prompt},
			},
		}},
	}
	return e.post(e.BaseV3+"/chat/completions", key.APIKeyValue, body)
}

func (e *Extractor) post(url, token string, body chatRequest) (string, error) {
	payload, err := sonic.Marshal(body)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := e.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vision API returned %d: %s", resp.StatusCode, truncate(raw, 200))
	}

	var out chatResponse
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return "", err
	}
	if out.Error != nil {
		return "", fmt.Errorf("vision API error: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("vision API returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
