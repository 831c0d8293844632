// file: internals/features/extraction/extractor/service/extractor_service_test.go
package service

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apiKeyModel "prestasiku_backend/internals/features/extraction/apikey/model"
	apiKeyService "prestasiku_backend/internals/features/extraction/apikey/service"
	configModel "prestasiku_backend/internals/features/system/config/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&apiKeyModel.APIKeyModel{}, &configModel.SystemConfigModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedActiveKey(t *testing.T, db *gorm.DB) *apiKeyModel.APIKeyModel {
	t.Helper()
	k := &apiKeyModel.APIKeyModel{
		APIKeyName:      "test",
		APIKeyValue:     "sk-test-0123456789abcdef",
		APIKeyIsActive:  true,
		APIKeyCreatedAt: time.Now(),
	}
	if err := db.Create(k).Error; err != nil {
		t.Fatalf("seed key: %v", err)
	}
	return k
}

func chatReply(content string) string {
	return `{"choices":[{"message":{"content":` + quote(content) + `}}]}`
}

func quote(s string) string {
	out := `"`
	for _, r := range s {
		switch r {
		case '"':
			out += `\"`
		case '\n':
			out += `\n`
		case '\\':
			out += `\\`
		default:
			out += string(r)
		}
	}
	return out + `"`
}

func testExtractor(db *gorm.DB, baseV4, baseV3 string) *Extractor {
	return &Extractor{
		DB:     db,
		Client: &http.Client{Timeout: 5 * time.Second},
		BaseV4: baseV4,
		BaseV3: baseV3,
	}
}

func TestExtractPrimarySuccess(t *testing.T) {
	db := openTestDB(t)
	key := seedActiveKey(t, db)

	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer "+key.APIKeyValue {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatReply(`{"student_name":"张三","award_level":"一等奖"}`)))
	}))
	defer primary.Close()

	e := testExtractor(db, primary.URL, "http://127.0.0.1:0")
	fields, outcome, err := e.Extract([]byte("fake-image"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if outcome != OutcomePrimary {
		t.Fatalf("outcome = %s, want primary", outcome)
	}
	if fields.StudentName != "张三" || fields.AwardLevel != "一等奖" {
		t.Fatalf("unexpected fields: %+v", fields)
	}

	var reloaded apiKeyModel.APIKeyModel
	if err := db.First(&reloaded, "api_key_id = ?", key.APIKeyID).Error; err != nil {
		t.Fatalf("reload key: %v", err)
	}
	if reloaded.APIKeyUsedCount != 1 {
		t.Fatalf("used count = %d, want exactly one charge per extraction", reloaded.APIKeyUsedCount)
	}
}

func TestExtractFallsBackToLegacy(t *testing.T) {
	db := openTestDB(t)
	seedActiveKey(t, db)

	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"model offline"}}`, http.StatusInternalServerError)
	}))
	defer primary.Close()
	legacy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatReply(`{"competition_name":"挑战杯"}`)))
	}))
	defer legacy.Close()

	e := testExtractor(db, primary.URL, legacy.URL)
	fields, outcome, err := e.Extract([]byte("fake-image"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if outcome != OutcomeFallback {
		t.Fatalf("outcome = %s, want fallback", outcome)
	}
	if fields.CompetitionName != "挑战杯" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestExtractBothPathsFailing(t *testing.T) {
	db := openTestDB(t)
	key := seedActiveKey(t, db)

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer broken.Close()

	e := testExtractor(db, broken.URL, broken.URL)
	fields, outcome, err := e.Extract([]byte("fake-image"))
	if err != nil {
		t.Fatalf("Extract must not fail on model errors, got %v", err)
	}
	if outcome != OutcomeFailed {
		t.Fatalf("outcome = %s, want failed", outcome)
	}
	if fields != EmptyFields() {
		t.Fatalf("fields must be the empty sentinel, got %+v", fields)
	}

	var reloaded apiKeyModel.APIKeyModel
	if err := db.First(&reloaded, "api_key_id = ?", key.APIKeyID).Error; err != nil {
		t.Fatalf("reload key: %v", err)
	}
	if reloaded.APIKeyUsedCount != 0 {
		t.Fatal("failed calls must not consume quota")
	}
}

func TestExtractNoCredential(t *testing.T) {
	db := openTestDB(t)
	e := testExtractor(db, "http://127.0.0.1:0", "http://127.0.0.1:0")
	if _, _, err := e.Extract([]byte("fake-image")); !errors.Is(err, apiKeyService.ErrNoCredential) {
		t.Fatalf("Extract without keys = %v, want ErrNoCredential", err)
	}
}

func TestResolvePromptPrecedence(t *testing.T) {
	db := openTestDB(t)
	e := testExtractor(db, "", "")

	key := &apiKeyModel.APIKeyModel{}
	if got := e.resolvePrompt(key); got != defaultPrompt {
		t.Fatal("empty key and config must fall back to the built-in prompt")
	}

	cfg := &configModel.SystemConfigModel{ConfigKey: configModel.KeyAIPrompt, ConfigValue: "configured prompt"}
	if err := db.Create(cfg).Error; err != nil {
		t.Fatalf("seed config: %v", err)
	}
	if got := e.resolvePrompt(key); got != "configured prompt" {
		t.Fatalf("resolvePrompt = %q, want configured prompt", got)
	}

	key.APIKeyPrompt = "key prompt"
	if got := e.resolvePrompt(key); got != "key prompt" {
		t.Fatalf("resolvePrompt = %q, want key prompt", got)
	}
}
