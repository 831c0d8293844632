// file: internals/features/system/config/service/system_config_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

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
	if err := db.AutoMigrate(&configModel.SystemConfigModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestGetValueMissingKey(t *testing.T) {
	db := openTestDB(t)
	v, err := GetValue(db, "nope")
	if err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if v != "" {
		t.Fatalf("missing key = %q, want empty", v)
	}
}

func TestSetValueUpsert(t *testing.T) {
	db := openTestDB(t)
	if err := SetValue(db, "greeting", "hello", nil, nil); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := SetValue(db, "greeting", "bonjour", nil, nil); err != nil {
		t.Fatalf("update: %v", err)
	}
	v, _ := GetValue(db, "greeting")
	if v != "bonjour" {
		t.Fatalf("value = %q, want bonjour", v)
	}

	var count int64
	db.Model(&configModel.SystemConfigModel{}).Where("config_key = ?", "greeting").Count(&count)
	if count != 1 {
		t.Fatalf("upsert created %d rows", count)
	}
}

func TestDeadlineParsing(t *testing.T) {
	db := openTestDB(t)

	// No deadline: the gate always passes.
	open, err := IsBeforeDeadline(db, time.Now())
	if err != nil || !open {
		t.Fatalf("IsBeforeDeadline without config = (%v, %v), want open", open, err)
	}

	if err := SetValue(db, configModel.KeyDeadline, "2025-01-01 00:00", nil, nil); err != nil {
		t.Fatalf("set: %v", err)
	}
	deadline, err := GetDeadline(db)
	if err != nil || deadline == nil {
		t.Fatalf("GetDeadline = (%v, %v)", deadline, err)
	}

	before := deadline.Add(-time.Minute)
	after := deadline.Add(24 * time.Hour)
	if open, _ := IsBeforeDeadline(db, before); !open {
		t.Fatal("a minute before the cutoff must be open")
	}
	if open, _ := IsBeforeDeadline(db, *deadline); !open {
		t.Fatal("the cutoff instant itself must still be open")
	}
	if open, _ := IsBeforeDeadline(db, after); open {
		t.Fatal("a day past the cutoff must be closed")
	}

	if got := DeadlineDisplay(db); got != "2025-01-01 00:00" {
		t.Fatalf("DeadlineDisplay = %q", got)
	}
}

func TestMalformedDeadlineMeansNoDeadline(t *testing.T) {
	db := openTestDB(t)
	if err := SetValue(db, configModel.KeyDeadline, "soonish", nil, nil); err != nil {
		t.Fatalf("set: %v", err)
	}
	deadline, err := GetDeadline(db)
	if err != nil {
		t.Fatalf("GetDeadline: %v", err)
	}
	if deadline != nil {
		t.Fatal("malformed value must behave like no deadline")
	}
}
