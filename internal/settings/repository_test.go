package settings

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nourzaidi/nourfashion-backend/pkg/db/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	ddl := `CREATE TABLE settings (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL DEFAULT '',
		updated_at DATETIME
	)`
	if err := conn.Exec(ddl).Error; err != nil {
		t.Fatalf("create settings table: %v", err)
	}
	return conn
}

func TestRepositoryUpsertInsertsThenUpdates(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	if err := repo.UpsertSetting(ctx, &models.Setting{Key: KeyWhatsAppNumber, Value: "21612345678"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.UpsertSetting(ctx, &models.Setting{Key: KeyWhatsAppNumber, Value: "21698765432"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	row, err := repo.GetSetting(ctx, KeyWhatsAppNumber)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if row.Value != "21698765432" {
		t.Fatalf("expected updated value, got %q", row.Value)
	}
}

func TestRepositoryGetMissingReturnsRecordNotFound(t *testing.T) {
	repo := NewRepository(openTestDB(t))

	_, err := repo.GetSetting(context.Background(), "nope")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}
