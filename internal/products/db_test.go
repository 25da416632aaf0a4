package product

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testProductsDDL = `
CREATE TABLE products (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category    TEXT NOT NULL DEFAULT '',
    price       NUMERIC NOT NULL DEFAULT 0,
    quantity    INTEGER NOT NULL DEFAULT 0,
    size        TEXT NOT NULL DEFAULT '',
    image       TEXT NOT NULL DEFAULT '',
    created_at  DATETIME,
    updated_at  DATETIME
)`

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.Exec("DROP TABLE IF EXISTS products").Error; err != nil {
		t.Fatalf("reset products table: %v", err)
	}
	if err := conn.Exec(testProductsDDL).Error; err != nil {
		t.Fatalf("create products table: %v", err)
	}
	return conn
}
