package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nourzaidi/nourfashion-backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestProductsMigrationContainsSchema(t *testing.T) {
	content := readMigration(t, "*_create_products_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS products",
		"gen_random_uuid()",
		"NUMERIC(12,2)",
		"CREATE INDEX IF NOT EXISTS idx_products_category",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestSettingsMigrationSeedsWhatsAppNumber(t *testing.T) {
	content := readMigration(t, "*_create_settings_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS settings",
		"'whatsapp_number'",
		"ON CONFLICT (key) DO NOTHING",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matches %q", pattern)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
