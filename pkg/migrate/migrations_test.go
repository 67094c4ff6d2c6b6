package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const migrationsDir = "migrations"

func TestMigrationsDirValidates(t *testing.T) {
	if err := ValidateDir(migrationsDir); err != nil {
		t.Fatalf("migrations dir invalid: %v", err)
	}
}

func TestMigrationsCoverAllTables(t *testing.T) {
	wantTables := []string{
		"users",
		"otps",
		"service_categories",
		"services",
		"service_options",
		"service_reviews",
		"cart_items",
		"orders",
		"order_items",
		"order_tracking",
		"payments",
		"contact_messages",
		"faqs",
		"site_configurations",
		"banners",
		"notifications",
	}

	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}

	var all strings.Builder
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(migrationsDir, e.Name()))
		if err != nil {
			t.Fatalf("read %s: %v", e.Name(), err)
		}
		all.Write(b)
	}

	text := all.String()
	for _, table := range wantTables {
		if !strings.Contains(text, "CREATE TABLE "+table+" (") {
			t.Errorf("no CREATE TABLE for %s", table)
		}
		if !strings.Contains(text, "DROP TABLE IF EXISTS "+table+";") {
			t.Errorf("no DROP TABLE for %s", table)
		}
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateSQLMigration(dir, "Add Loyalty Points!")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.HasSuffix(path, "_add_loyalty_points.sql") {
		t.Fatalf("unexpected filename %s", path)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("generated migration invalid: %v", err)
	}

	if _, err := CreateSQLMigration(dir, ""); err == nil {
		t.Fatal("expected error for empty name")
	}
}
