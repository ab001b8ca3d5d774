package migrate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/vendo-storefront/pkg/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("ValidateDir returned error: %v", err)
	}
}

func TestValidateDirRejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "catalog.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected invalid filename error")
	}
}

func TestCreateSQLMigrationWritesTemplate(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Featured Flag")
	if err != nil {
		t.Fatalf("CreateSQLMigration returned error: %v", err)
	}
	if !strings.HasSuffix(path, "_add_featured_flag.sql") {
		t.Fatalf("unexpected migration path %q", path)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("generated migration failed validation: %v", err)
	}
}

func TestValidateDirRejectsMalformedAnnotations(t *testing.T) {
	tests := map[string]string{
		"missing down":      "-- +goose Up\nSELECT 1;\n",
		"down before up":    "-- +goose Down\nSELECT 1;\n-- +goose Up\nSELECT 1;\n",
		"unbalanced blocks": "-- +goose Up\n-- +goose StatementBegin\nSELECT 1;\n-- +goose Down\nSELECT 1;\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "20260301090000_catalog.sql"), []byte(body), 0o644); err != nil {
				t.Fatalf("write file: %v", err)
			}
			if err := ValidateDir(dir); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreateSQLMigrationStaysAfterNewestVersion(t *testing.T) {
	dir := t.TempDir()
	future := "20990101000000_menu_badges.sql"
	if err := os.WriteFile(filepath.Join(dir, future), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	path, err := createSQLMigration(dir, "add-on categories", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("createSQLMigration returned error: %v", err)
	}
	if got := filepath.Base(path); got != "20990101000001_add_on_categories.sql" {
		t.Fatalf("unexpected migration file %q", got)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("generated migration failed validation: %v", err)
	}

	if _, err := CreateSQLMigration(dir, "  --  "); err == nil {
		t.Fatal("expected empty sanitized name to fail")
	}
}

func TestDialect(t *testing.T) {
	if got := Dialect(config.DBDriverSQLite); got != "sqlite3" {
		t.Fatalf("expected sqlite3, got %q", got)
	}
	if got := Dialect(config.DBDriverPostgres); got != "postgres" {
		t.Fatalf("expected postgres, got %q", got)
	}
}

func TestRunUpCreatesCatalogTablesOnSQLite(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "migrate.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	defer sqlDB.Close()

	if err := Run(context.Background(), sqlDB, "sqlite3", "migrations", "up"); err != nil {
		t.Fatalf("Run up returned error: %v", err)
	}

	for _, table := range []string{"categories", "menu_items", "menu_item_variations", "menu_item_add_ons", "site_settings"} {
		if !conn.Migrator().HasTable(table) {
			t.Errorf("expected table %s to exist", table)
		}
	}
}
