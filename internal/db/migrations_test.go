package db_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/db"
)

func TestApplyMigrationsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "big2fit.db")
	sqldb, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("first apply migrations: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("second apply migrations: %v", err)
	}

	var migrationCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&migrationCount); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if migrationCount != db.SchemaVersion() {
		t.Fatalf("expected %d migration versions, got %d", db.SchemaVersion(), migrationCount)
	}

	var kvTableCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = 'kv_entries'`).Scan(&kvTableCount); err != nil {
		t.Fatalf("check kv_entries table: %v", err)
	}
	if kvTableCount != 1 {
		t.Fatalf("expected kv_entries table to exist")
	}

	var indexCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'index' AND name = 'idx_kv_entries_updated_at'`).Scan(&indexCount); err != nil {
		t.Fatalf("check kv_entries index: %v", err)
	}
	if indexCount != 1 {
		t.Fatalf("expected idx_kv_entries_updated_at index to exist")
	}

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected db file to exist: %v", err)
	}
}
