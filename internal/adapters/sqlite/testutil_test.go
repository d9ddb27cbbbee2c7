// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the single point where the database schema is loaded for
// tests. Setup uses db.GetSchemaSQL() so tests run against the authoritative
// schema. Do not declare tables in test files.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/tpp/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Every new connection to :memory: is a separate empty database.
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedActivity inserts an activity row with an explicit timestamp.
func seedActivity(t *testing.T, db *sql.DB, id, timestamp, action, dateKey string) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO activity_log (id, timestamp, actor_id, action, date_key) VALUES (?, ?, 'local', ?, ?)",
		id, timestamp, action, dateKey,
	)
	if err != nil {
		t.Fatalf("failed to seed activity: %v", err)
	}
}
