package storage

import (
	"database/sql"
	"sort"
	"testing"

	_ "modernc.org/sqlite"
)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// getTableNames returns sorted table names from sqlite_master, excluding internal tables.
func getTableNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan table name: %v", err)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// expectedTables is the sorted list of tables InitDB creates.
var expectedTables = []string{
	"attempts",
	"audit_events",
	"companies",
	"daily_games",
	"materials",
	"profiles",
	"work_entries",
}

// TestInitDB_Fresh verifies the schema applies cleanly to an empty database.
func TestInitDB_Fresh(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed on fresh db: %v", err)
	}

	tables := getTableNames(t, db)
	if len(tables) != len(expectedTables) {
		t.Errorf("got %d tables, want %d\ngot:  %v\nwant: %v", len(tables), len(expectedTables), tables, expectedTables)
	}
	for i, want := range expectedTables {
		if i >= len(tables) {
			t.Errorf("missing table: %s", want)
			continue
		}
		if tables[i] != want {
			t.Errorf("table[%d] = %q, want %q", i, tables[i], want)
		}
	}
}

// TestInitDB_Idempotent verifies that running InitDB twice produces no errors
// and existing data survives the second run.
func TestInitDB_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("first InitDB failed: %v", err)
	}

	_, err := db.Exec(`INSERT INTO profiles (student_id, name, password_hash, role, assets, created_at) VALUES ('s1', 'Test Student', '', 'student', 100, '2026-01-01T00:00:00Z')`)
	if err != nil {
		t.Fatalf("failed to insert test profile: %v", err)
	}

	if err := InitDB(db); err != nil {
		t.Fatalf("second InitDB failed: %v", err)
	}

	var name string
	if err := db.QueryRow("SELECT name FROM profiles WHERE student_id = 's1'").Scan(&name); err != nil {
		t.Fatalf("profile data lost after re-init: %v", err)
	}
	if name != "Test Student" {
		t.Errorf("profile name = %q, want %q", name, "Test Student")
	}
}

// TestInitDB_NonNegativeAssets verifies the CHECK constraint rejects negative balances.
func TestInitDB_NonNegativeAssets(t *testing.T) {
	db := openTestDB(t)
	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}

	_, err := db.Exec(`INSERT INTO profiles (student_id, name, password_hash, role, assets, created_at) VALUES ('s1', 'Test', '', 'student', -1, '2026-01-01T00:00:00Z')`)
	if err == nil {
		t.Error("expected CHECK constraint violation for negative assets, got nil")
	}

	_, err = db.Exec(`INSERT INTO companies (id, name, chairman_id, assets, created_at) VALUES ('c1', 'Acme', 's1', -500, '2026-01-01T00:00:00Z')`)
	if err == nil {
		t.Error("expected CHECK constraint violation for negative company assets, got nil")
	}
}

// TestInitDB_AttemptUniqueness verifies a student cannot hold two attempts for one game.
func TestInitDB_AttemptUniqueness(t *testing.T) {
	db := openTestDB(t)
	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}

	_, err := db.Exec(`INSERT INTO profiles (student_id, name, password_hash, role, assets, created_at) VALUES ('s1', 'Test', '', 'student', 0, '2026-01-01T00:00:00Z')`)
	if err != nil {
		t.Fatalf("failed to insert profile: %v", err)
	}
	_, err = db.Exec(`INSERT INTO daily_games (id, date, topic, reward, question_data, created_by, created_at) VALUES ('g1', '2026-01-02', 'Accounting', 5000, '{}', 'admin', '2026-01-01T00:00:00Z')`)
	if err != nil {
		t.Fatalf("failed to insert game: %v", err)
	}

	_, err = db.Exec(`INSERT INTO attempts (id, student_id, game_id, selected, correct, created_at) VALUES ('a1', 's1', 'g1', 'Cash', 1, '2026-01-02T09:00:00Z')`)
	if err != nil {
		t.Fatalf("first attempt insert failed: %v", err)
	}
	_, err = db.Exec(`INSERT INTO attempts (id, student_id, game_id, selected, correct, created_at) VALUES ('a2', 's1', 'g1', 'Cash', 1, '2026-01-02T09:01:00Z')`)
	if err == nil {
		t.Error("expected UNIQUE constraint violation for duplicate attempt, got nil")
	}
}
