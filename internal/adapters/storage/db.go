package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables. Balances carry CHECK constraints so no code path can
	// drive them negative; attempts and work entries carry the uniqueness
	// constraints that make reward crediting answer-once and work-once-a-day.
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		student_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'student',
		assets INTEGER NOT NULL DEFAULT 0 CHECK (assets >= 0),
		company_id TEXT REFERENCES companies(id),
		job_title TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS companies (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		chairman_id TEXT NOT NULL,
		assets INTEGER NOT NULL DEFAULT 0 CHECK (assets >= 0),
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS daily_games (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		topic TEXT NOT NULL,
		reward INTEGER NOT NULL CHECK (reward > 0),
		question_data TEXT NOT NULL,
		created_by TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS attempts (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL REFERENCES profiles(student_id),
		game_id TEXT NOT NULL REFERENCES daily_games(id),
		selected TEXT NOT NULL,
		correct INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE (student_id, game_id)
	);

	CREATE TABLE IF NOT EXISTS work_entries (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL REFERENCES profiles(student_id),
		date TEXT NOT NULL,
		wage INTEGER NOT NULL CHECK (wage > 0),
		created_at TEXT NOT NULL,
		UNIQUE (student_id, date)
	);

	CREATE TABLE IF NOT EXISTS materials (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		type TEXT NOT NULL,
		url TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS audit_events (
		id TEXT PRIMARY KEY,
		timestamp TEXT NOT NULL,
		category TEXT NOT NULL,
		action TEXT NOT NULL,
		severity TEXT NOT NULL,
		actor_id TEXT NOT NULL,
		actor_role TEXT NOT NULL,
		resource_id TEXT,
		resource_type TEXT,
		description TEXT,
		ip_address TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_profiles_assets ON profiles(assets DESC);
	CREATE INDEX IF NOT EXISTS idx_daily_games_date ON daily_games(date DESC, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_attempts_student ON attempts(student_id);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
