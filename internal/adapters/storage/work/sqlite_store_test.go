package work

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"bafs/internal/adapters/storage"
	domain "bafs/internal/domain/work"
)

var fixedTime = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func openStoreDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}
	return db
}

func seedRows(t *testing.T, db *sql.DB) {
	t.Helper()
	if _, err := db.Exec(
		"INSERT INTO companies (id, name, chairman_id, assets, created_at) VALUES ('c1', 'Acme', 's1', 10000, ?)",
		fixedTime.Format(timeFormat),
	); err != nil {
		t.Fatalf("failed to insert company: %v", err)
	}
	if _, err := db.Exec(
		"INSERT INTO profiles (student_id, name, assets, company_id, created_at) VALUES ('s1', 'Student One', 100, 'c1', ?)",
		fixedTime.Format(timeFormat),
	); err != nil {
		t.Fatalf("failed to insert profile: %v", err)
	}
}

func TestSQLiteStore_RecordEntry_CreditsWage(t *testing.T) {
	db := openStoreDB(t)
	store := NewSQLiteStore(db)
	ctx := context.Background()
	seedRows(t, db)

	entry := domain.Entry{
		ID:        "w1",
		StudentID: "s1",
		Date:      "2026-03-02",
		Wage:      200,
		CreatedAt: fixedTime,
	}
	if err := store.RecordEntry(ctx, entry, "c1"); err != nil {
		t.Fatalf("RecordEntry: %v", err)
	}

	var studentAssets, companyAssets int
	if err := db.QueryRow("SELECT assets FROM profiles WHERE student_id = 's1'").Scan(&studentAssets); err != nil {
		t.Fatalf("read student assets: %v", err)
	}
	if err := db.QueryRow("SELECT assets FROM companies WHERE id = 'c1'").Scan(&companyAssets); err != nil {
		t.Fatalf("read company assets: %v", err)
	}
	if studentAssets != 300 {
		t.Errorf("student assets = %d, want 300", studentAssets)
	}
	if companyAssets != 10200 {
		t.Errorf("company assets = %d, want 10200", companyAssets)
	}

	stored, err := store.GetByStudentAndDate(ctx, "s1", "2026-03-02")
	if err != nil {
		t.Fatalf("GetByStudentAndDate: %v", err)
	}
	if stored.Wage != 200 {
		t.Errorf("stored wage = %d, want 200", stored.Wage)
	}
}

func TestSQLiteStore_RecordEntry_OncePerDay(t *testing.T) {
	db := openStoreDB(t)
	store := NewSQLiteStore(db)
	ctx := context.Background()
	seedRows(t, db)

	entry := domain.Entry{
		ID: "w1", StudentID: "s1", Date: "2026-03-02", Wage: 200, CreatedAt: fixedTime,
	}
	if err := store.RecordEntry(ctx, entry, ""); err != nil {
		t.Fatalf("first RecordEntry: %v", err)
	}

	entry.ID = "w2"
	if err := store.RecordEntry(ctx, entry, ""); !errors.Is(err, ErrDuplicateEntry) {
		t.Fatalf("second RecordEntry error = %v, want ErrDuplicateEntry", err)
	}

	var studentAssets int
	if err := db.QueryRow("SELECT assets FROM profiles WHERE student_id = 's1'").Scan(&studentAssets); err != nil {
		t.Fatalf("read student assets: %v", err)
	}
	if studentAssets != 300 {
		t.Errorf("assets after duplicate = %d, want 300 (single credit)", studentAssets)
	}

	// A new day is a fresh entry.
	entry.ID = "w3"
	entry.Date = "2026-03-03"
	if err := store.RecordEntry(ctx, entry, ""); err != nil {
		t.Fatalf("next-day RecordEntry: %v", err)
	}
}
