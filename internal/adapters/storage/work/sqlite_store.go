package work

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domain "bafs/internal/domain/work"
)

const timeFormat = "2006-01-02T15:04:05.999999999Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new WorkStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByStudentAndDate retrieves a student's work entry for a given day.
// PRE: studentID and date are non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByStudentAndDate(ctx context.Context, studentID, date string) (domain.Entry, error) {
	query := "SELECT id, student_id, date, wage, created_at FROM work_entries WHERE student_id = ? AND date = ?"
	row := s.db.QueryRowContext(ctx, query, studentID, date)

	entity, err := scanEntry(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Entry{}, fmt.Errorf("%w: %s on %s", ErrNotFound, studentID, date)
	}
	return entity, err
}

// ListByStudent retrieves a student's work entries, newest first.
// PRE: studentID is non-empty, limit > 0
// POST: Returns up to limit entities
func (s *SQLiteStore) ListByStudent(ctx context.Context, studentID string, limit int) ([]domain.Entry, error) {
	query := "SELECT id, student_id, date, wage, created_at FROM work_entries WHERE student_id = ? ORDER BY date DESC LIMIT ?"
	rows, err := s.db.QueryContext(ctx, query, studentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []domain.Entry
	for rows.Next() {
		entity, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, rows.Err()
}

// RecordEntry inserts the entry and credits the wage in one transaction.
// Balance updates are atomic increments; a duplicate day fails the
// uniqueness check and credits nothing.
// PRE: entry has been validated
// POST: Entry row exists and balances are credited, or nothing changed
func (s *SQLiteStore) RecordEntry(ctx context.Context, entry domain.Entry, companyID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var worked int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM work_entries WHERE student_id = ? AND date = ?",
		entry.StudentID, entry.Date,
	).Scan(&worked)
	if err != nil {
		return err
	}
	if worked > 0 {
		return ErrDuplicateEntry
	}

	// UNIQUE (student_id, date) backs this up under races.
	_, err = tx.ExecContext(ctx,
		"INSERT INTO work_entries (id, student_id, date, wage, created_at) VALUES (?, ?, ?, ?, ?)",
		entry.ID, entry.StudentID, entry.Date, entry.Wage, entry.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDuplicateEntry, err)
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE profiles SET assets = assets + ? WHERE student_id = ?",
		entry.Wage, entry.StudentID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("profile not found: %s", entry.StudentID)
	}

	if companyID != "" {
		if _, err := tx.ExecContext(ctx,
			"UPDATE companies SET assets = assets + ? WHERE id = ?",
			entry.Wage, companyID,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// scanEntry scans a work_entries row into a domain Entry.
func scanEntry(scan func(dest ...interface{}) error) (domain.Entry, error) {
	var entity domain.Entry
	var createdAt string

	err := scan(&entity.ID, &entity.StudentID, &entity.Date, &entity.Wage, &createdAt)
	if err != nil {
		return domain.Entry{}, err
	}
	if t, err := time.Parse(timeFormat, createdAt); err == nil {
		entity.CreatedAt = t
	}
	return entity, nil
}
