package profile

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	domain "bafs/internal/domain/profile"
)

const timeFormat = "2006-01-02T15:04:05.999999999Z07:00"

const profileColumns = "student_id, name, password_hash, role, assets, company_id, job_title, created_at, failed_logins, locked_until"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new ProfileStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByStudentID retrieves a Profile by its student ID.
// PRE: studentID is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByStudentID(ctx context.Context, studentID string) (domain.Profile, error) {
	query := "SELECT " + profileColumns + " FROM profiles WHERE student_id = ?"
	row := s.db.QueryRowContext(ctx, query, studentID)

	entity, err := scanProfile(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Profile{}, fmt.Errorf("%w: %s", ErrNotFound, studentID)
	}
	return entity, err
}

// Save persists a Profile to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Profile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO profiles (` + profileColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(student_id) DO UPDATE SET
			name=excluded.name,
			password_hash=excluded.password_hash,
			role=excluded.role,
			assets=excluded.assets,
			company_id=excluded.company_id,
			job_title=excluded.job_title,
			failed_logins=excluded.failed_logins,
			locked_until=excluded.locked_until`

	_, err = tx.ExecContext(ctx, query,
		entity.StudentID,
		entity.Name,
		entity.PasswordHash,
		entity.Role,
		entity.Assets,
		nullString(entity.CompanyID),
		entity.JobTitle,
		entity.CreatedAt.Format(timeFormat),
		entity.FailedLogins,
		nullTime(entity.LockedUntil),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// List retrieves Profiles based on the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Profile, error) {
	var queryBuilder strings.Builder
	var args []interface{}
	var conds []string

	queryBuilder.WriteString("SELECT " + profileColumns + " FROM profiles")

	if filter.Role != "" {
		conds = append(conds, "role = ?")
		args = append(args, filter.Role)
	}
	if filter.CompanyID != "" {
		conds = append(conds, "company_id = ?")
		args = append(args, filter.CompanyID)
	}
	if len(conds) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY student_id")
	if filter.Limit > 0 {
		queryBuilder.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			queryBuilder.WriteString(" OFFSET ?")
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []domain.Profile
	for rows.Next() {
		entity, err := scanProfile(rows.Scan)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, rows.Err()
}

// Count returns the total number of profiles.
// POST: Returns the row count
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM profiles").Scan(&count)
	return count, err
}

// TopByAssets returns the richest profiles for the leaderboard.
// Ties are broken by student ID ascending so the order is deterministic.
// PRE: limit > 0
// POST: Returns up to limit profiles, assets descending
func (s *SQLiteStore) TopByAssets(ctx context.Context, limit int) ([]domain.Profile, error) {
	query := "SELECT " + profileColumns + ` FROM profiles
		WHERE role = 'student'
		ORDER BY assets DESC, student_id ASC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []domain.Profile
	for rows.Next() {
		entity, err := scanProfile(rows.Scan)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, rows.Err()
}

// scanProfile scans a profiles row into a domain Profile.
func scanProfile(scan func(dest ...interface{}) error) (domain.Profile, error) {
	var entity domain.Profile
	var companyID, lockedUntil sql.NullString
	var createdAt string

	err := scan(
		&entity.StudentID,
		&entity.Name,
		&entity.PasswordHash,
		&entity.Role,
		&entity.Assets,
		&companyID,
		&entity.JobTitle,
		&createdAt,
		&entity.FailedLogins,
		&lockedUntil,
	)
	if err != nil {
		return domain.Profile{}, err
	}

	entity.CompanyID = companyID.String
	if t, err := time.Parse(timeFormat, createdAt); err == nil {
		entity.CreatedAt = t
	}
	if lockedUntil.Valid {
		if t, err := time.Parse(timeFormat, lockedUntil.String); err == nil {
			entity.LockedUntil = t
		}
	}
	return entity, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(timeFormat)
}
