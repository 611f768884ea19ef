package company

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	companyDomain "bafs/internal/domain/company"
)

const timeFormat = "2006-01-02T15:04:05.999999999Z07:00"

const companyColumns = "id, name, chairman_id, assets, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new CompanyStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Company by its ID.
// PRE: id is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (companyDomain.Company, error) {
	query := "SELECT " + companyColumns + " FROM companies WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanCompany(row.Scan)
	if err == sql.ErrNoRows {
		return companyDomain.Company{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return entity, err
}

// Save persists a Company to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity companyDomain.Company) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO companies (` + companyColumns + `)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			chairman_id=excluded.chairman_id,
			assets=excluded.assets`

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.ChairmanID,
		entity.Assets,
		entity.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// List retrieves all companies, newest first.
// POST: Returns all entities
func (s *SQLiteStore) List(ctx context.Context) ([]companyDomain.Company, error) {
	query := "SELECT " + companyColumns + " FROM companies ORDER BY created_at DESC"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []companyDomain.Company
	for rows.Next() {
		entity, err := scanCompany(rows.Scan)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, rows.Err()
}

// CreateWithFounder inserts the company and links the founder in one transaction.
// PRE: entity has been validated; the founder profile exists
// POST: Company row exists and the founder references it, or neither write happened
func (s *SQLiteStore) CreateWithFounder(ctx context.Context, entity companyDomain.Company, founderTitle string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO companies ("+companyColumns+") VALUES (?, ?, ?, ?, ?)",
		entity.ID, entity.Name, entity.ChairmanID, entity.Assets, entity.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE profiles SET company_id = ?, job_title = ? WHERE student_id = ?",
		entity.ID, founderTitle, entity.ChairmanID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("founder profile not found: %s", entity.ChairmanID)
	}

	return tx.Commit()
}

// LinkMember points a profile at the company and sets its job title.
// PRE: companyID and studentID are non-empty
// POST: Profile references the company, or ErrNotFound if the company is missing
func (s *SQLiteStore) LinkMember(ctx context.Context, companyID, studentID, title string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM companies WHERE id = ?", companyID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, companyID)
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE profiles SET company_id = ?, job_title = ? WHERE student_id = ?",
		companyID, title, studentID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("profile not found: %s", studentID)
	}

	return tx.Commit()
}

// scanCompany scans a companies row into a domain Company.
func scanCompany(scan func(dest ...interface{}) error) (companyDomain.Company, error) {
	var entity companyDomain.Company
	var createdAt string

	err := scan(
		&entity.ID,
		&entity.Name,
		&entity.ChairmanID,
		&entity.Assets,
		&createdAt,
	)
	if err != nil {
		return companyDomain.Company{}, err
	}

	if t, err := time.Parse(timeFormat, createdAt); err == nil {
		entity.CreatedAt = t
	}
	return entity, nil
}
