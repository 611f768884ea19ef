package material

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domain "bafs/internal/domain/material"
)

const timeFormat = "2006-01-02T15:04:05.999999999Z07:00"

const materialColumns = "id, title, type, url, description, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new MaterialStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Material by its ID.
// PRE: id is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Material, error) {
	query := "SELECT " + materialColumns + " FROM materials WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanMaterial(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Material{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return entity, err
}

// Save persists a Material to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Material) error {
	query := `INSERT INTO materials (` + materialColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title,
			type=excluded.type,
			url=excluded.url,
			description=excluded.description`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Title,
		entity.Type,
		entity.URL,
		entity.Description,
		entity.CreatedAt.Format(timeFormat),
	)
	return err
}

// List retrieves all materials, newest first.
// POST: Returns all entities
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Material, error) {
	query := "SELECT " + materialColumns + " FROM materials ORDER BY created_at DESC, id DESC"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []domain.Material
	for rows.Next() {
		entity, err := scanMaterial(rows.Scan)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, rows.Err()
}

// scanMaterial scans a materials row into a domain Material.
func scanMaterial(scan func(dest ...interface{}) error) (domain.Material, error) {
	var entity domain.Material
	var createdAt string

	err := scan(&entity.ID, &entity.Title, &entity.Type, &entity.URL, &entity.Description, &createdAt)
	if err != nil {
		return domain.Material{}, err
	}
	if t, err := time.Parse(timeFormat, createdAt); err == nil {
		entity.CreatedAt = t
	}
	return entity, nil
}
