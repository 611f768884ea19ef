package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domain "bafs/internal/domain/audit"
)

const dateLayout = "2006-01-02T15:04:05.999999999Z07:00"

const eventColumns = "id, timestamp, category, action, severity, actor_id, actor_role, resource_id, resource_type, description, ip_address"

// SQLiteStore implements the audit Store interface using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new audit event store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists an audit event.
// PRE: event is valid
// POST: Event is persisted
func (s *SQLiteStore) Save(ctx context.Context, event domain.Event) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO audit_events ("+eventColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		event.ID, event.Timestamp.Format(dateLayout), string(event.Category), string(event.Action),
		string(event.Severity), event.ActorID, event.ActorRole,
		event.ResourceID, event.ResourceType, event.Description, event.IPAddress)
	return err
}

// List returns audit events with optional filtering.
// PRE: limit > 0
// POST: Returns events ordered by timestamp desc
func (s *SQLiteStore) List(ctx context.Context, filter Filter, limit int) ([]domain.Event, error) {
	query := "SELECT " + eventColumns + " FROM audit_events WHERE 1=1"
	args := []interface{}{}

	if filter.Category != nil {
		query += " AND category = ?"
		args = append(args, string(*filter.Category))
	}
	if filter.Action != nil {
		query += " AND action = ?"
		args = append(args, string(*filter.Action))
	}
	if filter.ActorID != nil {
		query += " AND actor_id = ?"
		args = append(args, *filter.ActorID)
	}
	if filter.FromDate != nil {
		query += " AND timestamp >= ?"
		args = append(args, *filter.FromDate)
	}
	if filter.ToDate != nil {
		query += " AND timestamp <= ?"
		args = append(args, *filter.ToDate)
	}

	query += " ORDER BY timestamp DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		event, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// GetByID retrieves a specific audit event.
// PRE: id is non-empty
// POST: Returns the event or error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Event, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM audit_events WHERE id = ?", id)
	event, err := scanEvent(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Event{}, fmt.Errorf("audit event not found: %s", id)
	}
	return event, err
}

// scanEvent scans an audit_events row into a domain Event.
func scanEvent(scan func(dest ...interface{}) error) (domain.Event, error) {
	var event domain.Event
	var timestamp string
	var category, action, severity string
	var resourceID, resourceType, description, ipAddress sql.NullString

	err := scan(
		&event.ID, &timestamp, &category, &action, &severity,
		&event.ActorID, &event.ActorRole,
		&resourceID, &resourceType, &description, &ipAddress,
	)
	if err != nil {
		return domain.Event{}, err
	}

	event.Category = domain.Category(category)
	event.Action = domain.Action(action)
	event.Severity = domain.Severity(severity)
	event.ResourceID = resourceID.String
	event.ResourceType = resourceType.String
	event.Description = description.String
	event.IPAddress = ipAddress.String
	if t, err := time.Parse(dateLayout, timestamp); err == nil {
		event.Timestamp = t
	}
	return event, nil
}
