package game

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	domain "bafs/internal/domain/game"
)

const timeFormat = "2006-01-02T15:04:05.999999999Z07:00"

const gameColumns = "id, date, topic, reward, question_data, created_by, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new GameStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Game by its ID.
// PRE: id is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Game, error) {
	query := "SELECT " + gameColumns + " FROM daily_games WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanGame(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Game{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return entity, err
}

// Save persists a Game to the database. Games are immutable once published,
// so Save is insert-only.
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Game) error {
	questionData, err := json.Marshal(entity.Question)
	if err != nil {
		return fmt.Errorf("failed to encode question: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO daily_games ("+gameColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		entity.ID,
		entity.Date,
		entity.Topic,
		entity.Reward,
		string(questionData),
		entity.CreatedBy,
		entity.CreatedAt.Format(timeFormat),
	)
	return err
}

// Latest returns the newest game by date, then creation time, then ID.
// POST: Returns the entity or ErrNoGame
func (s *SQLiteStore) Latest(ctx context.Context) (domain.Game, error) {
	query := "SELECT " + gameColumns + " FROM daily_games ORDER BY date DESC, created_at DESC, id DESC LIMIT 1"
	row := s.db.QueryRowContext(ctx, query)

	entity, err := scanGame(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Game{}, ErrNoGame
	}
	return entity, err
}

// List retrieves games, newest first.
// PRE: limit > 0
// POST: Returns up to limit entities
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]domain.Game, error) {
	query := "SELECT " + gameColumns + " FROM daily_games ORDER BY date DESC, created_at DESC, id DESC LIMIT ?"
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []domain.Game
	for rows.Next() {
		entity, err := scanGame(rows.Scan)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, rows.Err()
}

// GetAttempt returns a student's attempt for a game.
// PRE: studentID and gameID are non-empty
// POST: Returns the attempt or ErrNotFound
func (s *SQLiteStore) GetAttempt(ctx context.Context, studentID, gameID string) (domain.Attempt, error) {
	query := "SELECT id, student_id, game_id, selected, correct, created_at FROM attempts WHERE student_id = ? AND game_id = ?"
	row := s.db.QueryRowContext(ctx, query, studentID, gameID)

	var entity domain.Attempt
	var correct int
	var createdAt string
	err := row.Scan(&entity.ID, &entity.StudentID, &entity.GameID, &entity.Selected, &correct, &createdAt)
	if err == sql.ErrNoRows {
		return domain.Attempt{}, fmt.Errorf("%w: attempt %s/%s", ErrNotFound, studentID, gameID)
	}
	if err != nil {
		return domain.Attempt{}, err
	}

	entity.Correct = correct != 0
	if t, err := time.Parse(timeFormat, createdAt); err == nil {
		entity.CreatedAt = t
	}
	return entity, nil
}

// RecordAttempt inserts the attempt and credits the reward in one transaction.
// The balance updates are atomic increments, never read-modify-write, so two
// concurrent submissions cannot lose a reward — the second one fails the
// uniqueness check and credits nothing.
// PRE: attempt fields are populated; reward >= 0
// POST: Attempt row exists and balances are credited, or nothing changed
func (s *SQLiteStore) RecordAttempt(ctx context.Context, attempt domain.Attempt, reward int, companyID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var played int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM attempts WHERE student_id = ? AND game_id = ?",
		attempt.StudentID, attempt.GameID,
	).Scan(&played)
	if err != nil {
		return err
	}
	if played > 0 {
		return ErrDuplicateAttempt
	}

	// The UNIQUE (student_id, game_id) index backs this up under races:
	// if another transaction slipped in between the check and the insert,
	// the insert fails and the whole transaction rolls back.
	_, err = tx.ExecContext(ctx,
		"INSERT INTO attempts (id, student_id, game_id, selected, correct, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		attempt.ID,
		attempt.StudentID,
		attempt.GameID,
		attempt.Selected,
		boolToInt(attempt.Correct),
		attempt.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDuplicateAttempt, err)
	}

	if attempt.Correct && reward > 0 {
		res, err := tx.ExecContext(ctx,
			"UPDATE profiles SET assets = assets + ? WHERE student_id = ?",
			reward, attempt.StudentID,
		)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("profile not found: %s", attempt.StudentID)
		}

		if companyID != "" {
			if _, err := tx.ExecContext(ctx,
				"UPDATE companies SET assets = assets + ? WHERE id = ?",
				reward, companyID,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// scanGame scans a daily_games row into a domain Game.
func scanGame(scan func(dest ...interface{}) error) (domain.Game, error) {
	var entity domain.Game
	var questionData, createdAt string

	err := scan(
		&entity.ID,
		&entity.Date,
		&entity.Topic,
		&entity.Reward,
		&questionData,
		&entity.CreatedBy,
		&createdAt,
	)
	if err != nil {
		return domain.Game{}, err
	}

	if err := json.Unmarshal([]byte(questionData), &entity.Question); err != nil {
		return domain.Game{}, fmt.Errorf("failed to decode question for game %s: %w", entity.ID, err)
	}
	if t, err := time.Parse(timeFormat, createdAt); err == nil {
		entity.CreatedAt = t
	}
	return entity, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
