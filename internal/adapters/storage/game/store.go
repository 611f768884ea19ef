package game

import (
	"context"
	"errors"

	domain "bafs/internal/domain/game"
)

// Store errors
var (
	// ErrNotFound is returned when no game matches the lookup.
	ErrNotFound = errors.New("game not found")
	// ErrNoGame is returned by Latest when no game has been published yet.
	ErrNoGame = errors.New("no game published")
	// ErrDuplicateAttempt is returned when a student has already answered a game.
	ErrDuplicateAttempt = errors.New("game already answered by this student")
)

// Store persists daily games and their attempts.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Game, error)
	Save(ctx context.Context, value domain.Game) error
	// Latest returns the most recently dated game regardless of the current
	// calendar date; a newly published game supersedes older ones for all
	// students immediately.
	Latest(ctx context.Context) (domain.Game, error)
	List(ctx context.Context, limit int) ([]domain.Game, error)

	// GetAttempt returns a student's attempt for a game, or ErrNotFound.
	GetAttempt(ctx context.Context, studentID, gameID string) (domain.Attempt, error)
	// RecordAttempt inserts the attempt and, when it is correct, credits
	// reward to the student's balance and to companyID (if non-empty) — all
	// in a single transaction with atomic increments. A second attempt for
	// the same (student, game) pair fails with ErrDuplicateAttempt and
	// credits nothing.
	RecordAttempt(ctx context.Context, attempt domain.Attempt, reward int, companyID string) error
}
