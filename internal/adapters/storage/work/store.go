package work

import (
	"context"
	"errors"

	domain "bafs/internal/domain/work"
)

// Store errors
var (
	// ErrNotFound is returned when no work entry matches the lookup.
	ErrNotFound = errors.New("work entry not found")
	// ErrDuplicateEntry is returned when a student has already worked that day.
	ErrDuplicateEntry = errors.New("student already worked today")
)

// Store persists work entries.
type Store interface {
	GetByStudentAndDate(ctx context.Context, studentID, date string) (domain.Entry, error)
	ListByStudent(ctx context.Context, studentID string, limit int) ([]domain.Entry, error)
	// RecordEntry inserts the entry and credits the wage to the student's
	// balance and to companyID (if non-empty) in a single transaction. A
	// second entry for the same (student, date) pair fails with
	// ErrDuplicateEntry and credits nothing.
	RecordEntry(ctx context.Context, entry domain.Entry, companyID string) error
}
