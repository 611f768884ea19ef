package work

import (
	"errors"
	"time"
)

// DefaultWage is the asset amount credited for one completed work action.
const DefaultWage = 200

// Domain errors
var (
	ErrEmptyStudent = errors.New("student ID cannot be empty")
	ErrInvalidWage  = errors.New("wage must be positive")
	ErrInvalidDate  = errors.New("date must be in YYYY-MM-DD format")
)

// Entry records one completed "do work" action. A student may work at most
// once per calendar day; the storage layer enforces the (StudentID, Date)
// uniqueness.
type Entry struct {
	ID        string
	StudentID string
	Date      string // YYYY-MM-DD
	Wage      int
	CreatedAt time.Time
}

// Validate checks if the Entry has valid data.
// PRE: Entry struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Entry) Validate() error {
	if e.StudentID == "" {
		return ErrEmptyStudent
	}
	if e.Wage <= 0 {
		return ErrInvalidWage
	}
	if _, err := time.Parse("2006-01-02", e.Date); err != nil {
		return ErrInvalidDate
	}
	return nil
}
