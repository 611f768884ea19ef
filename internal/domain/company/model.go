package company

import (
	"errors"
	"strings"
	"time"
)

// SeedCapital is the starting balance granted to every newly founded company.
const SeedCapital = 10000

// MaxNameLength bounds user-supplied company names.
const MaxNameLength = 100

// Domain errors
var (
	ErrEmptyName      = errors.New("company name cannot be empty")
	ErrEmptyChairman  = errors.New("chairman ID cannot be empty")
	ErrNegativeAssets = errors.New("company assets cannot be negative")
	ErrNegativeCredit = errors.New("credit amount cannot be negative")
)

// Company is a group entity students found or join, pooling a shared balance.
// Companies are never deleted.
type Company struct {
	ID         string
	Name       string
	ChairmanID string
	Assets     int
	CreatedAt  time.Time
}

// Validate checks if the Company has valid data.
// PRE: Company struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Company) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > MaxNameLength {
		return errors.New("company name cannot exceed 100 characters")
	}
	if strings.TrimSpace(c.ChairmanID) == "" {
		return ErrEmptyChairman
	}
	if c.Assets < 0 {
		return ErrNegativeAssets
	}
	return nil
}

// Credit adds a non-negative amount to the pooled balance.
// PRE: amount >= 0
// POST: Assets increased by amount
func (c *Company) Credit(amount int) error {
	if amount < 0 {
		return ErrNegativeCredit
	}
	c.Assets += amount
	return nil
}
