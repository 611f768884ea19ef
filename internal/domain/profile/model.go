package profile

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength     = 100
	MaxJobTitleLength = 50
)

// Role constants
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Job title labels assigned by company membership changes.
const (
	TitleChairman   = "Chairman"
	TitleManager    = "Manager"
	TitleFreelancer = "Freelancer"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleAdmin, RoleTeacher, RoleStudent}

// Domain errors
var (
	ErrEmptyStudentID   = errors.New("student ID cannot be empty")
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrInvalidRole      = errors.New("role must be one of: admin, teacher, student")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrWrongPassword    = errors.New("incorrect password")
	ErrNegativeAssets   = errors.New("assets cannot be negative")
	ErrNegativeCredit   = errors.New("credit amount cannot be negative")
)

// Profile holds state for a platform user: identity, balance, and company role.
// StudentID is the natural key students log in with (e.g. "s23001").
type Profile struct {
	StudentID    string
	Name         string
	PasswordHash string
	Role         string
	Assets       int
	CompanyID    string // empty when the student belongs to no company
	JobTitle     string
	CreatedAt    time.Time
	FailedLogins int
	LockedUntil  time.Time
}

// Validate checks if the Profile has valid data.
// PRE: Profile struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.StudentID) == "" {
		return ErrEmptyStudentID
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if len(p.Name) > MaxNameLength {
		return errors.New("name cannot exceed 100 characters")
	}
	if len(p.JobTitle) > MaxJobTitleLength {
		return errors.New("job title cannot exceed 50 characters")
	}
	if !isValidRole(p.Role) {
		return ErrInvalidRole
	}
	if p.Assets < 0 {
		return ErrNegativeAssets
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt with cost 12.
// PRE: plaintext is non-empty and >= 8 characters
// POST: PasswordHash is set to bcrypt hash
func (p *Profile) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	if len(plaintext) < 8 {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}
	p.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// bcrypt's comparison is constant-time.
// PRE: PasswordHash is set
// INVARIANT: Profile fields are not mutated
func (p *Profile) CheckPassword(plaintext string) error {
	if p.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// Credit adds a non-negative amount to the profile's asset balance.
// PRE: amount >= 0
// POST: Assets increased by amount
func (p *Profile) Credit(amount int) error {
	if amount < 0 {
		return ErrNegativeCredit
	}
	p.Assets += amount
	return nil
}

// HasCompany returns true if the profile belongs to a company.
// INVARIANT: Profile fields are not mutated
func (p *Profile) HasCompany() bool {
	return p.CompanyID != ""
}

// IsLocked returns true if the profile is currently locked out.
// INVARIANT: Profile fields are not mutated
func (p *Profile) IsLocked() bool {
	if p.LockedUntil.IsZero() {
		return false
	}
	return time.Now().Before(p.LockedUntil)
}

// RecordFailedLogin increments the failed login counter and locks the profile after 5 failures.
// PRE: Profile exists
// POST: FailedLogins incremented; LockedUntil set if >= 5 failures
func (p *Profile) RecordFailedLogin() {
	p.FailedLogins++
	if p.FailedLogins >= 5 {
		p.LockedUntil = time.Now().Add(15 * time.Minute)
	}
}

// ResetFailedLogins clears the failed login counter and lock.
// PRE: Profile exists
// POST: FailedLogins is 0, LockedUntil is zero
func (p *Profile) ResetFailedLogins() {
	p.FailedLogins = 0
	p.LockedUntil = time.Time{}
}

// IsTeacherOrAdmin returns true if the profile may author daily games and materials.
// INVARIANT: Profile fields are not mutated
func (p *Profile) IsTeacherOrAdmin() bool {
	return p.Role == RoleAdmin || p.Role == RoleTeacher
}

// IsStudent returns true if the profile has the student role.
// INVARIANT: Profile fields are not mutated
func (p *Profile) IsStudent() bool {
	return p.Role == RoleStudent
}

func isValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
