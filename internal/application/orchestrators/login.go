package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"bafs/internal/domain/profile"
)

// ProfileStoreForLogin defines the store interface needed by Login.
type ProfileStoreForLogin interface {
	GetByStudentID(ctx context.Context, studentID string) (profile.Profile, error)
	Save(ctx context.Context, p profile.Profile) error
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	StudentID string
	Password  string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	StudentID string
	Name      string
	Role      string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	ProfileStore ProfileStoreForLogin
}

var (
	ErrInvalidCredentials = errors.New("invalid student ID or password")
	ErrAccountLocked      = errors.New("account is locked due to too many failed attempts")
)

// ExecuteLogin validates credentials and returns profile info for session creation.
// An unknown student ID and a wrong password both come back as
// ErrInvalidCredentials so the login form cannot be used to probe which
// IDs exist; the log records the real reason.
// PRE: Valid student ID and password provided
// POST: Returns profile info on success, records failed login on failure
// INVARIANT: Account must not be locked
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.StudentID == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	p, err := deps.ProfileStore.GetByStudentID(ctx, input.StudentID)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "student_id", input.StudentID, "reason", "not_found")
		return LoginResult{}, ErrInvalidCredentials
	}

	// Check if account is locked
	if p.IsLocked() {
		slog.Info("auth_event", "event", "login_blocked", "student_id", input.StudentID, "reason", "locked")
		return LoginResult{}, ErrAccountLocked
	}

	// Verify password
	if err := p.CheckPassword(input.Password); err != nil {
		p.RecordFailedLogin()
		_ = deps.ProfileStore.Save(ctx, p)
		slog.Info("auth_event", "event", "login_failed", "student_id", input.StudentID, "reason", "wrong_password", "failed_logins", p.FailedLogins)
		return LoginResult{}, ErrInvalidCredentials
	}

	// Successful login resets failed attempts
	p.ResetFailedLogins()
	_ = deps.ProfileStore.Save(ctx, p)

	slog.Info("auth_event", "event", "login_success", "student_id", input.StudentID, "role", p.Role)

	return LoginResult{
		StudentID: p.StudentID,
		Name:      p.Name,
		Role:      p.Role,
	}, nil
}
