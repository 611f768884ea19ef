package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	profileStore "bafs/internal/adapters/storage/profile"
	"bafs/internal/domain/profile"
)

// ProfileStoreForCreate defines the store interface needed by CreateProfile.
type ProfileStoreForCreate interface {
	GetByStudentID(ctx context.Context, studentID string) (profile.Profile, error)
	Save(ctx context.Context, p profile.Profile) error
	Count(ctx context.Context) (int, error)
}

// CreateProfileInput carries input for the orchestrator.
type CreateProfileInput struct {
	StudentID string
	Name      string
	Password  string
	Role      string
	Assets    int // starting balance, usually zero
}

// CreateProfileDeps holds dependencies for CreateProfile.
type CreateProfileDeps struct {
	ProfileStore ProfileStoreForCreate
}

var ErrStudentIDTaken = errors.New("a profile with this student ID already exists")

// ExecuteCreateProfile coordinates profile creation.
// PRE: Valid student ID, name, password >= 8 chars, valid role
// POST: Profile created with hashed password
// INVARIANT: Student ID must be unique
func ExecuteCreateProfile(ctx context.Context, input CreateProfileInput, deps CreateProfileDeps) (string, error) {
	if input.StudentID == "" {
		return "", profile.ErrEmptyStudentID
	}
	if input.Password == "" {
		return "", profile.ErrEmptyPassword
	}

	// Only a definite not-found clears the ID. Save is an upsert, so
	// treating a transient read failure as available could overwrite an
	// existing profile's balance and role.
	_, err := deps.ProfileStore.GetByStudentID(ctx, input.StudentID)
	switch {
	case err == nil:
		return "", ErrStudentIDTaken
	case !errors.Is(err, profileStore.ErrNotFound):
		return "", err
	}

	p := profile.Profile{
		StudentID: input.StudentID,
		Name:      input.Name,
		Role:      input.Role,
		Assets:    input.Assets,
		JobTitle:  profile.TitleFreelancer,
		CreatedAt: time.Now(),
	}

	// Validate domain rules
	if err := p.Validate(); err != nil {
		return "", err
	}

	// Set password (handles hashing and length validation)
	if err := p.SetPassword(input.Password); err != nil {
		return "", err
	}

	if err := deps.ProfileStore.Save(ctx, p); err != nil {
		return "", err
	}

	slog.Info("auth_event", "event", "profile_created", "student_id", input.StudentID, "role", input.Role)

	return p.StudentID, nil
}

// ExecuteSeedAdmin creates a default admin profile if no profiles exist.
// PRE: Database is initialized
// POST: Admin profile created if count == 0
func ExecuteSeedAdmin(ctx context.Context, deps CreateProfileDeps, studentID, password string) error {
	count, err := deps.ProfileStore.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // Profiles already exist, skip seeding
	}

	_, err = ExecuteCreateProfile(ctx, CreateProfileInput{
		StudentID: studentID,
		Name:      "Administrator",
		Password:  password,
		Role:      profile.RoleAdmin,
	}, deps)
	if err != nil {
		return err
	}

	slog.Info("auth_event", "event", "admin_seeded", "student_id", studentID)
	return nil
}
