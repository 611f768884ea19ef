package profile_test

import (
	"testing"
	"time"

	"bafs/internal/domain/profile"
)

// TestProfile_Validate tests validation of Profile.
func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		profile profile.Profile
		wantErr bool
	}{
		{
			name: "valid student",
			profile: profile.Profile{
				StudentID: "s23001", Name: "Chan Tai Man", Role: profile.RoleStudent,
				Assets: 100, CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "valid teacher with no assets",
			profile: profile.Profile{
				StudentID: "t001", Name: "Ms. Wong", Role: profile.RoleTeacher,
			},
			wantErr: false,
		},
		{
			name:    "empty student ID",
			profile: profile.Profile{Name: "Chan Tai Man", Role: profile.RoleStudent},
			wantErr: true,
		},
		{
			name:    "empty name",
			profile: profile.Profile{StudentID: "s23001", Role: profile.RoleStudent},
			wantErr: true,
		},
		{
			name:    "invalid role",
			profile: profile.Profile{StudentID: "s23001", Name: "Chan Tai Man", Role: "principal"},
			wantErr: true,
		},
		{
			name:    "negative assets",
			profile: profile.Profile{StudentID: "s23001", Name: "Chan Tai Man", Role: profile.RoleStudent, Assets: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestProfile_SetCheckPassword tests bcrypt hashing and verification.
func TestProfile_SetCheckPassword(t *testing.T) {
	p := profile.Profile{StudentID: "s23001", Name: "Chan Tai Man", Role: profile.RoleStudent}

	if err := p.SetPassword(""); err != profile.ErrEmptyPassword {
		t.Errorf("expected ErrEmptyPassword, got %v", err)
	}
	if err := p.SetPassword("short"); err != profile.ErrPasswordTooShort {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}

	if err := p.SetPassword("correct horse battery"); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}
	if p.PasswordHash == "correct horse battery" {
		t.Error("password stored in plaintext")
	}
	if err := p.CheckPassword("correct horse battery"); err != nil {
		t.Errorf("CheckPassword rejected correct password: %v", err)
	}
	if err := p.CheckPassword("Correct horse battery"); err != profile.ErrWrongPassword {
		t.Errorf("expected ErrWrongPassword for case mismatch, got %v", err)
	}
	if err := p.CheckPassword("wrong"); err != profile.ErrWrongPassword {
		t.Errorf("expected ErrWrongPassword, got %v", err)
	}
}

// TestProfile_CheckPassword_EmptyHash rejects login before a password is set.
func TestProfile_CheckPassword_EmptyHash(t *testing.T) {
	p := profile.Profile{StudentID: "s23001"}
	if err := p.CheckPassword("anything"); err != profile.ErrWrongPassword {
		t.Errorf("expected ErrWrongPassword, got %v", err)
	}
}

// TestProfile_Credit tests balance crediting.
func TestProfile_Credit(t *testing.T) {
	p := profile.Profile{StudentID: "s1", Name: "A", Role: profile.RoleStudent, Assets: 100}

	if err := p.Credit(500); err != nil {
		t.Fatalf("Credit failed: %v", err)
	}
	if p.Assets != 600 {
		t.Errorf("Assets = %d, want 600", p.Assets)
	}
	if err := p.Credit(0); err != nil {
		t.Errorf("Credit(0) should be allowed: %v", err)
	}
	if err := p.Credit(-1); err != profile.ErrNegativeCredit {
		t.Errorf("expected ErrNegativeCredit, got %v", err)
	}
	if p.Assets != 600 {
		t.Errorf("failed credit must not change balance, Assets = %d", p.Assets)
	}
}

// TestProfile_Lockout tests the failed-login lockout behavior.
func TestProfile_Lockout(t *testing.T) {
	p := profile.Profile{StudentID: "s1"}

	for i := 0; i < 4; i++ {
		p.RecordFailedLogin()
	}
	if p.IsLocked() {
		t.Error("profile should not be locked after 4 failures")
	}
	p.RecordFailedLogin()
	if !p.IsLocked() {
		t.Error("profile should be locked after 5 failures")
	}

	p.ResetFailedLogins()
	if p.IsLocked() || p.FailedLogins != 0 {
		t.Error("ResetFailedLogins should clear the lock")
	}
}

// TestProfile_Roles tests role predicates.
func TestProfile_Roles(t *testing.T) {
	teacher := profile.Profile{Role: profile.RoleTeacher}
	admin := profile.Profile{Role: profile.RoleAdmin}
	student := profile.Profile{Role: profile.RoleStudent}

	if !teacher.IsTeacherOrAdmin() || !admin.IsTeacherOrAdmin() {
		t.Error("teacher and admin should pass IsTeacherOrAdmin")
	}
	if student.IsTeacherOrAdmin() {
		t.Error("student should not pass IsTeacherOrAdmin")
	}
	if !student.IsStudent() || teacher.IsStudent() {
		t.Error("IsStudent mismatch")
	}
}

// TestProfile_HasCompany tests company membership predicate.
func TestProfile_HasCompany(t *testing.T) {
	p := profile.Profile{}
	if p.HasCompany() {
		t.Error("empty CompanyID should mean no company")
	}
	p.CompanyID = "c-1"
	if !p.HasCompany() {
		t.Error("non-empty CompanyID should mean company membership")
	}
}
