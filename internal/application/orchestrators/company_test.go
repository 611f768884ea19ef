package orchestrators

import (
	"context"
	"errors"
	"testing"

	companyStore "bafs/internal/adapters/storage/company"
	companyDomain "bafs/internal/domain/company"
	"bafs/internal/domain/profile"
)

// mockCompanyStore implements the company store interfaces with the same
// all-or-nothing contract as the SQLite store.
type mockCompanyStore struct {
	companies map[string]companyDomain.Company
	profiles  *mockProfileStore
}

func newMockCompanyStore(profiles *mockProfileStore) *mockCompanyStore {
	return &mockCompanyStore{companies: make(map[string]companyDomain.Company), profiles: profiles}
}

// GetByID returns a seeded company.
// PRE: id is non-empty
// POST: returns the company or ErrNotFound
func (m *mockCompanyStore) GetByID(_ context.Context, id string) (companyDomain.Company, error) {
	c, ok := m.companies[id]
	if !ok {
		return companyDomain.Company{}, companyStore.ErrNotFound
	}
	return c, nil
}

// CreateWithFounder inserts the company and links the founder in one step.
// PRE: the founder profile exists
// POST: company stored and founder profile updated, or neither
func (m *mockCompanyStore) CreateWithFounder(_ context.Context, c companyDomain.Company, founderTitle string) error {
	p, ok := m.profiles.profiles[c.ChairmanID]
	if !ok {
		return errors.New("founder profile not found")
	}
	m.companies[c.ID] = c
	p.CompanyID = c.ID
	p.JobTitle = founderTitle
	m.profiles.profiles[p.StudentID] = p
	return nil
}

// LinkMember points the profile at the company with the given title.
// PRE: company and profile exist
// POST: profile updated or ErrNotFound
func (m *mockCompanyStore) LinkMember(_ context.Context, companyID, studentID, title string) error {
	if _, ok := m.companies[companyID]; !ok {
		return companyStore.ErrNotFound
	}
	p, ok := m.profiles.profiles[studentID]
	if !ok {
		return errors.New("profile not found")
	}
	p.CompanyID = companyID
	p.JobTitle = title
	m.profiles.profiles[studentID] = p
	return nil
}

// TestExecuteCreateCompany_Valid verifies the founder becomes Chairman of a
// company with seed capital.
func TestExecuteCreateCompany_Valid(t *testing.T) {
	profiles := newMockProfileStore()
	seedStudent(t, profiles, "s23001", "correct horse")
	companies := newMockCompanyStore(profiles)

	c, err := ExecuteCreateCompany(context.Background(), CreateCompanyInput{
		StudentID: "s23001",
		Name:      "Acme Trading",
	}, CreateCompanyDeps{
		CompanyStore: companies,
		ProfileStore: profiles,
		GenerateID:   fixedID,
		Now:          fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Assets != companyDomain.SeedCapital {
		t.Errorf("Assets = %d, want %d", c.Assets, companyDomain.SeedCapital)
	}
	if c.ChairmanID != "s23001" {
		t.Errorf("ChairmanID = %q, want s23001", c.ChairmanID)
	}

	p := profiles.profiles["s23001"]
	if p.CompanyID != c.ID {
		t.Errorf("CompanyID = %q, want %q", p.CompanyID, c.ID)
	}
	if p.JobTitle != profile.TitleChairman {
		t.Errorf("JobTitle = %q, want %q", p.JobTitle, profile.TitleChairman)
	}
}

// TestExecuteCreateCompany_BlankNameNoWrites verifies a rejected name leaves
// the company table and the profile untouched.
func TestExecuteCreateCompany_BlankNameNoWrites(t *testing.T) {
	profiles := newMockProfileStore()
	seedStudent(t, profiles, "s23001", "correct horse")
	companies := newMockCompanyStore(profiles)

	_, err := ExecuteCreateCompany(context.Background(), CreateCompanyInput{
		StudentID: "s23001",
		Name:      "   ",
	}, CreateCompanyDeps{
		CompanyStore: companies,
		ProfileStore: profiles,
		GenerateID:   fixedID,
		Now:          fixedNow,
	})
	if !errors.Is(err, companyDomain.ErrEmptyName) {
		t.Fatalf("err = %v, want ErrEmptyName", err)
	}
	if len(companies.companies) != 0 {
		t.Error("company was written despite validation failure")
	}
	if p := profiles.profiles["s23001"]; p.CompanyID != "" {
		t.Error("profile was linked despite validation failure")
	}
}

// TestExecuteCreateCompany_AlreadyInCompany verifies a second founding is rejected.
func TestExecuteCreateCompany_AlreadyInCompany(t *testing.T) {
	profiles := newMockProfileStore()
	p := seedStudent(t, profiles, "s23001", "correct horse")
	p.CompanyID = "existing"
	profiles.profiles[p.StudentID] = p
	companies := newMockCompanyStore(profiles)

	_, err := ExecuteCreateCompany(context.Background(), CreateCompanyInput{
		StudentID: "s23001",
		Name:      "Second Venture",
	}, CreateCompanyDeps{
		CompanyStore: companies,
		ProfileStore: profiles,
		GenerateID:   fixedID,
		Now:          fixedNow,
	})
	if !errors.Is(err, ErrAlreadyInCompany) {
		t.Fatalf("err = %v, want ErrAlreadyInCompany", err)
	}
}

// TestExecuteJoinCompany_AssignsManager verifies joining sets the Manager title.
func TestExecuteJoinCompany_AssignsManager(t *testing.T) {
	profiles := newMockProfileStore()
	seedStudent(t, profiles, "s23001", "correct horse")
	companies := newMockCompanyStore(profiles)
	companies.companies["c1"] = companyDomain.Company{ID: "c1", Name: "Acme", ChairmanID: "other", Assets: companyDomain.SeedCapital}

	c, err := ExecuteJoinCompany(context.Background(), JoinCompanyInput{
		StudentID: "s23001",
		CompanyID: "c1",
	}, JoinCompanyDeps{CompanyStore: companies, ProfileStore: profiles})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID != "c1" {
		t.Errorf("company ID = %q, want c1", c.ID)
	}

	p := profiles.profiles["s23001"]
	if p.CompanyID != "c1" || p.JobTitle != profile.TitleManager {
		t.Errorf("profile = %q/%q, want c1/Manager", p.CompanyID, p.JobTitle)
	}
}

// TestExecuteJoinCompany_ChairmanSwitches verifies a chairman who joins
// another company becomes a plain Manager there.
func TestExecuteJoinCompany_ChairmanSwitches(t *testing.T) {
	profiles := newMockProfileStore()
	p := seedStudent(t, profiles, "s23001", "correct horse")
	p.CompanyID = "c1"
	p.JobTitle = profile.TitleChairman
	profiles.profiles[p.StudentID] = p

	companies := newMockCompanyStore(profiles)
	companies.companies["c1"] = companyDomain.Company{ID: "c1", Name: "First", ChairmanID: "s23001", Assets: companyDomain.SeedCapital}
	companies.companies["c2"] = companyDomain.Company{ID: "c2", Name: "Second", ChairmanID: "other", Assets: companyDomain.SeedCapital}

	if _, err := ExecuteJoinCompany(context.Background(), JoinCompanyInput{
		StudentID: "s23001",
		CompanyID: "c2",
	}, JoinCompanyDeps{CompanyStore: companies, ProfileStore: profiles}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated := profiles.profiles["s23001"]
	if updated.CompanyID != "c2" || updated.JobTitle != profile.TitleManager {
		t.Errorf("profile = %q/%q, want c2/Manager", updated.CompanyID, updated.JobTitle)
	}
	// The abandoned company still exists with its chairman record.
	if _, ok := companies.companies["c1"]; !ok {
		t.Error("abandoned company was deleted")
	}
}

// TestExecuteJoinCompany_UnknownCompany verifies joining a missing company fails.
func TestExecuteJoinCompany_UnknownCompany(t *testing.T) {
	profiles := newMockProfileStore()
	seedStudent(t, profiles, "s23001", "correct horse")
	companies := newMockCompanyStore(profiles)

	_, err := ExecuteJoinCompany(context.Background(), JoinCompanyInput{
		StudentID: "s23001",
		CompanyID: "ghost",
	}, JoinCompanyDeps{CompanyStore: companies, ProfileStore: profiles})
	if !errors.Is(err, companyStore.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
