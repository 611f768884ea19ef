package orchestrators

import (
	"context"
	"log/slog"

	companyDomain "bafs/internal/domain/company"
	"bafs/internal/domain/profile"
)

// CompanyStoreForJoin defines the store interface needed by JoinCompany.
type CompanyStoreForJoin interface {
	GetByID(ctx context.Context, id string) (companyDomain.Company, error)
	LinkMember(ctx context.Context, companyID, studentID, title string) error
}

// JoinCompanyInput carries input for the join-company orchestrator.
type JoinCompanyInput struct {
	StudentID string
	CompanyID string
}

// JoinCompanyDeps holds dependencies for JoinCompany.
type JoinCompanyDeps struct {
	CompanyStore CompanyStoreForJoin
	ProfileStore ProfileStoreForSubmit
}

// ExecuteJoinCompany makes the student a Manager of an existing company.
// Joining always assigns the Manager title, even when the student chaired
// another company before; the abandoned company keeps its row.
// PRE: StudentID and CompanyID identify existing records
// POST: The profile points at the company with the Manager title
func ExecuteJoinCompany(ctx context.Context, input JoinCompanyInput, deps JoinCompanyDeps) (companyDomain.Company, error) {
	p, err := deps.ProfileStore.GetByStudentID(ctx, input.StudentID)
	if err != nil {
		return companyDomain.Company{}, err
	}

	c, err := deps.CompanyStore.GetByID(ctx, input.CompanyID)
	if err != nil {
		return companyDomain.Company{}, err
	}

	if err := deps.CompanyStore.LinkMember(ctx, c.ID, p.StudentID, profile.TitleManager); err != nil {
		return companyDomain.Company{}, err
	}

	slog.Info("event", "action", "company_joined", "company_id", c.ID, "student_id", p.StudentID)
	return c, nil
}
