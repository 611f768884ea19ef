package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bafs/internal/domain/audit"
	companyDomain "bafs/internal/domain/company"
	"bafs/internal/domain/profile"
)

// CompanyStoreForCreate defines the store interface needed by CreateCompany.
type CompanyStoreForCreate interface {
	CreateWithFounder(ctx context.Context, c companyDomain.Company, founderTitle string) error
}

// CreateCompanyInput carries input for the create-company orchestrator.
type CreateCompanyInput struct {
	StudentID string
	Name      string
}

// CreateCompanyDeps holds dependencies for CreateCompany.
type CreateCompanyDeps struct {
	CompanyStore CompanyStoreForCreate
	ProfileStore ProfileStoreForSubmit
	AuditStore   AuditStoreForOrchestrator // optional: nil skips audit logging
	GenerateID   func() string
	Now          func() time.Time
}

var ErrAlreadyInCompany = errors.New("student already belongs to a company")

// ExecuteCreateCompany founds a company with the student as Chairman.
// Validation runs before any write, so a rejected name leaves no company
// row and no profile change behind.
// PRE: StudentID identifies a student without a company; Name is non-blank
// POST: Company exists with seed capital and the founder's profile points
// at it with the Chairman title, or nothing was written
func ExecuteCreateCompany(ctx context.Context, input CreateCompanyInput, deps CreateCompanyDeps) (companyDomain.Company, error) {
	p, err := deps.ProfileStore.GetByStudentID(ctx, input.StudentID)
	if err != nil {
		return companyDomain.Company{}, err
	}
	if p.HasCompany() {
		return companyDomain.Company{}, ErrAlreadyInCompany
	}

	c := companyDomain.Company{
		ID:         deps.GenerateID(),
		Name:       input.Name,
		ChairmanID: p.StudentID,
		Assets:     companyDomain.SeedCapital,
		CreatedAt:  deps.Now(),
	}
	if err := c.Validate(); err != nil {
		return companyDomain.Company{}, err
	}

	if err := deps.CompanyStore.CreateWithFounder(ctx, c, profile.TitleChairman); err != nil {
		return companyDomain.Company{}, err
	}

	slog.Info("event", "action", "company_created", "company_id", c.ID, "name", c.Name, "chairman_id", p.StudentID)

	if deps.AuditStore != nil {
		e := audit.NewEvent(deps.GenerateID(), p.StudentID, p.Role, audit.CategoryEconomy, audit.ActionCreate).
			WithResource("company", c.ID).
			WithDescription("company founded: " + c.Name)
		_ = deps.AuditStore.Save(ctx, e)
	}

	return c, nil
}
