package company

import (
	"context"
	"errors"

	companyDomain "bafs/internal/domain/company"
)

// ErrNotFound is returned when no company matches the given ID.
var ErrNotFound = errors.New("company not found")

// Store persists Company state.
type Store interface {
	GetByID(ctx context.Context, id string) (companyDomain.Company, error)
	Save(ctx context.Context, value companyDomain.Company) error
	List(ctx context.Context) ([]companyDomain.Company, error)
	// CreateWithFounder inserts the company and links the founder's profile
	// (company_id + job title) in a single transaction, so a failure on
	// either side leaves no orphaned company.
	CreateWithFounder(ctx context.Context, value companyDomain.Company, founderTitle string) error
	// LinkMember points an existing profile at the company and sets its job
	// title, in one transaction. Returns ErrNotFound if the company does not
	// exist.
	LinkMember(ctx context.Context, companyID, studentID, title string) error
}
