package projections

import (
	"context"
	"errors"
	"time"

	companyStore "bafs/internal/adapters/storage/company"
	gameStore "bafs/internal/adapters/storage/game"
	workStore "bafs/internal/adapters/storage/work"
	companyDomain "bafs/internal/domain/company"
	gameDomain "bafs/internal/domain/game"
	materialDomain "bafs/internal/domain/material"
	profileDomain "bafs/internal/domain/profile"
	workDomain "bafs/internal/domain/work"
)

// DashboardProfileStore defines the profile store interface needed by the dashboard projection.
type DashboardProfileStore interface {
	GetByStudentID(ctx context.Context, studentID string) (profileDomain.Profile, error)
}

// DashboardCompanyStore defines the company store interface needed by the dashboard projection.
type DashboardCompanyStore interface {
	GetByID(ctx context.Context, id string) (companyDomain.Company, error)
	List(ctx context.Context) ([]companyDomain.Company, error)
}

// DashboardGameStore defines the game store interface needed by the dashboard projection.
type DashboardGameStore interface {
	Latest(ctx context.Context) (gameDomain.Game, error)
	GetAttempt(ctx context.Context, studentID, gameID string) (gameDomain.Attempt, error)
}

// DashboardWorkStore defines the work store interface needed by the dashboard projection.
type DashboardWorkStore interface {
	GetByStudentAndDate(ctx context.Context, studentID, date string) (workDomain.Entry, error)
}

// DashboardMaterialStore defines the material store interface needed by the dashboard projection.
type DashboardMaterialStore interface {
	List(ctx context.Context) ([]materialDomain.Material, error)
}

// GetDashboardQuery carries input for the dashboard projection.
type GetDashboardQuery struct {
	StudentID string
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	ProfileStore    DashboardProfileStore
	CompanyStore    DashboardCompanyStore
	GameStore       DashboardGameStore
	WorkStore       DashboardWorkStore
	MaterialStore   DashboardMaterialStore
	LeaderboardDeps GetLeaderboardDeps
}

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	Profile profileDomain.Profile
	Company *companyDomain.Company // nil when the student is a freelancer

	// Today's quiz. Game is nil when nothing has been published yet.
	Game       *gameDomain.Game
	GameStatus gameDomain.Status
	Attempt    *gameDomain.Attempt // nil until the student has answered

	// Work action
	WorkedToday bool

	// Shared panels
	Leaderboard []LeaderboardRow
	Companies   []companyDomain.Company
	Materials   []materialDomain.Material
}

// QueryGetDashboard aggregates everything the student dashboard shows.
// The quiz status is derived from recorded attempts, never from client
// state: no attempt means the game is open, a recorded attempt means it
// is done regardless of how the page was reached.
//
// POST: read-only; failures in side panels (leaderboard, materials,
// company list) degrade to empty sections instead of failing the page.
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps, now time.Time) (DashboardResult, error) {
	p, err := deps.ProfileStore.GetByStudentID(ctx, query.StudentID)
	if err != nil {
		return DashboardResult{}, err
	}
	result := DashboardResult{Profile: p, GameStatus: gameDomain.StatusIdle}

	if p.CompanyID != "" {
		c, err := deps.CompanyStore.GetByID(ctx, p.CompanyID)
		if err == nil {
			result.Company = &c
		} else if !errors.Is(err, companyStore.ErrNotFound) {
			return DashboardResult{}, err
		}
	}

	g, err := deps.GameStore.Latest(ctx)
	switch {
	case err == nil:
		result.Game = &g
		attempt, err := deps.GameStore.GetAttempt(ctx, p.StudentID, g.ID)
		switch {
		case err == nil:
			result.Attempt = &attempt
			result.GameStatus = gameDomain.StatusDone
		case errors.Is(err, gameStore.ErrNotFound):
			// Not answered yet, stays idle.
		default:
			return DashboardResult{}, err
		}
	case errors.Is(err, gameStore.ErrNoGame):
		// No quiz published yet, the panel stays empty.
	default:
		return DashboardResult{}, err
	}

	today := now.Format("2006-01-02")
	if _, err := deps.WorkStore.GetByStudentAndDate(ctx, p.StudentID, today); err == nil {
		result.WorkedToday = true
	} else if !errors.Is(err, workStore.ErrNotFound) {
		return DashboardResult{}, err
	}

	if rows, err := QueryGetLeaderboard(ctx, GetLeaderboardQuery{}, deps.LeaderboardDeps); err == nil {
		result.Leaderboard = rows
	}
	if companies, err := deps.CompanyStore.List(ctx); err == nil {
		result.Companies = companies
	}
	if materials, err := deps.MaterialStore.List(ctx); err == nil {
		result.Materials = materials
	}

	return result, nil
}
