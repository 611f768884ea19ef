package orchestrators

import (
	"context"
	"log/slog"
	"time"

	workDomain "bafs/internal/domain/work"
)

// WorkStoreForDoWork defines the store interface needed by DoWork.
type WorkStoreForDoWork interface {
	RecordEntry(ctx context.Context, entry workDomain.Entry, companyID string) error
}

// DoWorkInput carries input for the do-work orchestrator.
type DoWorkInput struct {
	StudentID string
}

// DoWorkDeps holds dependencies for DoWork.
type DoWorkDeps struct {
	WorkStore    WorkStoreForDoWork
	ProfileStore ProfileStoreForSubmit
	Cache        LeaderboardCacheForPayout // optional: nil skips the ranking cache
	Wage         int                       // zero means work.DefaultWage
	GenerateID   func() string
	Now          func() time.Time
}

// DoWorkResult carries the outcome of a day's work.
type DoWorkResult struct {
	Wage int
	Date string
}

// ExecuteDoWork records one day of work and pays the wage. The calendar
// date comes from the server clock, and the store enforces one paid entry
// per student per day inside the crediting transaction.
// PRE: StudentID identifies an existing profile
// POST: Entry recorded exactly once per day; the student (and their
// company, if any) is credited the wage
func ExecuteDoWork(ctx context.Context, input DoWorkInput, deps DoWorkDeps) (DoWorkResult, error) {
	p, err := deps.ProfileStore.GetByStudentID(ctx, input.StudentID)
	if err != nil {
		return DoWorkResult{}, err
	}

	wage := deps.Wage
	if wage <= 0 {
		wage = workDomain.DefaultWage
	}

	entry := workDomain.Entry{
		ID:        deps.GenerateID(),
		StudentID: p.StudentID,
		Date:      deps.Now().Format("2006-01-02"),
		Wage:      wage,
		CreatedAt: deps.Now(),
	}
	if err := entry.Validate(); err != nil {
		return DoWorkResult{}, err
	}

	if err := deps.WorkStore.RecordEntry(ctx, entry, p.CompanyID); err != nil {
		return DoWorkResult{}, err
	}

	slog.Info("event", "action", "work_recorded", "student_id", p.StudentID, "date", entry.Date, "wage", wage)

	syncRankingCache(ctx, deps.Cache, deps.ProfileStore, p.StudentID)

	return DoWorkResult{Wage: wage, Date: entry.Date}, nil
}
