package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bafs/internal/domain/audit"
	gameDomain "bafs/internal/domain/game"
	"bafs/internal/domain/profile"
)

// GameStoreForSubmit defines the store interface needed by SubmitAnswer.
type GameStoreForSubmit interface {
	GetByID(ctx context.Context, id string) (gameDomain.Game, error)
	Latest(ctx context.Context) (gameDomain.Game, error)
	RecordAttempt(ctx context.Context, attempt gameDomain.Attempt, reward int, companyID string) error
}

// ProfileStoreForSubmit defines the profile store interface needed by SubmitAnswer.
type ProfileStoreForSubmit interface {
	GetByStudentID(ctx context.Context, studentID string) (profile.Profile, error)
}

// AuditStoreForOrchestrator defines the audit sink shared by the write orchestrators.
type AuditStoreForOrchestrator interface {
	Save(ctx context.Context, e audit.Event) error
}

// LeaderboardCacheForPayout is the optional ranking cache updated after a
// payout. Scores are absolute balances, never deltas, so a student who was
// not cached yet lands at their real balance rather than the payout amount.
type LeaderboardCacheForPayout interface {
	Set(ctx context.Context, studentID string, assets int64) error
}

// SubmitAnswerInput carries input for the submit-answer orchestrator.
// Selected is the literal option text; AnswerKey is the A-D shorthand and
// wins when both are set.
type SubmitAnswerInput struct {
	StudentID string
	GameID    string
	Selected  string
	AnswerKey string
}

// SubmitAnswerDeps holds dependencies for SubmitAnswer.
type SubmitAnswerDeps struct {
	GameStore    GameStoreForSubmit
	ProfileStore ProfileStoreForSubmit
	AuditStore   AuditStoreForOrchestrator // optional: nil skips audit logging
	Cache        LeaderboardCacheForPayout // optional: nil skips the ranking cache
	GenerateID   func() string
	Now          func() time.Time
}

// SubmitAnswerResult carries the graded outcome. Answer is the correct
// option text, revealed only once the attempt is recorded.
type SubmitAnswerResult struct {
	Status   gameDomain.Status
	Selected string
	Answer   string
	Reward   int // zero unless the answer was correct
}

var ErrGameMismatch = errors.New("this game is no longer the current one")

// syncRankingCache pushes a student's committed balance into the optional
// ranking cache. The balance is re-read after the crediting transaction so
// the cached score is the absolute post-commit value. Cache trouble only
// warns; SQLite stays the source of truth.
func syncRankingCache(ctx context.Context, c LeaderboardCacheForPayout, profiles ProfileStoreForSubmit, studentID string) {
	if c == nil {
		return
	}
	p, err := profiles.GetByStudentID(ctx, studentID)
	if err != nil {
		slog.Warn("event", "action", "leaderboard_cache_sync_failed", "student_id", studentID, "error", err)
		return
	}
	if err := c.Set(ctx, p.StudentID, int64(p.Assets)); err != nil {
		slog.Warn("event", "action", "leaderboard_cache_sync_failed", "student_id", studentID, "error", err)
	}
}

// ExecuteSubmitAnswer grades a student's answer and pays the reward.
// Grading and crediting happen server side from the stored question; the
// client only ever supplies its selection. The store records the attempt
// and credits the balance in one transaction, so a retry or a concurrent
// duplicate can never pay twice.
// PRE: StudentID identifies an existing profile; GameID names the current game
// POST: Attempt recorded exactly once; on WON the student (and their
// company, if any) is credited the game's reward
// INVARIANT: One attempt per student per game
func ExecuteSubmitAnswer(ctx context.Context, input SubmitAnswerInput, deps SubmitAnswerDeps) (SubmitAnswerResult, error) {
	p, err := deps.ProfileStore.GetByStudentID(ctx, input.StudentID)
	if err != nil {
		return SubmitAnswerResult{}, err
	}

	g, err := deps.GameStore.GetByID(ctx, input.GameID)
	if err != nil {
		return SubmitAnswerResult{}, err
	}

	// The answered game must still be the one students are shown, so a
	// stale tab cannot answer a superseded quiz.
	latest, err := deps.GameStore.Latest(ctx)
	if err != nil {
		return SubmitAnswerResult{}, err
	}
	if latest.ID != g.ID {
		return SubmitAnswerResult{}, ErrGameMismatch
	}

	selected := input.Selected
	if input.AnswerKey != "" {
		selected, err = gameDomain.AnswerFromKey(input.AnswerKey, g.Question.Options)
		if err != nil {
			return SubmitAnswerResult{}, err
		}
	}

	status, err := g.Grade(selected)
	if err != nil {
		return SubmitAnswerResult{}, err
	}

	attempt := gameDomain.Attempt{
		ID:        deps.GenerateID(),
		StudentID: p.StudentID,
		GameID:    g.ID,
		Selected:  selected,
		Correct:   status == gameDomain.StatusWon,
		CreatedAt: deps.Now(),
	}

	reward := 0
	if attempt.Correct {
		reward = g.Reward
	}

	if err := deps.GameStore.RecordAttempt(ctx, attempt, reward, p.CompanyID); err != nil {
		return SubmitAnswerResult{}, err
	}

	slog.Info("event", "action", "answer_submitted", "student_id", p.StudentID, "game_id", g.ID, "status", status, "reward", reward)

	if attempt.Correct {
		syncRankingCache(ctx, deps.Cache, deps.ProfileStore, p.StudentID)
		if deps.AuditStore != nil {
			e := audit.NewEvent(deps.GenerateID(), p.StudentID, p.Role, audit.CategoryEconomy, audit.ActionCredit).
				WithResource("game", g.ID).
				WithDescription("quiz reward paid")
			_ = deps.AuditStore.Save(ctx, e)
		}
	}

	return SubmitAnswerResult{Status: status, Selected: selected, Answer: g.Question.Answer, Reward: reward}, nil
}
