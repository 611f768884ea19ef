package projections

import (
	"context"
	"log/slog"

	"bafs/internal/adapters/cache"
	profileDomain "bafs/internal/domain/profile"
)

// DefaultLeaderboardSize is how many students the ranking shows.
const DefaultLeaderboardSize = 5

// LeaderboardProfileStore defines the profile store interface needed by the leaderboard projection.
type LeaderboardProfileStore interface {
	GetByStudentID(ctx context.Context, studentID string) (profileDomain.Profile, error)
	TopByAssets(ctx context.Context, limit int) ([]profileDomain.Profile, error)
}

// LeaderboardCache is the optional Redis acceleration layer for the ranking.
type LeaderboardCache interface {
	Top(ctx context.Context, limit int64) ([]cache.Entry, error)
	Rebuild(ctx context.Context, entries []cache.Entry) error
}

// GetLeaderboardQuery carries input for the leaderboard projection.
type GetLeaderboardQuery struct {
	Limit int // zero means DefaultLeaderboardSize
}

// GetLeaderboardDeps holds dependencies for the leaderboard projection.
type GetLeaderboardDeps struct {
	ProfileStore LeaderboardProfileStore
	Cache        LeaderboardCache // optional: nil reads SQLite directly
}

// LeaderboardRow is one ranked student.
type LeaderboardRow struct {
	Rank      int    `json:"rank"`
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Assets    int64  `json:"assets"`
}

// QueryGetLeaderboard returns the top students by asset balance, richest
// first. Ties are broken by student ID ascending so repeated reads of an
// unchanged database return the same order.
//
// POST: len(result) <= query.Limit; the projection writes nothing, so
// running it twice in a row yields identical rows.
func QueryGetLeaderboard(ctx context.Context, query GetLeaderboardQuery, deps GetLeaderboardDeps) ([]LeaderboardRow, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}

	if deps.Cache != nil {
		rows, err := leaderboardFromCache(ctx, limit, deps)
		if err == nil && rows != nil {
			return rows, nil
		}
		if err != nil {
			slog.Warn("event", "action", "leaderboard_cache_miss", "error", err)
		}
	}

	profiles, err := deps.ProfileStore.TopByAssets(ctx, limit)
	if err != nil {
		return nil, err
	}

	rows := make([]LeaderboardRow, 0, len(profiles))
	for i, p := range profiles {
		rows = append(rows, LeaderboardRow{
			Rank:      i + 1,
			StudentID: p.StudentID,
			Name:      p.Name,
			Assets:    int64(p.Assets),
		})
	}

	if deps.Cache != nil {
		entries := make([]cache.Entry, 0, len(rows))
		for _, r := range rows {
			entries = append(entries, cache.Entry{StudentID: r.StudentID, Assets: r.Assets})
		}
		if err := deps.Cache.Rebuild(ctx, entries); err != nil {
			slog.Warn("event", "action", "leaderboard_cache_rebuild_failed", "error", err)
		}
	}

	return rows, nil
}

// leaderboardFromCache reads the ranking from Redis and resolves names
// from the profile store. Returns (nil, nil) when the cache is empty so
// the caller falls back to SQLite.
func leaderboardFromCache(ctx context.Context, limit int, deps GetLeaderboardDeps) ([]LeaderboardRow, error) {
	entries, err := deps.Cache.Top(ctx, int64(limit))
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	rows := make([]LeaderboardRow, 0, len(entries))
	for _, e := range entries {
		p, err := deps.ProfileStore.GetByStudentID(ctx, e.StudentID)
		if err != nil {
			// Stale cache member with no backing profile. Skip it; the
			// next rebuild drops it.
			continue
		}
		rows = append(rows, LeaderboardRow{
			Rank:      len(rows) + 1,
			StudentID: p.StudentID,
			Name:      p.Name,
			Assets:    e.Assets,
		})
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows, nil
}
