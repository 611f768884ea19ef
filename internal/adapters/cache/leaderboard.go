// Package cache provides a Redis-backed leaderboard for asset rankings.
//
// The leaderboard is a sorted set keyed by student id with the asset
// balance as score. It is an acceleration layer only: SQLite remains the
// source of truth, and callers fall back to a direct query when the cache
// is unavailable or empty.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const assetsKey = "leaderboard:assets"

// Entry is one row of the cached ranking, highest assets first.
type Entry struct {
	StudentID string
	Assets    int64
}

// Leaderboard wraps a Redis client scoped to the asset ranking.
type Leaderboard struct {
	client *redis.Client
}

// NewLeaderboard connects to Redis at addr and verifies the connection.
//
// PRE: addr is a host:port pair.
// POST: returns a ready Leaderboard, or an error if Redis is unreachable.
func NewLeaderboard(addr string) (*Leaderboard, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	return &Leaderboard{client: client}, nil
}

// Set overwrites a student's cached score with an absolute balance. Scores
// are never incremented in place; the committed balance is pushed whole, so
// a student missing from the set lands at their real balance.
//
// POST: the sorted-set score for studentID equals assets.
func (l *Leaderboard) Set(ctx context.Context, studentID string, assets int64) error {
	err := l.client.ZAdd(ctx, assetsKey, redis.Z{
		Score:  float64(assets),
		Member: studentID,
	}).Err()
	if err != nil {
		return fmt.Errorf("set leaderboard score: %w", err)
	}
	return nil
}

// Top returns up to limit entries ordered by assets descending.
//
// POST: len(result) <= limit; an empty cache yields an empty slice, not
// an error, so callers can detect it and rebuild.
func (l *Leaderboard) Top(ctx context.Context, limit int64) ([]Entry, error) {
	members, err := l.client.ZRevRangeWithScores(ctx, assetsKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}

	entries := make([]Entry, 0, len(members))
	for _, m := range members {
		id, ok := m.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, Entry{StudentID: id, Assets: int64(m.Score)})
	}
	return entries, nil
}

// Rebuild replaces the cached ranking with the given entries in one
// pipeline. Used at startup and whenever the cache is found empty.
//
// POST: the sorted set contains exactly the given entries.
func (l *Leaderboard) Rebuild(ctx context.Context, entries []Entry) error {
	pipe := l.client.Pipeline()
	pipe.Del(ctx, assetsKey)
	for _, e := range entries {
		pipe.ZAdd(ctx, assetsKey, redis.Z{
			Score:  float64(e.Assets),
			Member: e.StudentID,
		})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rebuild leaderboard: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection pool.
func (l *Leaderboard) Close() error {
	return l.client.Close()
}
