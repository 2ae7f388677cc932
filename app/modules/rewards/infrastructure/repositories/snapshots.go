package rewardsdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// SaveSnapshot stores a derived leaderboard snapshot.
func (r *Impl) SaveSnapshot(ctx context.Context, db bun.IDB, snapshot *LeaderboardSnapshot) error {
	if db == nil {
		db = r.db
	}
	if _, err := db.NewInsert().Model(snapshot).Exec(ctx); err != nil {
		return fmt.Errorf("rewardsdb.SaveSnapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the most recent snapshot, or (nil, nil) when none
// has been taken yet.
func (r *Impl) LatestSnapshot(ctx context.Context, db bun.IDB) (*LeaderboardSnapshot, error) {
	if db == nil {
		db = r.db
	}
	snapshot := new(LeaderboardSnapshot)
	err := db.NewSelect().
		Model(snapshot).
		Order("taken_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("rewardsdb.LatestSnapshot: %w", err)
	}
	return snapshot, nil
}
