package rewardsdb

import (
	"time"

	"github.com/uptrace/bun"

	rewardsdomain "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/domain"
)

// Account is the one-row-per-account balance and streak state. The ledger
// remains the source of truth; this row is the materialized latest state.
type Account struct {
	bun.BaseModel `bun:"table:reward_accounts,alias:ra"`

	AccountID      string    `bun:"account_id,pk"`
	PointsBalance  int64     `bun:"points_balance,notnull,default:0"`
	CoinsBalance   int64     `bun:"coins_balance,notnull,default:0"`
	CurrentStreak  int       `bun:"current_streak,notnull,default:0"`
	LongestStreak  int       `bun:"longest_streak,notnull,default:0"`
	LastActionAt   time.Time `bun:"last_action_at,nullzero"`
	FirstReachedAt time.Time `bun:"first_reached_at,nullzero"` // when the current balance was first reached
	IsActive       bool      `bun:"is_active,notnull,default:true"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// StreakRecord converts the stored streak state to its domain form.
func (a *Account) StreakRecord() rewardsdomain.StreakRecord {
	return rewardsdomain.StreakRecord{
		Current:      a.CurrentStreak,
		Longest:      a.LongestStreak,
		LastActionAt: a.LastActionAt,
	}
}

// LedgerEntry is one append-only grant. Never mutated after creation;
// (account_id, event_id) is unique so replays are rejected at the database
// as well as in the service.
type LedgerEntry struct {
	bun.BaseModel `bun:"table:reward_ledger_entries,alias:rle"`

	ID            int64     `bun:"id,pk,autoincrement"`
	AccountID     string    `bun:"account_id,notnull"`
	EventID       string    `bun:"event_id,notnull"`
	ActionType    string    `bun:"action_type,notnull"`
	BasePoints    int64     `bun:"base_points,notnull"`
	Multiplier    int       `bun:"multiplier,notnull,default:1"`
	PointsGranted int64     `bun:"points_granted,notnull"`
	CoinsGranted  int64     `bun:"coins_granted,notnull"`
	BalanceAfter  int64     `bun:"balance_after,notnull"`
	CoinsAfter    int64     `bun:"coins_after,notnull"`
	StreakAfter   int       `bun:"streak_after,notnull"`
	OccurredAt    time.Time `bun:"occurred_at,notnull"`

	RecordedAt time.Time `bun:"recorded_at,nullzero,notnull,default:current_timestamp"`
}

// SnapshotRow is one positioned row inside a stored snapshot.
type SnapshotRow struct {
	AccountID string `json:"account_id"`
	Points    int64  `json:"points"`
	Position  int    `json:"position"`
}

// LeaderboardSnapshot is a periodic derived copy of the standings, written
// by the snapshot worker. Rebuilt from the ledger, never hand-edited.
type LeaderboardSnapshot struct {
	bun.BaseModel `bun:"table:reward_leaderboard_snapshots,alias:rls"`

	ID         int64         `bun:"id,pk,autoincrement"`
	Standings  []SnapshotRow `bun:"standings,type:jsonb,notnull"`
	Consistent bool          `bun:"consistent,notnull,default:true"`
	TakenAt    time.Time     `bun:"taken_at,nullzero,notnull,default:current_timestamp"`
}
