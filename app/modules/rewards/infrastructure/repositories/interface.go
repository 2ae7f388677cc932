package rewardsdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository is the persistence contract for the rewards module.
type Repository interface {
	// GetAccount returns the account row, or (nil, nil) for an unknown
	// account — unknown accounts are zero-state, not an error.
	GetAccount(ctx context.Context, db bun.IDB, accountID string) (*Account, error)

	// HasEvent reports whether the event id was already recorded for the
	// account.
	HasEvent(ctx context.Context, db bun.IDB, accountID, eventID string) (bool, error)

	// RecordGrant appends the ledger entry and upserts the account row in
	// one transaction. Returns rewardsdomain.ErrDuplicateEvent if the
	// (account_id, event_id) pair already exists.
	RecordGrant(ctx context.Context, account *Account, entry *LedgerEntry) error

	// GetLedgerEntries returns an account's entries ordered by occurrence,
	// newest first when limit > 0.
	GetLedgerEntries(ctx context.Context, db bun.IDB, accountID string, limit int) ([]LedgerEntry, error)

	// ListActiveAccounts returns every active account row, for leaderboard
	// warmup and from-scratch rebuilds.
	ListActiveAccounts(ctx context.Context, db bun.IDB) ([]Account, error)

	// SetAccountActive toggles leaderboard participation. History is kept.
	SetAccountActive(ctx context.Context, db bun.IDB, accountID string, active bool) error

	// SaveSnapshot stores a derived leaderboard snapshot.
	SaveSnapshot(ctx context.Context, db bun.IDB, snapshot *LeaderboardSnapshot) error

	// LatestSnapshot returns the most recent snapshot, or (nil, nil) when
	// none has been taken yet.
	LatestSnapshot(ctx context.Context, db bun.IDB) (*LeaderboardSnapshot, error)
}
