package rewardsdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	rewardsdomain "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/domain"
)

// Impl is the bun-backed Repository.
type Impl struct {
	db *bun.DB
}

// NewRepository returns a Repository backed by the given bun DB.
func NewRepository(db *bun.DB) *Impl {
	return &Impl{db: db}
}

// HasEvent reports whether the event id was already recorded for the account.
func (r *Impl) HasEvent(ctx context.Context, db bun.IDB, accountID, eventID string) (bool, error) {
	if db == nil {
		db = r.db
	}
	exists, err := db.NewSelect().
		Model((*LedgerEntry)(nil)).
		Where("account_id = ?", accountID).
		Where("event_id = ?", eventID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("rewardsdb.HasEvent: %w", err)
	}
	return exists, nil
}

// RecordGrant appends the ledger entry and upserts the account row in one
// transaction, so a rejected event never leaves partial state.
func (r *Impl) RecordGrant(ctx context.Context, account *Account, entry *LedgerEntry) error {
	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(entry).Exec(ctx); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: event %s for account %s", rewardsdomain.ErrDuplicateEvent, entry.EventID, entry.AccountID)
			}
			return fmt.Errorf("insert ledger entry: %w", err)
		}

		_, err := tx.NewInsert().
			Model(account).
			On("CONFLICT (account_id) DO UPDATE").
			Set("points_balance = EXCLUDED.points_balance").
			Set("coins_balance = EXCLUDED.coins_balance").
			Set("current_streak = EXCLUDED.current_streak").
			Set("longest_streak = EXCLUDED.longest_streak").
			Set("last_action_at = EXCLUDED.last_action_at").
			Set("first_reached_at = EXCLUDED.first_reached_at").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("upsert account: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, rewardsdomain.ErrDuplicateEvent) {
			return err
		}
		return fmt.Errorf("rewardsdb.RecordGrant: %w", err)
	}
	return nil
}

// GetLedgerEntries returns an account's entries ordered by occurrence.
func (r *Impl) GetLedgerEntries(ctx context.Context, db bun.IDB, accountID string, limit int) ([]LedgerEntry, error) {
	if db == nil {
		db = r.db
	}
	var entries []LedgerEntry
	q := db.NewSelect().
		Model(&entries).
		Where("account_id = ?", accountID).
		Order("occurred_at ASC")
	if limit > 0 {
		q = db.NewSelect().
			Model(&entries).
			Where("account_id = ?", accountID).
			Order("occurred_at DESC").
			Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("rewardsdb.GetLedgerEntries: %w", err)
	}
	return entries, nil
}

// isUniqueViolation detects a Postgres duplicate-key error. SQLSTATE 23505.
func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}
	return false
}
