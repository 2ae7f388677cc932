package rewardsdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// GetAccount returns the account row, or (nil, nil) for an unknown account.
func (r *Impl) GetAccount(ctx context.Context, db bun.IDB, accountID string) (*Account, error) {
	if db == nil {
		db = r.db
	}
	account := new(Account)
	err := db.NewSelect().
		Model(account).
		Where("account_id = ?", accountID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("rewardsdb.GetAccount: %w", err)
	}
	return account, nil
}

// ListActiveAccounts returns every active account row.
func (r *Impl) ListActiveAccounts(ctx context.Context, db bun.IDB) ([]Account, error) {
	if db == nil {
		db = r.db
	}
	var accounts []Account
	err := db.NewSelect().
		Model(&accounts).
		Where("is_active = ?", true).
		Order("account_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("rewardsdb.ListActiveAccounts: %w", err)
	}
	return accounts, nil
}

// SetAccountActive toggles leaderboard participation for an account.
func (r *Impl) SetAccountActive(ctx context.Context, db bun.IDB, accountID string, active bool) error {
	if db == nil {
		db = r.db
	}
	result, err := db.NewUpdate().
		Model((*Account)(nil)).
		Set("is_active = ?", active).
		Set("updated_at = ?", time.Now().UTC()).
		Where("account_id = ?", accountID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("rewardsdb.SetAccountActive: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("rewardsdb.SetAccountActive %q: %w", accountID, ErrNoRowsAffected)
	}
	return nil
}
