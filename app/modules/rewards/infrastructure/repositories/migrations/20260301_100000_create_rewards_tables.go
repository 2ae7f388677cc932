package rewardsmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	rewardsdb "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating reward_accounts, reward_ledger_entries and reward_leaderboard_snapshots tables...")

		if _, err := db.NewCreateTable().Model((*rewardsdb.Account)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*rewardsdb.LedgerEntry)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*rewardsdb.LeaderboardSnapshot)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		// Replay safety: one ledger row per (account, event).
		if _, err := db.NewRaw("CREATE UNIQUE INDEX IF NOT EXISTS idx_ledger_account_event ON reward_ledger_entries (account_id, event_id)").Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_ledger_account_occurred ON reward_ledger_entries (account_id, occurred_at)").Exec(ctx); err != nil {
			return err
		}
		// Leaderboard ordering read path.
		if _, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_accounts_points ON reward_accounts (points_balance DESC, first_reached_at ASC)").Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Rewards tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping rewards tables...")

		if _, err := db.NewDropTable().Model((*rewardsdb.LeaderboardSnapshot)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*rewardsdb.LedgerEntry)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*rewardsdb.Account)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Rewards tables dropped successfully!")
		return nil
	})
}
