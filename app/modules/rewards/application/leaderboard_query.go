package rewardsservice

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	rewardsdomain "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/domain"
	rewardsevents "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/events"
	rewardsdb "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/infrastructure/repositories"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/internal/observability/attr"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/internal/results"
)

// GetLeaderboard returns the top limit standings. limit <= 0 returns the
// whole board.
func (s *RewardsService) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration("GetLeaderboard", time.Since(start))
	}()

	standings := s.leaderboard.Top(limit)
	rows := make([]LeaderboardRow, len(standings))
	for i, st := range standings {
		rows[i] = LeaderboardRow{
			AccountID: string(st.AccountID),
			Points:    int64(st.Points),
			Position:  st.Position,
		}
	}
	return rows, nil
}

// WarmUp loads every active account into the standings index, and rebuilds
// the shared cache when one is configured. Called once at startup before
// event consumption begins.
func (s *RewardsService) WarmUp(ctx context.Context) error {
	accounts, err := s.repo.ListActiveAccounts(ctx, nil)
	if err != nil {
		return fmt.Errorf("WarmUp: %w", err)
	}

	for _, account := range accounts {
		s.leaderboard.Upsert(
			rewardsdomain.AccountID(account.AccountID),
			rewardsdomain.Points(account.PointsBalance),
			account.FirstReachedAt,
		)
	}
	s.metrics.SetLeaderboardSize(s.leaderboard.Len())

	if s.cache != nil {
		if err := s.cache.Rebuild(ctx, s.leaderboard.Top(0)); err != nil {
			s.logger.WarnContext(ctx, "Leaderboard cache rebuild failed", attr.Error(err))
		}
	}

	s.logger.InfoContext(ctx, "Leaderboard warmed up", attr.Int("accounts", len(accounts)))
	return nil
}

// rebuildStandings derives fresh standings from persisted account state.
func (s *RewardsService) rebuildStandings(ctx context.Context) ([]rewardsdomain.Standing, error) {
	accounts, err := s.repo.ListActiveAccounts(ctx, nil)
	if err != nil {
		return nil, err
	}
	entries := make([]rewardsdomain.LeaderboardEntry, len(accounts))
	for i, account := range accounts {
		entries[i] = rewardsdomain.LeaderboardEntry{
			AccountID:      rewardsdomain.AccountID(account.AccountID),
			Points:         rewardsdomain.Points(account.PointsBalance),
			FirstReachedAt: account.FirstReachedAt,
		}
	}
	return rewardsdomain.BuildStandings(entries), nil
}

// VerifyLeaderboard rebuilds standings from persisted state and compares
// them to the incremental index. A mismatch means the aggregate drifted.
func (s *RewardsService) VerifyLeaderboard(ctx context.Context) (bool, error) {
	consistent, err := s.verifyStandings(ctx, s.leaderboard.Top(0))
	if err != nil {
		return false, fmt.Errorf("VerifyLeaderboard: %w", err)
	}
	return consistent, nil
}

func (s *RewardsService) verifyStandings(ctx context.Context, live []rewardsdomain.Standing) (bool, error) {
	rebuilt, err := s.rebuildStandings(ctx)
	if err != nil {
		return false, err
	}

	consistent := slices.Equal(live, rebuilt)
	if !consistent {
		s.logger.ErrorContext(ctx, "Leaderboard drifted from persisted state",
			attr.Int("live_accounts", len(live)),
			attr.Int("rebuilt_accounts", len(rebuilt)),
		)
	}
	return consistent, nil
}

// SnapshotLeaderboard persists the current standings together with the
// consistency verdict for that instant.
func (s *RewardsService) SnapshotLeaderboard(ctx context.Context) error {
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration("SnapshotLeaderboard", time.Since(start))
	}()

	// The verdict and the persisted rows must come from the same instant,
	// so the standings are captured once.
	standings := s.leaderboard.Top(0)
	consistent, err := s.verifyStandings(ctx, standings)
	if err != nil {
		return fmt.Errorf("SnapshotLeaderboard: %w", err)
	}
	rows := make([]rewardsdb.SnapshotRow, len(standings))
	for i, st := range standings {
		rows[i] = rewardsdb.SnapshotRow{
			AccountID: string(st.AccountID),
			Points:    int64(st.Points),
			Position:  st.Position,
		}
	}

	snapshot := &rewardsdb.LeaderboardSnapshot{
		Standings:  rows,
		Consistent: consistent,
		TakenAt:    time.Now().UTC(),
	}
	if err := s.repo.SaveSnapshot(ctx, nil, snapshot); err != nil {
		return fmt.Errorf("SnapshotLeaderboard: %w", err)
	}

	s.logger.InfoContext(ctx, "Leaderboard snapshot taken",
		attr.Int("accounts", len(rows)),
		attr.Bool("consistent", consistent),
	)
	return nil
}

// DeactivateAccount hides an account from the leaderboard. The ledger and
// balances are kept; only the standing disappears.
func (s *RewardsService) DeactivateAccount(ctx context.Context, accountID rewardsdomain.AccountID, reason string) (DeactivateOperationResult, error) {
	return withTelemetry(s, ctx, "DeactivateAccount", accountID, func(ctx context.Context) (DeactivateOperationResult, error) {
		mu := s.lockAccount(accountID)
		defer mu.Unlock()

		err := s.repo.SetAccountActive(ctx, nil, string(accountID), false)
		if err != nil {
			if errors.Is(err, rewardsdb.ErrNoRowsAffected) {
				return results.FailureResult[rewardsevents.AccountDeactivatePayload](rewardsevents.ActionFailedPayload{
					AccountID: string(accountID),
					Reason:    "unknown_account",
				}, err), nil
			}
			return DeactivateOperationResult{}, err
		}

		s.leaderboard.Remove(accountID)
		s.metrics.SetLeaderboardSize(s.leaderboard.Len())
		if s.cache != nil {
			if cacheErr := s.cache.Remove(ctx, string(accountID)); cacheErr != nil {
				s.logger.WarnContext(ctx, "Leaderboard cache removal failed",
					attr.String("account_id", string(accountID)),
					attr.Error(cacheErr),
				)
			}
		}

		s.logger.InfoContext(ctx, "Account deactivated",
			attr.String("account_id", string(accountID)),
			attr.String("reason", reason),
		)
		return results.SuccessResult[rewardsevents.AccountDeactivatePayload, rewardsevents.ActionFailedPayload](rewardsevents.AccountDeactivatePayload{
			AccountID: string(accountID),
		}), nil
	})
}
