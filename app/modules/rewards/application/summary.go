package rewardsservice

import (
	"context"
	"fmt"
	"time"

	rewardsdomain "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/domain"
)

func rankView(tier rewardsdomain.RankTier) RankView {
	return RankView{
		Name:      tier.Name,
		MinPoints: int64(tier.MinPoints),
		Icon:      tier.Icon,
		Gradient:  tier.Gradient,
	}
}

// GetAccountSummary returns the derived view for an account. Unknown accounts
// get the zero state: empty balances, no streak, the base rank.
func (s *RewardsService) GetAccountSummary(ctx context.Context, accountID rewardsdomain.AccountID) (*AccountSummary, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration("GetAccountSummary", time.Since(start))
	}()

	account, err := s.repo.GetAccount(ctx, nil, string(accountID))
	if err != nil {
		return nil, fmt.Errorf("GetAccountSummary: %w", err)
	}

	summary := &AccountSummary{AccountID: string(accountID)}
	var balance rewardsdomain.Points
	if account != nil {
		summary.PointsBalance = account.PointsBalance
		summary.CoinsBalance = account.CoinsBalance
		summary.CurrentStreak = account.CurrentStreak
		summary.LongestStreak = account.LongestStreak
		summary.LastActionAt = account.LastActionAt
		balance = rewardsdomain.Points(account.PointsBalance)
	}

	status := s.rules.Ranks.Resolve(balance)
	summary.Rank = rankView(status.Rank)
	if status.NextRank != nil {
		next := rankView(*status.NextRank)
		summary.NextRank = &next
	}
	summary.ProgressPercent = status.ProgressPercent
	summary.PointsToNext = int64(status.PointsToNext)

	if position, ok := s.leaderboard.Rank(accountID); ok {
		summary.LeaderboardPosition = position
	}

	return summary, nil
}
