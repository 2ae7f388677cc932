package rewardsservice

import (
	"context"
	"errors"
	"time"

	rewardsdomain "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/domain"
	rewardsevents "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/events"
	rewardsdb "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/infrastructure/repositories"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/internal/observability/attr"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/internal/results"
)

// Rejection reasons reported on the failed topic and the rejected counter.
const (
	rejectInvalid      = "invalid_event"
	rejectDuplicate    = "duplicate_event"
	rejectNonMonotonic = "non_monotonic"
)

// ProcessActionEvent applies one action event end to end: streak advance,
// multiplier, grant, rank, ledger append, standings update. The event is
// applied fully or not at all.
func (s *RewardsService) ProcessActionEvent(ctx context.Context, event rewardsdomain.ActionEvent) (ActionOperationResult, error) {
	return withTelemetry(s, ctx, "ProcessActionEvent", event.AccountID, func(ctx context.Context) (ActionOperationResult, error) {
		fail := func(reason string, duplicate bool, cause error) ActionOperationResult {
			s.metrics.RecordEventRejected(reason)
			return results.FailureResult[rewardsevents.ActionProcessedPayload](rewardsevents.ActionFailedPayload{
				EventID:   event.EventID,
				AccountID: string(event.AccountID),
				Reason:    reason,
				Duplicate: duplicate,
			}, cause)
		}

		if err := event.Validate(); err != nil {
			s.logger.WarnContext(ctx, "Rejecting invalid action event",
				attr.String("event_id", event.EventID),
				attr.Error(err),
				attr.ExtractCorrelationID(ctx),
			)
			return fail(rejectInvalid, false, err), nil
		}

		mu := s.lockAccount(event.AccountID)
		defer mu.Unlock()

		account, err := s.repo.GetAccount(ctx, nil, string(event.AccountID))
		if err != nil {
			return ActionOperationResult{}, err
		}
		if account == nil {
			account = &rewardsdb.Account{
				AccountID: string(event.AccountID),
				IsActive:  true,
				CreatedAt: time.Now().UTC(),
			}
		}

		exists, err := s.repo.HasEvent(ctx, nil, string(event.AccountID), event.EventID)
		if err != nil {
			return ActionOperationResult{}, err
		}
		if exists {
			s.logger.InfoContext(ctx, "Ignoring duplicate action event",
				attr.String("event_id", event.EventID),
				attr.String("account_id", string(event.AccountID)),
				attr.ExtractCorrelationID(ctx),
			)
			return fail(rejectDuplicate, true, rewardsdomain.ErrDuplicateEvent), nil
		}

		streak := account.StreakRecord()
		streakResult, err := rewardsdomain.AdvanceStreak(&streak, event.OccurredAt, s.rules.StreakWindow)
		if err != nil {
			if errors.Is(err, rewardsdomain.ErrNonMonotonicEvent) {
				s.logger.WarnContext(ctx, "Rejecting out-of-order action event",
					attr.String("event_id", event.EventID),
					attr.Error(err),
					attr.ExtractCorrelationID(ctx),
				)
				return fail(rejectNonMonotonic, false, err), nil
			}
			return ActionOperationResult{}, err
		}
		if !streakResult.Continued && account.CurrentStreak > 0 {
			s.metrics.RecordStreakReset()
		}

		multiplier := s.rules.Multipliers.Resolve(streakResult.StreakAfter)
		points, coins := s.rules.Grant(event.BasePoints, streakResult.StreakAfter)

		previous := s.rules.Ranks.Resolve(rewardsdomain.Points(account.PointsBalance))
		balanceAfter := account.PointsBalance + int64(points)
		coinsAfter := account.CoinsBalance + int64(coins)
		current := s.rules.Ranks.Resolve(rewardsdomain.Points(balanceAfter))
		promoted := current.Rank.MinPoints > previous.Rank.MinPoints

		account.PointsBalance = balanceAfter
		account.CoinsBalance = coinsAfter
		account.CurrentStreak = streak.Current
		account.LongestStreak = streak.Longest
		account.LastActionAt = streak.LastActionAt
		if points > 0 || account.FirstReachedAt.IsZero() {
			// Postgres round-trips timestamps at microsecond precision.
			// The index must hold the same value a rebuild reads back.
			account.FirstReachedAt = event.OccurredAt.Truncate(time.Microsecond)
		}
		account.UpdatedAt = time.Now().UTC()

		entry := &rewardsdb.LedgerEntry{
			AccountID:     string(event.AccountID),
			EventID:       event.EventID,
			ActionType:    string(event.ActionType),
			BasePoints:    int64(event.BasePoints),
			Multiplier:    multiplier,
			PointsGranted: int64(points),
			CoinsGranted:  int64(coins),
			BalanceAfter:  balanceAfter,
			CoinsAfter:    coinsAfter,
			StreakAfter:   streakResult.StreakAfter,
			OccurredAt:    event.OccurredAt,
		}

		if err := s.repo.RecordGrant(ctx, account, entry); err != nil {
			if errors.Is(err, rewardsdomain.ErrDuplicateEvent) {
				return fail(rejectDuplicate, true, err), nil
			}
			return ActionOperationResult{}, err
		}

		if account.IsActive {
			s.leaderboard.Upsert(event.AccountID, rewardsdomain.Points(balanceAfter), account.FirstReachedAt)
			s.metrics.SetLeaderboardSize(s.leaderboard.Len())
			if s.cache != nil {
				if cacheErr := s.cache.Upsert(ctx, string(event.AccountID), balanceAfter); cacheErr != nil {
					s.logger.WarnContext(ctx, "Leaderboard cache update failed",
						attr.String("account_id", string(event.AccountID)),
						attr.Error(cacheErr),
					)
				}
			}
		}

		s.metrics.RecordEventProcessed(string(event.ActionType))
		if promoted {
			s.metrics.RecordRankPromotion()
			s.logger.InfoContext(ctx, "Account promoted",
				attr.String("account_id", string(event.AccountID)),
				attr.String("from_rank", previous.Rank.Name),
				attr.String("to_rank", current.Rank.Name),
				attr.Int64("balance", balanceAfter),
			)
		}

		return results.SuccessResult[rewardsevents.ActionProcessedPayload, rewardsevents.ActionFailedPayload](rewardsevents.ActionProcessedPayload{
			EventID:       event.EventID,
			AccountID:     string(event.AccountID),
			ActionType:    string(event.ActionType),
			PointsGranted: int64(points),
			CoinsGranted:  int64(coins),
			Multiplier:    multiplier,
			BalanceAfter:  balanceAfter,
			CoinsAfter:    coinsAfter,
			StreakAfter:   streakResult.StreakAfter,
			Continued:     streakResult.Continued,
			Rank:          current.Rank.Name,
			PreviousRank:  previous.Rank.Name,
			Promoted:      promoted,
			OccurredAt:    event.OccurredAt,
		}), nil
	})
}
