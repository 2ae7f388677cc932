// Package rewardsservice implements the rewards engine business logic.
package rewardsservice

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	rewardsdomain "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/domain"
	rewardsdb "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/infrastructure/repositories"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/internal/observability"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/internal/observability/attr"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/internal/results"
)

// LeaderboardCache mirrors standings into a shared cache so read replicas
// can serve the leaderboard without hitting the authoritative index.
// Implementations must tolerate being called concurrently.
type LeaderboardCache interface {
	Upsert(ctx context.Context, accountID string, points int64) error
	Remove(ctx context.Context, accountID string) error
	Rebuild(ctx context.Context, standings []rewardsdomain.Standing) error
}

// RewardsService implements the Service interface.
type RewardsService struct {
	repo        rewardsdb.Repository
	leaderboard *rewardsdomain.Leaderboard
	cache       LeaderboardCache
	rules       rewardsdomain.Rules
	logger      *slog.Logger
	metrics     *observability.RewardsMetrics
	tracer      trace.Tracer

	// accountLocks serializes event processing per account so the
	// read-advance-write cycle never interleaves for the same ledger.
	accountLocks sync.Map
}

// NewRewardsService creates a new RewardsService. cache may be nil.
func NewRewardsService(
	repo rewardsdb.Repository,
	cache LeaderboardCache,
	rules rewardsdomain.Rules,
	logger *slog.Logger,
	metrics *observability.RewardsMetrics,
	tracer trace.Tracer,
) *RewardsService {
	return &RewardsService{
		repo:        repo,
		leaderboard: rewardsdomain.NewLeaderboard(),
		cache:       cache,
		rules:       rules,
		logger:      logger,
		metrics:     metrics,
		tracer:      tracer,
	}
}

// RankTable exposes the configured tiers for read surfaces.
func (s *RewardsService) RankTable() rewardsdomain.RankTable {
	return s.rules.Ranks
}

func (s *RewardsService) lockAccount(accountID rewardsdomain.AccountID) *sync.Mutex {
	v, _ := s.accountLocks.LoadOrStore(accountID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *RewardsService,
	ctx context.Context,
	operationName string,
	accountID rewardsdomain.AccountID,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {

	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("account_id", string(accountID)),
	))
	defer span.End()

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(operationName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.String("account_id", string(accountID)),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("account_id", string(accountID)),
			attr.Error(wrappedErr),
		)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("account_id", string(accountID)),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, operationName+" completed successfully",
			attr.String("operation", operationName),
			attr.String("account_id", string(accountID)),
			attr.ExtractCorrelationID(ctx),
		)
	}

	return result, nil
}
