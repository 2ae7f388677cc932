// Package rewards assembles the rewards engine: service, handlers, router,
// cache, and snapshot jobs.
package rewards

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/eventbus"
	rewardsservice "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/application"
	rewardsevents "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/events"
	rewardscache "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/infrastructure/cache"
	rewardshandlers "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/infrastructure/handlers"
	rewardsjobs "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/infrastructure/jobs"
	rewardsdb "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/infrastructure/repositories"
	rewardsrouter "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/infrastructure/router"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/config"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/internal/observability"
)

// Module is the rewards engine wired for one process.
type Module struct {
	EventBus      eventbus.EventBus
	Service       rewardsservice.Service
	Router        *rewardsrouter.RewardsRouter
	Jobs          *rewardsjobs.Service
	cache         *rewardscache.RedisCache
	observability *observability.Observability
	cancelFunc    context.CancelFunc
}

// NewModule creates and configures the rewards module.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	bus eventbus.EventBus,
	router *message.Router,
) (*Module, error) {
	logger := obs.Logger
	rules, err := cfg.Rules()
	if err != nil {
		return nil, fmt.Errorf("rewards.NewModule: %w", err)
	}

	if err := bus.EnsureStream(ctx, rewardsevents.Stream, []string{"rewards.>"}); err != nil {
		return nil, fmt.Errorf("rewards.NewModule: %w", err)
	}

	var cache *rewardscache.RedisCache
	var serviceCache rewardsservice.LeaderboardCache
	if cfg.Redis.Address != "" {
		cache = rewardscache.NewRedisCache(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err := cache.Ping(ctx); err != nil {
			return nil, fmt.Errorf("rewards.NewModule: %w", err)
		}
		serviceCache = cache
	}

	repo := rewardsdb.NewRepository(db)
	service := rewardsservice.NewRewardsService(
		repo,
		serviceCache,
		rules,
		logger,
		obs.Metrics,
		obs.Tracer,
	)

	if err := service.WarmUp(ctx); err != nil {
		return nil, fmt.Errorf("rewards.NewModule: %w", err)
	}

	handlers := rewardshandlers.NewRewardsHandlers(service, logger, obs.Metrics, obs.Tracer)
	rewardsRouter := rewardsrouter.NewRewardsRouter(logger, router, bus, obs.Registry)
	if err := rewardsRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure rewards router: %w", err)
	}

	var jobs *rewardsjobs.Service
	if cfg.Rewards.SnapshotEvery > 0 {
		jobs, err = rewardsjobs.NewService(ctx, cfg.Postgres.DSN, cfg.Rewards.SnapshotEvery, service, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create snapshot jobs: %w", err)
		}
	}

	return &Module{
		EventBus:      bus,
		Service:       service,
		Router:        rewardsRouter,
		Jobs:          jobs,
		cache:         cache,
		observability: obs,
	}, nil
}

// Run blocks until the context is canceled. Jobs start here so snapshots
// only run once the module is live.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting rewards module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if m.Jobs != nil {
		if err := m.Jobs.Start(ctx); err != nil {
			logger.ErrorContext(ctx, "Failed to start snapshot jobs", "error", err)
		}
	}

	<-ctx.Done()
	logger.Info("Rewards module goroutine stopped")
}

// Close stops jobs and releases the cache connection.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping rewards module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	if m.Jobs != nil {
		if err := m.Jobs.Stop(context.Background()); err != nil {
			logger.Error("Failed to stop snapshot jobs", "error", err)
		}
	}
	if m.cache != nil {
		if err := m.cache.Close(); err != nil {
			logger.Error("Failed to close leaderboard cache", "error", err)
		}
	}

	logger.Info("Rewards module stopped")
	return nil
}
