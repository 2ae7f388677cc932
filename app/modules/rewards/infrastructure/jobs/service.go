// Package rewardsjobs runs the periodic leaderboard snapshot through River.
package rewardsjobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	rewardsservice "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/application"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/internal/observability/attr"
)

// SnapshotWorker writes one leaderboard snapshot per job.
type SnapshotWorker struct {
	river.WorkerDefaults[SnapshotJob]
	service rewardsservice.Service
	logger  *slog.Logger
}

// NewSnapshotWorker creates a snapshot worker bound to the rewards service.
func NewSnapshotWorker(service rewardsservice.Service, logger *slog.Logger) *SnapshotWorker {
	return &SnapshotWorker{service: service, logger: logger}
}

// Work takes the snapshot.
func (w *SnapshotWorker) Work(ctx context.Context, job *river.Job[SnapshotJob]) error {
	w.logger.InfoContext(ctx, "Taking scheduled leaderboard snapshot",
		attr.Int64("job_id", job.ID),
	)
	if err := w.service.SnapshotLeaderboard(ctx); err != nil {
		return fmt.Errorf("snapshot worker: %w", err)
	}
	return nil
}

// Service owns the River client and its pgx pool.
type Service struct {
	client *river.Client[pgx.Tx]
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewService builds the job service. every controls the snapshot cadence.
func NewService(ctx context.Context, dsn string, every time.Duration, rewards rewardsservice.Service, logger *slog.Logger) (*Service, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewSnapshotWorker(rewards, logger))

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 5},
		},
		Workers: workers,
		PeriodicJobs: []*river.PeriodicJob{
			river.NewPeriodicJob(
				river.PeriodicInterval(every),
				func() (river.JobArgs, *river.InsertOpts) {
					return SnapshotJob{}, nil
				},
				&river.PeriodicJobOpts{RunOnStart: true},
			),
		},
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	return &Service{
		client: riverClient,
		pool:   pool,
		logger: logger,
	}, nil
}

// Start begins periodic snapshotting.
func (s *Service) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.logger.InfoContext(ctx, "Snapshot job service started")
	return nil
}

// Stop drains workers and releases the pool.
func (s *Service) Stop(ctx context.Context) error {
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.pool.Close()
	s.logger.InfoContext(ctx, "Snapshot job service stopped")
	return nil
}
