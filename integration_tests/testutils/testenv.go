package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"log/slog"
	"testing"
	"time"

	natscontainer "github.com/testcontainers/testcontainers-go/modules/nats"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/eventbus"
	rewardsdb "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/infrastructure/repositories"
	rewardsmigrations "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/infrastructure/repositories/migrations"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/config"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/integration_tests/containers"
)

// TestEnvironment holds the containers and connections shared by the
// integration tests of a package.
type TestEnvironment struct {
	Ctx           context.Context
	CancelContext context.CancelFunc
	PgContainer   *pgcontainer.PostgresContainer
	NatsContainer *natscontainer.NATSContainer
	DB            *bun.DB
	EventBus      eventbus.EventBus
	Config        *config.Config
	T             *testing.T
}

// NewTestEnvironment starts Postgres and NATS containers, runs the rewards
// migrations, and connects an event bus.
func NewTestEnvironment(t *testing.T) (*TestEnvironment, error) {
	ctx, cancel := context.WithCancel(context.Background())

	env := &TestEnvironment{
		Ctx:           ctx,
		CancelContext: cancel,
		T:             t,
	}

	if err := env.setup(ctx); err != nil {
		cancel()
		return nil, err
	}
	return env, nil
}

func (env *TestEnvironment) setup(ctx context.Context) error {
	pgContainer, pgConnStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return fmt.Errorf("failed to setup postgres container: %w", err)
	}
	env.PgContainer = pgContainer

	natsContainer, natsURL, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		pgContainer.Terminate(ctx)
		return fmt.Errorf("failed to setup nats container: %w", err)
	}
	env.NatsContainer = natsContainer

	sqlDB := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(pgConnStr)))
	db := bun.NewDB(sqlDB, pgdialect.New())
	db.RegisterModel(
		(*rewardsdb.Account)(nil),
		(*rewardsdb.LedgerEntry)(nil),
		(*rewardsdb.LeaderboardSnapshot)(nil),
	)
	env.DB = db

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		env.terminateContainers(ctx)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus, err := eventbus.NewEventBus(ctx, natsURL, discardLogger)
	if err != nil {
		db.Close()
		env.terminateContainers(ctx)
		return fmt.Errorf("failed to create event bus: %w", err)
	}
	env.EventBus = bus

	env.Config = &config.Config{
		Postgres: config.PostgresConfig{DSN: pgConnStr},
		NATS:     config.NATSConfig{URL: natsURL},
	}
	return nil
}

func runMigrations(ctx context.Context, db *bun.DB) error {
	migrator := migrate.NewMigrator(db, rewardsmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("migrator init: %w", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Reset truncates the rewards tables so each test starts from a clean slate.
func (env *TestEnvironment) Reset(ctx context.Context) error {
	tables := []string{
		"reward_ledger_entries",
		"reward_leaderboard_snapshots",
		"reward_accounts",
	}
	for _, table := range tables {
		if _, err := env.DB.ExecContext(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

// Cleanup tears down connections and containers.
func (env *TestEnvironment) Cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if env.EventBus != nil {
		if err := env.EventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}
	if env.DB != nil {
		env.DB.Close()
	}
	env.terminateContainers(ctx)
	env.CancelContext()
}

func (env *TestEnvironment) terminateContainers(ctx context.Context) {
	if env.NatsContainer != nil {
		if err := env.NatsContainer.Terminate(ctx); err != nil {
			log.Printf("Error terminating NATS container: %v", err)
		}
	}
	if env.PgContainer != nil {
		if err := env.PgContainer.Terminate(ctx); err != nil {
			log.Printf("Error terminating Postgres container: %v", err)
		}
	}
}
