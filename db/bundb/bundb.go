// Package bundb owns the Postgres connection and repository wiring.
package bundb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	rewardsdb "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/infrastructure/repositories"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/config"
)

// DBService bundles the bun connection with the module repositories.
type DBService struct {
	RewardsDB rewardsdb.Repository
	db        *bun.DB
}

// GetDB returns the underlying database connection pool.
func (dbService *DBService) GetDB() *bun.DB {
	return dbService.db
}

// NewBunDBService initializes a new DBService with the provided Postgres configuration.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig) (*DBService, error) {
	sqldb, err := pgConn(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())
	db.RegisterModel(
		(*rewardsdb.Account)(nil),
		(*rewardsdb.LedgerEntry)(nil),
		(*rewardsdb.LeaderboardSnapshot)(nil),
	)

	return &DBService{
		RewardsDB: rewardsdb.NewRepository(db),
		db:        db,
	}, nil
}

// Close releases the connection pool.
func (dbService *DBService) Close() error {
	return dbService.db.Close()
}

func pgConn(ctx context.Context, dsn string) (*sql.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))

	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return sqldb, nil
}
