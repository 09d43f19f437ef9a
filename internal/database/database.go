package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rousage/coffeeshop/internal/config"
	"github.com/rs/zerolog"
)

//go:embed migrations
var migrations embed.FS

// Connect opens the pool, brings the schema up to date and starts exporting
// pool statistics.
func Connect(ctx context.Context, logger zerolog.Logger, cfg config.Database) (*pgxpool.Pool, error) {
	connString := cfg.ConnString()

	poolCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	poolCfg.MaxConns = 20
	poolCfg.MinIdleConns = 2
	poolCfg.MaxConnLifetimeJitter = 5 * time.Minute
	poolCfg.ConnConfig.Tracer = otelpgx.NewTracer()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create DB pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	version, err := migrateDB(connString)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate DB: %w", err)
	}
	logger.Debug().Uint("schema_version", version).Msg("database migrated")

	if err := otelpgx.RecordStats(pool, otelpgx.WithMinimumReadDBStatsInterval(5*time.Second)); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to record database stats: %w", err)
	}

	return pool, nil
}

func migrateDB(connString string) (uint, error) {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return 0, err
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, strings.Replace(connString, "postgres://", "pgx5://", 1))
	if err != nil {
		return 0, err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, err
	}

	version, _, err := m.Version()
	if err != nil {
		return 0, err
	}

	return version, nil
}
