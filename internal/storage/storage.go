package storage

import (
	"context"
	"fmt"

	"github.com/marcelsud/elibrary/book"
	"github.com/marcelsud/elibrary/book/memory"
	"github.com/marcelsud/elibrary/book/mysql"
	"github.com/marcelsud/elibrary/book/postgres"
	"github.com/marcelsud/elibrary/book/sqlite"
	"github.com/marcelsud/elibrary/config"
)

type tableCreator interface {
	CreateTable(ctx context.Context) error
}

// Open connects the repository selected by cfg.DBDriver.
// A connection that cannot be established is an error here, not later:
// the caller never gets a repository that fails every statement.
func Open(ctx context.Context, cfg *config.Config) (book.Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	repo, err := open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", cfg.DBDriver, err)
	}

	if cfg.DBCreateTable {
		if tc, ok := repo.(tableCreator); ok {
			if err := tc.CreateTable(ctx); err != nil {
				_ = repo.Close(ctx)
				return nil, fmt.Errorf("creating table: %w", err)
			}
		}
	}
	return repo, nil
}

func open(ctx context.Context, cfg *config.Config) (book.Repository, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.NewRepositoryWithPoolConfig(ctx,
			cfg.PostgresConnectionString(),
			cfg.DBMaxOpenConns,
			cfg.DBMaxIdleConns,
			cfg.DBConnMaxLifetimeMinutes,
		)
	case config.DriverMySQL:
		return mysql.NewRepositoryWithPoolConfig(ctx,
			mysql.DSN(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPassword),
			cfg.DBMaxOpenConns,
			cfg.DBMaxIdleConns,
			cfg.DBConnMaxLifetimeMinutes,
		)
	case config.DriverSQLite:
		return sqlite.NewRepository(ctx, cfg.SQLitePath)
	case config.DriverMemory:
		return memory.NewRepository()
	}
	return nil, fmt.Errorf("unsupported driver %q", cfg.DBDriver)
}
