package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/marcelsud/elibrary/book"
	"github.com/marcelsud/elibrary/book/memory"
	"github.com/marcelsud/elibrary/book/sqlite"
	"github.com/marcelsud/elibrary/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Memory(t *testing.T) {
	ctx := context.Background()
	repo, err := Open(ctx, &config.Config{DBDriver: config.DriverMemory})
	require.NoError(t, err)
	defer repo.Close(ctx)

	assert.IsType(t, &memory.Repository{}, repo)
}

func TestOpen_SQLiteCreatesTable(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		DBDriver:      config.DriverSQLite,
		SQLitePath:    filepath.Join(t.TempDir(), "catalog.db"),
		DBCreateTable: true,
	}
	repo, err := Open(ctx, cfg)
	require.NoError(t, err)
	defer repo.Close(ctx)

	assert.IsType(t, &sqlite.Repository{}, repo)
	id, err := repo.Insert(ctx, book.Book{Title: "Dune", Author: "Frank Herbert", Category: "Sci-Fi"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestOpen_InvalidConfig(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{DBDriver: "oracle"})
	assert.ErrorContains(t, err, "validating config")
}

func TestOpen_ConnectionFailureFailsFast(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg := &config.Config{
		DBDriver:  config.DriverPostgres,
		DBHost:    "127.0.0.1",
		DBPort:    "1",
		DBName:    "library_db",
		DBUser:    "root",
		DBSSLMode: "disable",
	}
	repo, err := Open(ctx, cfg)
	assert.Nil(t, repo)
	assert.ErrorContains(t, err, "connecting to postgres")
}
