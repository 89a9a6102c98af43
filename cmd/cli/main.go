package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/marcelsud/elibrary/book"
	"github.com/marcelsud/elibrary/config"
	"github.com/marcelsud/elibrary/internal/cli"
	"github.com/marcelsud/elibrary/internal/logger"
	"github.com/marcelsud/elibrary/internal/storage"
)

/*
Interactive catalog manager.

Stdout carries the menu dialog, logs go to stderr:

	DB_DRIVER=sqlite SQLITE_PATH=library.db DB_CREATE_TABLE=true go run ./cmd/cli
*/

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logger.New().
		Level(cfg.LogLevel).
		Format(cfg.LogFormat).
		With("session", uuid.NewString()).
		Make()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("elibrary stopped")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx := context.Background()

	repo, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.DBDriver).
			Msg("Error connecting to the database. Please check your database settings.")
		return err
	}
	defer repo.Close(ctx)
	log.Debug().Str("driver", cfg.DBDriver).Msg("connected")

	s := book.NewService(repo, book.WithLogger(log))
	return cli.NewLoop(os.Stdin, os.Stdout, s, cli.WithLogger(log)).Run(ctx)
}
