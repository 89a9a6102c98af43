package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/marcelsud/elibrary/book"
	"github.com/marcelsud/elibrary/config"
	"github.com/marcelsud/elibrary/internal/http/chi"
	"github.com/marcelsud/elibrary/internal/logger"
	"github.com/marcelsud/elibrary/internal/storage"
	"github.com/marcelsud/elibrary/metrics"
)

const TIMEOUT = 30 * time.Second

/*
 * main is where the packages get wired together: config, storage, service, transport.
 * Imports only go downwards: the binary imports the catalog, the catalog imports storage.
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logger.New().Level(cfg.LogLevel).Format(cfg.LogFormat).Make()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("api stopped")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	repo, err := storage.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer repo.Close(context.Background())

	exporter, err := metrics.NewOTelExporter(metrics.CounterFunc(func(ctx context.Context) (int64, error) {
		all, err := repo.SelectAll(ctx)
		return int64(len(all)), err
	}))
	if err != nil {
		return err
	}
	defer exporter.Shutdown(context.Background())

	s := metrics.Instrument(book.NewService(repo, book.WithLogger(log)), exporter)
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      chi.Handlers(s, exporter.ServeHTTP()),
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	log.Info().Str("port", cfg.Port).Str("driver", cfg.DBDriver).Msg("listening")
	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	err = <-errShutdown
	if err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("forcing the server to close: %w", err)
	default:
		errShutdown <- fmt.Errorf("shutting down the server: %w", err)
	}
}
