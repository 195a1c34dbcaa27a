package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog"
	"github.com/marcelsud/bookshelf-api/book"
	"github.com/marcelsud/bookshelf-api/book/memory"
	"github.com/marcelsud/bookshelf-api/book/redis"
	"github.com/marcelsud/bookshelf-api/config"
	"github.com/marcelsud/bookshelf-api/internal/http/chi"
	"github.com/marcelsud/bookshelf-api/metrics"
	"github.com/rs/zerolog"
)

/* main.go is where every package is tied together: dependencies are built,
 * configuration is read and the business packages are invoked.
 * Imports only go one way, downwards: the application imports the business layer,
 * which imports the storage layer.
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := httplog.NewLogger("bookshelf-api", httplog.Options{
		JSON: cfg.LogJSON,
	})
	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	seeds := book.DefaultSeeds()
	if cfg.SeedFile != "" {
		loaded, err := book.LoadSeeds(cfg.SeedFile)
		if err != nil {
			return err
		}
		seeds = loaded
		logger.Info().Str("file", cfg.SeedFile).Int("books", len(seeds)).Msg("loaded seed file")
	}
	repo, err := newRepository(cfg)
	if err != nil {
		return err
	}
	defer repo.Close(context.Background())
	if err := repo.Reset(ctx, seeds); err != nil {
		return fmt.Errorf("seeding %s store: %w", cfg.Store, err)
	}
	logger.Info().
		Str("store", cfg.Store).
		Str("id_strategy", book.NewIDStrategy(cfg.IDStrategy).String()).
		Msg("book store ready")

	var s book.UseCase = book.NewService(repo)
	opts := []chi.Option{chi.WithLogger(logger)}
	if cfg.MetricsEnabled {
		exporter, err := metrics.NewOTelExporter(metrics.NewUseCaseCollector(s))
		if err != nil {
			return err
		}
		defer exporter.Shutdown(context.Background())
		s = metrics.NewInstrumentedService(s, exporter)
		opts = append(opts, chi.WithMetrics(exporter.Handler()))
	}
	r, err := chi.Handlers(ctx, s, opts...)
	if err != nil {
		return err
	}
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      r,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, cfg.ShutdownTimeout, errShutdown)
	logger.Info().Str("port", cfg.Port).Msg("listening")
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serving http: %w", err)
	}
	err = <-errShutdown
	if err != nil {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

// store is a backend the server can reset to its seed books on start
type store interface {
	book.Repository
	book.Seeder
}

func newRepository(cfg *config.Config) (store, error) {
	strategy := book.NewIDStrategy(cfg.IDStrategy)
	if cfg.Store != config.StoreRedis {
		return memory.NewRepository(strategy), nil
	}
	repo, err := redis.NewRepository(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
		redis.WithPrefix(cfg.RedisPrefix),
		redis.WithIDStrategy(strategy),
	)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func shutdown(server *http.Server, ctxShutdown context.Context, timeout time.Duration, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), timeout)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("forcing closing the server")
	default:
		errShutdown <- fmt.Errorf("forcing closing the server: %w", err)
	}
}
