package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rvanheerden/go-autoquote/internal/core"
	transporthttp "github.com/rvanheerden/go-autoquote/internal/http"
	"github.com/rvanheerden/go-autoquote/internal/http/handlers"
	"github.com/rvanheerden/go-autoquote/internal/http/health"
	"github.com/rvanheerden/go-autoquote/internal/jobs"
	"github.com/rvanheerden/go-autoquote/internal/middleware"
	"github.com/rvanheerden/go-autoquote/internal/platform/config"
	"github.com/rvanheerden/go-autoquote/internal/platform/logging"
	"github.com/rvanheerden/go-autoquote/internal/scan"
	"github.com/rvanheerden/go-autoquote/internal/store/dynamo"
	"github.com/rvanheerden/go-autoquote/internal/store/mongo"
	"github.com/rvanheerden/go-autoquote/internal/store/sqlite"
)

func main() {
	cfg := config.MustLoad()
	log := logging.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Info("starting go-autoquote API", "addr", addr, "env", cfg.Env, "db", cfg.DBType)

	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Error("failed to open record store", "db", cfg.DBType, "err", err)
		return
	}
	defer closeStore()

	intake := core.NewIntakeService(repo, log)
	quotes := core.NewQuoteService(intake)
	processor := scan.NewProcessor(time.Duration(cfg.ScanDelayMs) * time.Millisecond)

	// Stale sessions hold personal data; sweep them in the background.
	janitor := jobs.NewJanitorWorker(intake,
		time.Duration(cfg.SessionTTLHours)*time.Hour,
		time.Duration(cfg.JanitorIntervalSec)*time.Second,
		log)
	go janitor.Start(ctx)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPM, time.Minute)
	rateLimiter.StartWithContext(ctx)

	api := transporthttp.NewRouter(transporthttp.Deps{
		Mounts: []handlers.Mountable{
			handlers.NewIntakeHandler(intake, log),
			handlers.NewQuoteHandler(quotes, log),
			handlers.NewPaymentHandler(intake, log),
			handlers.NewScanHandler(processor, intake, log),
			handlers.NewSuggestHandler(intake, log),
		},
	})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(time.Duration(cfg.HTTPRequestTimeoutSec) * time.Second))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.LimitRequestBody(middleware.MaxBodySize))
	r.Use(rateLimiter.Middleware)
	r.Use(middleware.SimpleAPIKey(cfg.APIKey))

	r.Mount("/", health.New(log, repo, time.Duration(cfg.HTTPRequestTimeoutSec)*time.Second))
	r.Mount("/api/v1", api)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTPReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTPWriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.HTTPIdleTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Info("server listening", "addr", addr)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", "err", err)
		}
	}
}

// openStore builds the record repo for the configured backend and returns a
// closer for it.
func openStore(ctx context.Context, cfg *config.Config) (core.RecordRepo, func(), error) {
	switch cfg.DBType {
	case "mongo":
		client, err := mongo.NewClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		repo := mongo.NewRecordRepo(client.DB, time.Duration(cfg.MongoOpTimeoutMs)*time.Millisecond)
		return repo, func() { _ = client.Close(context.Background()) }, nil

	case "dynamodb":
		client, err := dynamo.NewClient(ctx, dynamo.Config{
			Region:          cfg.AWSRegion,
			Endpoint:        cfg.DynamoDBEndpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := dynamo.EnsureTable(ctx, client.DB); err != nil {
			return nil, nil, err
		}
		return dynamo.NewRecordRepo(client.DB), func() {}, nil

	default: // sqlite
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}
}
