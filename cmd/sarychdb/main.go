// Command sarychdb is the CLI surface spec §6 fixes: "run" starts the
// HTTP server on the configured port (3030 by default); "run
// benchmark" enters the benchmark harness instead.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"sarychdb/application/crud"
	"sarychdb/infrastructure/cache"
	"sarychdb/infrastructure/config"
	"sarychdb/infrastructure/storage"
	"sarychdb/infrastructure/users"
	"sarychdb/interfaces/http/rest"
	"sarychdb/pkg/observability"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "run":
		if len(args) > 1 && args[1] == "benchmark" {
			runBenchmark()
			return
		}
		runServer()
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("usage: sarychdb run [benchmark]")
}

func runServer() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := observability.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	registry := users.NewRegistry(cfg.DataDir)
	store := storage.NewStore()
	fileCache := cache.NewFileCache(cfg.FileCacheTTL)
	searchCache := cache.NewSearchCache(cfg.SearchCacheTTL, cfg.SearchCacheMaxSize)
	engine := crud.NewEngine(store, fileCache, searchCache, logger).
		WithSearchThreshold(cfg.SearchParallelThreshold)

	router := rest.NewRouter(registry, engine, cfg, logger)
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
			zap.String("data_dir", cfg.DataDir),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
}
