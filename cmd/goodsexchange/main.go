package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/efreitasn/goodsexchange/internal/auth"
	"github.com/efreitasn/goodsexchange/internal/config"
	"github.com/efreitasn/goodsexchange/internal/domain"
	"github.com/efreitasn/goodsexchange/internal/engine"
	"github.com/efreitasn/goodsexchange/internal/handler"
	"github.com/efreitasn/goodsexchange/internal/seed"
	"github.com/efreitasn/goodsexchange/internal/service"
	"github.com/efreitasn/goodsexchange/internal/store"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "Run health check against running server")
	hashPassword := flag.String("hash-password", "", "Print the bcrypt hash of the given admin password and exit")
	flag.Parse()

	// Handle -healthcheck flag: HTTP GET to localhost:PORT/healthz, exit 0/1.
	if *healthcheck {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		resp, err := http.Get(fmt.Sprintf("http://localhost:%s/healthz", port))
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	if *hashPassword != "" {
		hashed, err := auth.HashPassword(*hashPassword)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hashed)
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up slog logger with configured level.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Catalog and deal history.
	categories := domain.NewCategoryRegistry()
	catalog := store.NewCatalog(categories)
	deals := store.NewDealLog(cfg.DealLogCapacity)

	if cfg.SeedFile != "" {
		entries, err := seed.Load(cfg.SeedFile)
		if err != nil {
			logger.Error("failed to load seed file", slog.String("error", err.Error()))
			os.Exit(1)
		}
		products, err := seed.Products(entries, cfg.BaseOwner)
		if err != nil {
			logger.Error("invalid seed file", slog.String("error", err.Error()))
			os.Exit(1)
		}
		for _, p := range products {
			catalog.AddProduct(p)
		}
		logger.Info("catalog seeded",
			slog.String("file", cfg.SeedFile),
			slog.Int("products", len(products)),
		)
	}

	// Admin mode stays unavailable without a configured hash.
	var authorizer engine.Authorizer
	if cfg.AdminPasswordHash != "" {
		a, err := auth.NewPasswordAuthorizer(cfg.AdminPasswordHash)
		if err != nil {
			logger.Error("invalid ADMIN_PASSWORD_HASH", slog.String("error", err.Error()))
			os.Exit(1)
		}
		authorizer = a
	} else {
		logger.Warn("ADMIN_PASSWORD_HASH not set, admin mode disabled")
	}

	// Engine.
	ledger := engine.NewLedger(catalog, deals, engine.LedgerConfig{
		InitialBalance: cfg.InitialBalance,
		Policy: engine.Policy{
			UserName:                     cfg.UserName,
			AllowImplicitProductCreation: cfg.AllowImplicitProductCreation,
			ImplicitCategory:             cfg.ImplicitCategory,
		},
		Authorizer: authorizer,
	})

	// Services.
	marketSvc := service.NewMarketService(ledger, categories)
	tradeSvc := service.NewTradeService(ledger, logger)
	statsSvc := service.NewStatsService(ledger, cfg.StatsLocation)

	// Router.
	router := handler.NewRouter(marketSvc, tradeSvc, statsSvc, logger)

	// Configure HTTP server.
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start HTTP server in a goroutine.
	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutdown signal received", slog.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
