package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/app"
	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/engine"
	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/fix"
	"github.com/athiramuraleedharan-18/Price-simulator-version/internal/httpapi"

	"github.com/quickfixgo/quickfix"

	_ "net/http/pprof" // For pprof profiling
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to gateway config")
	flag.Parse()

	// 1. Pprof Server (for performance profiling)
	go func() {
		// Localhost only for security
		slog.Info("🕵️ Pprof server started on localhost:6060")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			slog.Error("Pprof server failed", slog.Any("error", err))
		}
	}()

	// 2. System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(*configPath); err != nil {
		slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer bootstrap.Close()
	cfg := bootstrap.Config

	// 3. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Core Engine
	book := engine.NewInstrumentBook(cfg.InstrumentList(), cfg.Simulator.PriceFloor)
	registry := engine.NewSessionRegistry()

	transport := fix.NewTransport(bootstrap.Storage)
	hub := httpapi.NewHub()
	go hub.Run(ctx)

	mux := app.NewSenderMux(transport)
	mux.Route(httpapi.LocalSessionID, hub)

	spread := cfg.Simulator.Spread
	execution := engine.NewExecutionEngine(registry, book, mux, bootstrap.Storage)
	subscriptions := engine.NewSubscriptionService(registry, book, mux, spread, cfg.Simulator.EntrySize)
	router := engine.NewRouter(execution, subscriptions)

	// 5. FIX Acceptor
	fixApp := fix.NewApplication(registry, router, transport)
	settingsFile, err := os.Open(cfg.FIX.SettingsPath)
	if err != nil {
		slog.Error("❌ Cannot open FIX settings", slog.Any("error", err))
		os.Exit(1)
	}
	settings, err := quickfix.ParseSettings(settingsFile)
	settingsFile.Close()
	if err != nil {
		slog.Error("❌ Cannot parse FIX settings", slog.Any("error", err))
		os.Exit(1)
	}

	acceptor, err := quickfix.NewAcceptor(fixApp, quickfix.NewMemoryStoreFactory(), settings, quickfix.NewScreenLogFactory())
	if err != nil {
		slog.Error("❌ Cannot create FIX acceptor", slog.Any("error", err))
		os.Exit(1)
	}
	if err := acceptor.Start(); err != nil {
		slog.Error("❌ Cannot start FIX acceptor", slog.Any("error", err))
		os.Exit(1)
	}
	defer acceptor.Stop()
	slog.InfoContext(ctx, "✅ FIX acceptor started", slog.String("settings", cfg.FIX.SettingsPath))

	// 6. Price Simulator
	publisher := engine.NewMarketDataPublisher(registry, book, mux, spread, cfg.Simulator.EntrySize)
	simulator := engine.NewPriceSimulator(book, publisher, cfg.TickInterval(), cfg.Simulator.MaxDelta)
	if err := simulator.Start(ctx); err != nil {
		slog.Error("❌ Cannot start price simulator", slog.Any("error", err))
		os.Exit(1)
	}
	defer simulator.Stop()

	// 7. HTTP API for the browser UI
	server := httpapi.NewServer(cfg.HTTP.Addr, cfg.HTTP.AllowedOrigins, registry, router, book, hub)
	go func() {
		if err := server.Start(); err != nil {
			slog.Error("HTTP server failed", slog.Any("error", err))
			stop()
		}
	}()

	slog.InfoContext(ctx, "✨ FIX gateway fully operational. Press Ctrl+C to exit.")

	// Wait for shutdown signal
	<-ctx.Done()

	slog.InfoContext(ctx, "👋 Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP shutdown incomplete", slog.Any("error", err))
	}
}
