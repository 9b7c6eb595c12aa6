package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"badminton-bot/internal/config"
	"badminton-bot/internal/payments"
	"badminton-bot/internal/server"
	"badminton-bot/internal/sheets"
	"badminton-bot/internal/tgbot"
)

func main() {
	_ = godotenv.Load()

	log := config.NewLogger()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("config", "error", err)
		os.Exit(1)
	}

	sheetsClient, err := sheets.New(cfg.GoogleServiceAccountJSON, cfg.SpreadsheetID)
	if err != nil {
		log.Error("sheets", "error", err)
		os.Exit(1)
	}

	payProvider, err := payments.NewProvider(cfg)
	if err != nil {
		log.Error("payments", "error", err)
		os.Exit(1)
	}

	botApp, err := tgbot.New(cfg, log, sheetsClient, payProvider)
	if err != nil {
		log.Error("telegram", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := botApp.Bootstrap(ctx); err != nil {
		log.Error("bootstrap", "error", err)
		os.Exit(1)
	}

	httpSrv := server.New(cfg, log, payProvider, botApp)

	// Start HTTP server
	go func() {
		log.Info("HTTP listening", "addr", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server", "error", err)
			cancel()
		}
	}()

	// Start Telegram
	go func() {
		if err := botApp.Run(ctx); err != nil {
			log.Error("bot stopped", "error", err)
			cancel()
		}
	}()

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Info("shutting down")

	cancel()
	ctxTimeout, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = httpSrv.Shutdown(ctxTimeout)

	log.Info("bye")
}
