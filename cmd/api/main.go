package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/craft-flags/internal/config"
	"github.com/jwebster45206/craft-flags/internal/economy"
	"github.com/jwebster45206/craft-flags/internal/handlers"
	"github.com/jwebster45206/craft-flags/internal/logger"
	"github.com/jwebster45206/craft-flags/internal/world"
	"github.com/jwebster45206/craft-flags/pkg/flags"
	"github.com/jwebster45206/craft-flags/pkg/item"
	"github.com/jwebster45206/craft-flags/pkg/messages"
)

func loadInto(path string, load func(io.Reader) error) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	if err := load(f); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func main() {
	cfg, err := config.Load(os.Getenv("CRAFT_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Craft Flags API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"economy", cfg.Economy.Backend)

	items := item.DefaultCatalog()
	if err := loadInto(cfg.ItemsFile, items.LoadYAML); err != nil {
		log.Error("Failed to load item catalog", "error", err)
		os.Exit(1)
	}

	msgs := messages.NewCatalog()
	if err := loadInto(cfg.MessagesFile, msgs.LoadYAML); err != nil {
		log.Error("Failed to load messages", "error", err)
		os.Exit(1)
	}

	state := world.New()
	if err := loadInto(cfg.WorldFile, state.LoadYAML); err != nil {
		log.Error("Failed to load world snapshot", "error", err)
		os.Exit(1)
	}

	ledger, err := economy.Open(cfg.Economy, log)
	if err != nil {
		log.Error("Failed to open economy", "error", err)
		os.Exit(1)
	}

	if rl, ok := ledger.(*economy.RedisLedger); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		err := rl.WaitForConnection(ctx, 30, 2*time.Second)
		cancel()
		if err != nil {
			log.Error("Failed to connect to redis", "error", err)
			os.Exit(1)
		}
	}

	handler := handlers.NewRouter(handlers.Deps{
		Registry: flags.Builtin(),
		Items:    items,
		Messages: msgs,
		Ledger:   ledger,
		World:    state,
		Logger:   log,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if err := ledger.Close(); err != nil {
		log.Error("Error closing economy backend", "error", err)
	}

	log.Info("Server exited")
}
