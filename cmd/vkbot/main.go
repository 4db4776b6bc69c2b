package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"quizbot/internal/bootstrap"
	"quizbot/internal/config"
	"quizbot/internal/vk"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateVK(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger (with operator relay when configured)
	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting VK quiz bot")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load corpus, connect session store, build the engine
	quizService, err := bootstrap.NewQuizService(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to assemble quiz service", zap.Error(err))
	}

	client := vk.NewClient(cfg.VKToken, logger)
	h, err := vk.NewHandler(client, quizService, logger)
	if err != nil {
		logger.Fatal("Failed to create vk handler", zap.Error(err))
	}

	listener := vk.NewListener(client, cfg.VKGroupID, logger)
	if err := listener.Run(ctx, h.HandleEvent); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("Long poll listener failed", zap.Error(err))
	}

	logger.Info("Bot stopped gracefully")
}
