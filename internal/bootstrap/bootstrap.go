package bootstrap

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	tele "gopkg.in/telebot.v3"

	"quizbot/internal/config"
	"quizbot/internal/corpus"
	"quizbot/internal/notifier"
	"quizbot/internal/repository"
	"quizbot/internal/repository/memory"
	redisstore "quizbot/internal/repository/redis"
	"quizbot/internal/service"
)

// NewLogger builds the production logger, teeing records into the operator
// chat relay when one is configured.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	if !cfg.NotifierEnabled() {
		return logger, nil
	}

	loggerBot, err := tele.NewBot(tele.Settings{Token: cfg.Notifier.BotToken})
	if err != nil {
		return nil, fmt.Errorf("create logger bot: %w", err)
	}

	relay := notifier.NewCore(loggerBot, cfg.Notifier.ChatID, zapcore.WarnLevel)
	return logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, relay)
	})), nil
}

// NewQuizService loads the corpus, connects the session store and assembles
// the quiz engine both transports share.
func NewQuizService(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*service.QuizService, error) {
	c, err := corpus.Load(cfg.Corpus.Path, cfg.Corpus.Encoding)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	logger.Info("Corpus loaded",
		zap.String("path", cfg.Corpus.Path),
		zap.Int("questions", c.Len()),
	)
	if c.Len() == 0 {
		logger.Warn("Corpus is empty, question requests will be refused")
	}

	store, err := newSessionStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return service.NewQuizService(c, store, logger), nil
}

// newSessionStore picks Redis when a URL is configured, otherwise an
// in-process store for single-instance deployments.
func newSessionStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.SessionRepository, error) {
	if cfg.RedisURL == "" {
		logger.Info("REDIS_URL not set, using in-memory session store")
		return memory.NewSessionStore(), nil
	}

	opts, err := goredis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := goredis.NewClient(opts)

	if err := pingRedis(ctx, client, logger); err != nil {
		return nil, err
	}

	logger.Info("Redis connection established", zap.String("addr", opts.Addr))
	return redisstore.NewSessionStore(client), nil
}

// pingRedis verifies the connection with retries
func pingRedis(ctx context.Context, client *goredis.Client, logger *zap.Logger) error {
	const maxRetries = 10
	retryDelay := 2 * time.Second

	var err error
	for i := 0; i < maxRetries; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err = client.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			return nil
		}

		logger.Warn("Failed to ping redis",
			zap.Int("attempt", i+1),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay):
		}
	}

	return fmt.Errorf("failed to connect to redis after %d attempts: %w", maxRetries, err)
}
