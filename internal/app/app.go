package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/nimah79/telegram-observer-bot/internal/config"
	"github.com/nimah79/telegram-observer-bot/internal/infra/telegram"
	"github.com/nimah79/telegram-observer-bot/internal/repo/memcache"
	redisrepo "github.com/nimah79/telegram-observer-bot/internal/repo/redis"
	"github.com/nimah79/telegram-observer-bot/internal/repo/responses"
	"github.com/nimah79/telegram-observer-bot/internal/services/dispatch"
	"github.com/nimah79/telegram-observer-bot/internal/services/moderation"
)

type App struct {
	cfg    config.Config
	logger *slog.Logger
	tg     *telegram.Client
	redis  *goredis.Client

	engine     *moderation.Service
	dispatcher *dispatch.Service
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	linkTTL := time.Duration(cfg.LinkTTLSeconds) * time.Second
	templates := responses.NewStore(cfg.ResponsesDir)

	app := &App{
		cfg:    cfg,
		logger: logger,
		engine: moderation.NewService(cfg.AdminIDs, cfg.BotUsername, templates),
	}

	var linkCache dispatch.LinkCache
	if cfg.RedisAddr != "" {
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Warn("redis unavailable, using in-process link cache", "error", err)
			_ = client.Close()
		} else {
			app.redis = client
			linkCache = redisrepo.NewLinkCache(client)
		}
	}
	if linkCache == nil {
		linkCache = memcache.NewLinkCache(linkTTL)
	}

	tg, err := telegram.NewClient(cfg.BotToken, cfg.PollTimeoutSeconds, logger, app.routeUpdate)
	if err != nil {
		if app.redis != nil {
			_ = app.redis.Close()
		}
		return nil, fmt.Errorf("create telegram client: %w", err)
	}
	app.tg = tg
	app.dispatcher = dispatch.NewService(tg, linkCache, linkTTL, logger)

	return app, nil
}

func (a *App) Run(ctx context.Context) error {
	defer a.close()
	return a.tg.Start(ctx)
}

func (a *App) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("close redis", "error", err)
		}
	}
}
