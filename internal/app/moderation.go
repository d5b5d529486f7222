package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"moderation-service/internal/config"
	"moderation-service/internal/execution"
	"moderation-service/internal/gateway/discord"
	"moderation-service/internal/messaging/notifier"
	"moderation-service/internal/moderation"
	"moderation-service/internal/permissions"
	"moderation-service/internal/repository"
	"moderation-service/internal/service"
)

const (
	memCacheCapacity = 4096
	memCacheTTL      = 5 * time.Minute
)

func Run(ctx context.Context, cfg config.Config, logger *zap.SugaredLogger) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	wg := &sync.WaitGroup{}

	// The stores and the event writer outlive the frontends: requests still
	// draining during shutdown must be able to persist and publish.
	delayedCtx, delayedCancel := context.WithCancel(context.Background())
	delayedWg := &sync.WaitGroup{}

	repo, err := repository.NewMongoRepository(delayedCtx, logger, delayedWg, cfg.MongoDB)
	if err != nil {
		logger.Fatalw("failed to create repository", "error", err)
	}

	notif := notifier.NewKafkaNotifier(delayedCtx, delayedWg, logger, cfg.Kafka)

	gw, err := discord.NewGateway(cfg.Discord.Token)
	if err != nil {
		logger.Fatalw("failed to create discord gateway", "error", err)
	}

	var cache permissions.Cache
	if cfg.Redis.URL != "" {
		redisCache, err := permissions.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			logger.Fatalw("failed to connect to redis", "error", err)
		}
		cache = redisCache
	} else {
		cache = permissions.NewMemCache(memCacheCapacity, memCacheTTL)
	}

	resolver := permissions.NewResolver(logger, repo, cache, gw, cfg.SuperOperatorIds)
	executor := execution.NewExecutor(logger)
	coordinator := moderation.NewCoordinator(logger, repo, gw, executor, notif)

	worker := moderation.NewExpiryWorker(logger, repo, gw, executor, notif)
	if err := worker.Start(ctx); err != nil {
		logger.Fatalw("failed to start expiry worker", "error", err)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		<-worker.Stop().Done()
	}()

	service.RunServices(ctx, logger, wg, cfg, resolver, coordinator, repo, notif)

	wg.Wait()
	logger.Info("shutting down")

	logger.Info("shutting down delayed services")
	delayedCancel()
	delayedWg.Wait()
}
