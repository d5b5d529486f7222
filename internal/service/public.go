package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"moderation-service/internal/config"
	"moderation-service/internal/messaging/notifier"
	"moderation-service/internal/moderation"
	"moderation-service/internal/permissions"
	"moderation-service/internal/repository"
)

const shutdownTimeout = 10 * time.Second

func RunServices(ctx context.Context, logger *zap.SugaredLogger, wg *sync.WaitGroup, cfg config.Config,
	resolver *permissions.Resolver, coordinator *moderation.Coordinator,
	repo repository.Repository, notif notifier.Notifier) {

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.HTTPPort))
	if err != nil {
		logger.Fatalw("failed to listen", "error", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Listener = lis

	if cfg.Development {
		e.Debug = true
	}

	e.Use(requestLogger(logger))

	newModerationService(logger, resolver, coordinator, repo, notif).register(e)
	logger.Infow("listening for HTTP requests", "port", cfg.HTTPPort)

	go func() {
		if err := e.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("failed to serve", "error", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Errorw("failed to shut down http server", "error", err)
		}
	}()
}

func requestLogger(logger *zap.SugaredLogger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				fields = append(fields, "error", v.Error)
			}
			logger.Infow("handled request", fields...)
			return nil
		},
	})
}
