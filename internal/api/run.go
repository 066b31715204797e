package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-profile/internal/api/health"
	"github.com/naka-gawa/github-profile/internal/api/profile"
	"github.com/naka-gawa/github-profile/internal/config"
	"github.com/naka-gawa/github-profile/internal/usecase"
)

// Run starts the HTTP server with the fx lifecycle and stops it gracefully on shutdown.
func Run(lc fx.Lifecycle, cfg *config.Config, l *zap.Logger, aggregator *usecase.Aggregator) error {
	e := New(cfg, l, aggregator)

	server := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", cfg.Server.Port),
		Handler:           e,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				l.Info("starting API server", zap.String("addr", server.Addr))
				if err := e.StartServer(server); err != nil && !errors.Is(err, http.ErrServerClosed) {
					l.Error("error starting echo server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			l.Info("shutdown signal received")
			return e.Shutdown(ctx)
		},
	})

	return nil
}

// New builds the echo instance with middleware and routes.
func New(cfg *config.Config, l *zap.Logger, aggregator *usecase.Aggregator) *echo.Echo {
	e := echo.New()

	if !cfg.IsDebug() {
		e.HideBanner = true
		e.HidePort = true
	}

	configureMiddleware(e, cfg, l)
	configureRoutes(e, l, aggregator)

	return e
}

func configureMiddleware(e *echo.Echo, cfg *config.Config, l *zap.Logger) {
	// Request ID must come first
	e.Use(middleware.RequestID())

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1 << 12, // 4 KB
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			l.Error("recovered from panic",
				zap.Error(err),
				zap.ByteString("stack", stack),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
			return nil
		},
	}))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
		LogLatency:   true,
		LogRemoteIP:  true,
		LogMethod:    true,
		LogURI:       true,
		LogRequestID: true,
		LogStatus:    true,
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.CorsAllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
		MaxAge:       int((24 * time.Hour).Seconds()),
	}))

	e.IPExtractor = echo.ExtractIPFromXFFHeader()
}

func configureRoutes(e *echo.Echo, l *zap.Logger, aggregator *usecase.Aggregator) {
	health.Configure(e, l)
	profile.Configure(e, l, aggregator)
}
