package profile

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-profile/internal/api/web"
	"github.com/naka-gawa/github-profile/internal/usecase"
)

// Configure registers the profile routes.
func Configure(e *echo.Echo, l *zap.Logger, aggregator *usecase.Aggregator) {
	h := &Handler{aggregator: aggregator}
	e.GET("/api/github", web.Wrap(h.Get, l))
}
