package health

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-profile/internal/api/web"
)

// Configure registers the health route.
func Configure(e *echo.Echo, l *zap.Logger) {
	e.GET("/healthz", web.Wrap(Get, l))
}
