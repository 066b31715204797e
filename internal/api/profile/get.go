// Package profile serves the profile statistics query.
package profile

import (
	"errors"

	"go.uber.org/zap"

	"github.com/naka-gawa/github-profile/internal/api/web"
	"github.com/naka-gawa/github-profile/internal/gateway"
	"github.com/naka-gawa/github-profile/internal/usecase"
)

// Handler serves profile reports.
type Handler struct {
	aggregator *usecase.Aggregator
}

// Get handles GET /api/github?u=<username>
func (h *Handler) Get(c web.Context) error {
	ctx := c.Request().Context()
	username := h.aggregator.ResolveUsername(c.QueryParam(usecase.UsernameParam))

	report, err := h.aggregator.Aggregate(ctx, username)
	if err != nil {
		var upstream *gateway.UpstreamError
		if errors.As(err, &upstream) {
			c.L.Warn("upstream request failed",
				zap.String("username", username),
				zap.Int("upstream_status", upstream.StatusCode),
				zap.Error(err),
			)
		} else {
			c.L.Error("failed to aggregate profile", zap.String("username", username), zap.Error(err))
		}
		return c.InternalError(err.Error())
	}

	c.Response().Header().Set("Cache-Control", usecase.CacheControl)
	return c.OK(report)
}
