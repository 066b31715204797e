// Package health serves the liveness check.
package health

import (
	"github.com/naka-gawa/github-profile/internal/api/web"
)

// GetResponse is the health check response
type GetResponse struct {
	Status string `json:"status"`
}

// Get handles GET /healthz
func Get(c web.Context) error {
	return c.OK(GetResponse{Status: "ok"})
}
