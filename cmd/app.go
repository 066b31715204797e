package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/naka-gawa/github-profile/internal/config"
	"github.com/naka-gawa/github-profile/internal/gateway"
	"github.com/naka-gawa/github-profile/internal/usecase"
)

// newFetcher builds the configured gateway, wrapped in the response cache when enabled.
func newFetcher(cfg *config.Config, l *zap.Logger) (gateway.Fetcher, error) {
	opts := gateway.Options{
		BaseURL:           cfg.GitHub.BaseURL,
		GraphQLURL:        cfg.GitHub.GraphQLURL,
		Token:             cfg.GitHub.Token,
		MaxRateLimitSleep: cfg.GitHub.MaxRateLimitSleep,
		Timeout:           cfg.GitHub.Timeout,
	}

	var fetcher gateway.Fetcher
	switch cfg.GitHub.API {
	case config.APIGraphQL:
		g, err := gateway.NewGraphQLGateway(opts, l)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitHub GraphQL gateway: %w", err)
		}
		fetcher = g
	default:
		g, err := gateway.NewGitHubGateway(opts, l)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
		}
		fetcher = g
	}

	if cfg.Cache.Enabled {
		fetcher = gateway.NewCachingFetcher(fetcher, cfg.Cache.TTL, l)
	}
	l.Debug("gateway ready",
		zap.String("api", cfg.GitHub.API),
		zap.Bool("cache", cfg.Cache.Enabled),
		zap.Bool("authenticated", cfg.GitHub.Token != ""),
	)
	return fetcher, nil
}

func newAggregator(fetcher gateway.Fetcher, cfg *config.Config, l *zap.Logger) *usecase.Aggregator {
	return usecase.NewAggregator(fetcher, cfg.Query.DefaultUsername, l)
}
