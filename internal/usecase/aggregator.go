// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-profile/internal/domain"
	"github.com/naka-gawa/github-profile/internal/gateway"
)

// Aggregator is the use case behind the profile query.
// It orchestrates the fetching and summarizing of data.
type Aggregator struct {
	fetcher         gateway.Fetcher
	defaultUsername string
	logger          *zap.Logger
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, defaultUsername string, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		fetcher:         fetcher,
		defaultUsername: defaultUsername,
		logger:          logger,
	}
}

// ResolveUsername trims username and falls back to the configured default when blank.
func (a *Aggregator) ResolveUsername(username string) string {
	username = strings.TrimSpace(username)
	if username == "" {
		return a.defaultUsername
	}
	return username
}

// Aggregate fetches the profile and repositories of username concurrently and
// summarizes them. If either fetch fails, the other is cancelled and no
// partial report is returned.
func (a *Aggregator) Aggregate(ctx context.Context, username string) (*Report, error) {
	username = a.ResolveUsername(username)
	log := a.logger.With(zap.String("username", username))
	log.Debug("starting aggregation")

	var (
		profile *domain.Profile
		repos   []domain.Repository
	)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		profile, err = a.fetcher.FetchProfile(egCtx, username)
		return err
	})

	eg.Go(func() error {
		var err error
		repos, err = a.fetcher.FetchRepositories(egCtx, username)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	summary := domain.Summarize(repos)
	log.Debug("aggregation complete",
		zap.Int("repositories", len(repos)),
		zap.Int("total_stars", summary.Totals.Stars),
	)
	return NewReport(profile, summary), nil
}
