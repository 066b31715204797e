package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-profile/internal/domain"
)

// countingFetcher records how often each method reaches the upstream.
type countingFetcher struct {
	profileCalls int
	reposCalls   int
	err          error
}

func (f *countingFetcher) FetchProfile(_ context.Context, username string) (*domain.Profile, error) {
	f.profileCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Profile{Login: username}, nil
}

func (f *countingFetcher) FetchRepositories(_ context.Context, username string) ([]domain.Repository, error) {
	f.reposCalls++
	if f.err != nil {
		return nil, f.err
	}
	return []domain.Repository{{Name: username + "-repo", Stars: 1}}, nil
}

func TestCachingFetcher_Hit(t *testing.T) {
	inner := &countingFetcher{}
	c := NewCachingFetcher(inner, time.Hour, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		profile, err := c.FetchProfile(ctx, "octocat")
		require.NoError(t, err)
		assert.Equal(t, "octocat", profile.Login)

		repos, err := c.FetchRepositories(ctx, "octocat")
		require.NoError(t, err)
		assert.Len(t, repos, 1)
	}

	assert.Equal(t, 1, inner.profileCalls)
	assert.Equal(t, 1, inner.reposCalls)

	// Logins are case-insensitive.
	_, err := c.FetchProfile(ctx, "OctoCat")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.profileCalls)
}

func TestCachingFetcher_ReturnsCopies(t *testing.T) {
	c := NewCachingFetcher(&countingFetcher{}, time.Hour, zap.NewNop())
	ctx := context.Background()

	repos, err := c.FetchRepositories(ctx, "octocat")
	require.NoError(t, err)
	repos[0].Stars = 999

	again, err := c.FetchRepositories(ctx, "octocat")
	require.NoError(t, err)
	assert.Equal(t, 1, again[0].Stars)
}

func TestCachingFetcher_ErrorsAreNotCached(t *testing.T) {
	inner := &countingFetcher{err: errors.New("boom")}
	c := NewCachingFetcher(inner, time.Hour, zap.NewNop())
	ctx := context.Background()

	_, err := c.FetchProfile(ctx, "octocat")
	assert.Error(t, err)
	_, err = c.FetchProfile(ctx, "octocat")
	assert.Error(t, err)
	assert.Equal(t, 2, inner.profileCalls)

	inner.err = nil
	_, err = c.FetchProfile(ctx, "octocat")
	require.NoError(t, err)
	assert.Equal(t, 3, inner.profileCalls)
}

func TestCachingFetcher_Expiry(t *testing.T) {
	inner := &countingFetcher{}
	c := NewCachingFetcher(inner, 10*time.Millisecond, zap.NewNop())
	ctx := context.Background()

	_, err := c.FetchProfile(ctx, "octocat")
	require.NoError(t, err)
	time.Sleep(30 * time.Millisecond)
	_, err = c.FetchProfile(ctx, "octocat")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.profileCalls)
}

func TestCachingFetcher_Flush(t *testing.T) {
	inner := &countingFetcher{}
	c := NewCachingFetcher(inner, time.Hour, zap.NewNop())
	ctx := context.Background()

	_, _ = c.FetchRepositories(ctx, "octocat")
	c.Flush()
	_, _ = c.FetchRepositories(ctx, "octocat")

	assert.Equal(t, 2, inner.reposCalls)
}
