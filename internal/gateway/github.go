// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/github-profile/internal/domain"
)

// RepositoryPageSize is the size of the single repository page requested per user.
const RepositoryPageSize = 100

// DefaultBaseURL is the root of the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com/"

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchProfile(ctx context.Context, username string) (*domain.Profile, error)
	FetchRepositories(ctx context.Context, username string) ([]domain.Repository, error)
}

// Options configures the HTTP side of a gateway.
type Options struct {
	// BaseURL is the REST API root. Empty means DefaultBaseURL.
	BaseURL string
	// GraphQLURL is the GraphQL endpoint. Empty means DefaultGraphQLURL.
	GraphQLURL string
	// Token is an optional bearer credential attached to every request.
	Token string
	// MaxRateLimitSleep bounds a single wait on a secondary rate limit.
	// Zero hands the limited response straight back to the caller.
	MaxRateLimitSleep time.Duration
	// Timeout bounds each upstream request. Zero means no timeout.
	Timeout time.Duration
}

// GitHubGateway is the REST implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient *github.Client
	logger     *zap.Logger
}

// NewHTTPClient builds the HTTP client shared by the REST and GraphQL gateways.
func NewHTTPClient(opts Options) (*http.Client, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(opts.MaxRateLimitSleep, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	var transport http.RoundTripper = rateLimitWaiter
	if opts.Token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}),
		}
	}
	return &http.Client{Transport: transport, Timeout: opts.Timeout}, nil
}

// NewGitHubGateway creates a REST gateway pointed at opts.BaseURL.
func NewGitHubGateway(opts Options, logger *zap.Logger) (*GitHubGateway, error) {
	httpClient, err := NewHTTPClient(opts)
	if err != nil {
		return nil, err
	}
	restClient := github.NewClient(httpClient)

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub base URL %q: %w", opts.BaseURL, err)
	}
	restClient.BaseURL = parsed

	return &GitHubGateway{
		restClient: restClient,
		logger:     logger,
	}, nil
}

// FetchProfile fetches the public profile of username.
func (g *GitHubGateway) FetchProfile(ctx context.Context, username string) (*domain.Profile, error) {
	g.logger.Debug("fetching profile", zap.String("username", username))
	user, _, err := g.restClient.Users.Get(ctx, url.PathEscape(username))
	if err != nil {
		return nil, g.fail("failed to fetch profile", username, err)
	}
	return profileFromUser(user), nil
}

// FetchRepositories fetches the most recently updated repositories of username.
// Only the first page is requested.
func (g *GitHubGateway) FetchRepositories(ctx context.Context, username string) ([]domain.Repository, error) {
	g.logger.Debug("fetching repositories", zap.String("username", username))
	opts := &github.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: RepositoryPageSize},
	}
	repos, _, err := g.restClient.Repositories.ListByUser(ctx, url.PathEscape(username), opts)
	if err != nil {
		return nil, g.fail("failed to list repositories", username, err)
	}
	result := make([]domain.Repository, 0, len(repos))
	for _, r := range repos {
		if r == nil {
			continue
		}
		result = append(result, repositoryFromREST(r))
	}
	g.logger.Debug("fetched repositories", zap.String("username", username), zap.Int("count", len(result)))
	return result, nil
}

func (g *GitHubGateway) fail(msg, username string, err error) error {
	err = asUpstreamError(err)
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		g.logger.Debug(msg, zap.String("username", username), zap.Int("status", upstream.StatusCode))
		return upstream
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func profileFromUser(u *github.User) *domain.Profile {
	return &domain.Profile{
		Login:           u.GetLogin(),
		Name:            u.Name,
		AvatarURL:       u.GetAvatarURL(),
		Bio:             u.Bio,
		Blog:            u.Blog,
		Company:         u.Company,
		Location:        u.Location,
		TwitterUsername: u.TwitterUsername,
		Followers:       u.GetFollowers(),
		Following:       u.GetFollowing(),
		PublicRepos:     u.GetPublicRepos(),
		HTMLURL:         u.GetHTMLURL(),
	}
}

func repositoryFromREST(r *github.Repository) domain.Repository {
	repo := domain.Repository{
		Name:        r.GetName(),
		HTMLURL:     r.GetHTMLURL(),
		Description: r.Description,
		Language:    r.Language,
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		Fork:        r.GetFork(),
	}
	if r.UpdatedAt != nil {
		updated := r.UpdatedAt.Time
		repo.UpdatedAt = &updated
	}
	return repo
}
