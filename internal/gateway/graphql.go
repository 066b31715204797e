package gateway

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-profile/internal/domain"
)

// DefaultGraphQLURL is the public GitHub GraphQL endpoint.
const DefaultGraphQLURL = "https://api.github.com/graphql"

// ErrTokenRequired is returned when the GraphQL gateway is built without a credential.
var ErrTokenRequired = errors.New("the GraphQL API requires a GitHub token")

// GraphQLGateway implements Fetcher on top of the GitHub GraphQL API.
type GraphQLGateway struct {
	graphqlClient *githubv4.Client
	logger        *zap.Logger
}

// profileQuery selects the fields of domain.Profile.
type profileQuery struct {
	User *struct {
		Login           githubv4.String
		Name            *githubv4.String
		AvatarURL       githubv4.String `graphql:"avatarUrl"`
		Bio             *githubv4.String
		WebsiteURL      *githubv4.String `graphql:"websiteUrl"`
		Company         *githubv4.String
		Location        *githubv4.String
		TwitterUsername *githubv4.String
		URL             githubv4.String
		Followers       struct {
			TotalCount githubv4.Int
		}
		Following struct {
			TotalCount githubv4.Int
		}
		Repositories struct {
			TotalCount githubv4.Int
		} `graphql:"repositories(privacy: PUBLIC)"`
	} `graphql:"user(login: $login)"`
}

// repositoriesQuery mirrors the REST listing: owned repositories, most recently updated first.
type repositoriesQuery struct {
	User *struct {
		Repositories struct {
			Nodes []struct {
				Name            githubv4.String
				URL             githubv4.String
				Description     *githubv4.String
				PrimaryLanguage *struct {
					Name githubv4.String
				}
				StargazerCount githubv4.Int
				ForkCount      githubv4.Int
				UpdatedAt      githubv4.DateTime
				IsFork         githubv4.Boolean
			}
		} `graphql:"repositories(first: $first, ownerAffiliations: OWNER, privacy: PUBLIC, orderBy: {field: UPDATED_AT, direction: DESC})"`
	} `graphql:"user(login: $login)"`
}

// NewGraphQLGateway creates a GraphQL gateway pointed at opts.GraphQLURL.
func NewGraphQLGateway(opts Options, logger *zap.Logger) (*GraphQLGateway, error) {
	if opts.Token == "" {
		return nil, ErrTokenRequired
	}
	httpClient, err := NewHTTPClient(opts)
	if err != nil {
		return nil, err
	}
	return newGraphQLGateway(opts.GraphQLURL, httpClient, logger), nil
}

func newGraphQLGateway(endpoint string, httpClient *http.Client, logger *zap.Logger) *GraphQLGateway {
	if endpoint == "" {
		endpoint = DefaultGraphQLURL
	}
	return &GraphQLGateway{
		graphqlClient: githubv4.NewEnterpriseClient(endpoint, httpClient),
		logger:        logger,
	}
}

// FetchProfile fetches the public profile of username.
func (g *GraphQLGateway) FetchProfile(ctx context.Context, username string) (*domain.Profile, error) {
	g.logger.Debug("fetching profile via GraphQL", zap.String("username", username))
	var q profileQuery
	variables := map[string]interface{}{"login": githubv4.String(username)}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, graphqlError(err)
	}
	if q.User == nil {
		return nil, newUpstreamError(http.StatusNotFound, "")
	}
	u := q.User
	return &domain.Profile{
		Login:           string(u.Login),
		Name:            optionalString(u.Name),
		AvatarURL:       string(u.AvatarURL),
		Bio:             optionalString(u.Bio),
		Blog:            optionalString(u.WebsiteURL),
		Company:         optionalString(u.Company),
		Location:        optionalString(u.Location),
		TwitterUsername: optionalString(u.TwitterUsername),
		Followers:       int(u.Followers.TotalCount),
		Following:       int(u.Following.TotalCount),
		PublicRepos:     int(u.Repositories.TotalCount),
		HTMLURL:         string(u.URL),
	}, nil
}

// FetchRepositories fetches the most recently updated repositories of username.
func (g *GraphQLGateway) FetchRepositories(ctx context.Context, username string) ([]domain.Repository, error) {
	g.logger.Debug("fetching repositories via GraphQL", zap.String("username", username))
	var q repositoriesQuery
	variables := map[string]interface{}{
		"login": githubv4.String(username),
		"first": githubv4.Int(RepositoryPageSize),
	}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, graphqlError(err)
	}
	if q.User == nil {
		return nil, newUpstreamError(http.StatusNotFound, "")
	}

	nodes := q.User.Repositories.Nodes
	result := make([]domain.Repository, 0, len(nodes))
	for _, n := range nodes {
		repo := domain.Repository{
			Name:        string(n.Name),
			HTMLURL:     string(n.URL),
			Description: optionalString(n.Description),
			Stars:       int(n.StargazerCount),
			Forks:       int(n.ForkCount),
			Fork:        bool(n.IsFork),
		}
		if n.PrimaryLanguage != nil {
			lang := string(n.PrimaryLanguage.Name)
			repo.Language = &lang
		}
		if !n.UpdatedAt.IsZero() {
			updated := n.UpdatedAt.Time
			repo.UpdatedAt = &updated
		}
		result = append(result, repo)
	}
	return result, nil
}

// non200Status matches the error githubv4 returns for a non-200 HTTP response.
var non200Status = regexp.MustCompile(`non-200 OK status code: (\d{3})`)

// graphqlError maps a failed query onto an UpstreamError.
// GitHub reports unknown users as a query error rather than an HTTP status.
func graphqlError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	msg := err.Error()
	if m := non200Status.FindStringSubmatch(msg); m != nil {
		if code, convErr := strconv.Atoi(m[1]); convErr == nil {
			return newUpstreamError(code, "")
		}
	}
	if strings.Contains(msg, "Could not resolve to a User") {
		return newUpstreamError(http.StatusNotFound, msg)
	}
	return newUpstreamError(http.StatusBadGateway, msg)
}

func optionalString(s *githubv4.String) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}
