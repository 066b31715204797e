package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-profile/internal/config"
	"github.com/naka-gawa/github-profile/internal/domain"
	"github.com/naka-gawa/github-profile/internal/gateway"
	"github.com/naka-gawa/github-profile/internal/usecase"
)

// stubFetcher serves canned records and remembers which usernames were requested.
type stubFetcher struct {
	mu         sync.Mutex
	requested  []string
	profileErr error
}

func (s *stubFetcher) FetchProfile(_ context.Context, username string) (*domain.Profile, error) {
	s.mu.Lock()
	s.requested = append(s.requested, username)
	s.mu.Unlock()
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	return &domain.Profile{Login: username, Followers: 7}, nil
}

func (s *stubFetcher) FetchRepositories(_ context.Context, _ string) ([]domain.Repository, error) {
	lang := "Go"
	return []domain.Repository{
		{Name: "a", Stars: 10, Forks: 2, Language: &lang},
		{Name: "b", Stars: 50, Forks: 1, Language: &lang},
		{Name: "c", Stars: 5, Fork: true},
	}, nil
}

func newTestServer(t *testing.T, fetcher gateway.Fetcher) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Server: config.Server{Port: 8080, CorsAllowedOrigins: []string{"*"}},
		Log:    config.Log{Level: "info"},
	}
	aggregator := usecase.NewAggregator(fetcher, "octocat", zap.NewNop())
	return New(cfg, zap.NewNop(), aggregator)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestProfileEndpoint_Success(t *testing.T) {
	fetcher := &stubFetcher{}
	rec := get(t, newTestServer(t, fetcher), "/api/github?u=torvalds")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, usecase.CacheControl, rec.Header().Get("Cache-Control"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	var report usecase.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "torvalds", report.Profile.Login)
	assert.Equal(t, usecase.TotalsView{TotalStars: 60, TotalForks: 3}, report.Totals)
	assert.Equal(t, map[string]int{"Go": 2}, report.Languages)
	require.Len(t, report.TopRepos, 2)
	assert.Equal(t, "b", report.TopRepos[0].Name)
	assert.Equal(t, "a", report.TopRepos[1].Name)
}

func TestProfileEndpoint_DefaultUsername(t *testing.T) {
	testCases := []struct {
		name   string
		target string
	}{
		{name: "parameter omitted", target: "/api/github"},
		{name: "parameter blank", target: "/api/github?u=%20%20"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := &stubFetcher{}
			rec := get(t, newTestServer(t, fetcher), tc.target)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, []string{"octocat"}, fetcher.requested)
		})
	}
}

func TestProfileEndpoint_UpstreamFailure(t *testing.T) {
	fetcher := &stubFetcher{profileErr: &gateway.UpstreamError{StatusCode: 404, Message: "Not Found"}}
	rec := get(t, newTestServer(t, fetcher), "/api/github?u=ghost")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Header().Get("Cache-Control"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{"error": "GitHub API error: 404 Not Found"}, body)
}

func TestHealthEndpoint(t *testing.T) {
	rec := get(t, newTestServer(t, &stubFetcher{}), "/healthz")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
