package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func repo(name string, stars, forks int, lang *string, fork bool) Repository {
	return Repository{Name: name, Stars: stars, Forks: forks, Language: lang, Fork: fork}
}

func names(repos []Repository) []string {
	out := make([]string, 0, len(repos))
	for _, r := range repos {
		out = append(out, r.Name)
	}
	return out
}

func TestSummarize(t *testing.T) {
	testCases := []struct {
		name              string
		repos             []Repository
		expectedTotals    Totals
		expectedLanguages map[string]int
		expectedTop       []string
	}{
		{
			name: "forks are excluded from totals, histogram and ranking",
			repos: []Repository{
				repo("a", 10, 2, strPtr("Go"), false),
				repo("b", 50, 1, strPtr("Go"), false),
				repo("c", 5, 0, nil, true),
			},
			expectedTotals:    Totals{Stars: 60, Forks: 3},
			expectedLanguages: map[string]int{"Go": 2},
			expectedTop:       []string{"b", "a"},
		},
		{
			name:              "empty input",
			repos:             nil,
			expectedTotals:    Totals{},
			expectedLanguages: map[string]int{},
			expectedTop:       []string{},
		},
		{
			name: "missing language counts toward totals only",
			repos: []Repository{
				repo("a", 3, 1, nil, false),
				repo("b", 4, 0, strPtr(""), false),
				repo("c", 1, 1, strPtr("Rust"), false),
			},
			expectedTotals:    Totals{Stars: 8, Forks: 2},
			expectedLanguages: map[string]int{"Rust": 1},
			expectedTop:       []string{"b", "a", "c"},
		},
		{
			name: "ranking keeps six and preserves input order on ties",
			repos: []Repository{
				repo("r1", 1, 0, nil, false),
				repo("r2", 7, 0, nil, false),
				repo("r3", 7, 0, nil, false),
				repo("r4", 3, 0, nil, false),
				repo("r5", 7, 0, nil, false),
				repo("fork", 100, 0, nil, true),
				repo("r6", 0, 0, nil, false),
				repo("r7", 2, 0, nil, false),
				repo("r8", 3, 0, nil, false),
			},
			expectedTotals:    Totals{Stars: 30},
			expectedLanguages: map[string]int{},
			expectedTop:       []string{"r2", "r3", "r5", "r4", "r8", "r7"},
		},
		{
			name: "only forks",
			repos: []Repository{
				repo("a", 9, 9, strPtr("C"), true),
			},
			expectedTotals:    Totals{},
			expectedLanguages: map[string]int{},
			expectedTop:       []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			summary := Summarize(tc.repos)

			assert.Equal(t, tc.expectedTotals, summary.Totals)
			assert.Equal(t, tc.expectedLanguages, summary.Languages)
			require.NotNil(t, summary.TopRepos)
			assert.Equal(t, tc.expectedTop, names(summary.TopRepos))
		})
	}
}

func TestSummarize_DoesNotReorderInput(t *testing.T) {
	repos := []Repository{
		repo("low", 1, 0, nil, false),
		repo("high", 9, 0, nil, false),
	}

	Summarize(repos)

	assert.Equal(t, []string{"low", "high"}, names(repos))
}

func TestSummarize_StarDistribution(t *testing.T) {
	repos := []Repository{
		repo("a", 1, 0, nil, false),
		repo("b", 3, 0, nil, false),
		repo("c", 8, 0, nil, false),
		repo("d", 1000, 0, nil, true),
	}

	summary := Summarize(repos)

	assert.InDelta(t, 4.0, summary.Distribution.Mean, 0.0001)
	assert.InDelta(t, 3.0, summary.Distribution.Median, 0.0001)
	assert.Equal(t, 8, summary.Distribution.Max)

	assert.Equal(t, StarDistribution{}, Summarize(nil).Distribution)
}

func TestTopLanguages(t *testing.T) {
	histogram := map[string]int{
		"Go": 5, "Rust": 2, "C": 2, "Python": 9, "Shell": 1,
	}

	assert.Equal(t, []LanguageCount{
		{Language: "Python", Count: 9},
		{Language: "Go", Count: 5},
		{Language: "C", Count: 2},
	}, TopLanguages(histogram, 3))

	assert.Len(t, TopLanguages(histogram, 8), 5)
	assert.Len(t, TopLanguages(histogram, 0), 5)
	assert.Empty(t, TopLanguages(nil, 8))
}
