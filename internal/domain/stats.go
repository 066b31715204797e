package domain

import (
	"sort"

	"github.com/montanaflynn/stats"
)

// TopRepositoryCount is the number of repositories kept in the ranking.
const TopRepositoryCount = 6

// Totals holds the star and fork sums over non-fork repositories.
type Totals struct {
	Stars int
	Forks int
}

// StarDistribution describes how stars are spread over non-fork repositories.
type StarDistribution struct {
	Mean   float64
	Median float64
	Max    int
}

// AggregateSummary is derived from a repository set on every query.
// It is the core domain entity of this application.
type AggregateSummary struct {
	Totals       Totals
	Languages    map[string]int
	TopRepos     []Repository
	Distribution StarDistribution
}

// Summarize computes the aggregate summary for a profile's repositories.
// The profile record itself contributes nothing to the summary.
// Forks are ignored everywhere. The ranking is a stable sort by stars, so
// repositories with equal stars keep their input order.
func Summarize(repos []Repository) AggregateSummary {
	summary := AggregateSummary{
		Languages: make(map[string]int),
		TopRepos:  []Repository{},
	}

	owned := make([]Repository, 0, len(repos))
	for _, r := range repos {
		if r.Fork {
			continue
		}
		owned = append(owned, r)
		summary.Totals.Stars += r.Stars
		summary.Totals.Forks += r.Forks
		if r.HasLanguage() {
			summary.Languages[*r.Language]++
		}
	}

	ranked := make([]Repository, len(owned))
	copy(ranked, owned)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Stars > ranked[j].Stars
	})
	if len(ranked) > TopRepositoryCount {
		ranked = ranked[:TopRepositoryCount]
	}
	summary.TopRepos = ranked
	summary.Distribution = starDistribution(owned)

	return summary
}

func starDistribution(repos []Repository) StarDistribution {
	if len(repos) == 0 {
		return StarDistribution{}
	}
	data := make(stats.Float64Data, 0, len(repos))
	for _, r := range repos {
		data = append(data, float64(r.Stars))
	}
	// Errors only occur on empty input, which is handled above.
	mean, _ := data.Mean()
	median, _ := data.Median()
	highest, _ := data.Max()
	return StarDistribution{
		Mean:   mean,
		Median: median,
		Max:    int(highest),
	}
}

// LanguageCount is one histogram entry.
type LanguageCount struct {
	Language string
	Count    int
}

// TopLanguages returns the n most used languages, ordered by count and then by name.
// A non-positive n returns every entry.
func TopLanguages(histogram map[string]int, n int) []LanguageCount {
	entries := make([]LanguageCount, 0, len(histogram))
	for lang, count := range histogram {
		entries = append(entries, LanguageCount{Language: lang, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Language < entries[j].Language
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
