package usecase

import (
	"time"

	"github.com/naka-gawa/github-profile/internal/domain"
)

// UsernameParam is the query parameter carrying the username.
const UsernameParam = "u"

// CacheControl is sent with every successful response.
const CacheControl = "public, s-maxage=3600, stale-while-revalidate=86400"

// Report is the query response. Field names are part of the public API.
type Report struct {
	Profile          ProfileView          `json:"profile"`
	Totals           TotalsView           `json:"totals"`
	Languages        map[string]int       `json:"languages"`
	TopRepos         []RepositoryView     `json:"topRepos"`
	StarDistribution StarDistributionView `json:"starDistribution"`
}

// ProfileView is the subset of domain.Profile exposed to clients.
type ProfileView struct {
	Login           string  `json:"login"`
	Name            *string `json:"name"`
	AvatarURL       string  `json:"avatar_url"`
	Bio             *string `json:"bio"`
	Blog            *string `json:"blog"`
	Company         *string `json:"company"`
	Followers       int     `json:"followers"`
	Following       int     `json:"following"`
	PublicRepos     int     `json:"public_repos"`
	HTMLURL         string  `json:"html_url"`
	Location        *string `json:"location"`
	TwitterUsername *string `json:"twitter_username"`
}

// TotalsView holds the star and fork sums.
type TotalsView struct {
	TotalStars int `json:"totalStars"`
	TotalForks int `json:"totalForks"`
}

// RepositoryView is a ranked repository as exposed to clients.
type RepositoryView struct {
	Name            string     `json:"name"`
	HTMLURL         string     `json:"html_url"`
	Description     *string    `json:"description"`
	Language        *string    `json:"language"`
	StargazersCount int        `json:"stargazers_count"`
	ForksCount      int        `json:"forks_count"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

// StarDistributionView summarizes stars per repository.
type StarDistributionView struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    int     `json:"max"`
}

// NewReport projects a profile and its summary onto the response shape.
func NewReport(profile *domain.Profile, summary domain.AggregateSummary) *Report {
	top := make([]RepositoryView, 0, len(summary.TopRepos))
	for _, r := range summary.TopRepos {
		top = append(top, RepositoryView{
			Name:            r.Name,
			HTMLURL:         r.HTMLURL,
			Description:     r.Description,
			Language:        r.Language,
			StargazersCount: r.Stars,
			ForksCount:      r.Forks,
			UpdatedAt:       r.UpdatedAt,
		})
	}

	languages := summary.Languages
	if languages == nil {
		languages = map[string]int{}
	}

	return &Report{
		Profile: ProfileView{
			Login:           profile.Login,
			Name:            profile.Name,
			AvatarURL:       profile.AvatarURL,
			Bio:             profile.Bio,
			Blog:            profile.Blog,
			Company:         profile.Company,
			Followers:       profile.Followers,
			Following:       profile.Following,
			PublicRepos:     profile.PublicRepos,
			HTMLURL:         profile.HTMLURL,
			Location:        profile.Location,
			TwitterUsername: profile.TwitterUsername,
		},
		Totals: TotalsView{
			TotalStars: summary.Totals.Stars,
			TotalForks: summary.Totals.Forks,
		},
		Languages: languages,
		TopRepos:  top,
		StarDistribution: StarDistributionView{
			Mean:   summary.Distribution.Mean,
			Median: summary.Distribution.Median,
			Max:    summary.Distribution.Max,
		},
	}
}
