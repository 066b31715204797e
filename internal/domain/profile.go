// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// Profile is the identity record of a GitHub account.
// Optional fields are nil when the upstream record leaves them empty.
type Profile struct {
	Login           string
	Name            *string
	AvatarURL       string
	Bio             *string
	Blog            *string
	Company         *string
	Location        *string
	TwitterUsername *string
	Followers       int
	Following       int
	PublicRepos     int
	HTMLURL         string
}

// Repository is a single repository owned by the profile.
type Repository struct {
	Name        string
	HTMLURL     string
	Description *string
	Language    *string
	Stars       int
	Forks       int
	UpdatedAt   *time.Time
	Fork        bool
}

// HasLanguage reports whether the repository carries a primary language tag.
func (r Repository) HasLanguage() bool {
	return r.Language != nil && *r.Language != ""
}
