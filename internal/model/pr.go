// Package model contains domain types for pull request evaluation.
// These types are independent of any external GitHub library.
package model

import "time"

// PullRequest is a read-only snapshot of the pull request under evaluation.
type PullRequest struct {
	Number          int       `json:"number"`
	Title           string    `json:"title"`
	Body            string    `json:"body"`
	Author          string    `json:"author"`
	AuthorType      string    `json:"authorType"` // User, Bot, Organization
	AuthorCreatedAt time.Time `json:"authorCreatedAt"`
	CreatedAt       time.Time `json:"createdAt"`
	Additions       int       `json:"additions"`
	Deletions       int       `json:"deletions"`
	ChangedFiles    int       `json:"changedFiles"`
	HeadRef         string    `json:"headRef"`
	BaseRef         string    `json:"baseRef"`
	HTMLURL         string    `json:"htmlUrl,omitempty"`
}

// ChangedFile is a single file in the pull request diff.
// Patch is the unified diff text; it is empty for binary or oversized files.
type ChangedFile struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"` // added, modified, removed, renamed
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Changes   int    `json:"changes"`
	Patch     string `json:"patch,omitempty"`
}

// AuthorPR is a lightweight record of another pull request opened by the
// same author, used for velocity and cross-repo duplication analysis.
type AuthorPR struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Repo      string    `json:"repo"` // owner/name
	CreatedAt time.Time `json:"createdAt"`
}

// AbandonmentStats summarizes the author's historical closed pull requests
// in the target repository.
type AbandonmentStats struct {
	Total     int     `json:"total"`     // closed PRs, merged or not
	Abandoned int     `json:"abandoned"` // closed without merge
	Rate      float64 `json:"rate"`      // percent closed without merge
}

// Snapshot bundles every input the scoring engine consumes for one
// evaluation. The engine treats all of it as immutable.
type Snapshot struct {
	PR              PullRequest      `json:"pr"`
	Files           []ChangedFile    `json:"files"`
	RecentRepoPRs   []AuthorPR       `json:"recentRepoPrs"`   // same repo, trailing 24h
	RecentPublicPRs []AuthorPR       `json:"recentPublicPrs"` // any public repo, trailing 7d
	Abandonment     AbandonmentStats `json:"abandonment"`
	ProjectDeps     map[string]bool  `json:"projectDeps"` // declared dependency names
}
