// Package snapshot defines the point-in-time export of organization data that
// the progress and utilization calculations consume, and its JSON codec.
package snapshot

import (
	"strings"
	"time"
)

// Issue states as reported by GitHub. Comparisons are case-insensitive, so the
// GraphQL forms (OPEN, CLOSED) are accepted as well.
const (
	StateOpen   = "open"
	StateClosed = "closed"
)

// Snapshot holds all the organization data captured at a single moment.
type Snapshot struct {
	Projects     []Project     `json:"projects"`
	Issues       []Issue       `json:"issues"`
	Members      []Member      `json:"members"`
	PullRequests []PullRequest `json:"pullRequests"`
	Commits      []Commit      `json:"commits"`
	Repositories []Repository  `json:"repositories,omitempty"` // Only present on live snapshots
}

// Project groups issues from any repository under a number unique within the snapshot.
type Project struct {
	Number int           `json:"number"`
	Name   string        `json:"name"`
	Issues []ProjectItem `json:"issues"`
}

// ProjectItem references an issue by its composite key (number, repository).
type ProjectItem struct {
	Number     int    `json:"number"`
	Repository string `json:"repository"`
	Status     string `json:"status,omitempty"` // Board column, e.g. "todo", "in progress"
}

// Ref is a by-name reference to a repository.
type Ref struct {
	Name string `json:"name"`
}

// Login is a by-login reference to a GitHub user.
type Login struct {
	Login string `json:"login"`
}

// Issue is a GitHub issue as seen in the snapshot.
type Issue struct {
	Number     int        `json:"number"`
	Title      string     `json:"title,omitempty"`
	Repository Ref        `json:"repository"`
	State      string     `json:"state"`
	Body       string     `json:"body,omitempty"`
	Assignee   *Login     `json:"assignee,omitempty"`
	Labels     []string   `json:"labels,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
	ClosedAt   *time.Time `json:"closedAt,omitempty"`
}

// Member is an organization member.
type Member struct {
	Login string `json:"login"`
	Name  string `json:"name,omitempty"`
}

// PullRequest is a pull request authored in one of the organization repositories.
type PullRequest struct {
	Number     int        `json:"number,omitempty"`
	Repository Ref        `json:"repository"`
	Author     *Login     `json:"author,omitempty"`
	State      string     `json:"state,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	MergedAt   *time.Time `json:"mergedAt,omitempty"`
}

// Commit is a commit pushed to one of the organization repositories.
type Commit struct {
	SHA           string     `json:"oid,omitempty"`
	Repository    Ref        `json:"repository"`
	Author        *Login     `json:"author,omitempty"` // nil when GitHub could not map the author
	CommittedDate *time.Time `json:"committedDate,omitempty"`
}

// Repository is an organization repository.
type Repository struct {
	Name string `json:"name"`
}

// AssigneeLogin returns the assignee login, or "" when the issue is unassigned.
func (i Issue) AssigneeLogin() string {
	if i.Assignee == nil {
		return ""
	}
	return i.Assignee.Login
}

// IsOpen reports whether the issue is open.
func (i Issue) IsOpen() bool {
	return strings.EqualFold(i.State, StateOpen)
}

// IsClosed reports whether the issue is closed.
func (i Issue) IsClosed() bool {
	return strings.EqualFold(i.State, StateClosed)
}

// CompletedAt returns closedAt, falling back to updatedAt. It returns nil when neither is set.
func (i Issue) CompletedAt() *time.Time {
	if i.ClosedAt != nil {
		return i.ClosedAt
	}
	return i.UpdatedAt
}

// HasLabel reports whether any label contains sub, ignoring case.
func (i Issue) HasLabel(sub string) bool {
	sub = strings.ToLower(sub)
	for _, l := range i.Labels {
		if strings.Contains(strings.ToLower(l), sub) {
			return true
		}
	}
	return false
}

// AuthorLogin returns the author login, or "" when unknown.
func (p PullRequest) AuthorLogin() string {
	if p.Author == nil {
		return ""
	}
	return p.Author.Login
}

// IsMerged reports whether the pull request was merged.
func (p PullRequest) IsMerged() bool {
	return p.MergedAt != nil || strings.EqualFold(p.State, "merged")
}

// AuthorLogin returns the author login, or "" when unknown.
func (c Commit) AuthorLogin() string {
	if c.Author == nil {
		return ""
	}
	return c.Author.Login
}

// Contains reports whether the project lists the issue identified by (number, repository).
func (p Project) Contains(number int, repository string) bool {
	for _, item := range p.Issues {
		if item.Number == number && item.Repository == repository {
			return true
		}
	}
	return false
}
