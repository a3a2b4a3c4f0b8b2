package collector

import (
	"time"

	"github.com/google/go-github/v62/github"
	"go.uber.org/zap"

	"github.com/raywall/gh-org-progress/config"
	"github.com/raywall/gh-org-progress/snapshot"
)

// Collector builds a live snapshot of a GitHub organization.
type Collector struct {
	Owner    string
	Since    time.Time            // Lower bound for closed issues, pull requests and commits
	Projects []config.ProjectRule // Label-based project definitions
	client   *github.Client
	logger   *zap.Logger

	// Pause applied when the remaining API quota drops below minRemaining
	rateLimitPause time.Duration
}

// repoData holds everything fetched for one repository.
type repoData struct {
	name         string
	issues       []snapshot.Issue
	pullRequests []snapshot.PullRequest
	commits      []snapshot.Commit
	err          error
}
