// Package collector fetches organization data from the GitHub API and converts it into a snapshot.
package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/go-github/v62/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/raywall/gh-org-progress/config"
	"github.com/raywall/gh-org-progress/snapshot"
)

const maxConcurrentRepos = 10

// New creates a Collector with an authenticated GitHub client. An empty token
// yields an unauthenticated client.
func New(owner string, since time.Time, token string, projects []config.ProjectRule, logger *zap.Logger) *Collector {
	var client *github.Client
	if token != "" {
		ctx := context.Background()
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		tc := oauth2.NewClient(ctx, ts)
		client = github.NewClient(tc)
	} else {
		client = github.NewClient(nil)
	}
	return NewWithClient(client, owner, since, projects, logger)
}

// NewWithClient creates a Collector around an existing client.
func NewWithClient(client *github.Client, owner string, since time.Time, projects []config.ProjectRule, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{
		Owner:          owner,
		Since:          since,
		Projects:       projects,
		client:         client,
		logger:         logger,
		rateLimitPause: 5 * time.Second,
	}
}

// Collect lists the organization repositories and members, then fetches issues,
// pull requests and commits of every repository in parallel. Repositories that
// fail are logged and left out of the snapshot.
func (c *Collector) Collect(ctx context.Context) (*snapshot.Snapshot, error) {
	repos, err := c.listRepositories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}
	members, err := c.listMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	c.logger.Info("collecting organization data",
		zap.String("owner", c.Owner),
		zap.Int("repositories", len(repos)),
		zap.Int("members", len(members)),
		zap.Time("since", c.Since))

	results := make([]repoData, len(repos))
	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrentRepos)
	for i, repo := range repos {
		wg.Add(1)
		go func(i int, repo string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = c.collectRepo(ctx, repo)
		}(i, repo.Name)
	}
	wg.Wait()

	s := &snapshot.Snapshot{
		Projects:     []snapshot.Project{},
		Issues:       []snapshot.Issue{},
		Members:      members,
		PullRequests: []snapshot.PullRequest{},
		Commits:      []snapshot.Commit{},
		Repositories: make([]snapshot.Repository, 0, len(repos)),
	}
	for _, r := range results {
		if r.err != nil {
			if errors.Is(r.err, context.Canceled) || errors.Is(r.err, context.DeadlineExceeded) {
				return nil, r.err
			}
			c.logger.Warn("skipping repository", zap.String("repo", r.name), zap.Error(r.err))
			continue
		}
		s.Repositories = append(s.Repositories, snapshot.Repository{Name: r.name})
		s.Issues = append(s.Issues, r.issues...)
		s.PullRequests = append(s.PullRequests, r.pullRequests...)
		s.Commits = append(s.Commits, r.commits...)
	}
	s.Projects = buildProjects(c.Projects, s.Issues)

	c.logger.Info("collection finished",
		zap.Int("issues", len(s.Issues)),
		zap.Int("pull_requests", len(s.PullRequests)),
		zap.Int("commits", len(s.Commits)),
		zap.Int("projects", len(s.Projects)))

	return s, nil
}

// collectRepo fetches the three activity lists of a repository concurrently.
func (c *Collector) collectRepo(ctx context.Context, repo string) repoData {
	r := repoData{name: repo}

	var wg sync.WaitGroup
	var issuesErr, pullsErr, commitsErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		r.issues, issuesErr = c.listIssues(ctx, repo)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		r.pullRequests, pullsErr = c.listPullRequests(ctx, repo)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		r.commits, commitsErr = c.listCommits(ctx, repo)
	}()

	wg.Wait()

	r.err = errors.Join(issuesErr, pullsErr, commitsErr)
	return r
}
