package collector

import (
	"context"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"go.uber.org/zap"

	"github.com/raywall/gh-org-progress/config"
	"github.com/raywall/gh-org-progress/snapshot"
)

const (
	minRemaining = 100
	statusPrefix = "status:"
	statusDone   = "done"
)

// checkRateLimit pauses when the API quota is nearly exhausted.
func (c *Collector) checkRateLimit(ctx context.Context, resp *github.Response) {
	if resp == nil || resp.Rate.Limit == 0 || resp.Rate.Remaining >= minRemaining {
		return
	}
	c.logger.Warn("github rate limit nearly exhausted",
		zap.Int("remaining", resp.Rate.Remaining),
		zap.Time("reset", resp.Rate.Reset.Time))

	select {
	case <-time.After(c.rateLimitPause):
	case <-ctx.Done():
	}
}

// Export saves the snapshot so it can be uploaded later as the historical side of a comparison.
func (c *Collector) Export(s *snapshot.Snapshot, filename string) error {
	return snapshot.Save(filename, s)
}

// buildProjects groups issues into the configured label-based projects.
func buildProjects(rules []config.ProjectRule, issues []snapshot.Issue) []snapshot.Project {
	projects := make([]snapshot.Project, 0, len(rules))
	for _, rule := range rules {
		p := snapshot.Project{Number: rule.Number, Name: rule.Name, Issues: []snapshot.ProjectItem{}}
		if p.Name == "" {
			p.Name = rule.Label
		}
		for _, i := range issues {
			if !hasExactLabel(i.Labels, rule.Label) {
				continue
			}
			p.Issues = append(p.Issues, snapshot.ProjectItem{
				Number:     i.Number,
				Repository: i.Repository.Name,
				Status:     itemStatus(i),
			})
		}
		projects = append(projects, p)
	}
	return projects
}

// itemStatus derives the board column of an issue: done once closed, otherwise the
// value of a "status:" label. It returns "" when the issue carries no status label.
func itemStatus(i snapshot.Issue) string {
	if i.IsClosed() {
		return statusDone
	}
	for _, l := range i.Labels {
		if len(l) > len(statusPrefix) && strings.EqualFold(l[:len(statusPrefix)], statusPrefix) {
			return strings.TrimSpace(l[len(statusPrefix):])
		}
	}
	return ""
}

func hasExactLabel(labels []string, want string) bool {
	for _, l := range labels {
		if strings.EqualFold(l, want) {
			return true
		}
	}
	return false
}

// timePtr converts a go-github timestamp into a UTC time, keeping nil as nil.
func timePtr(ts *github.Timestamp) *time.Time {
	if ts == nil || ts.IsZero() {
		return nil
	}
	t := ts.Time.UTC()
	return &t
}

func loginRef(u *github.User) *snapshot.Login {
	if u == nil || u.GetLogin() == "" {
		return nil
	}
	return &snapshot.Login{Login: u.GetLogin()}
}
