package collector

import (
	"context"
	"time"

	"github.com/google/go-github/v62/github"

	"github.com/raywall/gh-org-progress/snapshot"
)

// listIssues returns every open issue plus the issues closed since c.Since.
// Pull requests, which the issues endpoint also returns, are dropped.
func (c *Collector) listIssues(ctx context.Context, repo string) ([]snapshot.Issue, error) {
	open, err := c.listIssuesByState(ctx, repo, snapshot.StateOpen, time.Time{})
	if err != nil {
		return nil, err
	}
	closed, err := c.listIssuesByState(ctx, repo, snapshot.StateClosed, c.Since)
	if err != nil {
		return nil, err
	}
	return append(open, closed...), nil
}

func (c *Collector) listIssuesByState(ctx context.Context, repo, state string, since time.Time) ([]snapshot.Issue, error) {
	opts := &github.IssueListByRepoOptions{State: state, Since: since, ListOptions: github.ListOptions{PerPage: 100}}
	var out []snapshot.Issue
	for {
		issues, resp, err := c.client.Issues.ListByRepo(ctx, c.Owner, repo, opts)
		if err != nil {
			return nil, err
		}
		for _, i := range issues {
			if i.IsPullRequest() {
				continue
			}
			out = append(out, toIssue(repo, i))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		c.checkRateLimit(ctx, resp)
	}
	return out, nil
}

// toIssue converts a REST issue into its snapshot form.
func toIssue(repo string, i *github.Issue) snapshot.Issue {
	out := snapshot.Issue{
		Number:     i.GetNumber(),
		Title:      i.GetTitle(),
		Repository: snapshot.Ref{Name: repo},
		State:      i.GetState(),
		Body:       i.GetBody(),
		Assignee:   loginRef(i.Assignee),
		CreatedAt:  timePtr(i.CreatedAt),
		UpdatedAt:  timePtr(i.UpdatedAt),
		ClosedAt:   timePtr(i.ClosedAt),
	}
	if out.Assignee == nil && len(i.Assignees) > 0 {
		out.Assignee = loginRef(i.Assignees[0])
	}
	for _, l := range i.Labels {
		if l.GetName() != "" {
			out.Labels = append(out.Labels, l.GetName())
		}
	}
	return out
}
