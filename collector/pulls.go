package collector

import (
	"context"

	"github.com/google/go-github/v62/github"

	"github.com/raywall/gh-org-progress/snapshot"
)

// listPullRequests returns the open pull requests and those created since c.Since.
func (c *Collector) listPullRequests(ctx context.Context, repo string) ([]snapshot.PullRequest, error) {
	opts := &github.PullRequestListOptions{
		State:       "all",
		Sort:        "created",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var out []snapshot.PullRequest

	for {
		prs, resp, err := c.client.PullRequests.List(ctx, c.Owner, repo, opts)
		if err != nil {
			return nil, err
		}
		for _, pr := range prs {
			if pr.GetState() == snapshot.StateOpen || !pr.GetCreatedAt().Before(c.Since) {
				out = append(out, toPullRequest(repo, pr))
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		c.checkRateLimit(ctx, resp)
	}

	return out, nil
}

// toPullRequest converts a REST pull request into its snapshot form.
func toPullRequest(repo string, pr *github.PullRequest) snapshot.PullRequest {
	return snapshot.PullRequest{
		Number:     pr.GetNumber(),
		Repository: snapshot.Ref{Name: repo},
		Author:     loginRef(pr.User),
		State:      pr.GetState(),
		CreatedAt:  timePtr(pr.CreatedAt),
		MergedAt:   timePtr(pr.MergedAt),
	}
}
