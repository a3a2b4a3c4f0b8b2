package collector

import (
	"context"
	"net/http"

	"github.com/google/go-github/v62/github"

	"github.com/raywall/gh-org-progress/snapshot"
)

// listCommits returns the commits of the default branch since c.Since.
func (c *Collector) listCommits(ctx context.Context, repo string) ([]snapshot.Commit, error) {
	opts := &github.CommitsListOptions{
		Since:       c.Since,
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var out []snapshot.Commit

	for {
		commits, resp, err := c.client.Repositories.ListCommits(ctx, c.Owner, repo, opts)
		if err != nil {
			// Empty repositories answer 409
			if resp != nil && resp.StatusCode == http.StatusConflict {
				return out, nil
			}
			return nil, err
		}

		for _, rc := range commits {
			out = append(out, toCommit(repo, rc))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		c.checkRateLimit(ctx, resp)
	}

	return out, nil
}

// toCommit converts a REST commit into its snapshot form. Author stays nil when
// GitHub could not map the commit email to an account.
func toCommit(repo string, rc *github.RepositoryCommit) snapshot.Commit {
	date := rc.GetCommit().GetAuthor().GetDate()
	return snapshot.Commit{
		SHA:           rc.GetSHA(),
		Repository:    snapshot.Ref{Name: repo},
		Author:        loginRef(rc.Author),
		CommittedDate: timePtr(&date),
	}
}
