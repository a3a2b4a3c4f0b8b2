package collector

import (
	"context"

	"github.com/google/go-github/v62/github"

	"github.com/raywall/gh-org-progress/snapshot"
)

// listMembers returns the organization members.
func (c *Collector) listMembers(ctx context.Context) ([]snapshot.Member, error) {
	opts := &github.ListMembersOptions{ListOptions: github.ListOptions{PerPage: 100}}
	members := []snapshot.Member{}

	for {
		users, resp, err := c.client.Organizations.ListMembers(ctx, c.Owner, opts)
		if err != nil {
			return nil, err
		}

		for _, u := range users {
			if u.GetLogin() != "" {
				members = append(members, snapshot.Member{Login: u.GetLogin(), Name: u.GetName()})
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		c.checkRateLimit(ctx, resp)
	}

	return members, nil
}

// listRepositories returns the organization repositories, skipping archived ones.
func (c *Collector) listRepositories(ctx context.Context) ([]snapshot.Repository, error) {
	opts := &github.RepositoryListByOrgOptions{Type: "all", ListOptions: github.ListOptions{PerPage: 100}}
	var repos []snapshot.Repository

	for {
		rs, resp, err := c.client.Repositories.ListByOrg(ctx, c.Owner, opts)
		if err != nil {
			return nil, err
		}

		for _, r := range rs {
			if r.GetArchived() || r.GetName() == "" {
				continue
			}
			repos = append(repos, snapshot.Repository{Name: r.GetName()})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		c.checkRateLimit(ctx, resp)
	}

	return repos, nil
}
