package utilization

import (
	"strings"

	"github.com/raywall/gh-org-progress/snapshot"
)

// DefaultStatus is assumed for issues that are not on any project board.
const DefaultStatus = "backlog"

type issueKey struct {
	number int
	repo   string
}

// StatusIndex resolves the project status of an issue by (number, repository).
type StatusIndex map[issueKey]string

// BuildStatusIndex indexes the status of every project item. When an issue sits on
// several boards the first non-empty status wins. Statuses are stored lowercased.
func BuildStatusIndex(projects []snapshot.Project) StatusIndex {
	idx := make(StatusIndex)
	for _, p := range projects {
		for _, item := range p.Issues {
			status := normalizeStatus(item.Status)
			if status == "" {
				continue
			}
			k := issueKey{item.Number, item.Repository}
			if _, seen := idx[k]; !seen {
				idx[k] = status
			}
		}
	}
	return idx
}

// Lookup returns the status of the issue and whether it was found.
func (idx StatusIndex) Lookup(number int, repository string) (string, bool) {
	s, ok := idx[issueKey{number, repository}]
	return s, ok
}

// StatusOf returns the status of the issue, or DefaultStatus when it cannot be resolved.
func (idx StatusIndex) StatusOf(i snapshot.Issue) string {
	if s, ok := idx.Lookup(i.Number, i.Repository.Name); ok {
		return s
	}
	return DefaultStatus
}

func normalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MembersFromSnapshot groups the snapshot issues, pull requests and commits by member.
func MembersFromSnapshot(s *snapshot.Snapshot) []MemberData {
	if s == nil {
		return nil
	}
	members := make([]MemberData, 0, len(s.Members))
	pos := make(map[string]int, len(s.Members))
	for _, m := range s.Members {
		if m.Login != "" {
			pos[m.Login] = len(members)
		}
		members = append(members, MemberData{Login: m.Login})
	}

	for _, i := range s.Issues {
		if n, ok := pos[i.AssigneeLogin()]; ok {
			members[n].Issues = append(members[n].Issues, i)
		}
	}
	for _, pr := range s.PullRequests {
		if n, ok := pos[pr.AuthorLogin()]; ok {
			members[n].PullRequests = append(members[n].PullRequests, pr)
		}
	}
	for _, c := range s.Commits {
		if n, ok := pos[c.AuthorLogin()]; ok {
			members[n].Commits = append(members[n].Commits, c)
		}
	}
	return members
}
