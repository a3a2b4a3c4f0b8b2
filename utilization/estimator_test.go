package utilization

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raywall/gh-org-progress/checklist"
	"github.com/raywall/gh-org-progress/snapshot"
)

var now = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func openIssue(number int, body string, labels ...string) snapshot.Issue {
	return snapshot.Issue{
		Number:     number,
		Repository: snapshot.Ref{Name: "api"},
		State:      snapshot.StateOpen,
		Body:       body,
		Labels:     labels,
	}
}

func closedIssue(number int, body string, created, closed *time.Time, labels ...string) snapshot.Issue {
	i := openIssue(number, body, labels...)
	i.State = snapshot.StateClosed
	i.CreatedAt = created
	i.ClosedAt = closed
	return i
}

func TestEstimate_Workload(t *testing.T) {
	day := 24 * time.Hour
	m := MemberData{
		Login: "alice",
		Issues: []snapshot.Issue{
			openIssue(1, "- [ ] a\n- [ ] b\n- [x] c"),
			openIssue(2, "", "needs review"),
			closedIssue(3, "- [ ] leftover", at(-10*day), at(-2*day)),
		},
		PullRequests: []snapshot.PullRequest{
			{Repository: snapshot.Ref{Name: "api"}},
			{Repository: snapshot.Ref{Name: "api"}, MergedAt: at(-day)},
			{Repository: snapshot.Ref{Name: "api"}, State: "OPEN"},
		},
		Commits: []snapshot.Commit{
			{CommittedDate: at(-day)},
			{CommittedDate: at(-6 * day)},
			{CommittedDate: at(-8 * day)},
			{},
		},
	}

	results := Estimate([]MemberData{m}, nil, nil, DefaultConfig(), now)
	require.Len(t, results, 1)
	r := results[0]

	assert.Equal(t, "alice", r.Member)
	assert.Equal(t, 2, r.ActiveIssues)
	assert.Equal(t, 2, r.ActivePRs)
	assert.Equal(t, 4, r.TotalCommits)

	// Only the open issues contribute checklist tasks
	assert.Equal(t, checklist.TaskCount{Total: 3, Completed: 1, Remaining: 2}, r.Details.Tasks)
	assert.Equal(t, 1.0, r.Details.TaskWorkload)
	assert.Equal(t, 3.0, r.Details.IssueWorkload)
	assert.Equal(t, 2.0, r.Details.PRWorkload)
	assert.Equal(t, 0.5, r.Details.CommitWorkload)

	assert.Equal(t, 6.5, r.EstimatedHours)
	assert.InDelta(t, 16.25, r.UtilizationPercentage, 1e-9)
	assert.Equal(t, StatusLow, r.Status)

	assert.Len(t, r.Details.Issues, 3)
	assert.Equal(t, 1, r.Details.CompletedLastWeek)
	assert.Equal(t, 8.0, r.Details.AvgCompletionTime)
	// (33.3 + 0) / 2 rounds to 17
	assert.Equal(t, 17, r.Details.CompletionEfficiency)
}

func TestEstimate_StatusFilter(t *testing.T) {
	index := BuildStatusIndex([]snapshot.Project{{
		Number: 1,
		Issues: []snapshot.ProjectItem{
			{Number: 1, Repository: "api", Status: "In Progress"},
			{Number: 2, Repository: "api", Status: "Done"},
		},
	}})
	m := MemberData{Login: "bob", Issues: []snapshot.Issue{openIssue(1, ""), openIssue(2, ""), openIssue(3, "")}}

	tests := []struct {
		name   string
		filter []string
		want   []int
	}{
		{"empty filter keeps all", nil, []int{1, 2, 3}},
		{"single status", []string{"in progress"}, []int{1}},
		{"unresolved issue is backlog", []string{"backlog"}, []int{3}},
		{"case and spacing ignored", []string{" DONE ", "Backlog"}, []int{2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Estimate([]MemberData{m}, tt.filter, index, DefaultConfig(), now)[0]
			var got []int
			for _, i := range r.Details.Issues {
				got = append(got, i.Number)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), r.ActiveIssues)
		})
	}
}

func TestEstimate_EmptyMember(t *testing.T) {
	r := Estimate([]MemberData{{Login: "idle"}}, nil, nil, DefaultConfig(), now)[0]
	assert.Equal(t, 0.0, r.EstimatedHours)
	assert.Equal(t, 0.0, r.UtilizationPercentage)
	assert.Equal(t, StatusLow, r.Status)
	assert.Equal(t, 0, r.Details.CompletionEfficiency)
	assert.Equal(t, 0.0, r.Details.AvgCompletionTime)
	assert.Empty(t, r.Details.Issues)

	assert.Empty(t, Estimate(nil, nil, nil, DefaultConfig(), now))
}

func TestEstimator_UsesInjectedClock(t *testing.T) {
	e := NewEstimator(DefaultConfig())
	e.Now = func() time.Time { return now }

	m := MemberData{Login: "c", Commits: []snapshot.Commit{{CommittedDate: at(-time.Hour)}}}
	r := e.Estimate([]MemberData{m}, nil, nil)[0]
	assert.Equal(t, 0.25, r.Details.CommitWorkload)

	e.Now = func() time.Time { return now.Add(30 * 24 * time.Hour) }
	r = e.Estimate([]MemberData{m}, nil, nil)[0]
	assert.Equal(t, 0.0, r.Details.CommitWorkload)
}

func TestCompletionEfficiency(t *testing.T) {
	tests := []struct {
		name   string
		issues []snapshot.Issue
		want   int
	}{
		{"no issues", nil, 0},
		{"no checklist items", []snapshot.Issue{openIssue(1, "text")}, 0},
		{"fully done", []snapshot.Issue{openIssue(1, "- [x] a")}, 100},
		{"ignores issues without tasks", []snapshot.Issue{openIssue(1, "- [x] a\n- [ ] b"), openIssue(2, "")}, 50},
		{"rounds to nearest", []snapshot.Issue{openIssue(1, "- [x] a\n- [x] b\n- [ ] c")}, 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompletionEfficiency(tt.issues)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestAvgCompletionTime(t *testing.T) {
	day := 24 * time.Hour
	issues := []snapshot.Issue{
		// 2 days, weight 3
		closedIssue(1, "- [x] a\n- [x] b\n- [ ] c", at(-4*day), at(-2*day)),
		// 6 days, weight 1
		closedIssue(2, "", at(-6*day), at(0)),
		// open issues are ignored
		openIssue(3, "- [ ] x"),
		// closed without createdAt is ignored
		closedIssue(4, "", nil, at(0)),
	}
	assert.Equal(t, 3.0, AvgCompletionTime(issues))

	updatedOnly := closedIssue(5, "", at(-3*day), nil)
	updatedOnly.UpdatedAt = at(-day)
	assert.Equal(t, 2.0, AvgCompletionTime([]snapshot.Issue{updatedOnly}))

	backwards := closedIssue(6, "", at(0), at(-day))
	assert.Equal(t, 0.0, AvgCompletionTime([]snapshot.Issue{backwards}))

	assert.Equal(t, 0.0, AvgCompletionTime(nil))
}

func TestClassifyTaskTypes(t *testing.T) {
	got := ClassifyTaskTypes([]snapshot.Issue{
		openIssue(1, "- [x] a\n- [ ] b", "Bug", "feature"),
		openIssue(2, "- [x] c", "Feature Request"),
		openIssue(3, "", "documentation"),
		openIssue(4, "- [ ] d"),
		openIssue(5, "", "question"),
	})

	assert.Equal(t, TaskTypeStats{Count: 1, Tasks: 2, Completed: 1}, got.Bug)
	assert.Equal(t, TaskTypeStats{Count: 1, Tasks: 1, Completed: 1}, got.Feature)
	assert.Equal(t, TaskTypeStats{Count: 1}, got.Documentation)
	assert.Equal(t, TaskTypeStats{Count: 2, Tasks: 1}, got.Other)
}

func TestMembersFromSnapshot(t *testing.T) {
	s := &snapshot.Snapshot{
		Members: []snapshot.Member{{Login: "alice"}, {Login: "bob"}},
		Issues: []snapshot.Issue{
			{Number: 1, Assignee: &snapshot.Login{Login: "alice"}},
			{Number: 2},
			{Number: 3, Assignee: &snapshot.Login{Login: "stranger"}},
		},
		PullRequests: []snapshot.PullRequest{{Author: &snapshot.Login{Login: "bob"}}},
		Commits:      []snapshot.Commit{{Author: &snapshot.Login{Login: "alice"}}, {}},
	}

	members := MembersFromSnapshot(s)
	require.Len(t, members, 2)
	assert.Equal(t, "alice", members[0].Login)
	assert.Len(t, members[0].Issues, 1)
	assert.Empty(t, members[0].PullRequests)
	assert.Len(t, members[0].Commits, 1)
	assert.Equal(t, "bob", members[1].Login)
	assert.Empty(t, members[1].Issues)
	assert.Len(t, members[1].PullRequests, 1)

	assert.Nil(t, MembersFromSnapshot(nil))
}

func TestBuildStatusIndex(t *testing.T) {
	idx := BuildStatusIndex([]snapshot.Project{
		{Issues: []snapshot.ProjectItem{{Number: 1, Repository: "api", Status: "Todo"}, {Number: 2, Repository: "api"}}},
		{Issues: []snapshot.ProjectItem{{Number: 1, Repository: "api", Status: "Done"}, {Number: 2, Repository: "api", Status: "Review"}}},
	})

	s, ok := idx.Lookup(1, "api")
	assert.True(t, ok)
	assert.Equal(t, "todo", s)

	s, ok = idx.Lookup(2, "api")
	assert.True(t, ok)
	assert.Equal(t, "review", s)

	_, ok = idx.Lookup(1, "web")
	assert.False(t, ok)
	assert.Equal(t, DefaultStatus, idx.StatusOf(snapshot.Issue{Number: 1, Repository: snapshot.Ref{Name: "web"}}))

	var empty StatusIndex
	assert.Equal(t, DefaultStatus, empty.StatusOf(snapshot.Issue{Number: 1}))
}

func TestParseStatusFilter(t *testing.T) {
	assert.Equal(t, []string{"todo", "in progress"}, ParseStatusFilter("Todo, In Progress,,"))
	assert.Nil(t, ParseStatusFilter(""))
}
