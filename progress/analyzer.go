// Package progress compares two snapshots of organization data and derives
// per-project, per-member and per-repository change metrics.
package progress

import (
	"sync"

	"github.com/raywall/gh-org-progress/checklist"
	"github.com/raywall/gh-org-progress/snapshot"
)

// Analyze compares old against current. It never mutates its inputs and
// returns empty aggregates when either side is nil.
func Analyze(old, current *snapshot.Snapshot) AnalysisData {
	data := AnalysisData{
		ProjectChanges: []ProjectChange{},
		MemberChanges:  []MemberChange{},
		RepoChanges:    []RepoChange{},
	}
	if old == nil || current == nil {
		return data
	}

	// The three entity kinds are independent of each other
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		data.ProjectChanges = ProjectChanges(old, current)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		data.MemberChanges = MemberChanges(old, current)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		data.RepoChanges = RepoChanges(old, current)
	}()

	wg.Wait()

	data.Summary = Summarize(data.ProjectChanges, data.MemberChanges, data.RepoChanges)
	return data
}

// ProjectChanges returns one change per project of current that also exists in old.
// Projects are matched by number; projects missing from old are skipped.
func ProjectChanges(old, current *snapshot.Snapshot) []ProjectChange {
	oldByNumber := make(map[int]snapshot.Project, len(old.Projects))
	for _, p := range old.Projects {
		oldByNumber[p.Number] = p
	}

	changes := make([]ProjectChange, 0, len(current.Projects))
	for _, p := range current.Projects {
		oldProject, ok := oldByNumber[p.Number]
		if !ok {
			continue
		}
		d := compare(projectIssues(old.Issues, oldProject), projectIssues(current.Issues, p))
		changes = append(changes, ProjectChange{
			Number:          p.Number,
			Name:            p.Name,
			OldProgress:     d.oldProgress,
			NewProgress:     d.newProgress,
			Change:          d.change,
			TotalIssues:     d.totalIssues,
			CompletedChange: d.completedChange,
			Tasks:           d.tasks,
		})
	}
	return changes
}

// MemberChanges returns one change per member of current.
func MemberChanges(old, current *snapshot.Snapshot) []MemberChange {
	changes := make([]MemberChange, 0, len(current.Members))
	for _, m := range current.Members {
		d := compare(assignedIssues(old.Issues, m.Login), assignedIssues(current.Issues, m.Login))
		prChange := countAuthoredPRs(current.PullRequests, m.Login) - countAuthoredPRs(old.PullRequests, m.Login)
		commitChange := countAuthoredCommits(current.Commits, m.Login) - countAuthoredCommits(old.Commits, m.Login)
		score := ActivityScore(commitChange, prChange, d.completedChange, d.tasks.Change)

		name := m.Name
		if name == "" {
			name = m.Login
		}
		changes = append(changes, MemberChange{
			Login:           m.Login,
			Name:            name,
			OldProgress:     d.oldProgress,
			NewProgress:     d.newProgress,
			Change:          d.change,
			TotalIssues:     d.totalIssues,
			CompletedChange: d.completedChange,
			Tasks:           d.tasks,
			PRChange:        prChange,
			CommitChange:    commitChange,
			ActivityLevel:   LevelFor(score),
		})
	}
	return changes
}

// RepoChanges returns one change per repository listed on current.
// Historical uploads usually carry no repositories, which is fine: only current is enumerated.
func RepoChanges(old, current *snapshot.Snapshot) []RepoChange {
	changes := make([]RepoChange, 0, len(current.Repositories))
	for _, r := range current.Repositories {
		d := compare(repoIssues(old.Issues, r.Name), repoIssues(current.Issues, r.Name))
		prChange := countRepoPRs(current.PullRequests, r.Name) - countRepoPRs(old.PullRequests, r.Name)
		changes = append(changes, RepoChange{
			Name:            r.Name,
			OldProgress:     d.oldProgress,
			NewProgress:     d.newProgress,
			Change:          d.change,
			TotalIssues:     d.totalIssues,
			CompletedChange: d.completedChange,
			Tasks:           d.tasks,
			PRChange:        prChange,
		})
	}
	return changes
}

// IssuesTaskProgress sums the checklist tasks of all issues.
func IssuesTaskProgress(issues []snapshot.Issue) checklist.TaskMetrics {
	var total checklist.TaskCount
	for _, i := range issues {
		total = total.Add(checklist.Count(i.Body))
	}
	return total.Metrics()
}

type delta struct {
	oldProgress     float64
	newProgress     float64
	change          float64
	totalIssues     int
	completedChange int
	tasks           TaskDelta
}

// compare applies the shared change rules to the issue subsets of one entity.
func compare(oldIssues, newIssues []snapshot.Issue) delta {
	oldCompleted := countClosed(oldIssues)
	newCompleted := countClosed(newIssues)

	d := delta{
		oldProgress:     checklist.Percent(oldCompleted, len(oldIssues)),
		newProgress:     checklist.Percent(newCompleted, len(newIssues)),
		totalIssues:     len(newIssues),
		completedChange: newCompleted - oldCompleted,
	}

	// An entity without historical issues reports no change, whatever its current progress.
	if len(oldIssues) > 0 {
		d.change = d.newProgress - d.oldProgress
	}

	d.tasks.Old = IssuesTaskProgress(oldIssues)
	d.tasks.New = IssuesTaskProgress(newIssues)
	d.tasks.Change = d.tasks.New.Percentage - d.tasks.Old.Percentage
	return d
}

func projectIssues(issues []snapshot.Issue, p snapshot.Project) []snapshot.Issue {
	type key struct {
		number int
		repo   string
	}
	listed := make(map[key]struct{}, len(p.Issues))
	for _, item := range p.Issues {
		listed[key{item.Number, item.Repository}] = struct{}{}
	}

	var out []snapshot.Issue
	for _, i := range issues {
		if _, ok := listed[key{i.Number, i.Repository.Name}]; ok {
			out = append(out, i)
		}
	}
	return out
}

func assignedIssues(issues []snapshot.Issue, login string) []snapshot.Issue {
	var out []snapshot.Issue
	for _, i := range issues {
		if i.Assignee != nil && i.Assignee.Login == login {
			out = append(out, i)
		}
	}
	return out
}

func repoIssues(issues []snapshot.Issue, repo string) []snapshot.Issue {
	var out []snapshot.Issue
	for _, i := range issues {
		if i.Repository.Name == repo {
			out = append(out, i)
		}
	}
	return out
}

func countClosed(issues []snapshot.Issue) int {
	n := 0
	for _, i := range issues {
		if i.IsClosed() {
			n++
		}
	}
	return n
}

func countAuthoredPRs(prs []snapshot.PullRequest, login string) int {
	n := 0
	for _, pr := range prs {
		if pr.Author != nil && pr.Author.Login == login {
			n++
		}
	}
	return n
}

func countAuthoredCommits(commits []snapshot.Commit, login string) int {
	n := 0
	for _, c := range commits {
		if c.Author != nil && c.Author.Login == login {
			n++
		}
	}
	return n
}

func countRepoPRs(prs []snapshot.PullRequest, repo string) int {
	n := 0
	for _, pr := range prs {
		if pr.Repository.Name == repo {
			n++
		}
	}
	return n
}
