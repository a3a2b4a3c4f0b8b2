package progress

import "github.com/raywall/gh-org-progress/checklist"

// TaskDelta holds task metrics for both snapshots.
type TaskDelta struct {
	Old    checklist.TaskMetrics `json:"old"`
	New    checklist.TaskMetrics `json:"new"`
	Change float64               `json:"change"` // New.Percentage - Old.Percentage
}

// ProjectChange is the progress difference of a single project.
type ProjectChange struct {
	Number          int       `json:"number"`
	Name            string    `json:"name"`
	OldProgress     float64   `json:"oldProgress"`
	NewProgress     float64   `json:"newProgress"`
	Change          float64   `json:"change"`
	TotalIssues     int       `json:"totalIssues"`
	CompletedChange int       `json:"completedChange"`
	Tasks           TaskDelta `json:"tasks"`
}

// MemberChange is the progress and activity difference of a single member.
type MemberChange struct {
	Login           string        `json:"login"`
	Name            string        `json:"name"`
	OldProgress     float64       `json:"oldProgress"`
	NewProgress     float64       `json:"newProgress"`
	Change          float64       `json:"change"`
	TotalIssues     int           `json:"totalIssues"`
	CompletedChange int           `json:"completedChange"`
	Tasks           TaskDelta     `json:"tasks"`
	PRChange        int           `json:"prChange"`
	CommitChange    int           `json:"commitChange"`
	ActivityLevel   ActivityLevel `json:"activityLevel"`
}

// RepoChange is the progress difference of a single repository.
type RepoChange struct {
	Name            string    `json:"name"`
	OldProgress     float64   `json:"oldProgress"`
	NewProgress     float64   `json:"newProgress"`
	Change          float64   `json:"change"`
	TotalIssues     int       `json:"totalIssues"`
	CompletedChange int       `json:"completedChange"`
	Tasks           TaskDelta `json:"tasks"`
	PRChange        int       `json:"prChange"`
}

// TaskProgress aggregates project task metrics of the current snapshot.
type TaskProgress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Change    int `json:"change"` // Completed minus the old completed total
}

// Summary holds organization-wide metrics derived from the entity changes.
type Summary struct {
	OverallProgress      float64      `json:"overallProgress"`
	TotalCompletedIssues int          `json:"totalCompletedIssues"`
	TotalNewPRs          int          `json:"totalNewPRs"`
	TotalNewCommits      int          `json:"totalNewCommits"`
	NeedsAttention       int          `json:"needsAttention"`
	HighPerformers       int          `json:"highPerformers"`
	TaskProgress         TaskProgress `json:"taskProgress"`
}

// AnalysisData is the full comparison between two snapshots.
type AnalysisData struct {
	ProjectChanges []ProjectChange `json:"projectChanges"`
	MemberChanges  []MemberChange  `json:"memberChanges"`
	RepoChanges    []RepoChange    `json:"repoChanges"`
	Summary        Summary         `json:"summary"`
}
