package utilization

import (
	"github.com/raywall/gh-org-progress/checklist"
	"github.com/raywall/gh-org-progress/snapshot"
)

// Status classifies a member's estimated weekly workload.
type Status string

const (
	StatusLow      Status = "low"
	StatusOptimal  Status = "optimal"
	StatusHigh     Status = "high"
	StatusCritical Status = "critical"
)

// Severity orders statuses from low (0) to critical (3).
func (s Status) Severity() int {
	switch s {
	case StatusLow:
		return 0
	case StatusOptimal:
		return 1
	case StatusHigh:
		return 2
	case StatusCritical:
		return 3
	}
	return -1
}

// MemberData is everything the estimator needs about one member.
type MemberData struct {
	Login        string
	Issues       []snapshot.Issue
	PullRequests []snapshot.PullRequest
	Commits      []snapshot.Commit
}

// TaskTypeStats accumulates the issues of one category.
type TaskTypeStats struct {
	Count     int `json:"count"`
	Tasks     int `json:"tasks"`
	Completed int `json:"completed"`
}

// TaskTypes splits issues by label category.
type TaskTypes struct {
	Bug           TaskTypeStats `json:"bug"`
	Feature       TaskTypeStats `json:"feature"`
	Documentation TaskTypeStats `json:"documentation"`
	Other         TaskTypeStats `json:"other"`
}

// Details breaks the estimate down by source.
type Details struct {
	TaskWorkload         float64             `json:"taskWorkload"`
	IssueWorkload        float64             `json:"issueWorkload"`
	PRWorkload           float64             `json:"prWorkload"`
	CommitWorkload       float64             `json:"commitWorkload"`
	Tasks                checklist.TaskCount `json:"tasks"`
	CompletionEfficiency int                 `json:"completionEfficiency"`
	Issues               []snapshot.Issue    `json:"issues"`
	CompletedLastWeek    int                 `json:"completedLastWeek"`
	AvgCompletionTime    float64             `json:"avgCompletionTime"` // days
	TaskTypes            TaskTypes           `json:"taskTypes"`
}

// Result is the workload estimate of one member.
type Result struct {
	Member                string  `json:"member"`
	ActiveIssues          int     `json:"activeIssues"`
	ActivePRs             int     `json:"activePRs"`
	TotalCommits          int     `json:"totalCommits"`
	EstimatedHours        float64 `json:"estimatedHours"`
	UtilizationPercentage float64 `json:"utilizationPercentage"`
	Status                Status  `json:"status"`
	Details               Details `json:"details"`
}
