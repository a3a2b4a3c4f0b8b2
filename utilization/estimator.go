// Package utilization estimates the weekly workload of organization members from
// their open issues, checklist tasks, pull requests and recent commits.
package utilization

import (
	"math"
	"strings"
	"time"

	"github.com/raywall/gh-org-progress/checklist"
	"github.com/raywall/gh-org-progress/snapshot"
)

const (
	week       = 7 * 24 * time.Hour
	reviewTag  = "review"
	hoursInDay = 24
)

// Estimator binds a Config to a clock.
type Estimator struct {
	Config Config
	Now    func() time.Time
}

// NewEstimator returns an Estimator using the wall clock.
func NewEstimator(cfg Config) *Estimator {
	return &Estimator{Config: cfg, Now: time.Now}
}

// Estimate runs Estimate with the estimator's config and the current time.
func (e *Estimator) Estimate(members []MemberData, statusFilter []string, index StatusIndex) []Result {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	return Estimate(members, statusFilter, index, e.Config, now())
}

// Estimate computes one Result per member. Only issues whose project status is in
// statusFilter are considered; an empty filter keeps every issue. The 7-day windows
// end at now.
func Estimate(members []MemberData, statusFilter []string, index StatusIndex, cfg Config, now time.Time) []Result {
	allowed := make(map[string]struct{}, len(statusFilter))
	for _, s := range statusFilter {
		if s = normalizeStatus(s); s != "" {
			allowed[s] = struct{}{}
		}
	}

	results := make([]Result, 0, len(members))
	for _, m := range members {
		results = append(results, estimateMember(m, allowed, index, cfg, now))
	}
	return results
}

func estimateMember(m MemberData, allowed map[string]struct{}, index StatusIndex, cfg Config, now time.Time) Result {
	issues := filterIssues(m.Issues, allowed, index)
	weekAgo := now.Add(-week)

	var active []snapshot.Issue
	reviews := 0
	for _, i := range issues {
		if !i.IsOpen() {
			continue
		}
		active = append(active, i)
		if i.HasLabel(reviewTag) {
			reviews++
		}
	}

	var tasks checklist.TaskCount
	for _, i := range active {
		tasks = tasks.Add(checklist.Count(i.Body))
	}

	merged := 0
	for _, pr := range m.PullRequests {
		if pr.IsMerged() {
			merged++
		}
	}
	openPRs := len(m.PullRequests) - merged

	recentCommits := 0
	for _, c := range m.Commits {
		if within(c.CommittedDate, weekAgo, now) {
			recentCommits++
		}
	}

	d := Details{
		TaskWorkload:         float64(tasks.Remaining) * cfg.TaskActive,
		IssueWorkload:        float64(len(active)-reviews)*cfg.IssueActive + float64(reviews)*cfg.IssueReview,
		PRWorkload:           float64(openPRs) * cfg.PRReview,
		CommitWorkload:       float64(recentCommits) * cfg.Commit,
		Tasks:                tasks,
		CompletionEfficiency: CompletionEfficiency(issues),
		Issues:               issues,
		CompletedLastWeek:    completedBetween(issues, weekAgo, now),
		AvgCompletionTime:    AvgCompletionTime(issues),
		TaskTypes:            ClassifyTaskTypes(issues),
	}

	hours := d.TaskWorkload + d.IssueWorkload + d.PRWorkload + d.CommitWorkload
	pct := cfg.Percentage(hours)

	return Result{
		Member:                m.Login,
		ActiveIssues:          len(active),
		ActivePRs:             openPRs,
		TotalCommits:          len(m.Commits),
		EstimatedHours:        hours,
		UtilizationPercentage: pct,
		Status:                cfg.Classify(pct),
		Details:               d,
	}
}

func filterIssues(issues []snapshot.Issue, allowed map[string]struct{}, index StatusIndex) []snapshot.Issue {
	out := make([]snapshot.Issue, 0, len(issues))
	for _, i := range issues {
		if len(allowed) > 0 {
			if _, ok := allowed[index.StatusOf(i)]; !ok {
				continue
			}
		}
		out = append(out, i)
	}
	return out
}

// CompletionEfficiency averages the checklist completion of the issues that have at
// least one checklist item, rounded and capped at 100. It is 0 when none have.
func CompletionEfficiency(issues []snapshot.Issue) int {
	var sum float64
	n := 0
	for _, i := range issues {
		c := checklist.Count(i.Body)
		if c.Total == 0 {
			continue
		}
		sum += checklist.Percent(c.Completed, c.Total)
		n++
	}
	if n == 0 {
		return 0
	}
	return int(math.Min(100, math.Round(sum/float64(n))))
}

// AvgCompletionTime returns the average days from creation to completion of the
// closed issues, weighted by their checklist size (at least 1). Issues without
// timestamps are ignored.
func AvgCompletionTime(issues []snapshot.Issue) float64 {
	var weighted, weights float64
	for _, i := range issues {
		if !i.IsClosed() || i.CreatedAt == nil {
			continue
		}
		done := i.CompletedAt()
		if done == nil {
			continue
		}
		days := math.Max(0, done.Sub(*i.CreatedAt).Hours()/hoursInDay)
		w := float64(max(checklist.Count(i.Body).Total, 1))
		weighted += days * w
		weights += w
	}
	if weights == 0 {
		return 0
	}
	return weighted / weights
}

// ClassifyTaskTypes puts every issue into exactly one category by label, checking
// bug, then feature, then documentation.
func ClassifyTaskTypes(issues []snapshot.Issue) TaskTypes {
	var tt TaskTypes
	for _, i := range issues {
		var bucket *TaskTypeStats
		switch {
		case i.HasLabel("bug"):
			bucket = &tt.Bug
		case i.HasLabel("feature"):
			bucket = &tt.Feature
		case i.HasLabel("documentation"):
			bucket = &tt.Documentation
		default:
			bucket = &tt.Other
		}
		c := checklist.Count(i.Body)
		bucket.Count++
		bucket.Tasks += c.Total
		bucket.Completed += c.Completed
	}
	return tt
}

func completedBetween(issues []snapshot.Issue, from, to time.Time) int {
	n := 0
	for _, i := range issues {
		if i.IsClosed() && within(i.CompletedAt(), from, to) {
			n++
		}
	}
	return n
}

func within(t *time.Time, from, to time.Time) bool {
	return t != nil && !t.Before(from) && !t.After(to)
}

// ParseStatusFilter splits a comma separated list of statuses.
func ParseStatusFilter(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = normalizeStatus(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
