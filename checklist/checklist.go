// Package checklist counts Markdown checklist tasks ("- [ ]" / "- [x]") in issue bodies.
package checklist

import "strings"

const (
	openMarker = "- [ ]"
	doneMarker = "- [x]"
)

// TaskCount is the number of checklist tasks found in one or more bodies.
type TaskCount struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Remaining int `json:"remaining"`
}

// TaskMetrics is a TaskCount expressed as a completion percentage.
type TaskMetrics struct {
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Percentage float64 `json:"percentage"`
}

// Count returns the checklist tasks of a single body. Only a lowercase x marks a task as done;
// "- [X]" is not recognized as a marker at all.
func Count(body string) TaskCount {
	if body == "" {
		return TaskCount{}
	}
	open := strings.Count(body, openMarker)
	done := strings.Count(body, doneMarker)
	return TaskCount{
		Total:     open + done,
		Completed: done,
		Remaining: open,
	}
}

// Add returns the sum of two counts.
func (c TaskCount) Add(o TaskCount) TaskCount {
	return TaskCount{
		Total:     c.Total + o.Total,
		Completed: c.Completed + o.Completed,
		Remaining: c.Remaining + o.Remaining,
	}
}

// Metrics converts the count into TaskMetrics.
func (c TaskCount) Metrics() TaskMetrics {
	return TaskMetrics{
		Total:      c.Total,
		Completed:  c.Completed,
		Percentage: Percent(c.Completed, c.Total),
	}
}

// Sum counts the tasks across all bodies.
func Sum(bodies ...string) TaskCount {
	var total TaskCount
	for _, b := range bodies {
		total = total.Add(Count(b))
	}
	return total
}

// Percent returns part/whole*100, or 0 when whole is zero.
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
