package utilization

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid workload config")

// Config holds the effort and capacity constants used by the estimator. All values are hours.
type Config struct {
	Low            float64 `mapstructure:"low" json:"LOW"`
	Optimal        float64 `mapstructure:"optimal" json:"OPTIMAL"`
	High           float64 `mapstructure:"high" json:"HIGH"`
	Critical       float64 `mapstructure:"critical" json:"CRITICAL"`
	WeeklyCapacity float64 `mapstructure:"weekly_capacity" json:"weeklyCapacity"`

	IssueActive float64 `mapstructure:"issue_active" json:"ISSUE_ACTIVE"` // per open issue not in review
	IssueReview float64 `mapstructure:"issue_review" json:"ISSUE_REVIEW"` // per open issue in review
	TaskActive  float64 `mapstructure:"task_active" json:"TASK_ACTIVE"`   // per remaining checklist task
	PRReview    float64 `mapstructure:"pr_review" json:"PR_REVIEW"`       // per unmerged pull request
	Commit      float64 `mapstructure:"commit" json:"COMMIT"`             // per commit in the last 7 days
}

// DefaultConfig returns the constants for a 40 hour week.
func DefaultConfig() Config {
	return Config{
		Low:            15,
		Optimal:        30,
		High:           45,
		Critical:       60,
		WeeklyCapacity: 40,
		IssueActive:    2,
		IssueReview:    1,
		TaskActive:     0.5,
		PRReview:       1,
		Commit:         0.25,
	}
}

// Validate checks that the capacity is positive and the thresholds ascend.
func (c Config) Validate() error {
	if c.WeeklyCapacity <= 0 {
		return fmt.Errorf("%w: weekly capacity must be positive, got %v", ErrInvalidConfig, c.WeeklyCapacity)
	}
	if !(c.Low <= c.Optimal && c.Optimal <= c.High && c.High <= c.Critical) {
		return fmt.Errorf("%w: thresholds must ascend (low=%v optimal=%v high=%v critical=%v)",
			ErrInvalidConfig, c.Low, c.Optimal, c.High, c.Critical)
	}
	for name, v := range map[string]float64{
		"issue_active": c.IssueActive,
		"issue_review": c.IssueReview,
		"task_active":  c.TaskActive,
		"pr_review":    c.PRReview,
		"commit":       c.Commit,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, name)
		}
	}
	return nil
}

// Percentage converts hours into a share of the weekly capacity. A non-positive capacity yields 0.
func (c Config) Percentage(hours float64) float64 {
	if c.WeeklyCapacity <= 0 {
		return 0
	}
	return hours / c.WeeklyCapacity * 100
}

// Thresholds returns the status boundaries as percentages of the weekly capacity.
func (c Config) Thresholds() (low, optimal, high, critical float64) {
	return c.Percentage(c.Low), c.Percentage(c.Optimal), c.Percentage(c.High), c.Percentage(c.Critical)
}

// Classify buckets a utilization percentage. Each boundary belongs to the lower bucket.
func (c Config) Classify(percentage float64) Status {
	low, optimal, high, _ := c.Thresholds()
	switch {
	case percentage <= low:
		return StatusLow
	case percentage <= optimal:
		return StatusOptimal
	case percentage <= high:
		return StatusHigh
	default:
		return StatusCritical
	}
}
