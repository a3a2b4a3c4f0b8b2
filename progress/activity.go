package progress

// ActivityLevel summarizes a member's period-over-period change.
type ActivityLevel string

const (
	ActivityVeryHigh ActivityLevel = "Very High"
	ActivityHigh     ActivityLevel = "High"
	ActivityModerate ActivityLevel = "Moderate"
	ActivityLow      ActivityLevel = "Low"
	ActivityCritical ActivityLevel = "Critical"
)

// Score weights; every signal contributes equally.
const (
	commitWeight    = 0.25
	prWeight        = 0.25
	completedWeight = 0.25
	taskWeight      = 0.25
)

// ActivityScore combines the member deltas into a single score.
func ActivityScore(commitChange, prChange, completedChange int, taskChange float64) float64 {
	return commitWeight*float64(commitChange) +
		prWeight*float64(prChange) +
		completedWeight*float64(completedChange) +
		taskWeight*taskChange
}

// LevelFor buckets a score. Comparisons are strict, so a boundary value
// belongs to the lower bucket: 20 is High, 0 is Low, -10 is Critical.
func LevelFor(score float64) ActivityLevel {
	switch {
	case score > 20:
		return ActivityVeryHigh
	case score > 10:
		return ActivityHigh
	case score > 0:
		return ActivityModerate
	case score > -10:
		return ActivityLow
	default:
		return ActivityCritical
	}
}
