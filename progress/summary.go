package progress

// Summarize derives the organization-wide metrics from the entity changes.
func Summarize(projects []ProjectChange, members []MemberChange, repos []RepoChange) Summary {
	var s Summary

	projectChanges := make([]float64, len(projects))
	for i, p := range projects {
		projectChanges[i] = p.Change
		s.TaskProgress.Completed += p.Tasks.New.Completed
		s.TaskProgress.Total += p.Tasks.New.Total
		s.TaskProgress.Change -= p.Tasks.Old.Completed
	}
	s.TaskProgress.Change += s.TaskProgress.Completed

	memberChanges := make([]float64, len(members))
	for i, m := range members {
		memberChanges[i] = m.Change
		s.TotalCompletedIssues += m.CompletedChange
		// Negative deltas are excluded, not subtracted
		if m.PRChange > 0 {
			s.TotalNewPRs += m.PRChange
		}
		if m.CommitChange > 0 {
			s.TotalNewCommits += m.CommitChange
		}
		switch m.ActivityLevel {
		case ActivityCritical:
			s.NeedsAttention++
		case ActivityVeryHigh:
			s.HighPerformers++
		}
	}

	repoChanges := make([]float64, len(repos))
	for i, r := range repos {
		repoChanges[i] = r.Change
	}

	s.OverallProgress = (average(projectChanges) + average(memberChanges) + average(repoChanges)) / 3
	return s
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
