package timeline

// StreakResult holds the four streak scalars derived from a week timeline.
type StreakResult struct {
	CurrentWorkout int `json:"currentWorkoutStreak"`
	CurrentGoal    int `json:"currentGoalStreak"`
	BestWorkout    int `json:"bestWorkoutStreak"`
	BestGoal       int `json:"bestGoalStreak"`
}

// ComputeStreaks walks an ordered, contiguous week timeline and computes the
// current and best-ever streaks under both predicates: any activity in the
// week, and meeting the weekly goal. The in-progress current week counts like
// any other week. An empty timeline yields all zeros.
func ComputeStreaks(weeks []WeekSummary) StreakResult {
	byActivity := func(w WeekSummary) bool { return w.HasWorkout }
	byGoal := func(w WeekSummary) bool { return w.MeetsGoal }

	return StreakResult{
		CurrentWorkout: currentStreak(weeks, byActivity),
		CurrentGoal:    currentStreak(weeks, byGoal),
		BestWorkout:    bestStreak(weeks, byActivity),
		BestGoal:       bestStreak(weeks, byGoal),
	}
}

// currentStreak counts consecutive qualifying weeks ending at the most
// recent week, stopping at the first week that fails the predicate.
func currentStreak(weeks []WeekSummary, qualifies func(WeekSummary) bool) int {
	count := 0
	for i := len(weeks) - 1; i >= 0; i-- {
		if !qualifies(weeks[i]) {
			break
		}
		count++
	}
	return count
}

// bestStreak finds the longest contiguous run of qualifying weeks anywhere
// in the timeline.
func bestStreak(weeks []WeekSummary, qualifies func(WeekSummary) bool) int {
	best, run := 0, 0
	for _, w := range weeks {
		if qualifies(w) {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}
