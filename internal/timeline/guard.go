package timeline

import "github.com/meltforce/cadax/internal/models"

// GuardInput is everything the best-streak guard needs to decide whether the
// freshly computed bests may overwrite the stored ones.
type GuardInput struct {
	Stored models.StreakBests
	Fresh  models.StreakBests

	// Weekly distinct-day counts from the previous and current recomputation,
	// keyed by Monday week start. PrevCounts is nil on the first run.
	PrevCounts map[Date]int
	CurrCounts map[Date]int

	PrevGoal int // 0 when no previous goal was observed
	CurrGoal int
}

// ApplyBestStreakGuard decides whether the persisted best-streak record
// should be rewritten. Increases always persist. A decrease persists only
// when the transition between the two weekly snapshots shows a plausible
// cause: a week that had workouts lost them all, a week fell below the goal
// threshold, or the goal itself changed. Anything else is treated as a
// transient data state (e.g. a record not yet synced) and produces no write.
func ApplyBestStreakGuard(in GuardInput) (models.StreakBests, bool) {
	increase := in.Fresh.WorkoutWeeks > in.Stored.WorkoutWeeks ||
		in.Fresh.GoalWeeks > in.Stored.GoalWeeks
	decrease := in.Fresh.WorkoutWeeks < in.Stored.WorkoutWeeks ||
		in.Fresh.GoalWeeks < in.Stored.GoalWeeks

	if increase {
		return in.Fresh, true
	}
	if decrease && decreaseJustified(in) {
		return in.Fresh, true
	}
	return in.Stored, false
}

func decreaseJustified(in GuardInput) bool {
	if in.PrevGoal != 0 && in.PrevGoal != in.CurrGoal {
		return true
	}
	goal := ClampGoal(in.CurrGoal)
	for week, prev := range in.PrevCounts {
		curr := in.CurrCounts[week]
		if prev > 0 && curr == 0 {
			return true
		}
		if prev >= goal && curr < goal {
			return true
		}
	}
	return false
}
