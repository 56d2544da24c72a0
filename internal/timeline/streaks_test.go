package timeline

import "testing"

// weeksFromCounts builds a timeline from per-week worked-day counts.
func weeksFromCounts(goal int, counts ...int) []WeekSummary {
	start := Date{2025, 1, 6} // a Monday
	weeks := make([]WeekSummary, 0, len(counts))
	for i, c := range counts {
		weeks = append(weeks, WeekSummary{
			Start:      start.AddDays(7 * i),
			DaysWorked: c,
			HasWorkout: c > 0,
			MeetsGoal:  c >= goal,
		})
	}
	return weeks
}

// TestComputeStreaksEmpty verifies an empty timeline yields all zeros.
func TestComputeStreaksEmpty(t *testing.T) {
	got := ComputeStreaks(nil)
	if got != (StreakResult{}) {
		t.Errorf("ComputeStreaks(nil) = %+v, want zeros", got)
	}
}

// TestComputeStreaksScenarios checks streak math against known timelines,
// including the documented daysWorked=[3,4,0,5] goal=4 case.
func TestComputeStreaksScenarios(t *testing.T) {
	tests := []struct {
		name   string
		goal   int
		counts []int
		want   StreakResult
	}{
		{
			name:   "gap resets workout streak",
			goal:   4,
			counts: []int{3, 4, 0, 5},
			want:   StreakResult{CurrentWorkout: 1, CurrentGoal: 1, BestWorkout: 2, BestGoal: 1},
		},
		{
			name:   "single active week under goal",
			goal:   4,
			counts: []int{1},
			want:   StreakResult{CurrentWorkout: 1, CurrentGoal: 0, BestWorkout: 1, BestGoal: 0},
		},
		{
			name:   "all weeks qualify",
			goal:   2,
			counts: []int{2, 3, 2},
			want:   StreakResult{CurrentWorkout: 3, CurrentGoal: 3, BestWorkout: 3, BestGoal: 3},
		},
		{
			name:   "current week idle",
			goal:   3,
			counts: []int{3, 3, 0},
			want:   StreakResult{CurrentWorkout: 0, CurrentGoal: 0, BestWorkout: 2, BestGoal: 2},
		},
		{
			name:   "best run in the middle",
			goal:   2,
			counts: []int{0, 2, 2, 2, 0, 2},
			want:   StreakResult{CurrentWorkout: 1, CurrentGoal: 1, BestWorkout: 3, BestGoal: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStreaks(weeksFromCounts(tt.goal, tt.counts...))
			if got != tt.want {
				t.Errorf("ComputeStreaks = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestCurrentNeverExceedsBest verifies current <= best under both predicates
// across a spread of timelines.
func TestCurrentNeverExceedsBest(t *testing.T) {
	cases := [][]int{
		{}, {0}, {1}, {5, 0, 5}, {1, 2, 3, 4, 5, 6, 7},
		{0, 0, 0}, {4, 4, 0, 4, 4, 4}, {7, 0, 7, 0, 7},
	}
	for _, counts := range cases {
		got := ComputeStreaks(weeksFromCounts(4, counts...))
		if got.CurrentWorkout > got.BestWorkout {
			t.Errorf("counts %v: currentWorkout %d > bestWorkout %d", counts, got.CurrentWorkout, got.BestWorkout)
		}
		if got.CurrentGoal > got.BestGoal {
			t.Errorf("counts %v: currentGoal %d > bestGoal %d", counts, got.CurrentGoal, got.BestGoal)
		}
	}
}

// TestStreakExtension verifies appending a qualifying week extends the
// current streak by one, and a failing week resets it to zero.
func TestStreakExtension(t *testing.T) {
	base := []int{4, 4, 4}
	before := ComputeStreaks(weeksFromCounts(4, base...))

	extended := ComputeStreaks(weeksFromCounts(4, append(append([]int{}, base...), 5)...))
	if extended.CurrentGoal != before.CurrentGoal+1 {
		t.Errorf("after qualifying week: currentGoal = %d, want %d", extended.CurrentGoal, before.CurrentGoal+1)
	}
	if extended.CurrentWorkout != before.CurrentWorkout+1 {
		t.Errorf("after qualifying week: currentWorkout = %d, want %d", extended.CurrentWorkout, before.CurrentWorkout+1)
	}

	reset := ComputeStreaks(weeksFromCounts(4, append(append([]int{}, base...), 0)...))
	if reset.CurrentWorkout != 0 || reset.CurrentGoal != 0 {
		t.Errorf("after idle week: current streaks = %d/%d, want 0/0", reset.CurrentWorkout, reset.CurrentGoal)
	}
}

// TestComputeStreaksIdempotent verifies repeated calls over the same
// timeline give identical results, with no hidden counters.
func TestComputeStreaksIdempotent(t *testing.T) {
	weeks := weeksFromCounts(4, 3, 4, 0, 5)
	first := ComputeStreaks(weeks)
	second := ComputeStreaks(weeks)
	if first != second {
		t.Errorf("results differ: %+v vs %+v", first, second)
	}
}

// TestEndToEndSingleRecordToday covers the full pipeline for a single record
// dated today with goal 4: one week, workout streak 1, goal streak 0.
func TestEndToEndSingleRecordToday(t *testing.T) {
	today := mustDate(t, "2025-03-12")
	weeks, _ := AggregateWeeks(recordsFor("2025-03-12"), 4, today)
	got := ComputeStreaks(weeks)
	want := StreakResult{CurrentWorkout: 1, CurrentGoal: 0, BestWorkout: 1, BestGoal: 0}
	if got != want {
		t.Errorf("ComputeStreaks = %+v, want %+v", got, want)
	}
}
