package timeline

import "github.com/meltforce/cadax/internal/models"

// WeekMetrics are the today-relative summaries for a single displayed week.
type WeekMetrics struct {
	WeekStart    Date           `json:"weekStart"`
	DaysWorked   int            `json:"daysWorked"`
	DaysToGo     int            `json:"daysToGo"`
	DaysOverGoal int            `json:"daysOverGoal"`
	GoalDays     int            `json:"goalDays"`
	MuscleCounts map[string]int `json:"muscleCounts"`
}

// SummarizeWeek computes the weekly dashboard numbers for the week starting
// at weekStart: distinct worked days, shortfall and surplus against the goal,
// and how many days each muscle group was trained. Records outside the week
// or with unparsable dates are ignored.
func SummarizeWeek(records []models.WorkoutRecord, weekStart Date, goalDays int) WeekMetrics {
	goalDays = ClampGoal(goalDays)
	weekEnd := weekStart.AddDays(6)

	type dayGroup struct {
		day   Date
		group string
	}
	workedDays := make(map[Date]struct{})
	muscleCounts := make(map[string]int)
	counted := make(map[dayGroup]struct{})

	for _, rec := range records {
		day, err := ParseDate(rec.Date)
		if err != nil {
			continue
		}
		if day.Before(weekStart) || day.After(weekEnd) {
			continue
		}
		workedDays[day] = struct{}{}
		// Count days, not records: duplicate records for a date must not
		// inflate a group's tally.
		for _, group := range rec.MuscleGroups {
			key := dayGroup{day, group}
			if _, ok := counted[key]; ok {
				continue
			}
			counted[key] = struct{}{}
			muscleCounts[group]++
		}
	}

	worked := len(workedDays)
	return WeekMetrics{
		WeekStart:    weekStart,
		DaysWorked:   worked,
		DaysToGo:     max(0, goalDays-worked),
		DaysOverGoal: max(0, worked-goalDays),
		GoalDays:     goalDays,
		MuscleCounts: muscleCounts,
	}
}

// HistoryWeek is one bar of the trailing history card.
type HistoryWeek struct {
	Start     Date `json:"weekStart"`
	Count     int  `json:"daysWorked"`
	IsCurrent bool `json:"isCurrent"`
}

// WeekHistory returns worked-day counts for the n weeks ending at the week
// containing anchor, oldest first.
func WeekHistory(records []models.WorkoutRecord, anchor Date, n int) []HistoryWeek {
	if n <= 0 {
		return nil
	}
	counts := CountByWeek(records)
	anchorWeek := anchor.StartOfWeek()

	history := make([]HistoryWeek, 0, n)
	for i := n - 1; i >= 0; i-- {
		start := anchorWeek.AddDays(-7 * i)
		history = append(history, HistoryWeek{
			Start:     start,
			Count:     counts[start],
			IsCurrent: start == anchorWeek,
		})
	}
	return history
}
