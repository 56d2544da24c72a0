package timeline

import "github.com/meltforce/cadax/internal/models"

// Goal bounds for days-per-week targets.
const (
	MinGoalDays = 1
	MaxGoalDays = 7
)

// ClampGoal forces a goal into the valid 1–7 range.
func ClampGoal(goal int) int {
	if goal < MinGoalDays {
		return MinGoalDays
	}
	if goal > MaxGoalDays {
		return MaxGoalDays
	}
	return goal
}

// WeekSummary is one Monday-start week of the attendance timeline.
type WeekSummary struct {
	Start      Date `json:"weekStart"`
	DaysWorked int  `json:"daysWorked"`
	HasWorkout bool `json:"hasWorkout"`
	MeetsGoal  bool `json:"meetsGoal"`
}

// AggregateWeeks groups workout records into Monday-start calendar weeks and
// returns one summary per week from the week of the earliest record through
// the week containing today, with no gaps. Records with unparsable dates are
// skipped and counted in the second return value; duplicate dates collapse to
// a single worked day. An empty input yields an empty timeline.
func AggregateWeeks(records []models.WorkoutRecord, goalDays int, today Date) ([]WeekSummary, int) {
	goalDays = ClampGoal(goalDays)

	daysByWeek := make(map[Date]map[Date]struct{})
	var earliest Date
	skipped := 0

	for _, rec := range records {
		day, err := ParseDate(rec.Date)
		if err != nil {
			skipped++
			continue
		}
		week := day.StartOfWeek()
		days, ok := daysByWeek[week]
		if !ok {
			days = make(map[Date]struct{})
			daysByWeek[week] = days
		}
		days[day] = struct{}{}
		if earliest.IsZero() || day.Before(earliest) {
			earliest = day
		}
	}

	if earliest.IsZero() {
		return nil, skipped
	}

	currentWeek := today.StartOfWeek()
	var weeks []WeekSummary
	for cursor := earliest.StartOfWeek(); !cursor.After(currentWeek); cursor = cursor.AddDays(7) {
		worked := len(daysByWeek[cursor])
		weeks = append(weeks, WeekSummary{
			Start:      cursor,
			DaysWorked: worked,
			HasWorkout: worked > 0,
			MeetsGoal:  worked >= goalDays,
		})
	}
	return weeks, skipped
}

// CountByWeek returns the distinct worked-day count per Monday week start.
// This is the snapshot shape the best-streak guard compares across recomputations.
func CountByWeek(records []models.WorkoutRecord) map[Date]int {
	daysByWeek := make(map[Date]map[Date]struct{})
	for _, rec := range records {
		day, err := ParseDate(rec.Date)
		if err != nil {
			continue
		}
		week := day.StartOfWeek()
		if daysByWeek[week] == nil {
			daysByWeek[week] = make(map[Date]struct{})
		}
		daysByWeek[week][day] = struct{}{}
	}

	counts := make(map[Date]int, len(daysByWeek))
	for week, days := range daysByWeek {
		counts[week] = len(days)
	}
	return counts
}
