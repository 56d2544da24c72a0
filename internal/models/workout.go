package models

import "time"

// MuscleGroups is the canonical set of loggable muscle groups.
var MuscleGroups = []string{
	"Chest", "Back", "Triceps", "Biceps", "Shoulder", "Forearms", "Legs", "Core",
}

// MuscleCategories groups the muscle groups the way the dashboard presents them.
var MuscleCategories = map[string][]string{
	"Push":  {"Chest", "Triceps", "Shoulder"},
	"Pull":  {"Back", "Biceps", "Forearms"},
	"Other": {"Legs", "Core"},
}

// ValidMuscleGroup reports whether name is one of the canonical groups.
func ValidMuscleGroup(name string) bool {
	for _, g := range MuscleGroups {
		if g == name {
			return true
		}
	}
	return false
}

// WorkoutRecord is one logged day of training: a calendar date plus the
// muscle groups trained that day. At most one record exists per (user, date);
// a record with zero groups is deleted, never stored empty.
type WorkoutRecord struct {
	Date         string    `json:"date"` // YYYY-MM-DD, user-local calendar date
	MuscleGroups []string  `json:"muscleGroups"`
	UpdatedAt    time.Time `json:"updatedAt,omitzero"`
}

// StreakBests is the persisted per-user best-streak record. It is only
// updated through the best-streak guard, never overwritten wholesale.
type StreakBests struct {
	WorkoutWeeks int `json:"bestWorkoutStreakWeeks"`
	GoalWeeks    int `json:"bestGoalStreakWeeks"`
}

// Profile is the per-user settings row.
type Profile struct {
	UserID      int         `json:"userId"`
	Login       string      `json:"login"`
	DisplayName string      `json:"displayName"`
	GoalDays    int         `json:"goalDays"`
	Bests       StreakBests `json:"bests"`
}
