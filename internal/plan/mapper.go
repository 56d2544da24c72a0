package plan

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/meltforce/cadax/internal/models"
)

// repsPresets are the selectable rep ranges, with the midpoint used to snap
// free-form rep strings to the nearest preset.
var repsPresets = []struct {
	Label    string
	Midpoint float64
}{
	{"5", 5},
	{"6-8", 7},
	{"8-10", 9},
	{"10-12", 11},
	{"12-15", 13.5},
	{"15-20", 17.5},
}

var repsRangeRe = regexp.MustCompile(`(\d+)(?:\s*-\s*(\d+))?`)

// ResolveRepsPreset snaps a free-form rep prescription ("8-12", "AMRAP/max",
// "10") to the nearest preset label.
func ResolveRepsPreset(reps string) string {
	normalized := strings.ToLower(strings.TrimSpace(reps))
	if strings.Contains(normalized, "max") {
		return "Max"
	}
	if normalized == "5" {
		return "5"
	}

	m := repsRangeRe.FindStringSubmatch(normalized)
	if m == nil {
		return "10-12"
	}
	first, _ := strconv.Atoi(m[1])
	second := first
	if m[2] != "" {
		second, _ = strconv.Atoi(m[2])
	}
	midpoint := float64(first+second) / 2

	nearest := repsPresets[0]
	delta := math.Abs(midpoint - nearest.Midpoint)
	for _, candidate := range repsPresets {
		if d := math.Abs(midpoint - candidate.Midpoint); d < delta {
			delta = d
			nearest = candidate
		}
	}
	return nearest.Label
}

// ConvertLoad converts a load between kg and lb, snapping the result to
// plate-friendly increments (5 lb / 2.5 kg). Non-positive or non-finite
// inputs convert to 0.
func ConvertLoad(value float64, from, to string) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return 0
	}
	if from == to {
		return value
	}
	var converted float64
	if from == models.LoadUnitLb {
		converted = value * 0.45359237
	} else {
		converted = value / 0.45359237
	}
	step := 2.5
	if to == models.LoadUnitLb {
		step = 5
	}
	return math.Max(0, math.Round(converted/step)*step)
}

// FromPreset converts a generated preset plan into a user-owned custom
// routine, converting every load into the user's unit and expanding per-set
// details where the plan only prescribed a set count.
func FromPreset(workout models.GeneratedWorkout, userID int, loadUnit, baseIntensity string) models.CustomRoutine {
	exercises := make([]models.CustomExercise, 0, len(workout.Plan.MainExercises))
	for _, ex := range workout.Plan.MainExercises {
		preset := ResolveRepsPreset(ex.Reps)
		load := ConvertLoad(ex.Load, ex.LoadUnit, loadUnit)
		loadType := ex.LoadType
		if loadType == "" {
			loadType = models.LoadTypeMachine
		}

		details := make([]models.SetDetail, 0, max(len(ex.SetDetails), ex.Sets))
		if len(ex.SetDetails) > 0 {
			for _, sd := range ex.SetDetails {
				sdType := sd.LoadType
				if sdType == "" {
					sdType = loadType
				}
				details = append(details, models.SetDetail{
					RepsPreset: sd.RepsPreset,
					Load:       ConvertLoad(sd.Load, sd.LoadUnit, loadUnit),
					LoadUnit:   loadUnit,
					LoadType:   sdType,
				})
			}
		} else {
			for i := 0; i < ex.Sets; i++ {
				details = append(details, models.SetDetail{
					RepsPreset: preset,
					Load:       load,
					LoadUnit:   loadUnit,
					LoadType:   loadType,
				})
			}
		}

		exercises = append(exercises, models.CustomExercise{
			Exercise:        ex.Exercise,
			Equipment:       ex.Equipment,
			ActivatedRegion: ex.ActivatedRegion,
			Sets:            ex.Sets,
			RepsPreset:      preset,
			Load:            load,
			LoadUnit:        loadUnit,
			LoadType:        loadType,
			SetDetails:      details,
		})
	}

	return models.CustomRoutine{
		UserID:             userID,
		MuscleGroup:        workout.MuscleGroup,
		Kind:               models.PlanKindMine,
		BaseIntensity:      baseIntensity,
		Focus:              workout.Plan.Focus,
		Regions:            workout.Plan.Regions,
		MainExercises:      exercises,
		Warmup:             workout.Plan.Warmup,
		PostWorkoutStretch: workout.Plan.PostWorkoutStretch,
	}
}

// ToWorkout renders a custom routine back into the plan shape the client
// consumes. When a routine's sets vary in reps the summary row reads
// "Varied" instead of a single preset.
func ToWorkout(routine models.CustomRoutine, intensity string) models.GeneratedWorkout {
	exercises := make([]models.PlanExercise, 0, len(routine.MainExercises))
	for _, ex := range routine.MainExercises {
		details := ex.SetDetails
		if len(details) == 0 {
			details = make([]models.SetDetail, ex.Sets)
			for i := range details {
				details[i] = models.SetDetail{
					RepsPreset: ex.RepsPreset,
					Load:       ex.Load,
					LoadUnit:   ex.LoadUnit,
					LoadType:   ex.LoadType,
				}
			}
		}

		reps := ex.RepsPreset
		if len(details) > 0 {
			reps = details[0].RepsPreset
			for _, sd := range details[1:] {
				if sd.RepsPreset != reps {
					reps = "Varied"
					break
				}
			}
		}

		var load float64
		loadUnit := ex.LoadUnit
		loadType := ex.LoadType
		if len(details) > 0 {
			load = details[0].Load
			loadUnit = details[0].LoadUnit
			loadType = details[0].LoadType
		}

		exercises = append(exercises, models.PlanExercise{
			Exercise:        ex.Exercise,
			Equipment:       ex.Equipment,
			Reps:            reps,
			Sets:            len(details),
			ActivatedRegion: ex.ActivatedRegion,
			Load:            load,
			LoadUnit:        loadUnit,
			LoadType:        loadType,
			SetDetails:      details,
		})
	}

	return models.GeneratedWorkout{
		MuscleGroup: routine.MuscleGroup,
		Intensity:   intensity,
		Kind:        models.PlanKindMine,
		Plan: models.WorkoutPlan{
			Muscle:             routine.MuscleGroup,
			Regions:            routine.Regions,
			Warmup:             routine.Warmup,
			Focus:              routine.Focus,
			MainExercises:      exercises,
			Alternatives:       nil,
			PostWorkoutStretch: routine.PostWorkoutStretch,
			Source:             "preset",
		},
	}
}
