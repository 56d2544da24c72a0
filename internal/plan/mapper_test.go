package plan

import (
	"math"
	"testing"

	"github.com/meltforce/cadax/internal/models"
)

func TestResolveRepsPreset(t *testing.T) {
	tests := []struct {
		reps string
		want string
	}{
		{"5", "5"},
		{"6-8", "6-8"},
		{"8-10", "8-10"},
		{"8-12", "8-10"},
		{"10-12", "10-12"},
		{"12-15", "12-15"},
		{"15-20", "15-20"},
		{"10", "8-10"},
		{"20", "15-20"},
		{"3", "5"},
		{"Max", "Max"},
		{"AMRAP to max", "Max"},
		{"", "10-12"},
		{"-", "10-12"},
		{"until failure", "10-12"},
	}
	for _, tt := range tests {
		if got := ResolveRepsPreset(tt.reps); got != tt.want {
			t.Errorf("ResolveRepsPreset(%q) = %q, want %q", tt.reps, got, tt.want)
		}
	}
}

func TestConvertLoad(t *testing.T) {
	tests := []struct {
		value    float64
		from, to string
		want     float64
	}{
		{100, models.LoadUnitKg, models.LoadUnitLb, 220},
		{60, models.LoadUnitKg, models.LoadUnitLb, 130},
		{45, models.LoadUnitLb, models.LoadUnitKg, 20},
		{225, models.LoadUnitLb, models.LoadUnitKg, 102.5},
		{80, models.LoadUnitKg, models.LoadUnitKg, 80},
		{0, models.LoadUnitKg, models.LoadUnitLb, 0},
		{-10, models.LoadUnitLb, models.LoadUnitKg, 0},
		{math.NaN(), models.LoadUnitKg, models.LoadUnitLb, 0},
		{math.Inf(1), models.LoadUnitKg, models.LoadUnitLb, 0},
	}
	for _, tt := range tests {
		if got := ConvertLoad(tt.value, tt.from, tt.to); got != tt.want {
			t.Errorf("ConvertLoad(%v, %s, %s) = %v, want %v", tt.value, tt.from, tt.to, got, tt.want)
		}
	}
}

// TestFromPreset verifies converting a generated plan into a user routine:
// loads land in the user's unit and every set gets an explicit prescription.
func TestFromPreset(t *testing.T) {
	workout := models.GeneratedWorkout{
		MuscleGroup: "Chest",
		Intensity:   models.IntensityIntermediate,
		Kind:        models.PlanKindPreset,
		Plan: models.WorkoutPlan{
			Muscle: "Chest",
			Focus:  "Pressing volume",
			MainExercises: []models.PlanExercise{
				{
					Exercise:  "Barbell Bench Press",
					Equipment: "Barbell, flat bench",
					Reps:      "6-8",
					Sets:      4,
					Load:      60,
					LoadUnit:  models.LoadUnitKg,
					LoadType:  models.LoadTypeMachine,
				},
			},
			Warmup: []string{"Push-ups, 2x10"},
		},
	}

	routine := FromPreset(workout, 7, models.LoadUnitLb, models.IntensityIntermediate)

	if routine.Kind != models.PlanKindMine {
		t.Errorf("Kind = %q, want %q", routine.Kind, models.PlanKindMine)
	}
	if routine.UserID != 7 {
		t.Errorf("UserID = %d, want 7", routine.UserID)
	}
	if routine.MuscleGroup != "Chest" {
		t.Errorf("MuscleGroup = %q, want Chest", routine.MuscleGroup)
	}
	if len(routine.MainExercises) != 1 {
		t.Fatalf("len(MainExercises) = %d, want 1", len(routine.MainExercises))
	}

	ex := routine.MainExercises[0]
	if ex.RepsPreset != "6-8" {
		t.Errorf("RepsPreset = %q, want 6-8", ex.RepsPreset)
	}
	if ex.Load != 130 {
		t.Errorf("Load = %v, want 130 (60 kg in lb, snapped to 5)", ex.Load)
	}
	if ex.LoadUnit != models.LoadUnitLb {
		t.Errorf("LoadUnit = %q, want lb", ex.LoadUnit)
	}
	if len(ex.SetDetails) != 4 {
		t.Fatalf("len(SetDetails) = %d, want 4", len(ex.SetDetails))
	}
	for i, sd := range ex.SetDetails {
		if sd.RepsPreset != "6-8" || sd.Load != 130 || sd.LoadUnit != models.LoadUnitLb {
			t.Errorf("SetDetails[%d] = %+v", i, sd)
		}
	}
}

// TestToWorkoutRoundTrip verifies a routine renders back into the client
// plan shape with its sets intact.
func TestToWorkoutRoundTrip(t *testing.T) {
	lib := newTestLibrary(t)
	generated := lib.Generate("Back", models.IntensityIntermediate)

	routine := FromPreset(generated, 3, models.LoadUnitKg, models.IntensityIntermediate)
	back := ToWorkout(routine, models.IntensityIntermediate)

	if back.Kind != models.PlanKindMine {
		t.Errorf("Kind = %q, want %q", back.Kind, models.PlanKindMine)
	}
	if back.MuscleGroup != "Back" {
		t.Errorf("MuscleGroup = %q, want Back", back.MuscleGroup)
	}
	if len(back.Plan.MainExercises) != len(generated.Plan.MainExercises) {
		t.Fatalf("len(MainExercises) = %d, want %d",
			len(back.Plan.MainExercises), len(generated.Plan.MainExercises))
	}
	for i, ex := range back.Plan.MainExercises {
		orig := generated.Plan.MainExercises[i]
		if ex.Sets != orig.Sets {
			t.Errorf("%s: Sets = %d, want %d", ex.Exercise, ex.Sets, orig.Sets)
		}
	}
}

// TestToWorkoutVariedReps verifies that a routine whose sets disagree on
// reps shows "Varied" in the summary row.
func TestToWorkoutVariedReps(t *testing.T) {
	routine := models.CustomRoutine{
		MuscleGroup: "Legs",
		Kind:        models.PlanKindMine,
		MainExercises: []models.CustomExercise{
			{
				Exercise:   "Barbell Back Squat",
				Equipment:  "Barbell, squat rack",
				Sets:       3,
				RepsPreset: "6-8",
				LoadUnit:   models.LoadUnitKg,
				LoadType:   models.LoadTypeMachine,
				SetDetails: []models.SetDetail{
					{RepsPreset: "5", Load: 100, LoadUnit: models.LoadUnitKg, LoadType: models.LoadTypeMachine},
					{RepsPreset: "6-8", Load: 90, LoadUnit: models.LoadUnitKg, LoadType: models.LoadTypeMachine},
					{RepsPreset: "8-10", Load: 80, LoadUnit: models.LoadUnitKg, LoadType: models.LoadTypeMachine},
				},
			},
		},
	}

	got := ToWorkout(routine, models.IntensityPro)

	ex := got.Plan.MainExercises[0]
	if ex.Reps != "Varied" {
		t.Errorf("Reps = %q, want Varied", ex.Reps)
	}
	if ex.Sets != 3 {
		t.Errorf("Sets = %d, want 3", ex.Sets)
	}
	if ex.Load != 100 {
		t.Errorf("Load = %v, want first set's 100", ex.Load)
	}
}
