package models

import "github.com/google/uuid"

// Plan kinds. A routine is either a built-in preset or a user-edited copy.
const (
	PlanKindPreset = "preset"
	PlanKindMine   = "mine"
)

// Training intensities.
const (
	IntensityBeginner     = "Beginner"
	IntensityIntermediate = "Intermediate"
	IntensityPro          = "Pro"
)

// Load units and types for exercises.
const (
	LoadUnitKg = "kg"
	LoadUnitLb = "lb"

	LoadTypeMachine    = "machine"
	LoadTypeDumbbell   = "dumbbell"
	LoadTypeBodyweight = "bodyweight"
)

// PlanRegion names one anatomical region a plan targets.
type PlanRegion struct {
	Area           string `json:"area"`
	AnatomicalName string `json:"anatomicalName"`
	Focus          string `json:"focus"`
}

// SetDetail is the prescription for a single set.
type SetDetail struct {
	RepsPreset string  `json:"repsPreset"`
	Load       float64 `json:"load"`
	LoadUnit   string  `json:"loadUnit"`
	LoadType   string  `json:"loadType"`
}

// PlanExercise is one exercise inside a training plan.
type PlanExercise struct {
	Exercise        string      `json:"exercise"`
	Equipment       string      `json:"equipment"`
	Reps            string      `json:"reps"`
	Sets            int         `json:"sets"`
	ActivatedRegion []string    `json:"activatedRegion"`
	Load            float64     `json:"load"`
	LoadUnit        string      `json:"loadUnit"`
	LoadType        string      `json:"loadType"`
	SetDetails      []SetDetail `json:"setDetails,omitempty"`
}

// WorkoutPlan is a full plan for one muscle group at one intensity.
type WorkoutPlan struct {
	Muscle             string         `json:"muscle"`
	Regions            []PlanRegion   `json:"regions"`
	Warmup             []string       `json:"warmup"`
	Focus              string         `json:"focus"`
	MainExercises      []PlanExercise `json:"mainExercises"`
	Alternatives       []PlanExercise `json:"alternatives"`
	PostWorkoutStretch []string       `json:"postWorkoutStretch"`
	Source             string         `json:"source"` // "preset" or "unavailable"
}

// GeneratedWorkout is the generator output handed to the client.
type GeneratedWorkout struct {
	MuscleGroup string      `json:"muscleGroup"`
	Intensity   string      `json:"intensity"`
	Kind        string      `json:"kind"` // PlanKindPreset or PlanKindMine
	Plan        WorkoutPlan `json:"plan"`
}

// CustomExercise is an exercise inside a user-edited routine, with the
// per-set prescriptions made explicit.
type CustomExercise struct {
	Exercise        string      `json:"exercise"`
	Equipment       string      `json:"equipment"`
	ActivatedRegion []string    `json:"activatedRegion"`
	Sets            int         `json:"sets"`
	RepsPreset      string      `json:"repsPreset"`
	Load            float64     `json:"load"`
	LoadUnit        string      `json:"loadUnit"`
	LoadType        string      `json:"loadType"`
	SetDetails      []SetDetail `json:"setDetails"`
}

// CustomRoutine is a user's saved variant of a plan for one muscle group.
// Kind is always PlanKindMine for stored routines; the explicit tag replaces
// optional-field duck typing when plans and routines travel together.
type CustomRoutine struct {
	ID                 uuid.UUID        `json:"id"`
	UserID             int              `json:"userId"`
	MuscleGroup        string           `json:"muscleGroup"`
	Kind               string           `json:"kind"`
	BaseIntensity      string           `json:"baseIntensity"`
	Focus              string           `json:"focus"`
	Regions            []PlanRegion     `json:"regions"`
	MainExercises      []CustomExercise `json:"mainExercises"`
	Warmup             []string         `json:"warmup"`
	PostWorkoutStretch []string         `json:"postWorkoutStretch"`
}
