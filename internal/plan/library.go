package plan

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"github.com/meltforce/cadax/internal/models"
)

//go:embed templates/*.json
var templateFS embed.FS

// rawTemplate is the on-disk template shape. Field names stay snake_case to
// match the authored JSON files.
type rawTemplate struct {
	Muscle  string `json:"muscle"`
	Routine string `json:"routine"`
	Regions []struct {
		Area           string `json:"area"`
		AnatomicalName string `json:"anatomical_name"`
		Focus          string `json:"focus"`
	} `json:"regions"`
	WarmupList []string `json:"warmup"`
	Plans      struct {
		Beginner     *rawPlanBlock `json:"beginner"`
		Intermediate *rawPlanBlock `json:"intermediate"`
		Hard         *rawPlanBlock `json:"hard"`
	} `json:"plans"`
	PostWorkoutStretch []string `json:"post_workout_stretch"`
}

type rawPlanBlock struct {
	Focus         string        `json:"focus"`
	MainExercises []rawExercise `json:"main_exercises"`
	Alternatives  []rawExercise `json:"alternatives"`
}

type rawExercise struct {
	Exercise        string   `json:"exercise"`
	Equipment       string   `json:"equipment"`
	Reps            string   `json:"reps"`
	Sets            int      `json:"sets"`
	ActivatedRegion []string `json:"activated_region"`
}

// templateCandidates lists template files per muscle group in lookup order:
// a dedicated file first, then the split-group fallback.
var templateCandidates = map[string][]string{
	"Chest":    {"chest.json", "push.json"},
	"Back":     {"back.json", "pull.json"},
	"Triceps":  {"triceps.json", "push.json"},
	"Biceps":   {"biceps.json", "pull.json"},
	"Shoulder": {"shoulder.json", "push.json", "other.json"},
	"Forearms": {"forearms.json", "pull.json", "other.json"},
	"Legs":     {"legs.json"},
	"Core":     {"core.json", "other.json"},
}

// Library is the preset plan lookup table, built once at startup and held by
// whoever owns it. There is no package-level cache.
type Library struct {
	templates map[string]*rawTemplate
}

// NewLibrary parses the embedded template files into a lookup table.
func NewLibrary() (*Library, error) {
	return newLibraryFromFS(templateFS, "templates")
}

func newLibraryFromFS(fsys fs.FS, dir string) (*Library, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading template dir: %w", err)
	}

	lib := &Library{templates: make(map[string]*rawTemplate, len(entries))}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := fs.ReadFile(fsys, dir+"/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", entry.Name(), err)
		}
		var tmpl rawTemplate
		if err := json.Unmarshal(data, &tmpl); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", entry.Name(), err)
		}
		lib.templates[entry.Name()] = &tmpl
	}
	return lib, nil
}

// Generate returns the training plan for a muscle group at an intensity.
// When no template covers the combination the plan comes back with source
// "unavailable" rather than an error; the client renders the apology.
func (l *Library) Generate(muscleGroup, intensity string) models.GeneratedWorkout {
	for _, name := range templateCandidates[muscleGroup] {
		tmpl, ok := l.templates[name]
		if !ok {
			continue
		}
		if plan := normalizeTemplate(tmpl, muscleGroup, intensity); plan != nil {
			return *plan
		}
	}

	return models.GeneratedWorkout{
		MuscleGroup: muscleGroup,
		Intensity:   intensity,
		Kind:        models.PlanKindPreset,
		Plan: models.WorkoutPlan{
			Muscle: muscleGroup,
			Focus:  "Sorry, we are working on it.",
			Source: "unavailable",
		},
	}
}

func normalizeTemplate(tmpl *rawTemplate, muscleGroup, intensity string) *models.GeneratedWorkout {
	block := planBlockFor(tmpl, intensity)
	if block == nil || len(block.MainExercises) == 0 {
		return nil
	}

	muscle := tmpl.Muscle
	if muscle == "" {
		muscle = tmpl.Routine
	}
	if muscle == "" {
		muscle = muscleGroup
	}

	regions := make([]models.PlanRegion, 0, len(tmpl.Regions))
	for _, r := range tmpl.Regions {
		regions = append(regions, models.PlanRegion{
			Area:           r.Area,
			AnatomicalName: r.AnatomicalName,
			Focus:          r.Focus,
		})
	}

	focus := block.Focus
	if focus == "" {
		focus = "Structured workout plan"
	}

	main := make([]models.PlanExercise, 0, len(block.MainExercises))
	for _, ex := range block.MainExercises {
		main = append(main, normalizeExercise(ex))
	}
	alts := make([]models.PlanExercise, 0, len(block.Alternatives))
	for _, ex := range block.Alternatives {
		alts = append(alts, normalizeExercise(ex))
	}

	return &models.GeneratedWorkout{
		MuscleGroup: muscleGroup,
		Intensity:   intensity,
		Kind:        models.PlanKindPreset,
		Plan: models.WorkoutPlan{
			Muscle:             muscle,
			Regions:            regions,
			Warmup:             tmpl.WarmupList,
			Focus:              focus,
			MainExercises:      main,
			Alternatives:       alts,
			PostWorkoutStretch: tmpl.PostWorkoutStretch,
			Source:             "preset",
		},
	}
}

func planBlockFor(tmpl *rawTemplate, intensity string) *rawPlanBlock {
	switch intensity {
	case models.IntensityBeginner:
		return tmpl.Plans.Beginner
	case models.IntensityIntermediate:
		return tmpl.Plans.Intermediate
	default:
		return tmpl.Plans.Hard
	}
}

func normalizeExercise(ex rawExercise) models.PlanExercise {
	loadType := inferLoadType(ex.Equipment)
	load := defaultLoad(loadType, ex.Sets)
	reps := ex.Reps
	if reps == "" {
		reps = "-"
	}
	equipment := ex.Equipment
	if equipment == "" {
		equipment = "Unknown"
	}

	details := make([]models.SetDetail, ex.Sets)
	for i := range details {
		details[i] = models.SetDetail{
			RepsPreset: ResolveRepsPreset(reps),
			Load:       load,
			LoadUnit:   models.LoadUnitKg,
			LoadType:   loadType,
		}
	}

	return models.PlanExercise{
		Exercise:        ex.Exercise,
		Equipment:       equipment,
		Reps:            reps,
		Sets:            ex.Sets,
		ActivatedRegion: ex.ActivatedRegion,
		Load:            load,
		LoadUnit:        models.LoadUnitKg,
		LoadType:        loadType,
		SetDetails:      details,
	}
}

// inferLoadType guesses how an exercise is loaded from its equipment name.
func inferLoadType(equipment string) string {
	eq := strings.ToLower(equipment)
	switch {
	case strings.Contains(eq, "dumbbell") || strings.Contains(eq, " db"):
		return models.LoadTypeDumbbell
	case strings.Contains(eq, "bodyweight") || strings.Contains(eq, "mat") || eq == "bench":
		return models.LoadTypeBodyweight
	case (strings.Contains(eq, "pull-up bar") || strings.Contains(eq, "parallel bars")) && !strings.Contains(eq, "belt"):
		return models.LoadTypeBodyweight
	default:
		return models.LoadTypeMachine
	}
}

// defaultLoad picks a sensible starting load in kg for exercises whose
// template does not prescribe one.
func defaultLoad(loadType string, sets int) float64 {
	switch loadType {
	case models.LoadTypeBodyweight:
		return 0
	case models.LoadTypeDumbbell:
		if sets >= 4 {
			return 35
		}
		return 25
	default:
		if sets >= 4 {
			return 95
		}
		return 65
	}
}
