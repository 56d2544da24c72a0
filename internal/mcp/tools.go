package mcp

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/cadax/internal/models"
	"github.com/meltforce/cadax/internal/plan"
	"github.com/meltforce/cadax/internal/timeline"
)

// --- Tool definitions ---

var toolGetStreaks = mcp.NewTool("get_streaks",
	mcp.WithDescription("Get current and best weekly streaks. A workout streak counts weeks with at least one workout; a goal streak counts weeks meeting the weekly goal. Includes the persisted best values."),
)

var toolGetWeekSummary = mcp.NewTool("get_week_summary",
	mcp.WithDescription("Summary of one week: distinct workout days, days remaining to the goal, days over the goal, and per-muscle-group counts."),
	mcp.WithString("start", mcp.Description("Any date inside the week (YYYY-MM-DD). Defaults to the current week.")),
)

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("Query workout records. Each record is one day with the muscle groups trained."),
	mcp.WithString("start", mcp.Description("Start date (YYYY-MM-DD). When omitted, all records are returned.")),
	mcp.WithString("end", mcp.Description("End date (YYYY-MM-DD). Defaults to today.")),
)

var toolLogWorkout = mcp.NewTool("log_workout",
	mcp.WithDescription("Log a workout: record the muscle groups trained on a date. Replaces any existing record for that date."),
	mcp.WithString("date", mcp.Required(), mcp.Description("Workout date (YYYY-MM-DD)")),
	mcp.WithString("muscle_groups", mcp.Required(), mcp.Description("Comma-separated muscle groups (e.g. 'Chest,Triceps'). Valid: Chest, Back, Legs, Shoulder, Biceps, Triceps, Forearms, Core.")),
)

var toolGetHistory = mcp.NewTool("get_history",
	mcp.WithDescription("Trailing weekly history: workout day counts per week, oldest first."),
	mcp.WithString("weeks", mcp.Description("Number of trailing weeks. Defaults to 8, max 52.")),
)

var toolGetTrainingPlan = mcp.NewTool("get_training_plan",
	mcp.WithDescription("Get the training plan for a muscle group at an intensity. A custom routine saved by the user shadows the built-in preset."),
	mcp.WithString("muscle", mcp.Required(), mcp.Description("Muscle group (e.g. Chest, Back, Legs)")),
	mcp.WithString("intensity", mcp.Description("Beginner, Intermediate, or Pro. Defaults to Intermediate."), mcp.Enum("Beginner", "Intermediate", "Pro")),
)

// --- Tool handlers ---

func today() timeline.Date {
	return timeline.DateOf(time.Now())
}

func (h *handlers) getStreaks(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	records, err := h.ds.ListWorkouts(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_streaks", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	goal, err := h.ds.ReadGoal(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_streaks goal", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	weeks, skipped := timeline.AggregateWeeks(records, goal, today())
	streaks := timeline.ComputeStreaks(weeks)

	bests, err := h.ds.ReadBestStreaks(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_streaks bests", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"goal_days":             goal,
		"weeks_tracked":         len(weeks),
		"skipped_records":       skipped,
		"current_workout_weeks": streaks.CurrentWorkout,
		"current_goal_weeks":    streaks.CurrentGoal,
		"best_workout_weeks":    streaks.BestWorkout,
		"best_goal_weeks":       streaks.BestGoal,
		"stored_bests":          bests,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWeekSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	weekStart := today().StartOfWeek()
	if raw := req.GetString("start", ""); raw != "" {
		parsed, err := timeline.ParseDate(raw)
		if err != nil {
			return mcp.NewToolResultError("invalid start date: " + err.Error()), nil
		}
		weekStart = parsed.StartOfWeek()
	}

	records, err := h.ds.ListWorkouts(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_week_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	goal, err := h.ds.ReadGoal(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_week_summary goal", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(timeline.SummarizeWeek(records, weekStart, goal))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	start := req.GetString("start", "")
	end := req.GetString("end", "")

	var records []models.WorkoutRecord
	var err error
	if start == "" {
		records, err = h.ds.ListWorkouts(ctx, uid)
	} else {
		if _, perr := timeline.ParseDate(start); perr != nil {
			return mcp.NewToolResultError("invalid start date: " + perr.Error()), nil
		}
		if end == "" {
			end = today().String()
		} else if _, perr := timeline.ParseDate(end); perr != nil {
			return mcp.NewToolResultError("invalid end date: " + perr.Error()), nil
		}
		records, err = h.ds.QueryWorkouts(ctx, uid, start, end)
	}
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(records)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) logWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date parameter is required"), nil
	}
	if _, err := timeline.ParseDate(date); err != nil {
		return mcp.NewToolResultError("invalid date (want YYYY-MM-DD): " + err.Error()), nil
	}

	groupsRaw, err := req.RequireString("muscle_groups")
	if err != nil {
		return mcp.NewToolResultError("muscle_groups parameter is required"), nil
	}
	var groups []string
	for _, g := range strings.Split(groupsRaw, ",") {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if !models.ValidMuscleGroup(g) {
			return mcp.NewToolResultError("unknown muscle group: " + g), nil
		}
		groups = append(groups, g)
	}
	if len(groups) == 0 {
		return mcp.NewToolResultError("muscle_groups is empty"), nil
	}

	if err := h.ds.UpsertWorkout(ctx, uid, date, groups); err != nil {
		h.log.Error("mcp log_workout", "error", err)
		return mcp.NewToolResultError("write failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"date":          date,
		"muscle_groups": groups,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	weeks := 8
	if raw := req.GetString("weeks", ""); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return mcp.NewToolResultError("weeks must be a positive integer"), nil
		}
		weeks = min(parsed, 52)
	}

	records, err := h.ds.ListWorkouts(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(timeline.WeekHistory(records, today(), weeks))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTrainingPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	muscle, err := req.RequireString("muscle")
	if err != nil {
		return mcp.NewToolResultError("muscle parameter is required"), nil
	}
	if !models.ValidMuscleGroup(muscle) {
		return mcp.NewToolResultError("unknown muscle group: " + muscle), nil
	}

	intensity := req.GetString("intensity", models.IntensityIntermediate)
	switch intensity {
	case models.IntensityBeginner, models.IntensityIntermediate, models.IntensityPro:
	default:
		return mcp.NewToolResultError("unknown intensity: " + intensity), nil
	}

	routine, err := h.ds.GetRoutine(ctx, uid, muscle)
	if err != nil {
		h.log.Error("mcp get_training_plan", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	var workout models.GeneratedWorkout
	if routine != nil {
		workout = plan.ToWorkout(*routine, intensity)
	} else {
		workout = h.library.Generate(muscle, intensity)
	}

	result, err := mcp.NewToolResultJSON(workout)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
