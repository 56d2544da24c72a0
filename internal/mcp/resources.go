package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/cadax/internal/timeline"
)

func (h *handlers) currentStreaks(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)

	records, err := h.ds.ListWorkouts(ctx, uid)
	if err != nil {
		return nil, err
	}
	goal, err := h.ds.ReadGoal(ctx, uid)
	if err != nil {
		return nil, err
	}

	weeks, _ := timeline.AggregateWeeks(records, goal, today())
	streaks := timeline.ComputeStreaks(weeks)

	bests, err := h.ds.ReadBestStreaks(ctx, uid)
	if err != nil {
		h.log.Warn("current_streaks: stored bests failed", "error", err)
	}

	data, err := json.Marshal(map[string]any{
		"goal_days":             goal,
		"current_workout_weeks": streaks.CurrentWorkout,
		"current_goal_weeks":    streaks.CurrentGoal,
		"best_workout_weeks":    streaks.BestWorkout,
		"best_goal_weeks":       streaks.BestGoal,
		"stored_bests":          bests,
	})
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) dataStats(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)

	stats, err := h.ds.GetDataStats(ctx, uid)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
