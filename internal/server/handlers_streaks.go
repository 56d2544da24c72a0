package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/meltforce/cadax/internal/models"
	"github.com/meltforce/cadax/internal/timeline"
)

func (s *Server) handleWeek(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	weekStart := s.today().StartOfWeek()
	if raw := r.URL.Query().Get("start"); raw != "" {
		parsed, err := timeline.ParseDate(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid start date: " + err.Error()})
			return
		}
		weekStart = parsed.StartOfWeek()
	}

	records, err := s.db.ListWorkouts(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	goal, err := s.db.ReadGoal(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, timeline.SummarizeWeek(records, weekStart, goal))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	weeks := 8
	if raw := r.URL.Query().Get("weeks"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weeks must be a positive integer"})
			return
		}
		weeks = min(parsed, 52)
	}

	records, err := s.db.ListWorkouts(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, timeline.WeekHistory(records, s.today(), weeks))
}

// streaksResponse combines computed streaks with the persisted bests. The
// stored bests can exceed the computed ones when old records were deleted;
// the persistence guard keeps them from decaying on transient dips.
type streaksResponse struct {
	GoalDays            int                    `json:"goalDays"`
	WeeksTracked        int                    `json:"weeksTracked"`
	SkippedRecords      int                    `json:"skippedRecords,omitempty"`
	CurrentWorkoutWeeks int                    `json:"currentWorkoutWeeks"`
	CurrentGoalWeeks    int                    `json:"currentGoalWeeks"`
	ComputedBestWorkout int                    `json:"computedBestWorkoutWeeks"`
	ComputedBestGoal    int                    `json:"computedBestGoalWeeks"`
	StoredBests         models.StreakBests     `json:"storedBests"`
	Weeks               []timeline.WeekSummary `json:"weeks"`
}

func (s *Server) handleStreaks(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	records, err := s.db.ListWorkouts(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	goal, err := s.db.ReadGoal(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	weeks, skipped := timeline.AggregateWeeks(records, goal, s.today())
	streaks := timeline.ComputeStreaks(weeks)

	bests, err := s.db.ReadBestStreaks(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, streaksResponse{
		GoalDays:            goal,
		WeeksTracked:        len(weeks),
		SkippedRecords:      skipped,
		CurrentWorkoutWeeks: streaks.CurrentWorkout,
		CurrentGoalWeeks:    streaks.CurrentGoal,
		ComputedBestWorkout: streaks.BestWorkout,
		ComputedBestGoal:    streaks.BestGoal,
		StoredBests:         bests,
		Weeks:               weeks,
	})
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)
	goal, err := s.db.ReadGoal(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"goalDays": goal})
}

// goalRequest is the JSON body for updating the weekly goal.
type goalRequest struct {
	GoalDays int `json:"goalDays"`
}

func (s *Server) handlePutGoal(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	goal := timeline.ClampGoal(req.GoalDays)
	if err := s.db.WriteGoal(r.Context(), uid, goal); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	// A goal change moves the qualifying threshold, so streaks re-evaluate.
	s.afterMutation(r, uid)
	writeJSON(w, http.StatusOK, map[string]int{"goalDays": goal})
}
