package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/cadax/internal/coach"
	"github.com/meltforce/cadax/internal/models"
	"github.com/meltforce/cadax/internal/plan"
)

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	muscle := r.URL.Query().Get("muscle")
	if !models.ValidMuscleGroup(muscle) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown muscle group " + muscle})
		return
	}

	intensity := r.URL.Query().Get("intensity")
	switch intensity {
	case models.IntensityBeginner, models.IntensityIntermediate, models.IntensityPro:
	case "":
		intensity = models.IntensityIntermediate
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown intensity " + intensity})
		return
	}

	// A saved routine shadows the preset for its muscle group.
	routine, err := s.db.GetRoutine(r.Context(), uid, muscle)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if routine != nil {
		writeJSON(w, http.StatusOK, plan.ToWorkout(*routine, intensity))
		return
	}

	writeJSON(w, http.StatusOK, s.library.Generate(muscle, intensity))
}

func (s *Server) handleGetRoutine(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	muscle := chi.URLParam(r, "muscle")
	if !models.ValidMuscleGroup(muscle) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown muscle group " + muscle})
		return
	}

	routine, err := s.db.GetRoutine(r.Context(), uid, muscle)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if routine == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no routine for " + muscle})
		return
	}
	writeJSON(w, http.StatusOK, routine)
}

func (s *Server) handlePutRoutine(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	muscle := chi.URLParam(r, "muscle")
	if !models.ValidMuscleGroup(muscle) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown muscle group " + muscle})
		return
	}

	var routine models.CustomRoutine
	if err := json.NewDecoder(r.Body).Decode(&routine); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if len(routine.MainExercises) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "routine has no exercises"})
		return
	}

	// The path owns the muscle group; the body cannot save under another one.
	routine.MuscleGroup = muscle

	saved, err := s.db.SaveRoutine(r.Context(), uid, routine)
	if err != nil {
		s.log.Error("save routine error", "muscle", muscle, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleCoachPrompt(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode != coach.ModeEncourage && mode != coach.ModeRoast {
		mode = coach.ModeRoast
	}

	seed := int(time.Now().Unix())
	if raw := r.URL.Query().Get("seed"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "seed must be an integer"})
			return
		}
		seed = parsed
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"mode": mode,
		"line": coach.Line(mode, seed),
	})
}

func (s *Server) handleGetCoachSettings(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	settings, err := s.db.ReadCoachSettings(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handlePutCoachSettings(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	var settings coach.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	// Out-of-range intervals and unknown modes are coerced, not rejected.
	settings = coach.Normalize(settings)

	if err := s.db.WriteCoachSettings(r.Context(), uid, settings); err != nil {
		s.log.Error("write coach settings error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
