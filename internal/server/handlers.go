package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/cadax/internal/models"
	"github.com/meltforce/cadax/internal/timeline"
)

// ingestRequest is the JSON body for bulk workout record ingest.
type ingestRequest struct {
	Records []models.WorkoutRecord `json:"records"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if len(req.Records) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "records is empty"})
		return
	}

	for _, rec := range req.Records {
		if _, err := timeline.ParseDate(rec.Date); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date " + rec.Date + " (want YYYY-MM-DD)"})
			return
		}
		for _, g := range rec.MuscleGroups {
			if !models.ValidMuscleGroup(g) {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown muscle group " + g})
				return
			}
		}
	}

	written, err := s.db.BulkUpsertWorkouts(r.Context(), uid, req.Records)
	if err != nil {
		s.log.Error("ingest error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	s.afterMutation(r, uid)
	writeJSON(w, http.StatusOK, map[string]int{
		"received": len(req.Records),
		"written":  written,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func (s *Server) handleQueryWorkouts(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")

	if start == "" && end == "" {
		records, err := s.db.ListWorkouts(r.Context(), uid)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, records)
		return
	}

	if start == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "start parameter required when end is set"})
		return
	}
	if _, err := timeline.ParseDate(start); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid start date: " + err.Error()})
		return
	}
	if end == "" {
		end = s.today().String()
	} else if _, err := timeline.ParseDate(end); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid end date: " + err.Error()})
		return
	}

	records, err := s.db.QueryWorkouts(r.Context(), uid, start, end)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// toggleRequest is the JSON body for toggling one muscle group on a date.
type toggleRequest struct {
	MuscleGroup string `json:"muscleGroup"`
}

func (s *Server) handleToggleWorkout(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	date := chi.URLParam(r, "date")
	if _, err := timeline.ParseDate(date); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date: " + err.Error()})
		return
	}

	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if !models.ValidMuscleGroup(req.MuscleGroup) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown muscle group " + req.MuscleGroup})
		return
	}

	groups, err := s.db.ToggleMuscleGroup(r.Context(), uid, date, req.MuscleGroup)
	if err != nil {
		s.log.Error("toggle error", "date", date, "group", req.MuscleGroup, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	s.afterMutation(r, uid)
	writeJSON(w, http.StatusOK, map[string]any{
		"date":         date,
		"muscleGroups": groups,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)
	stats, err := s.db.GetDataStats(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
