package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/meltforce/cadax/internal/models"
)

// handleStream serves the live snapshot feed over SSE. The client gets the
// full record set immediately, then a replacement snapshot after every
// mutation. Slow clients drop snapshots rather than stalling writers; the
// next publish carries the complete state anyway.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "streaming not supported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	snapshots := make(chan []models.WorkoutRecord, 8)
	cancel := s.hub.Subscribe(uid, func(records []models.WorkoutRecord) {
		select {
		case snapshots <- records:
		default:
		}
	})
	defer cancel()

	// Streaming clients should track streak updates too.
	s.tracker.Watch(uid)

	records, err := s.db.ListWorkouts(r.Context(), uid)
	if err != nil {
		s.log.Error("stream initial snapshot", "user_id", uid, "error", err)
		fmt.Fprintf(w, "event: error\ndata: %s\n\n", mustJSON(map[string]string{"error": "loading snapshot"}))
		flusher.Flush()
		return
	}
	fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", mustJSON(records))
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case recs := <-snapshots:
			fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", mustJSON(recs))
			flusher.Flush()
		}
	}
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return `{}`
	}
	return string(b)
}
