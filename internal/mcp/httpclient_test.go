package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meltforce/cadax/internal/models"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by path. Verifies the HTTP client sends correct paths and query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestListWorkouts verifies the HTTP client hits /api/v1/workouts without
// range params and parses the record array.
func TestListWorkouts(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/workouts": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.RawQuery != "" {
				t.Errorf("unexpected query: %s", r.URL.RawQuery)
			}
			writeTestJSON(t, w, []models.WorkoutRecord{
				{Date: "2025-03-10", MuscleGroups: []string{"Chest", "Triceps"}},
			})
		},
	})
	defer ts.Close()

	c := NewHTTPClient(ts.URL, "")
	records, err := c.ListWorkouts(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListWorkouts() error = %v", err)
	}
	if len(records) != 1 || records[0].Date != "2025-03-10" {
		t.Errorf("records = %+v", records)
	}
}

// TestQueryWorkoutsParams verifies start/end are forwarded as query params.
func TestQueryWorkoutsParams(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/workouts": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("start"); got != "2025-01-01" {
				t.Errorf("start = %q, want 2025-01-01", got)
			}
			if got := r.URL.Query().Get("end"); got != "2025-01-31" {
				t.Errorf("end = %q, want 2025-01-31", got)
			}
			writeTestJSON(t, w, []models.WorkoutRecord{})
		},
	})
	defer ts.Close()

	c := NewHTTPClient(ts.URL, "")
	if _, err := c.QueryWorkouts(context.Background(), 1, "2025-01-01", "2025-01-31"); err != nil {
		t.Fatalf("QueryWorkouts() error = %v", err)
	}
}

// TestUpsertWorkoutSendsAPIKey verifies the write path posts the ingest
// payload with the API key header.
func TestUpsertWorkoutSendsAPIKey(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/ingest": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("method = %s, want POST", r.Method)
			}
			if got := r.Header.Get("X-API-Key"); got != "secret" {
				t.Errorf("X-API-Key = %q, want secret", got)
			}
			var body struct {
				Records []models.WorkoutRecord `json:"records"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if len(body.Records) != 1 || body.Records[0].Date != "2025-03-12" {
				t.Errorf("records = %+v", body.Records)
			}
			writeTestJSON(t, w, map[string]int{"received": 1, "written": 1})
		},
	})
	defer ts.Close()

	c := NewHTTPClient(ts.URL, "secret")
	if err := c.UpsertWorkout(context.Background(), 1, "2025-03-12", []string{"Legs"}); err != nil {
		t.Fatalf("UpsertWorkout() error = %v", err)
	}
}

// TestReadGoal verifies goal decoding.
func TestReadGoal(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/goal": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, map[string]int{"goalDays": 5})
		},
	})
	defer ts.Close()

	c := NewHTTPClient(ts.URL, "")
	goal, err := c.ReadGoal(context.Background(), 1)
	if err != nil {
		t.Fatalf("ReadGoal() error = %v", err)
	}
	if goal != 5 {
		t.Errorf("goal = %d, want 5", goal)
	}
}

// TestReadBestStreaks verifies the stored bests are pulled out of the
// streaks response.
func TestReadBestStreaks(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/streaks": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, map[string]any{
				"currentWorkoutWeeks": 3,
				"storedBests":         models.StreakBests{WorkoutWeeks: 9, GoalWeeks: 4},
			})
		},
	})
	defer ts.Close()

	c := NewHTTPClient(ts.URL, "")
	bests, err := c.ReadBestStreaks(context.Background(), 1)
	if err != nil {
		t.Fatalf("ReadBestStreaks() error = %v", err)
	}
	if bests.WorkoutWeeks != 9 || bests.GoalWeeks != 4 {
		t.Errorf("bests = %+v, want {9 4}", bests)
	}
}

// TestGetRoutineNotFound verifies a 404 maps to (nil, nil): the caller falls
// back to the preset plan.
func TestGetRoutineNotFound(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/routines/Chest": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			writeTestJSON(t, w, map[string]string{"error": "no routine for Chest"})
		},
	})
	defer ts.Close()

	c := NewHTTPClient(ts.URL, "")
	routine, err := c.GetRoutine(context.Background(), 1, "Chest")
	if err != nil {
		t.Fatalf("GetRoutine() error = %v", err)
	}
	if routine != nil {
		t.Errorf("routine = %+v, want nil", routine)
	}
}

// TestGetRoutineServerError verifies only a 404 falls back to the preset;
// any other failure surfaces as an error.
func TestGetRoutineServerError(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/routines/Chest": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
		},
	})
	defer ts.Close()

	c := NewHTTPClient(ts.URL, "")
	if _, err := c.GetRoutine(context.Background(), 1, "Chest"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

// TestServerErrorSurfaced verifies non-200 responses become errors with the
// status code included.
func TestServerErrorSurfaced(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/goal": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
		},
	})
	defer ts.Close()

	c := NewHTTPClient(ts.URL, "")
	if _, err := c.ReadGoal(context.Background(), 1); err == nil {
		t.Fatal("expected error for 500 response")
	}
}
