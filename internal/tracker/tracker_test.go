package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/meltforce/cadax/internal/feed"
	"github.com/meltforce/cadax/internal/models"
	"github.com/meltforce/cadax/internal/timeline"
)

type fakeStore struct {
	goal      int
	bests     models.StreakBests
	failWrite bool
	writes    []models.StreakBests
}

func (f *fakeStore) ReadGoal(ctx context.Context, userID int) (int, error) {
	return f.goal, nil
}

func (f *fakeStore) ReadBestStreaks(ctx context.Context, userID int) (models.StreakBests, error) {
	return f.bests, nil
}

func (f *fakeStore) WriteBestStreaks(ctx context.Context, userID int, bests models.StreakBests) error {
	if f.failWrite {
		return fmt.Errorf("backend unavailable")
	}
	f.writes = append(f.writes, bests)
	f.bests = bests
	return nil
}

type harness struct {
	hub     *feed.Hub
	store   *fakeStore
	tracker *Tracker
	records []models.WorkoutRecord
}

func newHarness(t *testing.T, goal int, stored models.StreakBests) *harness {
	t.Helper()
	h := &harness{store: &fakeStore{goal: goal, bests: stored}}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	h.hub = feed.NewHub(func(ctx context.Context, userID int) ([]models.WorkoutRecord, error) {
		return h.records, nil
	}, log)
	h.tracker = New(h.hub, h.store, log)
	h.tracker.today = func() timeline.Date { return timeline.Date{Year: 2025, Month: 3, Day: 12} }
	return h
}

func (h *harness) publish(records ...models.WorkoutRecord) {
	h.records = records
	h.hub.Publish(context.Background(), 1)
}

func workoutOn(date string) models.WorkoutRecord {
	return models.WorkoutRecord{Date: date, MuscleGroups: []string{"Chest"}}
}

// TestTrackerWritesIncrease verifies a fresh best above the stored best is
// persisted immediately.
func TestTrackerWritesIncrease(t *testing.T) {
	h := newHarness(t, 4, models.StreakBests{})
	h.tracker.Watch(1)
	defer h.tracker.Close()

	h.publish(workoutOn("2025-03-12"))

	if len(h.store.writes) != 1 {
		t.Fatalf("writes = %d, want 1", len(h.store.writes))
	}
	want := models.StreakBests{WorkoutWeeks: 1, GoalWeeks: 0}
	if h.store.writes[0] != want {
		t.Errorf("written bests = %+v, want %+v", h.store.writes[0], want)
	}
}

// TestTrackerHoldsUnjustifiedDecrease verifies that a lower fresh best with
// no snapshot evidence (first run) does not clobber the stored best.
func TestTrackerHoldsUnjustifiedDecrease(t *testing.T) {
	h := newHarness(t, 4, models.StreakBests{WorkoutWeeks: 6, GoalWeeks: 3})
	h.tracker.Watch(1)
	defer h.tracker.Close()

	h.publish(workoutOn("2025-03-12"))

	if len(h.store.writes) != 0 {
		t.Fatalf("writes = %d, want 0", len(h.store.writes))
	}
}

// TestTrackerWritesJustifiedDecrease verifies the delete-last-workout flow:
// a week's count dropping 1 → 0 between snapshots permits the decrease write.
func TestTrackerWritesJustifiedDecrease(t *testing.T) {
	h := newHarness(t, 4, models.StreakBests{WorkoutWeeks: 1, GoalWeeks: 0})
	h.tracker.Watch(1)
	defer h.tracker.Close()

	// First snapshot matches the stored best: no write, but primes the
	// previous weekly-count snapshot.
	h.publish(workoutOn("2025-03-12"))
	if len(h.store.writes) != 0 {
		t.Fatalf("writes after priming = %d, want 0", len(h.store.writes))
	}

	// The only workout of the current week is deleted.
	h.publish()

	if len(h.store.writes) != 1 {
		t.Fatalf("writes = %d, want 1", len(h.store.writes))
	}
	want := models.StreakBests{WorkoutWeeks: 0, GoalWeeks: 0}
	if h.store.writes[0] != want {
		t.Errorf("written bests = %+v, want %+v", h.store.writes[0], want)
	}
}

// TestTrackerRetriesFailedWrite verifies a failed write is not fatal and the
// next snapshot attempts it again.
func TestTrackerRetriesFailedWrite(t *testing.T) {
	h := newHarness(t, 4, models.StreakBests{})
	h.tracker.Watch(1)
	defer h.tracker.Close()

	h.store.failWrite = true
	h.publish(workoutOn("2025-03-12"))
	if len(h.store.writes) != 0 {
		t.Fatalf("writes while backend down = %d, want 0", len(h.store.writes))
	}

	h.store.failWrite = false
	h.publish(workoutOn("2025-03-12"))
	if len(h.store.writes) != 1 {
		t.Errorf("writes after recovery = %d, want 1", len(h.store.writes))
	}
}

// TestTrackerSingleSubscription verifies Watch is idempotent and Close
// releases the subscription.
func TestTrackerSingleSubscription(t *testing.T) {
	h := newHarness(t, 4, models.StreakBests{})
	h.tracker.Watch(1)
	h.tracker.Watch(1)

	if got := h.hub.SubscriberCount(1); got != 1 {
		t.Errorf("subscribers = %d, want 1", got)
	}

	h.tracker.Close()
	if got := h.hub.SubscriberCount(1); got != 0 {
		t.Errorf("subscribers after close = %d, want 0", got)
	}
}

// TestTrackerGoalChangeAllowsDecrease verifies a goal change between
// snapshots justifies persisting a reduced goal-streak best.
func TestTrackerGoalChangeAllowsDecrease(t *testing.T) {
	h := newHarness(t, 1, models.StreakBests{WorkoutWeeks: 1, GoalWeeks: 1})
	h.tracker.Watch(1)
	defer h.tracker.Close()

	// Prime: one workout this week meets goal 1, matching stored bests.
	h.publish(workoutOn("2025-03-12"))
	if len(h.store.writes) != 0 {
		t.Fatalf("writes after priming = %d, want 0", len(h.store.writes))
	}

	// Raising the goal to 5 makes the week fail it; best goal streak drops.
	h.store.goal = 5
	h.publish(workoutOn("2025-03-12"))

	if len(h.store.writes) != 1 {
		t.Fatalf("writes = %d, want 1", len(h.store.writes))
	}
	if h.store.writes[0].GoalWeeks != 0 {
		t.Errorf("goal best = %d, want 0", h.store.writes[0].GoalWeeks)
	}
}
