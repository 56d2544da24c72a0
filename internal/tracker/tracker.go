package tracker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/meltforce/cadax/internal/feed"
	"github.com/meltforce/cadax/internal/models"
	"github.com/meltforce/cadax/internal/timeline"
)

// Store is the slice of persistence the tracker needs: the goal and the
// best-streak record.
type Store interface {
	ReadGoal(ctx context.Context, userID int) (int, error)
	ReadBestStreaks(ctx context.Context, userID int) (models.StreakBests, error)
	WriteBestStreaks(ctx context.Context, userID int, bests models.StreakBests) error
}

// Tracker observes the live workout feed and keeps the persisted best-streak
// record up to date through the guard policy. One subscription per user,
// released exactly once on Close.
type Tracker struct {
	hub   *feed.Hub
	store Store
	log   *slog.Logger
	today func() timeline.Date

	mu       sync.Mutex
	sessions map[int]*session
}

type session struct {
	cancel     func()
	prevCounts map[timeline.Date]int
	prevGoal   int
}

// New creates a tracker attached to the hub.
func New(hub *feed.Hub, store Store, log *slog.Logger) *Tracker {
	return &Tracker{
		hub:      hub,
		store:    store,
		log:      log,
		today:    func() timeline.Date { return timeline.DateOf(time.Now()) },
		sessions: make(map[int]*session),
	}
}

// Watch ensures the tracker is subscribed to the user's feed. Calling it
// again for the same user is a no-op.
func (t *Tracker) Watch(userID int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.sessions[userID]; ok {
		return
	}
	sess := &session{}
	sess.cancel = t.hub.Subscribe(userID, func(records []models.WorkoutRecord) {
		t.onSnapshot(userID, records)
	})
	t.sessions[userID] = sess
}

// Close releases every subscription. Safe to call once at shutdown.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for userID, sess := range t.sessions {
		sess.cancel()
		delete(t.sessions, userID)
	}
}

// onSnapshot recomputes streaks from the full snapshot and persists new
// bests when the guard allows it. Read and write failures are non-fatal:
// a failed bests read counts as zeros, and a failed write is simply retried
// on the next snapshot.
func (t *Tracker) onSnapshot(userID int, records []models.WorkoutRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	goal, err := t.store.ReadGoal(ctx, userID)
	if err != nil {
		t.log.Warn("goal read failed, using default", "user_id", userID, "error", err)
		goal = 4
	}
	goal = timeline.ClampGoal(goal)

	weeks, skipped := timeline.AggregateWeeks(records, goal, t.today())
	if skipped > 0 {
		t.log.Warn("skipped workout records with malformed dates", "user_id", userID, "count", skipped)
	}
	fresh := timeline.ComputeStreaks(weeks)
	currCounts := timeline.CountByWeek(records)

	stored, err := t.store.ReadBestStreaks(ctx, userID)
	if err != nil {
		t.log.Warn("best streak read failed, assuming zeros", "user_id", userID, "error", err)
		stored = models.StreakBests{}
	}

	t.mu.Lock()
	sess := t.sessions[userID]
	var prevCounts map[timeline.Date]int
	var prevGoal int
	if sess != nil {
		prevCounts = sess.prevCounts
		prevGoal = sess.prevGoal
		sess.prevCounts = currCounts
		sess.prevGoal = goal
	}
	t.mu.Unlock()

	next, write := timeline.ApplyBestStreakGuard(timeline.GuardInput{
		Stored:     stored,
		Fresh:      models.StreakBests{WorkoutWeeks: fresh.BestWorkout, GoalWeeks: fresh.BestGoal},
		PrevCounts: prevCounts,
		CurrCounts: currCounts,
		PrevGoal:   prevGoal,
		CurrGoal:   goal,
	})
	if !write {
		return
	}

	if err := t.store.WriteBestStreaks(ctx, userID, next); err != nil {
		t.log.Warn("best streak write failed, will retry on next change", "user_id", userID, "error", err)
	}
}
