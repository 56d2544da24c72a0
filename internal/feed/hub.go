package feed

import (
	"context"
	"log/slog"
	"sync"

	"github.com/meltforce/cadax/internal/models"
)

// LoadFunc fetches the complete workout snapshot for one user.
type LoadFunc func(ctx context.Context, userID int) ([]models.WorkoutRecord, error)

// Handler receives a complete replacement snapshot, never a diff, every time
// the user's workout data changes.
type Handler func(records []models.WorkoutRecord)

// Hub is a push-based live feed of workout snapshots. Mutating code calls
// Publish after a write; the hub reloads the user's full record set and
// delivers it to every subscriber.
type Hub struct {
	load LoadFunc
	log  *slog.Logger

	mu   sync.Mutex
	subs map[int]map[*subscription]struct{}
}

type subscription struct {
	handler Handler
}

// NewHub creates a hub that loads snapshots through load.
func NewHub(load LoadFunc, log *slog.Logger) *Hub {
	return &Hub{
		load: load,
		log:  log,
		subs: make(map[int]map[*subscription]struct{}),
	}
}

// Subscribe registers a handler for one user's snapshots and returns a cancel
// function. Cancel is safe to call more than once; the unsubscribe itself
// happens exactly once.
func (h *Hub) Subscribe(userID int, handler Handler) func() {
	sub := &subscription{handler: handler}

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[*subscription]struct{})
	}
	h.subs[userID][sub] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[userID], sub)
			if len(h.subs[userID]) == 0 {
				delete(h.subs, userID)
			}
			h.mu.Unlock()
		})
	}
}

// Publish reloads the user's snapshot and delivers it to all subscribers.
// Load failures are logged and swallowed; the next write triggers a retry.
func (h *Hub) Publish(ctx context.Context, userID int) {
	h.mu.Lock()
	targets := make([]Handler, 0, len(h.subs[userID]))
	for sub := range h.subs[userID] {
		targets = append(targets, sub.handler)
	}
	h.mu.Unlock()

	if len(targets) == 0 {
		return
	}

	records, err := h.load(ctx, userID)
	if err != nil {
		h.log.Warn("feed snapshot load failed", "user_id", userID, "error", err)
		return
	}
	for _, deliver := range targets {
		deliver(records)
	}
}

// SubscriberCount reports active subscriptions for one user.
func (h *Hub) SubscriberCount(userID int) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[userID])
}
