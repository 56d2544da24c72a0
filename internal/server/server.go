package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/cadax/internal/feed"
	"github.com/meltforce/cadax/internal/plan"
	"github.com/meltforce/cadax/internal/storage"
	"github.com/meltforce/cadax/internal/timeline"
	"github.com/meltforce/cadax/internal/tracker"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db      *storage.DB
	hub     *feed.Hub
	tracker *tracker.Tracker
	library *plan.Library
	log     *slog.Logger
	apiKey  string
	router  chi.Router

	// whois resolves a Tailscale identity from the remote address. Nil in
	// plain-HTTP mode; requests then run as the dev user.
	whois WhoisFunc

	// today is swappable in tests.
	today func() timeline.Date
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, hub *feed.Hub, trk *tracker.Tracker, library *plan.Library, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:      db,
		hub:     hub,
		tracker: trk,
		library: library,
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
		today:   func() timeline.Date { return timeline.DateOf(time.Now()) },
	}
	s.routes()
	return s
}

// SetWhois installs the Tailscale identity resolver. Must be called before
// the server starts accepting requests.
func (s *Server) SetWhois(whois WhoisFunc) {
	s.whois = whois
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.identity)

	// Ingest endpoint (API key required)
	s.router.Route("/api/v1/ingest", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/", s.handleIngest)
	})

	// App API endpoints (no extra auth — tsnet handles access)
	s.router.Get("/api/v1/me", s.handleMe)
	s.router.Get("/api/v1/workouts", s.handleQueryWorkouts)
	s.router.Post("/api/v1/workouts/{date}/toggle", s.handleToggleWorkout)
	s.router.Get("/api/v1/week", s.handleWeek)
	s.router.Get("/api/v1/history", s.handleHistory)
	s.router.Get("/api/v1/streaks", s.handleStreaks)
	s.router.Get("/api/v1/goal", s.handleGetGoal)
	s.router.Put("/api/v1/goal", s.handlePutGoal)
	s.router.Get("/api/v1/plan", s.handlePlan)
	s.router.Get("/api/v1/routines/{muscle}", s.handleGetRoutine)
	s.router.Put("/api/v1/routines/{muscle}", s.handlePutRoutine)
	s.router.Get("/api/v1/coach/prompt", s.handleCoachPrompt)
	s.router.Get("/api/v1/coach/settings", s.handleGetCoachSettings)
	s.router.Put("/api/v1/coach/settings", s.handlePutCoachSettings)
	s.router.Get("/api/v1/stream", s.handleStream)
	s.router.Get("/api/v1/stats", s.handleStats)
}

// afterMutation runs the shared post-write path: the feed hub pushes a fresh
// snapshot to live subscribers and the streak tracker starts watching the
// user if it is not already.
func (s *Server) afterMutation(r *http.Request, userID int) {
	s.tracker.Watch(userID)
	s.hub.Publish(r.Context(), userID)
}
