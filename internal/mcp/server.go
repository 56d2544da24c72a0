package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/cadax/internal/plan"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, library *plan.Library, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("CADAX", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("CADAX workout consistency server. Query workout days, weekly streaks, training history, and training plans, or log a workout. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, library: library, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetStreaks, Handler: h.getStreaks},
		server.ServerTool{Tool: toolGetWeekSummary, Handler: h.getWeekSummary},
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolLogWorkout, Handler: h.logWorkout},
		server.ServerTool{Tool: toolGetHistory, Handler: h.getHistory},
		server.ServerTool{Tool: toolGetTrainingPlan, Handler: h.getTrainingPlan},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resCurrentStreaks, Handler: h.currentStreaks},
		server.ServerResource{Resource: resDataStats, Handler: h.dataStats},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds      DataSource
	library *plan.Library
	log     *slog.Logger
}

// --- Resource definitions ---

var resCurrentStreaks = mcp.NewResource(
	"cadax://current_streaks",
	"Current Streaks",
	mcp.WithResourceDescription("Current and best weekly workout/goal streaks plus the persisted best values"),
	mcp.WithMIMEType("application/json"),
)

var resDataStats = mcp.NewResource(
	"cadax://data_stats",
	"Data Stats",
	mcp.WithResourceDescription("Aggregate statistics about the logged training data: total days, date range, per-muscle-group counts"),
	mcp.WithMIMEType("application/json"),
)
