package mcp

import (
	"context"

	"github.com/meltforce/cadax/internal/models"
	"github.com/meltforce/cadax/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	ListWorkouts(ctx context.Context, userID int) ([]models.WorkoutRecord, error)
	QueryWorkouts(ctx context.Context, userID int, start, end string) ([]models.WorkoutRecord, error)
	UpsertWorkout(ctx context.Context, userID int, date string, groups []string) error
	ReadGoal(ctx context.Context, userID int) (int, error)
	ReadBestStreaks(ctx context.Context, userID int) (models.StreakBests, error)
	GetRoutine(ctx context.Context, userID int, muscleGroup string) (*models.CustomRoutine, error)
	GetDataStats(ctx context.Context, userID int) (*storage.DataStats, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
