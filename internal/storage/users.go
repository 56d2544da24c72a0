package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/meltforce/cadax/internal/coach"
	"github.com/meltforce/cadax/internal/models"
)

// GetOrCreateUser finds or creates a user by Tailscale login name.
// Returns the user ID. Updates last_seen and display_name on each call.
func (db *DB) GetOrCreateUser(ctx context.Context, login, displayName string) (int, error) {
	var id int
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO users (login, display_name)
		VALUES ($1, $2)
		ON CONFLICT (login) DO UPDATE
			SET last_seen = NOW(), display_name = COALESCE(NULLIF($2, ''), users.display_name)
		RETURNING id
	`, login, displayName).Scan(&id)
	return id, err
}

// GetProfile returns the user's settings row.
func (db *DB) GetProfile(ctx context.Context, userID int) (models.Profile, error) {
	var p models.Profile
	err := db.Pool.QueryRow(ctx,
		`SELECT id, login, display_name, goal_days, best_workout_streak_weeks, best_goal_streak_weeks
		 FROM users WHERE id = $1`,
		userID).Scan(&p.UserID, &p.Login, &p.DisplayName, &p.GoalDays,
		&p.Bests.WorkoutWeeks, &p.Bests.GoalWeeks)
	if err != nil {
		return models.Profile{}, fmt.Errorf("querying profile: %w", err)
	}
	return p, nil
}

// ReadGoal returns the user's weekly goal in days.
func (db *DB) ReadGoal(ctx context.Context, userID int) (int, error) {
	var goal int
	err := db.Pool.QueryRow(ctx,
		`SELECT goal_days FROM users WHERE id = $1`, userID).Scan(&goal)
	if err != nil {
		return 0, fmt.Errorf("querying goal: %w", err)
	}
	return goal, nil
}

// WriteGoal stores the weekly goal. Callers clamp to 1–7 before writing.
func (db *DB) WriteGoal(ctx context.Context, userID, goalDays int) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE users SET goal_days = $2 WHERE id = $1`, userID, goalDays)
	if err != nil {
		return fmt.Errorf("writing goal: %w", err)
	}
	return nil
}

// ReadCoachSettings returns the user's coach configuration, normalized so a
// hand-edited row cannot surface an out-of-range interval.
func (db *DB) ReadCoachSettings(ctx context.Context, userID int) (coach.Settings, error) {
	var settings coach.Settings
	err := db.Pool.QueryRow(ctx,
		`SELECT coach_mode, coach_interval_seconds, coach_enabled
		 FROM users WHERE id = $1`,
		userID).Scan(&settings.Mode, &settings.IntervalSeconds, &settings.Enabled)
	if errors.Is(err, pgx.ErrNoRows) {
		return coach.DefaultSettings(), nil
	}
	if err != nil {
		return coach.Settings{}, fmt.Errorf("querying coach settings: %w", err)
	}
	return coach.Normalize(settings), nil
}

// WriteCoachSettings stores the coach configuration. Callers normalize first.
func (db *DB) WriteCoachSettings(ctx context.Context, userID int, settings coach.Settings) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE users
		 SET coach_mode = $2, coach_interval_seconds = $3, coach_enabled = $4
		 WHERE id = $1`,
		userID, settings.Mode, settings.IntervalSeconds, settings.Enabled)
	if err != nil {
		return fmt.Errorf("writing coach settings: %w", err)
	}
	return nil
}

// ReadBestStreaks returns the stored best-streak record. A missing user row
// is reported as zeros, the conservative default, rather than an error.
func (db *DB) ReadBestStreaks(ctx context.Context, userID int) (models.StreakBests, error) {
	var bests models.StreakBests
	err := db.Pool.QueryRow(ctx,
		`SELECT best_workout_streak_weeks, best_goal_streak_weeks
		 FROM users WHERE id = $1`,
		userID).Scan(&bests.WorkoutWeeks, &bests.GoalWeeks)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.StreakBests{}, nil
	}
	if err != nil {
		return models.StreakBests{}, fmt.Errorf("querying best streaks: %w", err)
	}
	return bests, nil
}

// WriteBestStreaks updates only the two best-streak columns, a merge
// write that leaves the rest of the profile untouched.
func (db *DB) WriteBestStreaks(ctx context.Context, userID int, bests models.StreakBests) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE users
		 SET best_workout_streak_weeks = $2, best_goal_streak_weeks = $3
		 WHERE id = $1`,
		userID, bests.WorkoutWeeks, bests.GoalWeeks)
	if err != nil {
		return fmt.Errorf("writing best streaks: %w", err)
	}
	return nil
}
