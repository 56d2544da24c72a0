package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/meltforce/cadax/internal/models"
)

// ListWorkouts returns every workout record for a user, ordered by date.
// This is the full replacement snapshot the live feed republishes.
func (db *DB) ListWorkouts(ctx context.Context, userID int) ([]models.WorkoutRecord, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT to_char(date, 'YYYY-MM-DD'), muscle_groups, updated_at
		 FROM workouts
		 WHERE user_id = $1
		 ORDER BY date ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutRecord
	for rows.Next() {
		var rec models.WorkoutRecord
		if err := rows.Scan(&rec.Date, &rec.MuscleGroups, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// QueryWorkouts returns workout records with dates in [start, end].
func (db *DB) QueryWorkouts(ctx context.Context, userID int, start, end string) ([]models.WorkoutRecord, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT to_char(date, 'YYYY-MM-DD'), muscle_groups, updated_at
		 FROM workouts
		 WHERE user_id = $1 AND date >= $2::date AND date <= $3::date
		 ORDER BY date ASC`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying workouts in range: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutRecord
	for rows.Next() {
		var rec models.WorkoutRecord
		if err := rows.Scan(&rec.Date, &rec.MuscleGroups, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// UpsertWorkout writes the full muscle group set for one (user, date).
// An empty group set deletes the record instead; a record never exists
// with zero groups.
func (db *DB) UpsertWorkout(ctx context.Context, userID int, date string, groups []string) error {
	if len(groups) == 0 {
		return db.DeleteWorkout(ctx, userID, date)
	}
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO workouts (user_id, date, muscle_groups, updated_at)
		 VALUES ($1, $2::date, $3, NOW())
		 ON CONFLICT (user_id, date) DO UPDATE
			SET muscle_groups = EXCLUDED.muscle_groups, updated_at = NOW()`,
		userID, date, groups)
	if err != nil {
		return fmt.Errorf("upserting workout: %w", err)
	}
	return nil
}

// DeleteWorkout removes the record for one (user, date). Deleting a
// nonexistent record is not an error.
func (db *DB) DeleteWorkout(ctx context.Context, userID int, date string) error {
	_, err := db.Pool.Exec(ctx,
		`DELETE FROM workouts WHERE user_id = $1 AND date = $2::date`,
		userID, date)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	return nil
}

// ToggleMuscleGroup adds or removes one muscle group on a date's record,
// creating the record on first toggle and deleting it when the last group is
// removed. Returns the resulting group set (nil when the record was deleted).
func (db *DB) ToggleMuscleGroup(ctx context.Context, userID int, date, group string) ([]string, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning toggle tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var current []string
	err = tx.QueryRow(ctx,
		`SELECT muscle_groups FROM workouts
		 WHERE user_id = $1 AND date = $2::date
		 FOR UPDATE`,
		userID, date).Scan(&current)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("reading workout for toggle: %w", err)
	}

	updated := toggleGroup(current, group)

	if len(updated) == 0 {
		if _, err := tx.Exec(ctx,
			`DELETE FROM workouts WHERE user_id = $1 AND date = $2::date`,
			userID, date); err != nil {
			return nil, fmt.Errorf("deleting emptied workout: %w", err)
		}
	} else {
		if _, err := tx.Exec(ctx,
			`INSERT INTO workouts (user_id, date, muscle_groups, updated_at)
			 VALUES ($1, $2::date, $3, NOW())
			 ON CONFLICT (user_id, date) DO UPDATE
				SET muscle_groups = EXCLUDED.muscle_groups, updated_at = NOW()`,
			userID, date, updated); err != nil {
			return nil, fmt.Errorf("writing toggled workout: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing toggle: %w", err)
	}
	return updated, nil
}

// BulkUpsertWorkouts writes many records in one transaction, merging
// duplicate dates upstream. Returns the number of records written.
func (db *DB) BulkUpsertWorkouts(ctx context.Context, userID int, records []models.WorkoutRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning bulk upsert tx: %w", err)
	}
	defer tx.Rollback(ctx)

	written := 0
	for _, rec := range records {
		if len(rec.MuscleGroups) == 0 {
			continue
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO workouts (user_id, date, muscle_groups, updated_at)
			 VALUES ($1, $2::date, $3, NOW())
			 ON CONFLICT (user_id, date) DO UPDATE
				SET muscle_groups = EXCLUDED.muscle_groups, updated_at = NOW()`,
			userID, rec.Date, rec.MuscleGroups); err != nil {
			return 0, fmt.Errorf("upserting workout %s: %w", rec.Date, err)
		}
		written++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing bulk upsert: %w", err)
	}
	return written, nil
}

// toggleGroup returns groups with group removed if present, appended if not.
func toggleGroup(groups []string, group string) []string {
	for i, g := range groups {
		if g == group {
			return append(append([]string{}, groups[:i]...), groups[i+1:]...)
		}
	}
	return append(append([]string{}, groups...), group)
}
