package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/meltforce/cadax/internal/models"
)

// GetRoutine returns the user's saved routine for one muscle group, or
// (nil, nil) when none exists.
func (db *DB) GetRoutine(ctx context.Context, userID int, muscleGroup string) (*models.CustomRoutine, error) {
	var payload []byte
	err := db.Pool.QueryRow(ctx,
		`SELECT payload FROM routines WHERE user_id = $1 AND muscle_group = $2`,
		userID, muscleGroup).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying routine: %w", err)
	}

	var routine models.CustomRoutine
	if err := json.Unmarshal(payload, &routine); err != nil {
		return nil, fmt.Errorf("decoding routine payload: %w", err)
	}
	return &routine, nil
}

// SaveRoutine upserts the user's routine for its muscle group. The stored
// payload always carries the "mine" kind tag; assigns an ID on first save.
func (db *DB) SaveRoutine(ctx context.Context, userID int, routine models.CustomRoutine) (models.CustomRoutine, error) {
	routine.UserID = userID
	routine.Kind = models.PlanKindMine
	if routine.ID == uuid.Nil {
		routine.ID = uuid.New()
	}

	payload, err := json.Marshal(routine)
	if err != nil {
		return models.CustomRoutine{}, fmt.Errorf("encoding routine payload: %w", err)
	}

	_, err = db.Pool.Exec(ctx,
		`INSERT INTO routines (id, user_id, muscle_group, payload, updated_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (user_id, muscle_group) DO UPDATE
			SET payload = EXCLUDED.payload, updated_at = NOW()`,
		routine.ID, userID, routine.MuscleGroup, payload)
	if err != nil {
		return models.CustomRoutine{}, fmt.Errorf("upserting routine: %w", err)
	}
	return routine, nil
}
