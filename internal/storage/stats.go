package storage

import (
	"context"
	"fmt"
)

// DataStats holds aggregate statistics about a user's logged training data.
type DataStats struct {
	TotalWorkoutDays int64             `json:"total_workout_days"`
	EarliestDate     *string           `json:"earliest_date"`
	LatestDate       *string           `json:"latest_date"`
	DaysByMuscle     []MuscleGroupStat `json:"days_by_muscle"`
}

// MuscleGroupStat is the all-time day count for one muscle group.
type MuscleGroupStat struct {
	Name string `json:"name"`
	Days int64  `json:"days"`
}

// GetDataStats returns aggregate statistics for a user's workout log.
func (db *DB) GetDataStats(ctx context.Context, userID int) (*DataStats, error) {
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        to_char(MIN(date), 'YYYY-MM-DD'),
		        to_char(MAX(date), 'YYYY-MM-DD')
		 FROM workouts WHERE user_id = $1`, userID,
	).Scan(&stats.TotalWorkoutDays, &stats.EarliestDate, &stats.LatestDate)
	if err != nil {
		return nil, fmt.Errorf("counting workout days: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT g, COUNT(*)
		 FROM workouts, unnest(muscle_groups) AS g
		 WHERE user_id = $1
		 GROUP BY g
		 ORDER BY COUNT(*) DESC, g ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying days by muscle: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s MuscleGroupStat
		if err := rows.Scan(&s.Name, &s.Days); err != nil {
			return nil, fmt.Errorf("scanning muscle stat: %w", err)
		}
		stats.DaysByMuscle = append(stats.DaysByMuscle, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
