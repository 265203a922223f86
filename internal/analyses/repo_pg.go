package analyses

import (
	"context"
	"database/sql"

	"stress-backend/internal/stress"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, user_id, emotion, confidence, daily_routine, stress_level, recommendation, image_key, created_at`

// Create inserts a new record.
func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO analysis_history (
	id, user_id, emotion, confidence, daily_routine, stress_level, recommendation, image_key, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.UserID,
		string(rec.Emotion),
		rec.Confidence,
		nullString(rec.DailyRoutine),
		string(rec.StressLevel),
		rec.Recommendation,
		nullString(rec.ImageKey),
		rec.CreatedAt,
	)
	return err
}

// ListByUser returns a page of the user's records, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	const query = `
SELECT ` + selectColumns + `
FROM analysis_history
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

// ListAllByUser returns all of the user's records, oldest first.
func (r *PGRepo) ListAllByUser(ctx context.Context, userID string) ([]Record, error) {
	const query = `
SELECT ` + selectColumns + `
FROM analysis_history
WHERE user_id = $1
ORDER BY created_at ASC, id ASC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

// DeleteByUser removes the user's records and reports the stored image keys.
func (r *PGRepo) DeleteByUser(ctx context.Context, userID string) (int, []string, error) {
	const query = `
DELETE FROM analysis_history
WHERE user_id = $1
RETURNING image_key`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	count := 0
	var keys []string
	for rows.Next() {
		var key sql.NullString
		if err := rows.Scan(&key); err != nil {
			return 0, nil, err
		}
		count++
		if key.Valid && key.String != "" {
			keys = append(keys, key.String)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, nil, err
	}
	return count, keys, nil
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var rec Record
		var emotion, level string
		var confidence sql.NullFloat64
		var routine, imageKey sql.NullString
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&emotion,
			&confidence,
			&routine,
			&level,
			&rec.Recommendation,
			&imageKey,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		rec.Emotion = stress.Emotion(emotion)
		rec.StressLevel = stress.Level(level)
		if confidence.Valid {
			rec.Confidence = confidence.Float64
		}
		if routine.Valid {
			rec.DailyRoutine = routine.String
		}
		if imageKey.Valid {
			rec.ImageKey = imageKey.String
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func nullString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
