package workout

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// createWorkout persists a workout document and returns it with its assigned ID.
func (r *sqliteRepository) createWorkout(ctx context.Context, w Workout) (Workout, error) {
	detailsJSON, err := json.Marshal(w.Details)
	if err != nil {
		return Workout{}, fmt.Errorf("marshal workout details: %w", err)
	}
	var tagsJSON []byte
	if len(w.Tags) > 0 {
		if tagsJSON, err = json.Marshal(w.Tags); err != nil {
			return Workout{}, fmt.Errorf("marshal tags: %w", err)
		}
	}

	// created_at is written explicitly so the returned struct matches the
	// row without a read-back.
	w.CreatedAt = w.DateGenerated
	result, err := r.db.ReadWrite.ExecContext(ctx, `
        INSERT INTO workouts (user_id, date_generated, workout_details, status, name, description, tags, source, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.UserID,
		formatTimestamp(w.DateGenerated),
		string(detailsJSON),
		string(w.Status),
		nullableString(w.Name),
		nullableString(w.Description),
		nullableString(string(tagsJSON)),
		string(w.Source),
		formatTimestamp(w.CreatedAt),
	)
	if err != nil {
		return Workout{}, fmt.Errorf("insert workout: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return Workout{}, fmt.Errorf("last insert id: %w", err)
	}
	w.ID = int(id)
	return w, nil
}

// getWorkout retrieves a single workout owned by the user.
func (r *sqliteRepository) getWorkout(ctx context.Context, userID string, id int) (Workout, error) {
	row := r.db.ReadOnly.QueryRowContext(ctx, `
        SELECT id, user_id, date_generated, workout_details, status, name, description, tags, source, created_at
        FROM workouts
        WHERE id = ? AND user_id = ?`, id, userID)

	w, err := scanWorkout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Workout{}, fmt.Errorf("workout %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Workout{}, fmt.Errorf("query workout: %w", err)
	}
	return w, nil
}

// listWorkoutsSince retrieves the user's workouts generated on or after the
// given time, newest first.
func (r *sqliteRepository) listWorkoutsSince(ctx context.Context, userID string, since string) ([]Workout, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
        SELECT id, user_id, date_generated, workout_details, status, name, description, tags, source, created_at
        FROM workouts
        WHERE user_id = ? AND date_generated >= ?
        ORDER BY date_generated DESC`, userID, since)
	if err != nil {
		return nil, fmt.Errorf("query recent workouts: %w", err)
	}
	defer rows.Close()

	return collectWorkouts(rows)
}

// listCustomWorkouts retrieves the user's hand-built workouts, newest first.
func (r *sqliteRepository) listCustomWorkouts(ctx context.Context, userID string, limit int) ([]Workout, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
        SELECT id, user_id, date_generated, workout_details, status, name, description, tags, source, created_at
        FROM workouts
        WHERE user_id = ? AND source = ?
        ORDER BY created_at DESC
        LIMIT ?`, userID, string(SourceUserCreated), limit)
	if err != nil {
		return nil, fmt.Errorf("query custom workouts: %w", err)
	}
	defer rows.Close()

	return collectWorkouts(rows)
}

// updateWorkoutStatus transitions a workout's lifecycle status.
func (r *sqliteRepository) updateWorkoutStatus(ctx context.Context, userID string, id int, status Status) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
        UPDATE workouts SET status = ? WHERE id = ? AND user_id = ?`,
		string(status), id, userID)
	if err != nil {
		return fmt.Errorf("update workout status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("workout %d: %w", id, ErrNotFound)
	}
	return nil
}

// deleteWorkout removes a workout. Logs referencing it cascade away.
func (r *sqliteRepository) deleteWorkout(ctx context.Context, userID string, id int) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
        DELETE FROM workouts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("workout %d: %w", id, ErrNotFound)
	}
	return nil
}

// rowScanner lets scanWorkout serve both QueryRow and Query results.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkout(row rowScanner) (Workout, error) {
	var (
		w             Workout
		dateGenerated string
		detailsJSON   string
		status        string
		name          sql.NullString
		description   sql.NullString
		tagsJSON      sql.NullString
		source        string
		createdAt     string
	)
	err := row.Scan(&w.ID, &w.UserID, &dateGenerated, &detailsJSON, &status,
		&name, &description, &tagsJSON, &source, &createdAt)
	if err != nil {
		return Workout{}, err
	}

	if w.DateGenerated, err = parseTimestamp(dateGenerated); err != nil {
		return Workout{}, fmt.Errorf("parse date_generated: %w", err)
	}
	if w.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return Workout{}, fmt.Errorf("parse created_at: %w", err)
	}
	if err = json.Unmarshal([]byte(detailsJSON), &w.Details); err != nil {
		return Workout{}, fmt.Errorf("unmarshal workout details: %w", err)
	}
	if tagsJSON.Valid {
		if err = json.Unmarshal([]byte(tagsJSON.String), &w.Tags); err != nil {
			return Workout{}, fmt.Errorf("unmarshal tags: %w", err)
		}
	}
	w.Status = Status(status)
	w.Source = Source(source)
	w.Name = name.String
	w.Description = description.String
	return w, nil
}

func collectWorkouts(rows *sql.Rows) ([]Workout, error) {
	var workouts []Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workout row: %w", err)
		}
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workout rows: %w", err)
	}
	return workouts, nil
}
