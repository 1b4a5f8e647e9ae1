package workout

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// createLog persists a completed workout log and returns it with its ID.
func (r *sqliteRepository) createLog(ctx context.Context, l Log) (Log, error) {
	performanceJSON, err := json.Marshal(l.Performance)
	if err != nil {
		return Log{}, fmt.Errorf("marshal performance data: %w", err)
	}

	var overallTime sql.NullInt64
	if l.OverallTime > 0 {
		overallTime = sql.NullInt64{Int64: int64(l.OverallTime), Valid: true}
	}

	result, err := r.db.ReadWrite.ExecContext(ctx, `
        INSERT INTO workout_logs (workout_id, user_id, date_completed, performance_data, overall_time, notes)
        VALUES (?, ?, ?, ?, ?, ?)`,
		l.WorkoutID,
		l.UserID,
		formatTimestamp(l.DateCompleted),
		string(performanceJSON),
		overallTime,
		nullableString(l.Notes),
	)
	if err != nil {
		return Log{}, fmt.Errorf("insert workout log: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return Log{}, fmt.Errorf("last insert id: %w", err)
	}
	l.ID = int(id)
	return l, nil
}

// updateLatestLogNotes replaces the notes on the workout's most recent log.
func (r *sqliteRepository) updateLatestLogNotes(ctx context.Context, userID string, workoutID int, notes string) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
        UPDATE workout_logs SET notes = ?
        WHERE id = (SELECT id FROM workout_logs
                    WHERE user_id = ? AND workout_id = ?
                    ORDER BY date_completed DESC, id DESC
                    LIMIT 1)`,
		nullableString(notes), userID, workoutID)
	if err != nil {
		return fmt.Errorf("update log notes: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no log for workout %d: %w", workoutID, ErrNotFound)
	}
	return nil
}

// listHistory retrieves a page of the user's logs joined with the workouts
// they completed, newest first.
func (r *sqliteRepository) listHistory(ctx context.Context, userID string, limit, offset int) ([]HistoryEntry, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
        SELECT wl.id, wl.workout_id, wl.user_id, wl.date_completed, wl.performance_data, wl.overall_time, wl.notes,
               w.id, w.user_id, w.date_generated, w.workout_details, w.status, w.name, w.description, w.tags, w.source, w.created_at
        FROM workout_logs wl
        JOIN workouts w ON w.id = wl.workout_id
        WHERE wl.user_id = ?
        ORDER BY wl.date_completed DESC
        LIMIT ? OFFSET ?`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query workout history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var (
			l             Log
			dateCompleted string
			perfJSON      string
			overallTime   sql.NullInt64
			notes         sql.NullString

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
		err = rows.Scan(
			&l.ID, &l.WorkoutID, &l.UserID, &dateCompleted, &perfJSON, &overallTime, &notes,
			&w.ID, &w.UserID, &dateGenerated, &detailsJSON, &status,
			&name, &description, &tagsJSON, &source, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}

		if l.DateCompleted, err = parseTimestamp(dateCompleted); err != nil {
			return nil, fmt.Errorf("parse date_completed: %w", err)
		}
		if err = json.Unmarshal([]byte(perfJSON), &l.Performance); err != nil {
			return nil, fmt.Errorf("unmarshal performance data: %w", err)
		}
		l.OverallTime = int(overallTime.Int64)
		l.Notes = notes.String

		if w.DateGenerated, err = parseTimestamp(dateGenerated); err != nil {
			return nil, fmt.Errorf("parse date_generated: %w", err)
		}
		if w.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		if err = json.Unmarshal([]byte(detailsJSON), &w.Details); err != nil {
			return nil, fmt.Errorf("unmarshal workout details: %w", err)
		}
		if tagsJSON.Valid {
			if err = json.Unmarshal([]byte(tagsJSON.String), &w.Tags); err != nil {
				return nil, fmt.Errorf("unmarshal tags: %w", err)
			}
		}
		w.Status = Status(status)
		w.Source = Source(source)
		w.Name = name.String
		w.Description = description.String

		entries = append(entries, HistoryEntry{Log: l, Workout: w})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return entries, nil
}

// countLogs returns the total number of logs for pagination.
func (r *sqliteRepository) countLogs(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.ReadOnly.QueryRowContext(ctx, `
        SELECT COUNT(*) FROM workout_logs WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count workout logs: %w", err)
	}
	return count, nil
}

// loggedWorkout pairs a log with the fitness level of the workout it
// completed, which the analytics trend series needs.
type loggedWorkout struct {
	Log          Log
	FitnessLevel FitnessLevel
}

// listAllLogs retrieves every log for the user, newest first, for analytics.
func (r *sqliteRepository) listAllLogs(ctx context.Context, userID string) ([]loggedWorkout, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
        SELECT wl.id, wl.workout_id, wl.user_id, wl.date_completed, wl.performance_data, wl.overall_time, wl.notes,
               w.workout_details
        FROM workout_logs wl
        JOIN workouts w ON w.id = wl.workout_id
        WHERE wl.user_id = ?
        ORDER BY wl.date_completed DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query workout logs: %w", err)
	}
	defer rows.Close()

	var logs []loggedWorkout
	for rows.Next() {
		var (
			l             Log
			dateCompleted string
			perfJSON      string
			overallTime   sql.NullInt64
			notes         sql.NullString
			detailsJSON   string
		)
		err = rows.Scan(&l.ID, &l.WorkoutID, &l.UserID, &dateCompleted, &perfJSON, &overallTime, &notes, &detailsJSON)
		if err != nil {
			return nil, fmt.Errorf("scan workout log row: %w", err)
		}
		if l.DateCompleted, err = parseTimestamp(dateCompleted); err != nil {
			return nil, fmt.Errorf("parse date_completed: %w", err)
		}
		if err = json.Unmarshal([]byte(perfJSON), &l.Performance); err != nil {
			return nil, fmt.Errorf("unmarshal performance data: %w", err)
		}
		var details Details
		if err = json.Unmarshal([]byte(detailsJSON), &details); err != nil {
			return nil, fmt.Errorf("unmarshal workout details: %w", err)
		}
		l.OverallTime = int(overallTime.Int64)
		l.Notes = notes.String
		logs = append(logs, loggedWorkout{Log: l, FitnessLevel: details.FitnessLevel})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workout log rows: %w", err)
	}
	return logs, nil
}
