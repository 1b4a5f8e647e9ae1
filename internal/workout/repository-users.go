package workout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ensureUser inserts a user row if one does not exist yet. Called on session
// creation so foreign keys hold for every authenticated request.
func (r *sqliteRepository) ensureUser(ctx context.Context, userID string) error {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
        INSERT INTO users (id) VALUES (?)
        ON CONFLICT (id) DO NOTHING`, userID)
	if err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	return nil
}

// getFitnessLevel retrieves the user's configured fitness level. Users
// without a row default to beginner.
func (r *sqliteRepository) getFitnessLevel(ctx context.Context, userID string) (FitnessLevel, error) {
	var level string
	err := r.db.ReadOnly.QueryRowContext(ctx, `
        SELECT fitness_level FROM users WHERE id = ?`, userID).Scan(&level)
	if errors.Is(err, sql.ErrNoRows) {
		return LevelBeginner, nil
	}
	if err != nil {
		return "", fmt.Errorf("query fitness level: %w", err)
	}
	return FitnessLevel(level), nil
}

// setFitnessLevel updates the user's fitness level.
func (r *sqliteRepository) setFitnessLevel(ctx context.Context, userID string, level FitnessLevel) error {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
        INSERT INTO users (id, fitness_level) VALUES (?, ?)
        ON CONFLICT (id) DO UPDATE SET fitness_level = excluded.fitness_level`,
		userID, string(level))
	if err != nil {
		return fmt.Errorf("set fitness level: %w", err)
	}
	return nil
}
