package workout

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bertomill/hyrox-workout-generator/internal/sqlite"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

// ErrNotFound is returned when a workout or log does not exist or belongs to
// another user. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("not found")

// sqliteRepository handles database operations for workouts, logs and user
// profiles.
type sqliteRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

// newSQLiteRepository creates a new SQLite-backed workout repository.
func newSQLiteRepository(db *sqlite.Database, logger *slog.Logger) *sqliteRepository {
	return &sqliteRepository{
		db:     db,
		logger: logger,
	}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}

// parseTimestamp parses a timestamp from a database string.
func parseTimestamp(timestampStr string) (time.Time, error) {
	parsedTime, err := time.Parse(timestampFormat, timestampStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp format: %w", err)
	}
	return parsedTime, nil
}

// nullableString maps empty strings to NULL so optional text columns stay
// NULL instead of accumulating empty strings.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
