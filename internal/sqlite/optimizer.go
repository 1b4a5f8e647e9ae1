package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// startDatabaseOptimizer runs PRAGMA optimize once per hour as recommended
// for long-lived connections. See https://www.sqlite.org/pragma.html#pragma_optimize.
func (db *Database) startDatabaseOptimizer(ctx context.Context) {
	if _, err := db.ReadWrite.ExecContext(ctx, "PRAGMA optimize = 0x10002;"); err != nil {
		err = fmt.Errorf("init optimize database: %w", err)
		db.logger.LogAttrs(ctx, slog.LevelError, "failed to optimize database", slog.Any("error", err))
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Hour):
		}

		start := time.Now()
		if _, err := db.ReadWrite.ExecContext(ctx, "PRAGMA optimize;"); err != nil {
			err = fmt.Errorf("optimize database: %w", err)
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to optimize database", slog.Any("error", err))
			continue
		}
		db.logger.LogAttrs(ctx, slog.LevelInfo, "optimized database",
			slog.Duration("duration", time.Since(start)))
	}
}
