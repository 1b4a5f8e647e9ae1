package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/bertomill/hyrox-workout-generator/internal/e2etest"
	"github.com/bertomill/hyrox-workout-generator/internal/logging"
	"github.com/bertomill/hyrox-workout-generator/internal/testhelpers"
	"github.com/bertomill/hyrox-workout-generator/internal/workout"
)

// testWorkoutFlow generates a workout, logs a result for it and confirms the
// log shows up in the history.
func testWorkoutFlow(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	var generation workout.Generation
	status, err := client.DoJSON(ctx, http.MethodPost, "/api/workouts/generate", workout.Params{
		Mood:      workout.MoodNormal,
		Intensity: workout.IntensityModerate,
	}, &generation)
	if err != nil {
		return fmt.Errorf("generate workout: %w", err)
	}
	if status != http.StatusCreated {
		return fmt.Errorf("generate workout: unexpected status %d", status)
	}

	var logged workout.Log
	status, err = client.DoJSON(ctx, http.MethodPost, "/api/workouts/log", map[string]any{
		"workoutId": generation.Workout.ID,
		"performance": workout.Performance{
			OverallTime: "1:10:00",
		},
	}, &logged)
	if err != nil {
		return fmt.Errorf("log workout: %w", err)
	}
	if status != http.StatusCreated {
		return fmt.Errorf("log workout: unexpected status %d", status)
	}

	var history struct {
		Total int `json:"total"`
	}
	if err = client.GetJSON(ctx, "/api/workouts/history", &history); err != nil {
		return fmt.Errorf("fetch history: %w", err)
	}
	if history.Total < 1 {
		return fmt.Errorf("fetch history: expected at least one entry, got %d", history.Total)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		client   *e2etest.Client
		err      error
		start    = time.Now()
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", slog.Any("error", err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", slog.Any("error", err))
		os.Exit(1)
	}
	if err = testWorkoutFlow(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing workout flow", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌", slog.Duration("duration", time.Since(start)))
	os.Exit(0)
}
