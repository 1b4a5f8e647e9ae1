package main

import (
	"net/http"
	"testing"

	"github.com/bertomill/hyrox-workout-generator/internal/workout"
)

func Test_application_workoutGeneratePOST(t *testing.T) {
	server := startTestServer(t)
	client := server.Client()
	ctx := t.Context()

	t.Run("generates a pending workout", func(t *testing.T) {
		generation := generateWorkout(t, client, workout.Params{
			Mood:      workout.MoodFresh,
			Intensity: workout.IntensityHard,
			Duration:  45,
		})

		if generation.Source != workout.GenerationSourceRuleBased {
			t.Errorf("source = %q, want %q", generation.Source, workout.GenerationSourceRuleBased)
		}
		if generation.Workout.Status != workout.StatusPending {
			t.Errorf("status = %q, want %q", generation.Workout.Status, workout.StatusPending)
		}
		if got := len(generation.Workout.Details.Stations); got != 8 {
			t.Errorf("station count = %d, want 8 for fresh/hard", got)
		}
		if generation.Workout.CreatedAt.IsZero() {
			t.Error("createdAt missing from the generated workout")
		}
		for _, run := range generation.Workout.Details.Runs {
			if run.Distance != "750m" {
				t.Errorf("run distance = %q, want 750m for 45 minutes", run.Distance)
			}
		}
	})

	t.Run("empty body uses defaults", func(t *testing.T) {
		var generation workout.Generation
		status, err := client.DoJSON(ctx, http.MethodPost, "/api/workouts/generate", nil, &generation)
		if err != nil {
			t.Fatalf("Failed to generate workout: %v", err)
		}
		if status != http.StatusCreated {
			t.Fatalf("status = %d, want %d", status, http.StatusCreated)
		}
		if got := len(generation.Workout.Details.Runs); got != 8 {
			t.Errorf("run count = %d, want 8", got)
		}
	})

	t.Run("rejects unknown mood", func(t *testing.T) {
		status, err := client.DoJSON(ctx, http.MethodPost, "/api/workouts/generate", map[string]any{
			"mood": "sleepy",
		}, nil)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", status, http.StatusBadRequest)
		}
	})

	t.Run("body fitness level overrides the profile", func(t *testing.T) {
		var generation workout.Generation
		status, err := client.DoJSON(ctx, http.MethodPost, "/api/workouts/generate", map[string]any{
			"fitnessLevel": "advanced",
			"mood":         "fresh",
			"intensity":    "beast",
		}, &generation)
		if err != nil {
			t.Fatalf("Failed to generate workout: %v", err)
		}
		if status != http.StatusCreated {
			t.Fatalf("status = %d, want %d", status, http.StatusCreated)
		}
		for _, station := range generation.Workout.Details.Stations {
			if station.Name == workout.StationSledPush && station.Weight != "152kg" {
				t.Errorf("sled push weight = %q, want 152kg for advanced", station.Weight)
			}
		}
	})

	t.Run("rejects unknown fitness level", func(t *testing.T) {
		status, err := client.DoJSON(ctx, http.MethodPost, "/api/workouts/generate", map[string]any{
			"fitnessLevel": "elite",
		}, nil)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", status, http.StatusBadRequest)
		}
	})

	t.Run("excluded stations stay out", func(t *testing.T) {
		generation := generateWorkout(t, client, workout.Params{
			Mood:            workout.MoodFresh,
			Intensity:       workout.IntensityBeast,
			ExcludeStations: []workout.StationName{workout.StationWallBalls},
		})
		for _, station := range generation.Workout.Details.Stations {
			if station.Name == workout.StationWallBalls {
				t.Error("excluded station present in generated workout")
			}
		}
	})
}
