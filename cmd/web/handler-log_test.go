package main

import (
	"net/http"
	"testing"

	"github.com/bertomill/hyrox-workout-generator/internal/workout"
)

func Test_application_workoutLogPOST(t *testing.T) {
	server := startTestServer(t)
	client := server.Client()
	ctx := t.Context()

	generation := generateWorkout(t, client, workout.Params{})

	t.Run("logs and completes the workout", func(t *testing.T) {
		logged := logWorkout(t, client, generation.Workout.ID, "1:15:30")

		if logged.OverallTime != 4530 {
			t.Errorf("overall time = %d, want 4530", logged.OverallTime)
		}

		var updated workout.Workout
		if err := client.GetJSON(ctx, "/api/workouts/"+itoa(generation.Workout.ID), &updated); err != nil {
			t.Fatalf("Failed to fetch workout: %v", err)
		}
		if updated.Status != workout.StatusCompleted {
			t.Errorf("status = %q, want %q", updated.Status, workout.StatusCompleted)
		}
	})

	t.Run("notes can be amended afterwards", func(t *testing.T) {
		notes := "Felt strong on the sleds"
		var updated workout.Workout
		status, err := client.DoJSON(ctx, http.MethodPatch, "/api/workouts/"+itoa(generation.Workout.ID),
			statusUpdateRequest{Notes: &notes}, &updated)
		if err != nil {
			t.Fatalf("Failed to update notes: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("status = %d, want %d", status, http.StatusOK)
		}

		var history historyResponse
		if err = client.GetJSON(ctx, "/api/workouts/history", &history); err != nil {
			t.Fatalf("Failed to fetch history: %v", err)
		}
		if len(history.Entries) == 0 || history.Entries[0].Log.Notes != notes {
			t.Errorf("history notes not updated: %+v", history.Entries)
		}
	})

	t.Run("unknown workout yields 404", func(t *testing.T) {
		status, err := client.DoJSON(ctx, http.MethodPost, "/api/workouts/log", map[string]any{
			"workoutId":   99999,
			"performance": workout.Performance{OverallTime: "50:00"},
		}, nil)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if status != http.StatusNotFound {
			t.Errorf("status = %d, want %d", status, http.StatusNotFound)
		}
	})

	t.Run("empty performance yields 400", func(t *testing.T) {
		status, err := client.DoJSON(ctx, http.MethodPost, "/api/workouts/log", map[string]any{
			"workoutId":   generation.Workout.ID,
			"performance": workout.Performance{},
		}, nil)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", status, http.StatusBadRequest)
		}
	})

	t.Run("missing workoutId yields 400", func(t *testing.T) {
		status, err := client.DoJSON(ctx, http.MethodPost, "/api/workouts/log", map[string]any{
			"performance": workout.Performance{OverallTime: "50:00"},
		}, nil)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", status, http.StatusBadRequest)
		}
	})
}
