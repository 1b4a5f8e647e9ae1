package main

import (
	"net/http"
	"testing"

	"github.com/bertomill/hyrox-workout-generator/internal/e2etest"
	"github.com/bertomill/hyrox-workout-generator/internal/workout"
)

func Test_application_workoutByID(t *testing.T) {
	server := startTestServer(t)
	client := server.Client()
	ctx := t.Context()

	generation := generateWorkout(t, client, workout.Params{})
	workoutPath := "/api/workouts/" + itoa(generation.Workout.ID)

	t.Run("fetches an owned workout", func(t *testing.T) {
		var found workout.Workout
		if err := client.GetJSON(ctx, workoutPath, &found); err != nil {
			t.Fatalf("Failed to fetch workout: %v", err)
		}
		if found.ID != generation.Workout.ID {
			t.Errorf("id = %d, want %d", found.ID, generation.Workout.ID)
		}
	})

	t.Run("another session cannot see it", func(t *testing.T) {
		other, err := e2etest.NewClient(server.URL())
		if err != nil {
			t.Fatalf("Failed to create second client: %v", err)
		}
		status, err := other.DoJSON(ctx, http.MethodGet, workoutPath, nil, nil)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if status != http.StatusNotFound {
			t.Errorf("status = %d, want %d", status, http.StatusNotFound)
		}
	})

	t.Run("skips the workout", func(t *testing.T) {
		var updated workout.Workout
		status, err := client.DoJSON(ctx, http.MethodPatch, workoutPath, statusUpdateRequest{
			Status: workout.StatusSkipped,
		}, &updated)
		if err != nil {
			t.Fatalf("Failed to update status: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("status = %d, want %d", status, http.StatusOK)
		}
		if updated.Status != workout.StatusSkipped {
			t.Errorf("workout status = %q, want %q", updated.Status, workout.StatusSkipped)
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		status, err := client.DoJSON(ctx, http.MethodPatch, workoutPath, map[string]any{
			"status": "abandoned",
		}, nil)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", status, http.StatusBadRequest)
		}
	})

	t.Run("deletes the workout", func(t *testing.T) {
		status, err := client.DoJSON(ctx, http.MethodDelete, workoutPath, nil, nil)
		if err != nil {
			t.Fatalf("Failed to delete workout: %v", err)
		}
		if status != http.StatusNoContent {
			t.Fatalf("status = %d, want %d", status, http.StatusNoContent)
		}

		status, err = client.DoJSON(ctx, http.MethodGet, workoutPath, nil, nil)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if status != http.StatusNotFound {
			t.Errorf("status after delete = %d, want %d", status, http.StatusNotFound)
		}
	})

	t.Run("malformed id yields 404", func(t *testing.T) {
		status, err := client.DoJSON(ctx, http.MethodGet, "/api/workouts/not-a-number", nil, nil)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if status != http.StatusNotFound {
			t.Errorf("status = %d, want %d", status, http.StatusNotFound)
		}
	})
}
