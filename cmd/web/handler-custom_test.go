package main

import (
	"net/http"
	"testing"

	"github.com/bertomill/hyrox-workout-generator/internal/workout"
)

func Test_application_customWorkouts(t *testing.T) {
	server := startTestServer(t)
	client := server.Client()
	ctx := t.Context()

	t.Run("creates and lists a custom workout", func(t *testing.T) {
		var created workout.Workout
		status, err := client.DoJSON(ctx, http.MethodPost, "/api/workouts/custom", customWorkoutRequest{
			Name:        "Leg day special",
			Description: "Lunges and sleds only",
			Tags:        []string{"legs"},
			Details: workout.Details{
				FitnessLevel: workout.LevelIntermediate,
				Stations: []workout.Station{
					{ID: 7, Name: workout.StationSandbagLunges, Order: 7, Distance: "100m", Weight: "20kg"},
				},
				Runs: []workout.Run{{ID: 1, Order: 0, Distance: "1km"}},
			},
		}, &created)
		if err != nil {
			t.Fatalf("Failed to create custom workout: %v", err)
		}
		if status != http.StatusCreated {
			t.Fatalf("status = %d, want %d", status, http.StatusCreated)
		}
		if created.Source != workout.SourceUserCreated {
			t.Errorf("source = %q, want %q", created.Source, workout.SourceUserCreated)
		}

		var listed []workout.Workout
		if err = client.GetJSON(ctx, "/api/workouts/custom", &listed); err != nil {
			t.Fatalf("Failed to list custom workouts: %v", err)
		}
		if len(listed) != 1 || listed[0].Name != "Leg day special" {
			t.Errorf("listed = %+v, want the created workout", listed)
		}
	})

	t.Run("rejects missing name", func(t *testing.T) {
		status, err := client.DoJSON(ctx, http.MethodPost, "/api/workouts/custom", customWorkoutRequest{
			Details: workout.Details{
				Runs: []workout.Run{{ID: 1, Order: 0, Distance: "1km"}},
			},
		}, nil)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", status, http.StatusBadRequest)
		}
	})

	t.Run("rejects unknown station", func(t *testing.T) {
		status, err := client.DoJSON(ctx, http.MethodPost, "/api/workouts/custom", customWorkoutRequest{
			Name: "Made-up moves",
			Details: workout.Details{
				Stations: []workout.Station{{ID: 1, Name: "Deadlifts", Order: 1, Reps: "50"}},
			},
		}, nil)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", status, http.StatusBadRequest)
		}
	})
}
