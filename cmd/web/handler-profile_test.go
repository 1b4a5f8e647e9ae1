package main

import (
	"net/http"
	"testing"

	"github.com/bertomill/hyrox-workout-generator/internal/e2etest"
	"github.com/bertomill/hyrox-workout-generator/internal/workout"
)

func Test_application_profile(t *testing.T) {
	server := startTestServer(t)
	client := server.Client()
	ctx := t.Context()

	t.Run("defaults to beginner", func(t *testing.T) {
		var profile profileResponse
		if err := client.GetJSON(ctx, "/api/profile", &profile); err != nil {
			t.Fatalf("Failed to fetch profile: %v", err)
		}
		if profile.FitnessLevel != workout.LevelBeginner {
			t.Errorf("fitness level = %q, want %q", profile.FitnessLevel, workout.LevelBeginner)
		}
	})

	t.Run("updates the fitness level", func(t *testing.T) {
		status, err := client.DoJSON(ctx, http.MethodPut, "/api/profile", profileResponse{
			FitnessLevel: workout.LevelAdvanced,
		}, nil)
		if err != nil {
			t.Fatalf("Failed to update profile: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("status = %d, want %d", status, http.StatusOK)
		}

		// The next generated workout scales to the new level.
		generation := generateWorkout(t, client, workout.Params{
			Mood:      workout.MoodFresh,
			Intensity: workout.IntensityBeast,
		})
		for _, station := range generation.Workout.Details.Stations {
			if station.Name == workout.StationSledPush && station.Weight != "152kg" {
				t.Errorf("sled push weight = %q, want 152kg for advanced", station.Weight)
			}
		}
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		status, err := client.DoJSON(ctx, http.MethodPut, "/api/profile", map[string]any{
			"fitnessLevel": "elite",
		}, nil)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", status, http.StatusBadRequest)
		}
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		other, err := e2etest.NewClient(server.URL())
		if err != nil {
			t.Fatalf("Failed to create second client: %v", err)
		}
		var profile profileResponse
		if err = other.GetJSON(ctx, "/api/profile", &profile); err != nil {
			t.Fatalf("Failed to fetch profile: %v", err)
		}
		if profile.FitnessLevel != workout.LevelBeginner {
			t.Errorf("second session fitness level = %q, want %q", profile.FitnessLevel, workout.LevelBeginner)
		}
	})
}
