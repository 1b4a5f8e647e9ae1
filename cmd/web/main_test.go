package main

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/bertomill/hyrox-workout-generator/internal/e2etest"
	"github.com/bertomill/hyrox-workout-generator/internal/testhelpers"
	"github.com/bertomill/hyrox-workout-generator/internal/workout"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "HYROX_SQLITE_URL":
		return ":memory:", true
	case "HYROX_ADDR":
		return "localhost:0", true
	default:
		return "", false
	}
}

// startTestServer boots the full application against an in-memory database.
func startTestServer(t *testing.T) *e2etest.Server {
	t.Helper()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	return server
}

// generateWorkout generates a workout through the API and fails the test on
// any error.
func generateWorkout(t *testing.T, client *e2etest.Client, params workout.Params) workout.Generation {
	t.Helper()
	var generation workout.Generation
	status, err := client.DoJSON(t.Context(), http.MethodPost, "/api/workouts/generate", params, &generation)
	if err != nil {
		t.Fatalf("Failed to generate workout: %v", err)
	}
	if status != http.StatusCreated {
		t.Fatalf("generate status = %d, want %d", status, http.StatusCreated)
	}
	return generation
}

// logWorkout submits a performance log for a workout.
func logWorkout(t *testing.T, client *e2etest.Client, workoutID int, overallTime string) workout.Log {
	t.Helper()
	var logged workout.Log
	status, err := client.DoJSON(t.Context(), http.MethodPost, "/api/workouts/log", map[string]any{
		"workoutId": workoutID,
		"performance": workout.Performance{
			OverallTime: overallTime,
		},
	}, &logged)
	if err != nil {
		t.Fatalf("Failed to log workout: %v", err)
	}
	if status != http.StatusCreated {
		t.Fatalf("log status = %d, want %d", status, http.StatusCreated)
	}
	return logged
}
