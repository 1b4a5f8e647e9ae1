package main

import (
	"testing"

	"github.com/bertomill/hyrox-workout-generator/internal/analytics"
	"github.com/bertomill/hyrox-workout-generator/internal/workout"
)

func Test_application_analyticsGET(t *testing.T) {
	server := startTestServer(t)
	client := server.Client()
	ctx := t.Context()

	t.Run("empty history yields empty report", func(t *testing.T) {
		var report analytics.Report
		if err := client.GetJSON(ctx, "/api/workouts/analytics", &report); err != nil {
			t.Fatalf("Failed to fetch analytics: %v", err)
		}
		if len(report.Records) != 0 || report.Stats.TotalWorkouts != 0 {
			t.Errorf("expected empty report, got %+v", report)
		}
	})

	first := generateWorkout(t, client, workout.Params{})
	logWorkout(t, client, first.Workout.ID, "50:00")
	second := generateWorkout(t, client, workout.Params{})
	logWorkout(t, client, second.Workout.ID, "45:00")

	t.Run("detects the overall record", func(t *testing.T) {
		var report analytics.Report
		if err := client.GetJSON(ctx, "/api/workouts/analytics", &report); err != nil {
			t.Fatalf("Failed to fetch analytics: %v", err)
		}

		var overall *analytics.PersonalRecord
		for i := range report.Records {
			if report.Records[i].Type == analytics.RecordOverall {
				overall = &report.Records[i]
			}
		}
		if overall == nil {
			t.Fatal("no overall record in report")
		}
		if overall.Time != 2700 {
			t.Errorf("record time = %d, want 2700", overall.Time)
		}
		if len(report.Trend) != 2 {
			t.Errorf("trend point count = %d, want 2", len(report.Trend))
		}
		if report.Improvement == nil || report.Improvement.Direction != "improved" {
			t.Errorf("improvement = %+v, want improved", report.Improvement)
		}
	})

	t.Run("recommendation reflects history", func(t *testing.T) {
		var resp recommendResponse
		if err := client.GetJSON(ctx, "/api/workouts/recommend", &resp); err != nil {
			t.Fatalf("Failed to fetch recommendation: %v", err)
		}
		// Only standard sessions in the window, so recovery comes first.
		if resp.Recommended == nil || *resp.Recommended != workout.TypeRecovery {
			t.Errorf("recommended = %v, want %q", resp.Recommended, workout.TypeRecovery)
		}
	})
}
