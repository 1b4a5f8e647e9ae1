package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/bertomill/hyrox-workout-generator/internal/workout"
)

func Test_application_stationsGET(t *testing.T) {
	server := startTestServer(t)
	client := server.Client()
	ctx := t.Context()

	t.Run("serves the catalog for a level", func(t *testing.T) {
		var stations []stationResponse
		if err := client.GetJSON(ctx, "/api/stations?level=advanced", &stations); err != nil {
			t.Fatalf("Failed to fetch stations: %v", err)
		}
		if len(stations) != 8 {
			t.Fatalf("station count = %d, want 8", len(stations))
		}
		if stations[0].Name != workout.StationSkiErg || stations[0].Order != 1 {
			t.Errorf("first station = %+v, want SkiErg at order 1", stations[0])
		}
		var sledPush stationResponse
		for _, station := range stations {
			if station.Name == workout.StationSledPush {
				sledPush = station
			}
		}
		if sledPush.Weight != "152kg" {
			t.Errorf("advanced sled push weight = %q, want 152kg", sledPush.Weight)
		}
		// Technique notes arrive rendered as HTML.
		if !strings.Contains(stations[0].Description, "<li>") {
			t.Errorf("description not rendered to HTML: %q", stations[0].Description)
		}
	})

	t.Run("defaults to intermediate", func(t *testing.T) {
		var stations []stationResponse
		if err := client.GetJSON(ctx, "/api/stations", &stations); err != nil {
			t.Fatalf("Failed to fetch stations: %v", err)
		}
		for _, station := range stations {
			if station.Name == workout.StationWallBalls && station.Weight != "6kg" {
				t.Errorf("intermediate wall balls weight = %q, want 6kg", station.Weight)
			}
		}
	})

	t.Run("unknown level yields 400", func(t *testing.T) {
		status, err := client.DoJSON(ctx, http.MethodGet, "/api/stations?level=elite", nil, nil)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", status, http.StatusBadRequest)
		}
	})
}
