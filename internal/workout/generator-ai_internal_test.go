package workout

import (
	"strings"
	"testing"
	"time"
)

func TestBuildWorkoutPrompt(t *testing.T) {
	params := Params{
		Mood:            MoodTired,
		Intensity:       IntensityLight,
		Duration:        45,
		ExcludeStations: []StationName{StationWallBalls},
	}
	inspiration := []Workout{
		{
			ID:   7,
			Name: "Leg day special",
			Details: Details{
				FitnessLevel: LevelIntermediate,
				Stations:     []Station{{ID: 7, Name: StationSandbagLunges, Order: 7, Distance: "100m", Weight: "20kg"}},
				Runs:         []Run{{ID: 1, Order: 0, Distance: "1km"}},
			},
		},
	}

	prompt, err := buildWorkoutPrompt(LevelIntermediate, params, inspiration)
	if err != nil {
		t.Fatalf("buildWorkoutPrompt: %v", err)
	}

	wantFragments := []string{
		"Fitness Level: intermediate",
		"feeling tired, somewhat fatigued but can train",
		"wants a light, recovery-focused session",
		"Available Time: 45 minutes",
		"MUST EXCLUDE these stations: Wall Balls",
		"Sled Push - 50m @ 102kg",
		"Wall Balls - 100 reps @ 6kg",
		"Leg day special",
		"Sandbag Lunges",
	}
	for _, fragment := range wantFragments {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("prompt missing %q", fragment)
		}
	}
}

func TestBuildWorkoutPrompt_noExclusions(t *testing.T) {
	prompt, err := buildWorkoutPrompt(LevelBeginner, Params{
		Mood:      MoodNormal,
		Intensity: IntensityModerate,
		Duration:  60,
	}, nil)
	if err != nil {
		t.Fatalf("buildWorkoutPrompt: %v", err)
	}
	if !strings.Contains(prompt, "No station exclusions") {
		t.Error("prompt missing exclusion-free marker")
	}
	if strings.Contains(prompt, "style inspiration") {
		t.Error("prompt mentions inspiration without any workouts")
	}
}

func TestParseAIWorkout(t *testing.T) {
	generatedAt := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	params := Params{
		Mood:            MoodNormal,
		Intensity:       IntensityModerate,
		Duration:        60,
		WorkoutType:     TypeStandard,
		ExcludeStations: []StationName{StationSledPush},
	}

	t.Run("valid response", func(t *testing.T) {
		content := `{
			"stations": [
				{"id": 1, "name": "SkiErg", "distance": "1000m", "order": 1},
				{"name": "Rowing", "distance": "750m"}
			],
			"runs": [
				{"id": 1, "distance": "1km", "order": 0},
				{"distance": "1km", "order": 2}
			]
		}`

		details, err := parseAIWorkout(content, LevelIntermediate, "user-1", params, generatedAt)
		if err != nil {
			t.Fatalf("parseAIWorkout: %v", err)
		}

		if len(details.Stations) != 2 {
			t.Fatalf("station count = %d, want 2", len(details.Stations))
		}
		// Missing id and order fall back to the canonical slot.
		rowing := details.Stations[1]
		if rowing.ID != 5 || rowing.Order != 5 {
			t.Errorf("Rowing id/order = %d/%d, want 5/5", rowing.ID, rowing.Order)
		}
		if details.Runs[1].ID != 2 {
			t.Errorf("run 2 id = %d, want 2", details.Runs[1].ID)
		}
		if details.FitnessLevel != LevelIntermediate || details.UserID != "user-1" {
			t.Errorf("envelope fields not carried over: %+v", details)
		}
		if !details.GeneratedAt.Equal(generatedAt) {
			t.Errorf("generatedAt = %v, want %v", details.GeneratedAt, generatedAt)
		}
	})

	t.Run("fenced response", func(t *testing.T) {
		content := "```json\n{\"stations\": [], \"runs\": [{\"id\": 1, \"distance\": \"500m\", \"order\": 0}]}\n```"
		details, err := parseAIWorkout(content, LevelBeginner, "user-1", params, generatedAt)
		if err != nil {
			t.Fatalf("parseAIWorkout: %v", err)
		}
		if len(details.Runs) != 1 {
			t.Errorf("run count = %d, want 1", len(details.Runs))
		}
	})

	invalid := []struct {
		name    string
		content string
	}{
		{"not json", "here is your workout!"},
		{"no runs", `{"stations": [{"name": "SkiErg", "distance": "1000m"}], "runs": []}`},
		{"unknown station", `{"stations": [{"name": "Deadlifts", "reps": "50"}], "runs": [{"distance": "1km"}]}`},
		{"excluded station present", `{"stations": [{"name": "Sled Push", "distance": "50m"}], "runs": [{"distance": "1km"}]}`},
		{"station without dose", `{"stations": [{"name": "SkiErg"}], "runs": [{"distance": "1km"}]}`},
		{"run without distance", `{"stations": [], "runs": [{"id": 1, "order": 0}]}`},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseAIWorkout(tt.content, LevelIntermediate, "user-1", params, generatedAt); err == nil {
				t.Error("parseAIWorkout accepted invalid response")
			}
		})
	}
}

func TestTrimJSONFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := trimJSONFences(tt.in); got != tt.want {
			t.Errorf("trimJSONFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
