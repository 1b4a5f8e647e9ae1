package workout

import (
	"errors"
	"testing"
)

func TestCatalog_completeness(t *testing.T) {
	for _, level := range Levels() {
		infos, err := Catalog(level)
		if err != nil {
			t.Fatalf("Catalog(%s): %v", level, err)
		}
		if len(infos) != len(stationOrder) {
			t.Fatalf("Catalog(%s) returned %d stations, want %d", level, len(infos), len(stationOrder))
		}
		for i, info := range infos {
			if info.Name != stationOrder[i] {
				t.Errorf("Catalog(%s)[%d] = %q, want %q", level, i, info.Name, stationOrder[i])
			}
			if info.Order != i+1 {
				t.Errorf("Catalog(%s)[%q] order = %d, want %d", level, info.Name, info.Order, i+1)
			}
			if info.Distance == "" && info.Reps == "" {
				t.Errorf("Catalog(%s)[%q] has neither distance nor reps", level, info.Name)
			}
			if info.DescriptionMarkdown == "" {
				t.Errorf("Catalog(%s)[%q] has no description", level, info.Name)
			}
		}
	}
}

func TestCatalog_officialWeights(t *testing.T) {
	tests := []struct {
		level   FitnessLevel
		station StationName
		weight  string
	}{
		{LevelBeginner, StationSledPush, "50kg"},
		{LevelIntermediate, StationSledPush, "102kg"},
		{LevelAdvanced, StationSledPush, "152kg"},
		{LevelBeginner, StationSledPull, "70kg"},
		{LevelIntermediate, StationSledPull, "78kg"},
		{LevelAdvanced, StationSledPull, "103kg"},
		{LevelBeginner, StationFarmersCarry, "2x16kg"},
		{LevelIntermediate, StationFarmersCarry, "2x24kg"},
		{LevelAdvanced, StationFarmersCarry, "2x32kg"},
		{LevelBeginner, StationWallBalls, "4kg"},
		{LevelIntermediate, StationWallBalls, "6kg"},
		{LevelAdvanced, StationWallBalls, "9kg"},
		{LevelBeginner, StationSandbagLunges, "20kg"},
		{LevelIntermediate, StationSandbagLunges, "20kg"},
		{LevelAdvanced, StationSandbagLunges, "30kg"},
	}

	for _, tt := range tests {
		if got := catalog[tt.level][tt.station].Weight; got != tt.weight {
			t.Errorf("%s %s weight = %q, want %q", tt.level, tt.station, got, tt.weight)
		}
	}
}

func TestCatalog_unknownLevel(t *testing.T) {
	_, err := Catalog("elite")
	if !errors.Is(err, ErrInvalidParams) {
		t.Errorf("Catalog error = %v, want ErrInvalidParams", err)
	}
}

func TestValidLevel(t *testing.T) {
	for _, level := range Levels() {
		if !ValidLevel(level) {
			t.Errorf("ValidLevel(%s) = false, want true", level)
		}
	}
	if ValidLevel("elite") {
		t.Error("ValidLevel(elite) = true, want false")
	}
}
