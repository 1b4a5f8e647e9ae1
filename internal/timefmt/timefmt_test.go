package timefmt_test

import (
	"testing"

	"github.com/bertomill/hyrox-workout-generator/internal/timefmt"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "minutes and seconds", input: "25:30", want: 1530},
		{name: "hours minutes seconds", input: "1:15:00", want: 4500},
		{name: "zero", input: "00:00", want: 0},
		{name: "leading space", input: " 05:10", want: 310},
		{name: "empty string", input: "", want: 0},
		{name: "single number", input: "90", want: 0},
		{name: "too many parts", input: "1:2:3:4", want: 0},
		{name: "non-numeric", input: "aa:bb", want: 0},
		{name: "negative component", input: "-1:30", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := timefmt.Parse(tt.input); got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    string
	}{
		{name: "zero", seconds: 0, want: "00:00"},
		{name: "negative", seconds: -5, want: "00:00"},
		{name: "under a minute", seconds: 45, want: "00:45"},
		{name: "minutes and seconds", seconds: 1530, want: "25:30"},
		{name: "just under an hour", seconds: 3599, want: "59:59"},
		{name: "exactly an hour", seconds: 3600, want: "1:00:00"},
		{name: "over an hour", seconds: 4530, want: "1:15:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := timefmt.Format(tt.seconds); got != tt.want {
				t.Errorf("Format(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, seconds := range []int{0, 1, 59, 60, 61, 599, 600, 3599, 3600, 3661, 7322, 86399} {
		if got := timefmt.Parse(timefmt.Format(seconds)); got != seconds {
			t.Errorf("Parse(Format(%d)) = %d, want %d", seconds, got, seconds)
		}
	}
}
