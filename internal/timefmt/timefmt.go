// Package timefmt converts between clock-style duration strings and seconds.
//
// Logged workout times arrive as "MM:SS" or "HH:MM:SS" strings and are stored
// as integer seconds so they can be sorted and aggregated.
package timefmt

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
)

// Parse converts a "MM:SS" or "HH:MM:SS" string to seconds.
//
// Malformed or empty input yields 0 rather than an error. Submitted
// performance data comes straight from user forms, so a bad segment time
// must never take down the whole logging request.
func Parse(s string) int {
	if s == "" {
		return 0
	}

	parts := strings.Split(s, ":")
	nums := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return 0
		}
		nums[i] = n
	}

	switch len(nums) {
	case 2: //nolint:mnd // MM:SS
		return nums[0]*secondsPerMinute + nums[1]
	case 3: //nolint:mnd // HH:MM:SS
		return nums[0]*secondsPerHour + nums[1]*secondsPerMinute + nums[2]
	default:
		return 0
	}
}

// Format renders seconds as "MM:SS", or "H:MM:SS" from one hour upwards.
// Zero and negative values render as "00:00".
func Format(seconds int) string {
	if seconds <= 0 {
		return "00:00"
	}

	if seconds < secondsPerHour {
		return fmt.Sprintf("%02d:%02d", seconds/secondsPerMinute, seconds%secondsPerMinute)
	}

	hours := seconds / secondsPerHour
	rest := seconds % secondsPerHour
	return fmt.Sprintf("%d:%02d:%02d", hours, rest/secondsPerMinute, rest%secondsPerMinute)
}
