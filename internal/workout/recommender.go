package workout

// recommendationWindowDays is how far back the recommender looks when
// analyzing training patterns.
const recommendationWindowDays = 14

// Ratio thresholds below which a session type counts as neglected. Recovery
// should appear about once a week, a long run about every fourth session.
const (
	recoveryTargetRatio = 1.0 / 7.0
	longRunTargetRatio  = 1.0 / 4.0
)

// classifySession buckets a workout into a session type from its segment
// counts. Stored type labels are ignored so that hand-built and AI workouts
// classify the same way as rule-based ones.
func classifySession(details Details) Type {
	runCount := len(details.Runs)
	stationCount := len(details.Stations)

	if runCount >= 8 && stationCount <= 2 {
		return TypeLongRun
	}
	if runCount <= 4 && stationCount <= 4 {
		return TypeRecovery
	}
	return TypeStandard
}

// recommendType suggests the next session type from recent history. The
// boolean is false when there is no history to analyze, in which case no
// recommendation is made.
func recommendType(recent []Details) (Type, bool) {
	if len(recent) == 0 {
		return "", false
	}

	counts := make(map[Type]int)
	for _, details := range recent {
		counts[classifySession(details)]++
	}

	total := float64(len(recent))
	if float64(counts[TypeRecovery])/total < recoveryTargetRatio {
		return TypeRecovery, true
	}
	if float64(counts[TypeLongRun])/total < longRunTargetRatio {
		return TypeLongRun, true
	}
	return TypeStandard, true
}
