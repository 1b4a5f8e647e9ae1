package workout

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"
)

// ErrInvalidParams marks validation failures on caller-supplied generation
// parameters. Absent parameters fall back to defaults; present but
// unrecognized values are rejected with this sentinel wrapped.
var ErrInvalidParams = errors.New("invalid workout parameters")

const (
	defaultDuration = 60
	// standardRunCount keeps the race format for standard sessions: eight
	// runs alternating with stations.
	standardRunCount = 8
)

// durationRunDistances maps session duration in minutes to the distance of
// each running segment. Duration never changes station prescriptions.
var durationRunDistances = map[int]string{
	30: "500m",
	45: "750m",
	60: "1km",
	90: "1.5km",
}

// standardStationCounts decides how many stations a standard session gets
// from the athlete's mood and requested intensity. Feeling worse or asking
// for less shrinks the session; a fresh athlete at beast mode gets the full
// eight.
var standardStationCounts = map[Mood]map[Intensity]int{
	MoodFresh:     {IntensityLight: 5, IntensityModerate: 7, IntensityHard: 8, IntensityBeast: 8},
	MoodNormal:    {IntensityLight: 4, IntensityModerate: 6, IntensityHard: 7, IntensityBeast: 8},
	MoodTired:     {IntensityLight: 4, IntensityModerate: 5, IntensityHard: 6, IntensityBeast: 7},
	MoodExhausted: {IntensityLight: 3, IntensityModerate: 4, IntensityHard: 5, IntensityBeast: 6},
}

// segmentRange bounds run and station counts for the non-standard session
// types. Counts are drawn uniformly from the inclusive ranges.
type segmentRange struct {
	minRuns, maxRuns         int
	minStations, maxStations int
}

var typeRanges = map[Type]segmentRange{
	TypeRecovery: {minRuns: 2, maxRuns: 4, minStations: 2, maxStations: 4},
	TypeLongRun:  {minRuns: 8, maxRuns: 12, minStations: 0, maxStations: 2},
}

var (
	allMoods       = []Mood{MoodFresh, MoodNormal, MoodTired, MoodExhausted}
	allIntensities = []Intensity{IntensityLight, IntensityModerate, IntensityHard, IntensityBeast}
)

// lockedSource serializes draws from an underlying random source.
// rand/v2 sources are not safe for concurrent use, and one composer serves
// every request.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

// composer builds workouts deterministically given its random source, which
// makes composition testable with a seeded generator.
type composer struct {
	rand *rand.Rand
	now  func() time.Time
}

func newComposer(r *rand.Rand, now func() time.Time) *composer {
	return &composer{rand: r, now: now}
}

// Compose builds a workout from the catalog without any network access.
func (c *composer) Compose(level FitnessLevel, userID string, params Params) (Details, error) {
	if !ValidLevel(level) {
		return Details{}, fmt.Errorf("%w: unknown fitness level %q", ErrInvalidParams, level)
	}

	if params.SurpriseMe {
		params.Mood = allMoods[c.rand.IntN(len(allMoods))]
		params.Intensity = allIntensities[c.rand.IntN(len(allIntensities))]
		params.SurpriseMe = false
		return c.Compose(level, userID, params)
	}

	params, err := resolveParams(params)
	if err != nil {
		return Details{}, err
	}

	var runCount, stationCount int
	if params.WorkoutType == TypeStandard {
		runCount = standardRunCount
		stationCount = standardStationCounts[params.Mood][params.Intensity]
	} else {
		r := typeRanges[params.WorkoutType]
		runCount = c.intInRange(r.minRuns, r.maxRuns)
		stationCount = c.intInRange(r.minStations, r.maxStations)
	}

	stations := selectStations(level, params.ExcludeStations, stationCount)

	runDistance := durationRunDistances[params.Duration]
	runs := make([]Run, 0, runCount)
	for i := range runCount {
		runs = append(runs, Run{
			ID:       i + 1,
			Order:    i * 2,
			Distance: runDistance,
		})
	}

	return Details{
		FitnessLevel:     level,
		Stations:         stations,
		Runs:             runs,
		UserID:           userID,
		GeneratedAt:      c.now(),
		Mood:             params.Mood,
		Intensity:        params.Intensity,
		Duration:         params.Duration,
		ExcludedStations: params.ExcludeStations,
		WorkoutType:      params.WorkoutType,
	}, nil
}

// resolveParams fills defaults for absent parameters and validates the rest.
func resolveParams(params Params) (Params, error) {
	switch params.Mood {
	case "":
		params.Mood = MoodNormal
	case MoodFresh, MoodNormal, MoodTired, MoodExhausted:
	default:
		return Params{}, fmt.Errorf("%w: unknown mood %q", ErrInvalidParams, params.Mood)
	}

	switch params.Intensity {
	case "":
		params.Intensity = IntensityModerate
	case IntensityLight, IntensityModerate, IntensityHard, IntensityBeast:
	default:
		return Params{}, fmt.Errorf("%w: unknown intensity %q", ErrInvalidParams, params.Intensity)
	}

	switch params.WorkoutType {
	case "":
		params.WorkoutType = TypeStandard
	case TypeStandard, TypeRecovery, TypeLongRun:
	default:
		return Params{}, fmt.Errorf("%w: unknown workout type %q", ErrInvalidParams, params.WorkoutType)
	}

	if params.Duration == 0 {
		params.Duration = defaultDuration
	}
	if _, ok := durationRunDistances[params.Duration]; !ok {
		return Params{}, fmt.Errorf("%w: unsupported duration %d minutes", ErrInvalidParams, params.Duration)
	}

	return params, nil
}

// selectStations filters exclusions out of the canonical station sequence and
// keeps the first count survivors. Prescriptions and order numbers come from
// the catalog unchanged, so exclusions leave gaps in the order sequence.
// Excluding everything yields an empty slice, not an error.
func selectStations(level FitnessLevel, excluded []StationName, count int) []Station {
	prescriptions := catalog[level]
	stations := make([]Station, 0, len(stationOrder))
	for i, name := range stationOrder {
		if slices.Contains(excluded, name) {
			continue
		}
		if len(stations) == count {
			break
		}
		p := prescriptions[name]
		stations = append(stations, Station{
			ID:       i + 1,
			Name:     name,
			Order:    i + 1,
			Distance: p.Distance,
			Weight:   p.Weight,
			Reps:     p.Reps,
		})
	}
	return stations
}

func (c *composer) intInRange(minValue, maxValue int) int {
	return minValue + c.rand.IntN(maxValue-minValue+1)
}
