package workout

import "time"

// FitnessLevel scales station prescriptions to the athlete.
type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

// Mood captures how the athlete reports feeling before a session.
type Mood string

const (
	MoodFresh     Mood = "fresh"
	MoodNormal    Mood = "normal"
	MoodTired     Mood = "tired"
	MoodExhausted Mood = "exhausted"
)

// Intensity is the requested training effort.
type Intensity string

const (
	IntensityLight    Intensity = "light"
	IntensityModerate Intensity = "moderate"
	IntensityHard     Intensity = "hard"
	IntensityBeast    Intensity = "beast"
)

// Type categorizes the session structure.
type Type string

const (
	TypeStandard Type = "standard"
	TypeRecovery Type = "recovery"
	TypeLongRun  Type = "long_run"
)

// Status tracks the lifecycle of a persisted workout.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
)

// Source records how a workout document came to exist.
type Source string

const (
	SourceGenerated   Source = "generated"
	SourceUserCreated Source = "user_created"
)

// StationName is one of the eight canonical exercise stations.
type StationName string

const (
	StationSkiErg          StationName = "SkiErg"
	StationSledPush        StationName = "Sled Push"
	StationSledPull        StationName = "Sled Pull"
	StationBurpeeBroadJump StationName = "Burpee Broad Jumps"
	StationRowing          StationName = "Rowing"
	StationFarmersCarry    StationName = "Farmers Carry"
	StationSandbagLunges   StationName = "Sandbag Lunges"
	StationWallBalls       StationName = "Wall Balls"
)

// Station is one exercise segment within a workout. Prescriptions are copied
// verbatim from the catalog for the resolved fitness level.
type Station struct {
	ID       int         `json:"id"`
	Name     StationName `json:"name"`
	Order    int         `json:"order"`
	Distance string      `json:"distance,omitempty"`
	Weight   string      `json:"weight,omitempty"`
	Reps     string      `json:"reps,omitempty"`
}

// Run is one running segment. Run orders are even (0, 2, 4, ...) so that
// sorting all segments by order interleaves runs between stations.
type Run struct {
	ID       int    `json:"id"`
	Order    int    `json:"order"`
	Distance string `json:"distance"`
}

// Details is the complete generated workout document.
type Details struct {
	FitnessLevel     FitnessLevel  `json:"fitnessLevel"`
	Stations         []Station     `json:"stations"`
	Runs             []Run         `json:"runs"`
	UserID           string        `json:"userId"`
	GeneratedAt      time.Time     `json:"generatedAt"`
	Mood             Mood          `json:"mood,omitempty"`
	Intensity        Intensity     `json:"intensity,omitempty"`
	Duration         int           `json:"duration,omitempty"`
	ExcludedStations []StationName `json:"excludedStations,omitempty"`
	WorkoutType      Type          `json:"workoutType,omitempty"`
}

// Workout wraps Details with its persistence envelope.
type Workout struct {
	ID            int       `json:"id"`
	UserID        string    `json:"userId"`
	DateGenerated time.Time `json:"dateGenerated"`
	Details       Details   `json:"details"`
	Status        Status    `json:"status"`
	Name          string    `json:"name,omitempty"`
	Description   string    `json:"description,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	Source        Source    `json:"source"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Params are the caller-supplied generation knobs. Zero values mean
// "unspecified" and resolve to defaults; non-zero values are validated.
type Params struct {
	Mood            Mood          `json:"mood,omitempty"`
	Intensity       Intensity     `json:"intensity,omitempty"`
	Duration        int           `json:"duration,omitempty"`
	WorkoutType     Type          `json:"workoutType,omitempty"`
	ExcludeStations []StationName `json:"excludeStations,omitempty"`
	SurpriseMe      bool          `json:"surpriseMe,omitempty"`
}

// Generation tags a freshly generated workout with the composition path that
// produced it, so callers can tell an AI result from the rule-based fallback.
type Generation struct {
	Source  string  `json:"source"`
	Workout Workout `json:"workout"`
}

const (
	GenerationSourceAI        = "ai"
	GenerationSourceRuleBased = "rule-based"
)

// StationTime is a logged time for one station.
type StationTime struct {
	Name  StationName `json:"name"`
	Time  string      `json:"time"`
	Order int         `json:"order"`
}

// RunTime is a logged time for one running segment.
type RunTime struct {
	Distance string `json:"distance"`
	Time     string `json:"time"`
	Order    int    `json:"order"`
}

// Performance is the raw timing data submitted when logging a workout.
// OverallTime is caller-supplied and authoritative; it is never reconciled
// against the sum of segment times.
type Performance struct {
	Stations    []StationTime `json:"stations"`
	Runs        []RunTime     `json:"runs"`
	OverallTime string        `json:"overallTime"`
}

// Log is a persisted record of a completed workout. OverallTime is in
// seconds; 0 means the log carries no usable total.
type Log struct {
	ID            int         `json:"id"`
	WorkoutID     int         `json:"workoutId"`
	UserID        string      `json:"userId"`
	DateCompleted time.Time   `json:"dateCompleted"`
	Performance   Performance `json:"performance"`
	OverallTime   int         `json:"overallTime"`
	Notes         string      `json:"notes,omitempty"`
}

// HistoryEntry pairs a log with the workout it completed.
type HistoryEntry struct {
	Log     Log     `json:"log"`
	Workout Workout `json:"workout"`
}

// HistoryPage is one page of workout history plus paging metadata.
type HistoryPage struct {
	Entries []HistoryEntry `json:"entries"`
	Total   int            `json:"total"`
	HasMore bool           `json:"hasMore"`
}
