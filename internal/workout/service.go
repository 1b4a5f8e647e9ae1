package workout

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/bertomill/hyrox-workout-generator/internal/analytics"
	"github.com/bertomill/hyrox-workout-generator/internal/contexthelpers"
	"github.com/bertomill/hyrox-workout-generator/internal/sqlite"
	"github.com/bertomill/hyrox-workout-generator/internal/timefmt"
	"golang.org/x/sync/errgroup"
)

// aiGenerateTimeout bounds the LLM call so a slow model falls back to
// rule-based composition instead of stalling the request.
const aiGenerateTimeout = 15 * time.Second

// Service handles the business logic for workout generation, logging and
// analytics. The user identity comes from the request context.
type Service struct {
	repo     *sqliteRepository
	composer *composer
	ai       *aiGenerator
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new workout service. The AI composition path is only
// wired when an OpenAI API key is configured; without one no network call is
// ever attempted.
func NewService(db *sqlite.Database, logger *slog.Logger, openaiAPIKey string) *Service {
	seed := uint64(time.Now().UnixNano()) //nolint:gosec // workout variety, not cryptography
	source := &lockedSource{src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)}
	s := &Service{
		repo:     newSQLiteRepository(db, logger),
		composer: newComposer(rand.New(source), time.Now),
		logger:   logger,
		now:      time.Now,
	}
	if openaiAPIKey != "" {
		s.ai = newAIGenerator(openaiAPIKey, logger)
	}
	return s
}

// EnsureUser creates the user row backing the authenticated session.
func (s *Service) EnsureUser(ctx context.Context) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)
	if err := s.repo.ensureUser(ctx, userID); err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	return nil
}

// Generate composes a workout for the authenticated user and persists it
// with pending status. The AI path is tried first when configured; any AI
// failure logs a warning and falls back to rule-based composition, so the
// only user-visible errors are invalid parameters and storage failures.
func (s *Service) Generate(ctx context.Context, params Params) (Generation, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	level, err := s.repo.getFitnessLevel(ctx, userID)
	if err != nil {
		return Generation{}, fmt.Errorf("get fitness level: %w", err)
	}
	return s.generate(ctx, level, userID, params)
}

// GenerateForLevel is Generate with the stored fitness level overridden for
// this one workout.
func (s *Service) GenerateForLevel(ctx context.Context, level FitnessLevel, params Params) (Generation, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)
	return s.generate(ctx, level, userID, params)
}

func (s *Service) generate(
	ctx context.Context,
	level FitnessLevel,
	userID string,
	params Params,
) (Generation, error) {
	details, source, err := s.compose(ctx, level, userID, params)
	if err != nil {
		return Generation{}, err
	}

	workout, err := s.repo.createWorkout(ctx, Workout{
		UserID:        userID,
		DateGenerated: details.GeneratedAt,
		Details:       details,
		Status:        StatusPending,
		Source:        SourceGenerated,
	})
	if err != nil {
		return Generation{}, fmt.Errorf("create workout: %w", err)
	}

	return Generation{Source: source, Workout: workout}, nil
}

func (s *Service) compose(
	ctx context.Context,
	level FitnessLevel,
	userID string,
	params Params,
) (Details, string, error) {
	// Parameters are validated up front so bad input fails the same way on
	// both composition paths.
	if params.SurpriseMe {
		params.Mood = allMoods[s.composer.rand.IntN(len(allMoods))]
		params.Intensity = allIntensities[s.composer.rand.IntN(len(allIntensities))]
		params.SurpriseMe = false
	}
	resolved, err := resolveParams(params)
	if err != nil {
		return Details{}, "", err
	}
	if !ValidLevel(level) {
		return Details{}, "", fmt.Errorf("%w: unknown fitness level %q", ErrInvalidParams, level)
	}

	if s.ai != nil {
		details, aiErr := s.generateWithAI(ctx, level, userID, resolved)
		if aiErr == nil {
			return details, GenerationSourceAI, nil
		}
		s.logger.LogAttrs(ctx, slog.LevelWarn, "AI generation failed, falling back to rule-based",
			slog.Any("error", aiErr))
	}

	details, err := s.composer.Compose(level, userID, resolved)
	if err != nil {
		return Details{}, "", fmt.Errorf("compose workout: %w", err)
	}
	return details, GenerationSourceRuleBased, nil
}

func (s *Service) generateWithAI(
	ctx context.Context,
	level FitnessLevel,
	userID string,
	params Params,
) (Details, error) {
	inspiration, err := s.repo.listCustomWorkouts(ctx, userID, maxInspirationWorkouts)
	if err != nil {
		return Details{}, fmt.Errorf("list custom workouts: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, aiGenerateTimeout)
	defer cancel()

	details, err := s.ai.Generate(ctx, level, userID, params, inspiration)
	if err != nil {
		return Details{}, err
	}
	return details, nil
}

// Recommend suggests the next session type from the last 14 days of history.
// The boolean is false when there is nothing to recommend; history-read
// failures also resolve to no recommendation rather than an error.
func (s *Service) Recommend(ctx context.Context) (Type, bool) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	since := s.now().AddDate(0, 0, -recommendationWindowDays)
	recent, err := s.repo.listWorkoutsSince(ctx, userID, formatTimestamp(since))
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to analyze workout history",
			slog.Any("error", err))
		return "", false
	}

	details := make([]Details, 0, len(recent))
	for _, w := range recent {
		details = append(details, w.Details)
	}
	return recommendType(details)
}

// LogPerformance records a completed workout and flips its status to
// completed. The overall time is parsed from the submitted display string;
// a malformed time is stored as no-time rather than rejected. A performance
// document with no segments and no overall time carries nothing worth
// storing and is rejected outright.
func (s *Service) LogPerformance(
	ctx context.Context,
	workoutID int,
	performance Performance,
	notes string,
) (Log, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	if len(performance.Stations) == 0 && len(performance.Runs) == 0 && performance.OverallTime == "" {
		return Log{}, fmt.Errorf("%w: performance data has no segments or overall time", ErrInvalidParams)
	}

	// Confirms ownership before writing anything.
	if _, err := s.repo.getWorkout(ctx, userID, workoutID); err != nil {
		return Log{}, fmt.Errorf("get workout: %w", err)
	}

	log, err := s.repo.createLog(ctx, Log{
		WorkoutID:     workoutID,
		UserID:        userID,
		DateCompleted: s.now(),
		Performance:   performance,
		OverallTime:   timefmt.Parse(performance.OverallTime),
		Notes:         notes,
	})
	if err != nil {
		return Log{}, fmt.Errorf("create workout log: %w", err)
	}

	// The workout can only vanish between the ownership check and the flip
	// through a concurrent delete; the log itself is already saved.
	if err = s.repo.updateWorkoutStatus(ctx, userID, workoutID, StatusCompleted); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to mark workout completed",
			slog.Int("workout_id", workoutID), slog.Any("error", err))
	}

	return log, nil
}

// UpdateNotes replaces the notes on the most recent log of a workout.
func (s *Service) UpdateNotes(ctx context.Context, workoutID int, notes string) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)
	if err := s.repo.updateLatestLogNotes(ctx, userID, workoutID, notes); err != nil {
		return fmt.Errorf("update log notes: %w", err)
	}
	return nil
}

// History returns one page of the user's workout history plus aggregate
// statistics. The page, the total count and the full log list behind the
// stats are fetched concurrently.
func (s *Service) History(ctx context.Context, limit, offset int) (HistoryPage, analytics.Stats, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	var (
		entries []HistoryEntry
		total   int
		logs    []loggedWorkout
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if entries, err = s.repo.listHistory(gctx, userID, limit, offset); err != nil {
			return fmt.Errorf("list history: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if total, err = s.repo.countLogs(gctx, userID); err != nil {
			return fmt.Errorf("count logs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if logs, err = s.repo.listAllLogs(gctx, userID); err != nil {
			return fmt.Errorf("list all logs: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return HistoryPage{}, analytics.Stats{}, err
	}

	page := HistoryPage{
		Entries: entries,
		Total:   total,
		HasMore: offset+limit < total,
	}
	stats := analytics.CalculateStats(analyticsEntries(logs), s.now())
	return page, stats, nil
}

// Analytics computes the full analytics report over the user's history.
func (s *Service) Analytics(ctx context.Context) (analytics.Report, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	logs, err := s.repo.listAllLogs(ctx, userID)
	if err != nil {
		return analytics.Report{}, fmt.Errorf("list all logs: %w", err)
	}
	return analytics.ComputeReport(analyticsEntries(logs), s.now()), nil
}

func analyticsEntries(logs []loggedWorkout) []analytics.Entry {
	entries := make([]analytics.Entry, 0, len(logs))
	for _, lw := range logs {
		stations := make([]analytics.StationTime, 0, len(lw.Log.Performance.Stations))
		for _, st := range lw.Log.Performance.Stations {
			stations = append(stations, analytics.StationTime{
				Name: string(st.Name),
				Time: st.Time,
			})
		}
		entries = append(entries, analytics.Entry{
			WorkoutID:     lw.Log.WorkoutID,
			DateCompleted: lw.Log.DateCompleted,
			OverallTime:   lw.Log.OverallTime,
			FitnessLevel:  string(lw.FitnessLevel),
			StationTimes:  stations,
		})
	}
	return entries
}

// Get retrieves a single workout owned by the authenticated user.
func (s *Service) Get(ctx context.Context, id int) (Workout, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)
	workout, err := s.repo.getWorkout(ctx, userID, id)
	if err != nil {
		return Workout{}, fmt.Errorf("get workout: %w", err)
	}
	return workout, nil
}

// UpdateStatus transitions a workout's lifecycle status.
func (s *Service) UpdateStatus(ctx context.Context, id int, status Status) error {
	switch status {
	case StatusPending, StatusCompleted, StatusSkipped:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidParams, status)
	}

	userID := contexthelpers.AuthenticatedUserID(ctx)
	if err := s.repo.updateWorkoutStatus(ctx, userID, id, status); err != nil {
		return fmt.Errorf("update workout status: %w", err)
	}
	return nil
}

// Delete removes a workout and its logs.
func (s *Service) Delete(ctx context.Context, id int) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)
	if err := s.repo.deleteWorkout(ctx, userID, id); err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return nil
}

// CreateCustom persists a hand-built workout. Custom workouts feed the AI
// composition prompt as style inspiration.
func (s *Service) CreateCustom(
	ctx context.Context,
	name, description string,
	tags []string,
	details Details,
) (Workout, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	if len(details.Stations) == 0 && len(details.Runs) == 0 {
		return Workout{}, fmt.Errorf("%w: workout has no segments", ErrInvalidParams)
	}
	for _, station := range details.Stations {
		if _, ok := canonicalStationIndex(station.Name); !ok {
			return Workout{}, fmt.Errorf("%w: unknown station name %q", ErrInvalidParams, station.Name)
		}
	}
	if details.FitnessLevel != "" && !ValidLevel(details.FitnessLevel) {
		return Workout{}, fmt.Errorf("%w: unknown fitness level %q", ErrInvalidParams, details.FitnessLevel)
	}

	now := s.now()
	details.UserID = userID
	details.GeneratedAt = now

	workout, err := s.repo.createWorkout(ctx, Workout{
		UserID:        userID,
		DateGenerated: now,
		Details:       details,
		Status:        StatusPending,
		Name:          name,
		Description:   description,
		Tags:          tags,
		Source:        SourceUserCreated,
	})
	if err != nil {
		return Workout{}, fmt.Errorf("create custom workout: %w", err)
	}
	return workout, nil
}

// ListCustom retrieves the user's hand-built workouts, newest first.
func (s *Service) ListCustom(ctx context.Context, limit int) ([]Workout, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)
	workouts, err := s.repo.listCustomWorkouts(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list custom workouts: %w", err)
	}
	return workouts, nil
}

// FitnessLevel retrieves the user's configured fitness level.
func (s *Service) FitnessLevel(ctx context.Context) (FitnessLevel, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)
	level, err := s.repo.getFitnessLevel(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get fitness level: %w", err)
	}
	return level, nil
}

// SetFitnessLevel updates the user's fitness level.
func (s *Service) SetFitnessLevel(ctx context.Context, level FitnessLevel) error {
	if !ValidLevel(level) {
		return fmt.Errorf("%w: unknown fitness level %q", ErrInvalidParams, level)
	}
	userID := contexthelpers.AuthenticatedUserID(ctx)
	if err := s.repo.setFitnessLevel(ctx, userID, level); err != nil {
		return fmt.Errorf("set fitness level: %w", err)
	}
	return nil
}
