// Command stresstest drives concurrent simulated athletes against a running
// server and fails when the success rate falls below the threshold.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bertomill/hyrox-workout-generator/internal/e2etest"
	"github.com/bertomill/hyrox-workout-generator/internal/logging"
	"github.com/bertomill/hyrox-workout-generator/internal/testhelpers"
	"github.com/bertomill/hyrox-workout-generator/internal/workout"
	"golang.org/x/sync/errgroup"
)

const (
	setupTimeout           = 30 * time.Second
	scenarioTimeout        = 2 * time.Minute
	maxConcurrentUsers     = 10
	workoutsPerUser        = 8
	successRateThreshold   = 95.0
	expectedArgsCount      = 3
	percentageMultiplier   = 100
	baseOverallTimeSeconds = 3600
	overallTimeJitterRange = 1800
)

// athlete holds a client with its own session cookie.
type athlete struct {
	client *e2etest.Client
	index  int
}

var moods = []workout.Mood{workout.MoodFresh, workout.MoodNormal, workout.MoodTired, workout.MoodExhausted}

var intensities = []workout.Intensity{
	workout.IntensityLight, workout.IntensityModerate, workout.IntensityHard, workout.IntensityBeast,
}

var levels = []workout.FitnessLevel{workout.LevelBeginner, workout.LevelIntermediate, workout.LevelAdvanced}

// setupAthlete creates a session and configures a random fitness level.
func setupAthlete(ctx context.Context, url string, index int) (*athlete, error) {
	client, err := e2etest.NewClient(url)
	if err != nil {
		return nil, fmt.Errorf("creating client for athlete %d: %w", index, err)
	}

	// First request mints the session-bound user.
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		return nil, fmt.Errorf("athlete %d not ready: %w", index, err)
	}

	level := levels[rand.IntN(len(levels))]
	status, err := client.DoJSON(ctx, http.MethodPut, "/api/profile", map[string]any{
		"fitnessLevel": level,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("athlete %d set fitness level: %w", index, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("athlete %d set fitness level: unexpected status %d", index, status)
	}

	return &athlete{client: client, index: index}, nil
}

// setupAthletes creates the requested number of concurrent sessions.
func setupAthletes(ctx context.Context, url string, numUsers int, logger *slog.Logger) ([]*athlete, error) {
	logger.LogAttrs(ctx, slog.LevelInfo, "setting up athletes", slog.Int("num_users", numUsers))

	var (
		athletes   = make([]*athlete, 0, numUsers)
		athletesMu sync.Mutex
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentUsers)
	for i := range numUsers {
		g.Go(func() error {
			userCtx, cancel := context.WithTimeout(gctx, setupTimeout)
			defer cancel()

			user, err := setupAthlete(userCtx, url, i)
			if err != nil {
				return err
			}
			athletesMu.Lock()
			athletes = append(athletes, user)
			athletesMu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("setup athletes: %w", err)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "all athletes ready", slog.Int("total_users", len(athletes)))
	return athletes, nil
}

// runScenario pushes one athlete through generate, log, history, analytics
// and recommendation calls, counting successes and failures.
func runScenario(ctx context.Context, user *athlete, successes, failures *atomic.Int64, logger *slog.Logger) {
	report := func(step string, err error) bool {
		if err != nil {
			failures.Add(1)
			logger.LogAttrs(ctx, slog.LevelWarn, "scenario step failed",
				slog.Int("athlete", user.index),
				slog.String("step", step),
				slog.Any("error", err))
			return false
		}
		successes.Add(1)
		return true
	}

	for range workoutsPerUser {
		var generation workout.Generation
		status, err := user.client.DoJSON(ctx, http.MethodPost, "/api/workouts/generate", workout.Params{
			Mood:      moods[rand.IntN(len(moods))],
			Intensity: intensities[rand.IntN(len(intensities))],
		}, &generation)
		if err == nil && status != http.StatusCreated {
			err = fmt.Errorf("unexpected status %d", status)
		}
		if !report("generate", err) {
			continue
		}

		overall := baseOverallTimeSeconds + rand.IntN(overallTimeJitterRange)
		status, err = user.client.DoJSON(ctx, http.MethodPost, "/api/workouts/log", map[string]any{
			"workoutId": generation.Workout.ID,
			"performance": workout.Performance{
				OverallTime: fmt.Sprintf("%d:%02d:%02d", overall/3600, overall/60%60, overall%60),
			},
		}, nil)
		if err == nil && status != http.StatusCreated {
			err = fmt.Errorf("unexpected status %d", status)
		}
		report("log", err)
	}

	var history struct {
		Total int `json:"total"`
	}
	report("history", user.client.GetJSON(ctx, "/api/workouts/history", &history))

	var analyticsReport map[string]any
	report("analytics", user.client.GetJSON(ctx, "/api/workouts/analytics", &analyticsReport))

	var recommendation map[string]any
	report("recommend", user.client.GetJSON(ctx, "/api/workouts/recommend", &recommendation))
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != expectedArgsCount {
		logger.LogAttrs(ctx, slog.LevelError, "usage: stresstest <hostname> <num_users>")
		os.Exit(1)
	}

	hostname := os.Args[1]
	numUsers, err := strconv.Atoi(os.Args[2])
	if err != nil || numUsers < 1 {
		logger.LogAttrs(ctx, slog.LevelError, "num_users must be a positive integer")
		os.Exit(1)
	}

	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}

	start := time.Now()
	athletes, err := setupAthletes(ctx, url, numUsers, logger)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	var (
		successes atomic.Int64
		failures  atomic.Int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentUsers)
	for _, user := range athletes {
		g.Go(func() error {
			userCtx, cancel := context.WithTimeout(gctx, scenarioTimeout)
			defer cancel()
			runScenario(userCtx, user, &successes, &failures, logger)
			return nil
		})
	}
	_ = g.Wait()

	total := successes.Load() + failures.Load()
	successRate := float64(successes.Load()) / float64(total) * percentageMultiplier
	logger.LogAttrs(ctx, slog.LevelInfo, "stress test finished",
		slog.Int64("successes", successes.Load()),
		slog.Int64("failures", failures.Load()),
		slog.String("success_rate", fmt.Sprintf("%.1f%%", successRate)),
		slog.Duration("duration", time.Since(start)))

	if successRate < successRateThreshold {
		logger.LogAttrs(ctx, slog.LevelError, "success rate below threshold",
			slog.Float64("threshold", successRateThreshold))
		os.Exit(1)
	}
	os.Exit(0)
}
