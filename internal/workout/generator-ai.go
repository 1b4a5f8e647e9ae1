package workout

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// aiGenerator composes workouts with an LLM. It is nil-safe by construction:
// the service only builds one when an API key is configured, so without a key
// no network call is ever attempted.
type aiGenerator struct {
	client openai.Client
	logger *slog.Logger
}

func newAIGenerator(apiKey string, logger *slog.Logger) *aiGenerator {
	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &aiGenerator{
		client: client,
		logger: logger,
	}
}

const aiSystemPrompt = `You are an expert Hyrox trainer and workout designer. ` +
	`You create personalized, safe, and effective Hyrox workouts based on the athlete's ` +
	`current state and goals. Always follow official Hyrox standards but adapt for the ` +
	`athlete's level and condition. Respond with raw JSON only, no markdown fences.`

var moodDescriptions = map[Mood]string{
	MoodFresh:     "feeling fresh, fully recovered, high energy",
	MoodNormal:    "feeling normal, ready for a standard workout",
	MoodTired:     "feeling tired, somewhat fatigued but can train",
	MoodExhausted: "feeling exhausted, low energy, needs recovery-focused training",
}

var intensityDescriptions = map[Intensity]string{
	IntensityLight:    "wants a light, recovery-focused session",
	IntensityModerate: "wants a moderate, balanced session",
	IntensityHard:     "wants a hard, challenging session",
	IntensityBeast:    "wants a beast mode, maximum effort session",
}

// maxInspirationWorkouts caps how many user-authored workouts are embedded in
// the prompt as style examples.
const maxInspirationWorkouts = 5

// Generate asks the LLM for a workout and validates the result strictly.
// Params must already be resolved; any failure is returned to the caller,
// which falls back to rule-based composition.
func (g *aiGenerator) Generate(
	ctx context.Context,
	level FitnessLevel,
	userID string,
	params Params,
	inspiration []Workout,
) (Details, error) {
	prompt, err := buildWorkoutPrompt(level, params, inspiration)
	if err != nil {
		return Details{}, fmt.Errorf("build workout prompt: %w", err)
	}

	completionParams := openai.ChatCompletionNewParams{
		Model: openai.ChatModelGPT4oMini,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(aiSystemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0.7),
	}

	g.logger.LogAttrs(ctx, slog.LevelDebug, "sending workout completion request",
		slog.String("model", openai.ChatModelGPT4oMini),
		slog.Int("prompt_length", len(prompt)))

	completion, err := g.client.Chat.Completions.New(ctx, completionParams)
	if err != nil {
		return Details{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return Details{}, fmt.Errorf("empty completion response")
	}

	g.logger.LogAttrs(ctx, slog.LevelDebug, "received workout completion response",
		slog.Int64("completion_tokens", completion.Usage.CompletionTokens),
		slog.Int64("prompt_tokens", completion.Usage.PromptTokens))

	details, err := parseAIWorkout(completion.Choices[0].Message.Content, level, userID, params, time.Now())
	if err != nil {
		return Details{}, fmt.Errorf("parse completion: %w", err)
	}
	return details, nil
}

// buildWorkoutPrompt renders the generation request, the per-level catalog
// and up to five user-authored workouts as style inspiration.
func buildWorkoutPrompt(level FitnessLevel, params Params, inspiration []Workout) (string, error) {
	var b strings.Builder

	b.WriteString("Generate a personalized Hyrox workout with the following parameters:\n\n")
	b.WriteString("**Athlete Profile:**\n")
	fmt.Fprintf(&b, "- Fitness Level: %s\n", level)
	fmt.Fprintf(&b, "- Current Mood/Energy: %s\n", moodDescriptions[params.Mood])
	fmt.Fprintf(&b, "- Desired Intensity: %s\n", intensityDescriptions[params.Intensity])
	fmt.Fprintf(&b, "- Available Time: %d minutes\n\n", params.Duration)

	b.WriteString("**Constraints:**\n")
	if len(params.ExcludeStations) > 0 {
		names := make([]string, 0, len(params.ExcludeStations))
		for _, name := range params.ExcludeStations {
			names = append(names, string(name))
		}
		fmt.Fprintf(&b, "- MUST EXCLUDE these stations: %s\n\n", strings.Join(names, ", "))
	} else {
		b.WriteString("- No station exclusions\n\n")
	}

	infos, err := Catalog(level)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "**Official Hyrox Stations at the %s level:**\n", level)
	for _, info := range infos {
		fmt.Fprintf(&b, "%d. %s", info.Order, info.Name)
		if info.Distance != "" {
			fmt.Fprintf(&b, " - %s", info.Distance)
		}
		if info.Reps != "" {
			fmt.Fprintf(&b, " - %s reps", info.Reps)
		}
		if info.Weight != "" {
			fmt.Fprintf(&b, " @ %s", info.Weight)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(inspiration) > maxInspirationWorkouts {
		inspiration = inspiration[:maxInspirationWorkouts]
	}
	if len(inspiration) > 0 {
		b.WriteString("**Workouts this athlete built by hand, as style inspiration:**\n")
		for _, w := range inspiration {
			doc, err := json.Marshal(w.Details)
			if err != nil {
				return "", fmt.Errorf("marshal inspiration workout %d: %w", w.ID, err)
			}
			if w.Name != "" {
				fmt.Fprintf(&b, "- %s: %s\n", w.Name, doc)
			} else {
				fmt.Fprintf(&b, "- %s\n", doc)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(`**Your Task:**
Create a workout that:
1. Adapts station selection and volume to the athlete's mood and intensity
2. Adjusts run distances to fit the available time
3. Excludes any restricted stations
4. Uses only the station names listed above

**Response Format (JSON):**
{
  "stations": [
    {"id": 1, "name": "SkiErg", "distance": "1000m", "order": 1}
  ],
  "runs": [
    {"id": 1, "distance": "1km", "order": 0}
  ]
}

Generate the workout now.`)

	return b.String(), nil
}

// aiWorkoutResponse is the JSON document the model is asked to produce.
type aiWorkoutResponse struct {
	Stations []Station `json:"stations"`
	Runs     []Run     `json:"runs"`
}

// parseAIWorkout decodes and validates the model output. Validation is
// strict: unknown station names, excluded stations and workouts without runs
// are all rejected so a malformed completion never reaches storage.
func parseAIWorkout(
	content string,
	level FitnessLevel,
	userID string,
	params Params,
	generatedAt time.Time,
) (Details, error) {
	content = trimJSONFences(content)

	var response aiWorkoutResponse
	if err := json.Unmarshal([]byte(content), &response); err != nil {
		return Details{}, fmt.Errorf("unmarshal workout JSON: %w", err)
	}

	if len(response.Runs) == 0 {
		return Details{}, fmt.Errorf("workout has no runs")
	}

	for i := range response.Stations {
		station := &response.Stations[i]
		canonical, ok := canonicalStationIndex(station.Name)
		if !ok {
			return Details{}, fmt.Errorf("unknown station name %q", station.Name)
		}
		for _, excluded := range params.ExcludeStations {
			if station.Name == excluded {
				return Details{}, fmt.Errorf("excluded station %q present", station.Name)
			}
		}
		if station.Distance == "" && station.Reps == "" {
			return Details{}, fmt.Errorf("station %q has neither distance nor reps", station.Name)
		}
		if station.ID == 0 {
			station.ID = canonical + 1
		}
		if station.Order == 0 {
			station.Order = canonical + 1
		}
	}

	for i := range response.Runs {
		run := &response.Runs[i]
		if run.Distance == "" {
			return Details{}, fmt.Errorf("run %d has no distance", i+1)
		}
		if run.ID == 0 {
			run.ID = i + 1
		}
	}

	return Details{
		FitnessLevel:     level,
		Stations:         response.Stations,
		Runs:             response.Runs,
		UserID:           userID,
		GeneratedAt:      generatedAt,
		Mood:             params.Mood,
		Intensity:        params.Intensity,
		Duration:         params.Duration,
		ExcludedStations: params.ExcludeStations,
		WorkoutType:      params.WorkoutType,
	}, nil
}

func canonicalStationIndex(name StationName) (int, bool) {
	for i, canonical := range stationOrder {
		if name == canonical {
			return i, true
		}
	}
	return 0, false
}

// trimJSONFences strips markdown code fences some models wrap around JSON
// despite instructions.
func trimJSONFences(content string) string {
	content = strings.TrimSpace(content)
	if after, found := strings.CutPrefix(content, "```json"); found {
		content = after
	} else if after, found = strings.CutPrefix(content, "```"); found {
		content = after
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
