package main

import (
	"net/http"

	"github.com/bertomill/hyrox-workout-generator/internal/workout"
)

const defaultCustomLimit = 20

type customWorkoutRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags"`
	Details     workout.Details `json:"details"`
}

// customWorkoutPOST persists a hand-built workout. These feed the AI
// composition prompt as style inspiration.
func (app *application) customWorkoutPOST(w http.ResponseWriter, r *http.Request) {
	var req customWorkoutRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		app.clientError(w, r, http.StatusBadRequest, "name is required")
		return
	}

	created, err := app.workoutService.CreateCustom(r.Context(), req.Name, req.Description, req.Tags, req.Details)
	if err != nil {
		app.workoutError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusCreated, created)
}

// customWorkoutsGET lists the user's hand-built workouts, newest first.
func (app *application) customWorkoutsGET(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultCustomLimit)
	if limit < 1 || limit > maxHistoryLimit {
		limit = defaultCustomLimit
	}

	workouts, err := app.workoutService.ListCustom(r.Context(), limit)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, workouts)
}
