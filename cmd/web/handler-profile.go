package main

import (
	"net/http"

	"github.com/bertomill/hyrox-workout-generator/internal/workout"
)

type profileResponse struct {
	FitnessLevel workout.FitnessLevel `json:"fitnessLevel"`
}

// profileGET serves the authenticated user's training profile.
func (app *application) profileGET(w http.ResponseWriter, r *http.Request) {
	level, err := app.workoutService.FitnessLevel(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, profileResponse{FitnessLevel: level})
}

// profilePUT updates the user's fitness level, which scales every station
// prescription from the next generated workout on.
func (app *application) profilePUT(w http.ResponseWriter, r *http.Request) {
	var req profileResponse
	if !app.readJSON(w, r, &req) {
		return
	}

	if err := app.workoutService.SetFitnessLevel(r.Context(), req.FitnessLevel); err != nil {
		app.workoutError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, profileResponse{FitnessLevel: req.FitnessLevel})
}
