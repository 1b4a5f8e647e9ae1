package main

import (
	"net/http"

	"github.com/bertomill/hyrox-workout-generator/internal/workout"
)

type generateRequest struct {
	// FitnessLevel overrides the stored profile level for this workout.
	FitnessLevel workout.FitnessLevel `json:"fitnessLevel,omitempty"`
	workout.Params
}

// workoutGeneratePOST composes a workout from the submitted parameters and
// persists it with pending status. An empty body generates with defaults.
func (app *application) workoutGeneratePOST(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if r.ContentLength > 0 {
		if !app.readJSON(w, r, &req) {
			return
		}
	}

	var (
		generation workout.Generation
		err        error
	)
	if req.FitnessLevel != "" {
		generation, err = app.workoutService.GenerateForLevel(r.Context(), req.FitnessLevel, req.Params)
	} else {
		generation, err = app.workoutService.Generate(r.Context(), req.Params)
	}
	if err != nil {
		app.workoutError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusCreated, generation)
}
