package main

import (
	"net/http"

	"github.com/bertomill/hyrox-workout-generator/internal/workout"
)

type logRequest struct {
	WorkoutID   int                 `json:"workoutId"`
	Performance workout.Performance `json:"performance"`
	Notes       string              `json:"notes"`
}

// workoutLogPOST records the performance of a completed workout and marks it
// completed.
func (app *application) workoutLogPOST(w http.ResponseWriter, r *http.Request) {
	var req logRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	if req.WorkoutID < 1 {
		app.clientError(w, r, http.StatusBadRequest, "workoutId is required")
		return
	}

	log, err := app.workoutService.LogPerformance(r.Context(), req.WorkoutID, req.Performance, req.Notes)
	if err != nil {
		app.workoutError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusCreated, log)
}
