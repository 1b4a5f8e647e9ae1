package main

import (
	"net/http"

	"github.com/bertomill/hyrox-workout-generator/internal/workout"
)

// workoutGET serves a single workout owned by the authenticated user.
func (app *application) workoutGET(w http.ResponseWriter, r *http.Request) {
	workoutID, ok := app.parseWorkoutIDParam(w, r)
	if !ok {
		return
	}

	found, err := app.workoutService.Get(r.Context(), workoutID)
	if err != nil {
		app.workoutError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, found)
}

type statusUpdateRequest struct {
	Status workout.Status `json:"status,omitempty"`
	// Notes replaces the notes on the workout's most recent log.
	Notes *string `json:"notes,omitempty"`
}

// workoutStatusPATCH transitions a workout's lifecycle status and/or updates
// the notes on its latest log, then returns the updated workout.
func (app *application) workoutStatusPATCH(w http.ResponseWriter, r *http.Request) {
	workoutID, ok := app.parseWorkoutIDParam(w, r)
	if !ok {
		return
	}
	var req statusUpdateRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	if req.Status == "" && req.Notes == nil {
		app.clientError(w, r, http.StatusBadRequest, "nothing to update")
		return
	}

	if req.Status != "" {
		if err := app.workoutService.UpdateStatus(r.Context(), workoutID, req.Status); err != nil {
			app.workoutError(w, r, err)
			return
		}
	}
	if req.Notes != nil {
		if err := app.workoutService.UpdateNotes(r.Context(), workoutID, *req.Notes); err != nil {
			app.workoutError(w, r, err)
			return
		}
	}

	updated, err := app.workoutService.Get(r.Context(), workoutID)
	if err != nil {
		app.workoutError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, updated)
}

// workoutDELETE removes a workout and its logs.
func (app *application) workoutDELETE(w http.ResponseWriter, r *http.Request) {
	workoutID, ok := app.parseWorkoutIDParam(w, r)
	if !ok {
		return
	}

	if err := app.workoutService.Delete(r.Context(), workoutID); err != nil {
		app.workoutError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
