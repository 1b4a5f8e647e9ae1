package main

import (
	"net/http"

	"github.com/bertomill/hyrox-workout-generator/internal/workout"
)

type recommendResponse struct {
	// Recommended is null when there is no recent history to draw on.
	Recommended *workout.Type `json:"recommended"`
}

// recommendGET suggests the next session type from recent training history.
func (app *application) recommendGET(w http.ResponseWriter, r *http.Request) {
	var resp recommendResponse
	if recommended, ok := app.workoutService.Recommend(r.Context()); ok {
		resp.Recommended = &recommended
	}

	app.writeJSON(w, r, http.StatusOK, resp)
}
