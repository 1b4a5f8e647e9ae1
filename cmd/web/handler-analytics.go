package main

import (
	"net/http"
)

// analyticsGET serves the full analytics report: personal records, trend
// series, summary statistics and overall improvement.
func (app *application) analyticsGET(w http.ResponseWriter, r *http.Request) {
	report, err := app.workoutService.Analytics(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, report)
}
