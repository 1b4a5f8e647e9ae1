package main

import (
	"net/http"

	"github.com/bertomill/hyrox-workout-generator/internal/analytics"
	"github.com/bertomill/hyrox-workout-generator/internal/workout"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

type historyResponse struct {
	Entries []workout.HistoryEntry `json:"entries"`
	Total   int                    `json:"total"`
	HasMore bool                   `json:"hasMore"`
	Stats   analytics.Stats        `json:"stats"`
}

// historyGET serves one page of the user's workout history with aggregate
// statistics over the whole history, not just the page.
func (app *application) historyGET(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultHistoryLimit)
	if limit < 1 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	page, stats, err := app.workoutService.History(r.Context(), limit, offset)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, historyResponse{
		Entries: page.Entries,
		Total:   page.Total,
		HasMore: page.HasMore,
		Stats:   stats,
	})
}
