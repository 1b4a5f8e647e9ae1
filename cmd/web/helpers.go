package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bertomill/hyrox-workout-generator/internal/workout"
)

// errorResponse is the body of every non-2xx JSON response.
type errorResponse struct {
	Error string `json:"error"`
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", slog.Any("error", err))
	app.writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.writeJSON(w, r, status, errorResponse{Error: message})
}

func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "encode response", slog.Any("error", err))
	}
}

// readJSON decodes the request body into dst, rejecting unknown fields. On
// failure, it sends HTTP 400 and returns false.
func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		app.clientError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

// workoutError maps domain errors to their HTTP status, falling back to 500.
func (app *application) workoutError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, workout.ErrInvalidParams):
		app.clientError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, workout.ErrNotFound):
		app.clientError(w, r, http.StatusNotFound, "workout not found")
	default:
		app.serverError(w, r, err)
	}
}

// parseWorkoutIDParam parses the "workoutID" path parameter from the request URL.
// Returns the parsed workout ID and true if successful, or zero and false if parsing fails.
// On failure, sends HTTP 404 response automatically.
func (app *application) parseWorkoutIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	workoutIDStr := r.PathValue("workoutID")
	workoutID, err := strconv.Atoi(workoutIDStr)
	if err != nil || workoutID < 1 {
		app.clientError(w, r, http.StatusNotFound, "workout not found")
		return 0, false
	}
	return workoutID, true
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}
