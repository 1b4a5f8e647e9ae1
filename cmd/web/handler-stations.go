package main

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/bertomill/hyrox-workout-generator/internal/workout"
	"github.com/yuin/goldmark"
)

type stationResponse struct {
	Name        workout.StationName `json:"name"`
	Order       int                 `json:"order"`
	Distance    string              `json:"distance,omitempty"`
	Weight      string              `json:"weight,omitempty"`
	Reps        string              `json:"reps,omitempty"`
	Description string              `json:"descriptionHtml"`
}

// stationsGET serves the station catalog for a fitness level with the
// technique notes rendered from markdown to HTML.
func (app *application) stationsGET(w http.ResponseWriter, r *http.Request) {
	level := workout.FitnessLevel(r.URL.Query().Get("level"))
	if level == "" {
		level = workout.LevelIntermediate
	}

	infos, err := workout.Catalog(level)
	if err != nil {
		app.workoutError(w, r, err)
		return
	}

	stations := make([]stationResponse, 0, len(infos))
	for _, info := range infos {
		var buf bytes.Buffer
		if err = goldmark.Convert([]byte(info.DescriptionMarkdown), &buf); err != nil {
			app.serverError(w, r, fmt.Errorf("render station description: %w", err))
			return
		}
		stations = append(stations, stationResponse{
			Name:        info.Name,
			Order:       info.Order,
			Distance:    info.Distance,
			Weight:      info.Weight,
			Reps:        info.Reps,
			Description: buf.String(),
		})
	}

	app.writeJSON(w, r, http.StatusOK, stations)
}
