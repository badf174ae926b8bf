package render

import (
	"bytes"
	"html/template"
	"strconv"

	"github.com/iamFear/mapty/internal/shared/geo"
	"github.com/iamFear/mapty/internal/workout"
)

const (
	iconRunning = "🏃‍♂️"
	iconCycling = "🚴‍♀️"
)

func Icon(kind workout.Kind) string {
	if kind == workout.KindCycling {
		return iconCycling
	}
	return iconRunning
}

func PopupText(w *workout.Workout) string {
	return Icon(w.Kind()) + " " + w.Describe()
}

func PopupClass(kind workout.Kind) string {
	return string(kind) + "-popup"
}

// ListEntry is one rendered row of the workout list. WorkoutID is the
// stable identifier the client sends back when the row is clicked.
type ListEntry struct {
	WorkoutID          string       `json:"workout_id"`
	Kind               workout.Kind `json:"type"`
	Title              string       `json:"title"`
	HTML               string       `json:"html"`
	DistanceFromHomeKm *float64     `json:"distance_from_home_km,omitempty"`
}

type detail struct {
	Icon  string
	Value string
	Unit  string
}

type entryData struct {
	ID      string
	Kind    string
	Title   string
	Details []detail
}

var entryTemplate = template.Must(template.New("entry").Parse(
	`<li class="workout workout--{{.Kind}}" data-id="{{.ID}}">` +
		`<h2 class="workout__title">{{.Title}}</h2>` +
		`{{range .Details}}<div class="workout__details">` +
		`<span class="workout__icon">{{.Icon}}</span>` +
		`<span class="workout__value">{{.Value}}</span>` +
		`<span class="workout__unit">{{.Unit}}</span>` +
		`</div>{{end}}</li>`))

// Entry renders w as a list row. home, when known, adds the distance from
// the user's resolved position.
func Entry(w *workout.Workout, home *geo.Coords) ListEntry {
	data := entryData{
		ID:    w.ID(),
		Kind:  string(w.Kind()),
		Title: w.Describe(),
		Details: []detail{
			{Icon: Icon(w.Kind()), Value: formatNumber(w.DistanceKm()), Unit: "km"},
			{Icon: "⏱", Value: formatNumber(w.DurationMin()), Unit: "min"},
		},
	}
	if r, ok := w.Running(); ok {
		data.Details = append(data.Details,
			detail{Icon: "⚡️", Value: strconv.FormatFloat(r.PaceMinPerKm, 'f', 1, 64), Unit: "min/km"},
			detail{Icon: "🦶🏼", Value: formatNumber(r.CadenceSpm), Unit: "spm"},
		)
	}
	if c, ok := w.Cycling(); ok {
		data.Details = append(data.Details,
			detail{Icon: "⚡️", Value: strconv.FormatFloat(c.SpeedKmPerH, 'f', 1, 64), Unit: "km/h"},
			detail{Icon: "⛰", Value: formatNumber(c.ElevationGainM), Unit: "m"},
		)
	}

	var buf bytes.Buffer
	// bytes.Buffer writes never fail.
	_ = entryTemplate.Execute(&buf, data)

	entry := ListEntry{
		WorkoutID: w.ID(),
		Kind:      w.Kind(),
		Title:     data.Title,
		HTML:      buf.String(),
	}
	if home != nil {
		d := geo.Distance(*home, w.Coords())
		entry.DistanceFromHomeKm = &d
	}
	return entry
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
