package workout

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/iamFear/mapty/internal/shared/geo"

	"github.com/google/uuid"
)

var months = [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"}

type options struct {
	now   func() time.Time
	newID func() string
}

type Option func(*options)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDFunc overrides the id generator.
func WithIDFunc(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewRunning validates the inputs and builds a running workout with its pace.
func NewRunning(coords geo.Coords, distanceKm, durationMin, cadenceSpm float64, opts ...Option) (*Workout, error) {
	if err := validateBase(coords, distanceKm, durationMin); err != nil {
		return nil, err
	}
	if err := positive("cadence", cadenceSpm); err != nil {
		return nil, err
	}

	w := newWorkout(KindRunning, coords, distanceKm, durationMin, buildOptions(opts))
	w.running = &Running{
		CadenceSpm:   cadenceSpm,
		PaceMinPerKm: durationMin / distanceKm,
	}
	return w, nil
}

// NewCycling validates the inputs and builds a cycling workout with its speed.
// Elevation gain may be zero or negative.
func NewCycling(coords geo.Coords, distanceKm, durationMin, elevationGainM float64, opts ...Option) (*Workout, error) {
	if err := validateBase(coords, distanceKm, durationMin); err != nil {
		return nil, err
	}
	if !finite(elevationGainM) {
		return nil, &ValidationError{Field: "elevation", Reason: "must be a finite number"}
	}

	w := newWorkout(KindCycling, coords, distanceKm, durationMin, buildOptions(opts))
	w.cycling = &Cycling{
		ElevationGainM: elevationGainM,
		SpeedKmPerH:    distanceKm / (durationMin / 60),
	}
	return w, nil
}

func newWorkout(kind Kind, coords geo.Coords, distanceKm, durationMin float64, o options) *Workout {
	return &Workout{
		id:          o.newID(),
		createdAt:   o.now(),
		coords:      coords,
		distanceKm:  distanceKm,
		durationMin: durationMin,
		kind:        kind,
	}
}

func validateBase(coords geo.Coords, distanceKm, durationMin float64) error {
	if err := coords.Validate(); err != nil {
		return &ValidationError{Field: "coordinates", Reason: err.Error()}
	}
	if err := positive("distance", distanceKm); err != nil {
		return err
	}
	return positive("duration", durationMin)
}

func positive(field string, v float64) error {
	if !finite(v) || v <= 0 {
		return &ValidationError{Field: field, Reason: "must be a positive number"}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Describe renders "<Kind> on <Month> <Day>", e.g. "Running on April 14".
func (w *Workout) Describe() string {
	kind := string(w.kind)
	if kind != "" {
		kind = strings.ToUpper(kind[:1]) + kind[1:]
	}
	return kind + " on " + months[int(w.createdAt.Month())-1] + " " + strconv.Itoa(w.createdAt.Day())
}

// Activate records a selection of the workout and returns the new count.
func (w *Workout) Activate() int {
	w.interactions++
	return w.interactions
}

// PaceMinPerKm is zero for non-running workouts.
func (w *Workout) PaceMinPerKm() float64 {
	if w.running == nil {
		return 0
	}
	return w.running.PaceMinPerKm
}

// SpeedKmPerH is zero for non-cycling workouts.
func (w *Workout) SpeedKmPerH() float64 {
	if w.cycling == nil {
		return 0
	}
	return w.cycling.SpeedKmPerH
}

// CadenceSpm is zero for non-running workouts.
func (w *Workout) CadenceSpm() float64 {
	if w.running == nil {
		return 0
	}
	return w.running.CadenceSpm
}

// ElevationGainM is zero for non-cycling workouts.
func (w *Workout) ElevationGainM() float64 {
	if w.cycling == nil {
		return 0
	}
	return w.cycling.ElevationGainM
}
