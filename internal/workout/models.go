package workout

import (
	"errors"
	"fmt"
	"time"

	"github.com/iamFear/mapty/internal/shared/geo"
)

type Kind string

const (
	KindRunning Kind = "running"
	KindCycling Kind = "cycling"
)

var ErrUnknownKind = errors.New("unknown workout type")

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindRunning, KindCycling:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Workout is a recorded session. Exactly one of Running or Cycling is set,
// matching Kind. Inputs and derived metrics are fixed at construction.
type Workout struct {
	id          string
	createdAt   time.Time
	coords      geo.Coords
	distanceKm  float64
	durationMin float64
	kind        Kind

	running *Running
	cycling *Cycling

	interactions int
}

type Running struct {
	CadenceSpm   float64 `json:"cadence_spm"`
	PaceMinPerKm float64 `json:"pace_min_per_km"`
}

type Cycling struct {
	ElevationGainM float64 `json:"elevation_gain_m"`
	SpeedKmPerH    float64 `json:"speed_km_per_h"`
}

func (w *Workout) ID() string { return w.id }
func (w *Workout) CreatedAt() time.Time { return w.createdAt }
func (w *Workout) Coords() geo.Coords { return w.coords }
func (w *Workout) DistanceKm() float64 { return w.distanceKm }
func (w *Workout) DurationMin() float64 { return w.durationMin }
func (w *Workout) Kind() Kind { return w.kind }
func (w *Workout) Interactions() int { return w.interactions }

// Running returns a copy of the running payload, or false for other kinds.
func (w *Workout) Running() (Running, bool) {
	if w.running == nil {
		return Running{}, false
	}
	return *w.running, true
}

// Cycling returns a copy of the cycling payload, or false for other kinds.
func (w *Workout) Cycling() (Cycling, bool) {
	if w.cycling == nil {
		return Cycling{}, false
	}
	return *w.cycling, true
}

// View is the JSON shape of a workout.
type View struct {
	ID           string     `json:"id"`
	Kind         Kind       `json:"type"`
	Description  string     `json:"description"`
	Coords       geo.Coords `json:"coords"`
	DistanceKm   float64    `json:"distance_km"`
	DurationMin  float64    `json:"duration_min"`
	Running      *Running   `json:"running,omitempty"`
	Cycling      *Cycling   `json:"cycling,omitempty"`
	Interactions int        `json:"interactions"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (w *Workout) View() View {
	v := View{
		ID:           w.id,
		Kind:         w.kind,
		Description:  w.Describe(),
		Coords:       w.coords,
		DistanceKm:   w.distanceKm,
		DurationMin:  w.durationMin,
		Interactions: w.interactions,
		CreatedAt:    w.createdAt,
	}
	if r, ok := w.Running(); ok {
		v.Running = &r
	}
	if c, ok := w.Cycling(); ok {
		v.Cycling = &c
	}
	return v
}

// ValidationError reports a numeric input that cannot form a workout.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DuplicateIDError means the id generator produced an id already in the store.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate workout id %q", e.ID)
}

var ErrNotFound = errors.New("workout not found")
