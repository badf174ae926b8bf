package workout

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/iamFear/mapty/internal/shared/geo"
)

var testCoords = geo.Coords{Lat: 40.71, Lng: -74.01}

func fixedClock(t time.Time) Option {
	return WithClock(func() time.Time { return t })
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewRunningComputesPace(t *testing.T) {
	cases := []struct {
		distance, duration, cadence float64
	}{
		{5, 30, 150},
		{0.4, 3, 170},
		{42.195, 210.5, 178},
	}
	for _, tc := range cases {
		w, err := NewRunning(testCoords, tc.distance, tc.duration, tc.cadence)
		if err != nil {
			t.Fatalf("new running %v: %v", tc, err)
		}
		if w.Kind() != KindRunning {
			t.Fatalf("expected running kind")
		}
		if !approx(w.PaceMinPerKm(), tc.duration/tc.distance) {
			t.Fatalf("unexpected pace: %v", w.PaceMinPerKm())
		}
		r, ok := w.Running()
		if !ok || r.CadenceSpm != tc.cadence {
			t.Fatalf("expected running payload")
		}
		if w.CadenceSpm() != tc.cadence || w.ElevationGainM() != 0 {
			t.Fatalf("unexpected accessors: cadence %v elevation %v", w.CadenceSpm(), w.ElevationGainM())
		}
		if _, ok := w.Cycling(); ok {
			t.Fatalf("running workout must not carry cycling payload")
		}
	}
}

func TestNewCyclingComputesSpeed(t *testing.T) {
	for _, elevation := range []float64{0, 120, -35.5} {
		w, err := NewCycling(testCoords, 27, 95, elevation)
		if err != nil {
			t.Fatalf("new cycling elevation %v: %v", elevation, err)
		}
		if !approx(w.SpeedKmPerH(), 27/(95.0/60)) {
			t.Fatalf("unexpected speed: %v", w.SpeedKmPerH())
		}
		c, ok := w.Cycling()
		if !ok || c.ElevationGainM != elevation {
			t.Fatalf("expected cycling payload")
		}
		if w.ElevationGainM() != elevation || w.CadenceSpm() != 0 {
			t.Fatalf("unexpected accessors: elevation %v cadence %v", w.ElevationGainM(), w.CadenceSpm())
		}
		if w.PaceMinPerKm() != 0 {
			t.Fatalf("cycling workout has no pace")
		}
	}
}

func TestConstructorsRejectBadInput(t *testing.T) {
	bad := []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)}
	for _, v := range bad {
		if _, err := NewRunning(testCoords, v, 30, 150); !isValidation(err, "distance") {
			t.Fatalf("distance %v: expected validation error, got %v", v, err)
		}
		if _, err := NewRunning(testCoords, 5, v, 150); !isValidation(err, "duration") {
			t.Fatalf("duration %v: expected validation error, got %v", v, err)
		}
		if _, err := NewRunning(testCoords, 5, 30, v); !isValidation(err, "cadence") {
			t.Fatalf("cadence %v: expected validation error, got %v", v, err)
		}
		if _, err := NewCycling(testCoords, v, 30, 10); !isValidation(err, "distance") {
			t.Fatalf("cycling distance %v: expected validation error, got %v", v, err)
		}
		if _, err := NewCycling(testCoords, 5, v, 10); !isValidation(err, "duration") {
			t.Fatalf("cycling duration %v: expected validation error, got %v", v, err)
		}
	}

	if _, err := NewCycling(testCoords, 5, 30, math.NaN()); !isValidation(err, "elevation") {
		t.Fatalf("expected non-finite elevation to fail, got %v", err)
	}
	if _, err := NewRunning(geo.Coords{Lat: math.NaN()}, 5, 30, 150); !isValidation(err, "coordinates") {
		t.Fatalf("expected bad coordinates to fail, got %v", err)
	}
}

func isValidation(err error, field string) bool {
	var verr *ValidationError
	return errors.As(err, &verr) && verr.Field == field
}

func TestDescribe(t *testing.T) {
	at := time.Date(2024, time.April, 14, 9, 30, 0, 0, time.UTC)
	run, _ := NewRunning(testCoords, 5, 30, 150, fixedClock(at))
	if got := run.Describe(); got != "Running on April 14" {
		t.Fatalf("unexpected description %q", got)
	}

	at = time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)
	ride, _ := NewCycling(testCoords, 20, 60, 0, fixedClock(at))
	if got := ride.Describe(); got != "Cycling on December 1" {
		t.Fatalf("unexpected description %q", got)
	}

	at = time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
	ride, _ = NewCycling(testCoords, 20, 60, 0, fixedClock(at))
	if got := ride.Describe(); got != "Cycling on January 31" {
		t.Fatalf("unexpected description %q", got)
	}
}

func TestActivateOnlyCounts(t *testing.T) {
	w, err := NewRunning(testCoords, 5, 30, 150)
	if err != nil {
		t.Fatalf("new running: %v", err)
	}
	if w.Interactions() != 0 {
		t.Fatalf("expected zero interactions")
	}
	if n := w.Activate(); n != 1 {
		t.Fatalf("expected 1, got %d", n)
	}
	if n := w.Activate(); n != 2 {
		t.Fatalf("expected 2, got %d", n)
	}
	if w.Interactions() != 2 {
		t.Fatalf("expected 2 interactions")
	}
	if !approx(w.PaceMinPerKm(), 6) {
		t.Fatalf("activation must not change pace")
	}
}

func TestIDFunc(t *testing.T) {
	w, err := NewCycling(testCoords, 10, 30, 5, WithIDFunc(func() string { return "wk-1" }))
	if err != nil {
		t.Fatalf("new cycling: %v", err)
	}
	if w.ID() != "wk-1" {
		t.Fatalf("expected injected id")
	}

	a, _ := NewRunning(testCoords, 5, 30, 150)
	b, _ := NewRunning(testCoords, 5, 30, 150)
	if a.ID() == "" || a.ID() == b.ID() {
		t.Fatalf("expected distinct generated ids")
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("running"); err != nil || k != KindRunning {
		t.Fatalf("expected running")
	}
	if k, err := ParseKind("cycling"); err != nil || k != KindCycling {
		t.Fatalf("expected cycling")
	}
	if _, err := ParseKind("swimming"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected unknown kind error")
	}
}

func TestView(t *testing.T) {
	w, _ := NewRunning(testCoords, 5, 30, 150, WithIDFunc(func() string { return "wk-view" }))
	v := w.View()
	if v.ID != "wk-view" || v.Kind != KindRunning || v.Running == nil || v.Cycling != nil {
		t.Fatalf("unexpected view %+v", v)
	}
	if v.Running.PaceMinPerKm != 6 {
		t.Fatalf("unexpected pace in view")
	}
	v.Running.CadenceSpm = 1
	if r, _ := w.Running(); r.CadenceSpm != 150 {
		t.Fatalf("view must not alias workout state")
	}
}
