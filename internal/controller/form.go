package controller

import (
	"math"
	"strconv"
	"strings"

	"github.com/iamFear/mapty/internal/shared/geo"
	"github.com/iamFear/mapty/internal/workout"
)

// FieldGroupsFor shows cadence for running and elevation for cycling.
func FieldGroupsFor(kind workout.Kind) FieldGroups {
	if kind == workout.KindCycling {
		return FieldGroups{Elevation: true}
	}
	return FieldGroups{Cadence: true}
}

func (v FieldValues) build(at geo.Coords, opts []workout.Option) (*workout.Workout, error) {
	kind, err := workout.ParseKind(strings.TrimSpace(v.Type))
	if err != nil {
		return nil, &workout.ValidationError{Field: "type", Reason: err.Error()}
	}

	distance := parseNumber(v.Distance)
	duration := parseNumber(v.Duration)

	switch kind {
	case workout.KindCycling:
		return workout.NewCycling(at, distance, duration, parseNumber(v.Elevation), opts...)
	default:
		return workout.NewRunning(at, distance, duration, parseNumber(v.Cadence), opts...)
	}
}

// parseNumber maps unparseable input to NaN so the constructors reject it
// as non-finite.
func parseNumber(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
