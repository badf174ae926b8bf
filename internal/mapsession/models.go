package mapsession

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iamFear/mapty/internal/controller"
)

type CreateRequest struct {
	// Geolocation is false when the client has no geolocation capability.
	Geolocation *bool `json:"geolocation"`
}

type PositionRequest struct {
	Lat   *float64 `json:"lat"`
	Lng   *float64 `json:"lng"`
	Error string   `json:"error"`
}

type ClickRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type TypeRequest struct {
	Type string `json:"type"`
}

// FormValue is a raw form input. It accepts a JSON string or a JSON number;
// numbers keep their literal text so parsing stays with the controller.
type FormValue string

func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("form value must be a string or a number: %s", data)
	}
	*v = FormValue(n)
	return nil
}

type SubmitRequest struct {
	Type      FormValue `json:"type"`
	Distance  FormValue `json:"distance"`
	Duration  FormValue `json:"duration"`
	Cadence   FormValue `json:"cadence"`
	Elevation FormValue `json:"elevation"`
}

func (r SubmitRequest) FieldValues() controller.FieldValues {
	return controller.FieldValues{
		Type:      string(r.Type),
		Distance:  string(r.Distance),
		Duration:  string(r.Duration),
		Cadence:   string(r.Cadence),
		Elevation: string(r.Elevation),
	}
}

// Info describes a live map session.
type Info struct {
	ID         string              `json:"id"`
	StreamPath string              `json:"stream_path"`
	ShareURL   string              `json:"share_url"`
	CreatedAt  time.Time           `json:"created_at"`
	LastSeen   time.Time           `json:"last_seen"`
	Snapshot   controller.Snapshot `json:"snapshot"`
}
