package controller

import (
	"time"

	"github.com/iamFear/mapty/internal/render"
	"github.com/iamFear/mapty/internal/shared/geo"
)

// MarkerHandle identifies a marker added to the map view.
type MarkerHandle string

type PanOptions struct {
	Animate  bool          `json:"animate"`
	Duration time.Duration `json:"-"`
}

type MarkerOptions struct {
	Icon      string `json:"icon"`
	PopupText string `json:"popup_text"`
	CSSClass  string `json:"css_class"`
}

type MapView interface {
	InitView(center geo.Coords, zoom int)
	PanTo(center geo.Coords, zoom int, opts PanOptions)
	AddMarker(at geo.Coords, opts MarkerOptions) MarkerHandle
}

// FieldValues are the raw, unparsed form inputs.
type FieldValues struct {
	Type      string `json:"type"`
	Distance  string `json:"distance"`
	Duration  string `json:"duration"`
	Cadence   string `json:"cadence"`
	Elevation string `json:"elevation"`
}

// FieldGroups says which auxiliary inputs are shown. Exactly one is true.
type FieldGroups struct {
	Cadence   bool `json:"cadence"`
	Elevation bool `json:"elevation"`
}

type Form interface {
	FieldValues() FieldValues
	SetFieldsVisible(visible bool)
	FocusFirstField()
	ClearFields()
	SetFieldGroups(groups FieldGroups)
}

type List interface {
	AppendEntry(entry render.ListEntry)
}

type Notice interface {
	Show(message string)
}

// Collaborators are the rendering surfaces the controller drives.
type Collaborators struct {
	Map    MapView
	Form   Form
	List   List
	Notice Notice
}
