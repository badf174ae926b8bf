package controller

import (
	"fmt"
	"testing"

	"github.com/iamFear/mapty/internal/render"
	"github.com/iamFear/mapty/internal/shared/geo"
)

type viewCall struct {
	center geo.Coords
	zoom   int
}

type panCall struct {
	center geo.Coords
	zoom   int
	opts   PanOptions
}

type markerCall struct {
	at   geo.Coords
	opts MarkerOptions
}

type fakeMap struct {
	inits   []viewCall
	pans    []panCall
	markers []markerCall
}

func (m *fakeMap) InitView(center geo.Coords, zoom int) {
	m.inits = append(m.inits, viewCall{center: center, zoom: zoom})
}

func (m *fakeMap) PanTo(center geo.Coords, zoom int, opts PanOptions) {
	m.pans = append(m.pans, panCall{center: center, zoom: zoom, opts: opts})
}

func (m *fakeMap) AddMarker(at geo.Coords, opts MarkerOptions) MarkerHandle {
	m.markers = append(m.markers, markerCall{at: at, opts: opts})
	return MarkerHandle(fmt.Sprintf("marker-%d", len(m.markers)))
}

type fakeForm struct {
	values  FieldValues
	visible bool
	focused int
	cleared int
	groups  []FieldGroups
}

func (f *fakeForm) FieldValues() FieldValues { return f.values }

func (f *fakeForm) SetFieldsVisible(visible bool) { f.visible = visible }

func (f *fakeForm) FocusFirstField() { f.focused++ }

func (f *fakeForm) ClearFields() {
	f.cleared++
	f.values = FieldValues{Type: f.values.Type}
}

func (f *fakeForm) SetFieldGroups(groups FieldGroups) { f.groups = append(f.groups, groups) }

type fakeList struct {
	entries []render.ListEntry
}

func (l *fakeList) AppendEntry(entry render.ListEntry) { l.entries = append(l.entries, entry) }

type fakeNotice struct {
	messages []string
}

func (n *fakeNotice) Show(message string) { n.messages = append(n.messages, message) }

// manualProvider hands its callbacks back to the test.
type manualProvider struct {
	calls     int
	onSuccess func(geo.Coords)
	onFailure func(string)
}

func (p *manualProvider) GetCurrentPosition(onSuccess func(geo.Coords), onFailure func(string)) {
	p.calls++
	p.onSuccess = onSuccess
	p.onFailure = onFailure
}

type harness struct {
	ctrl     *Controller
	mapView  *fakeMap
	form     *fakeForm
	list     *fakeList
	notice   *fakeNotice
	provider *manualProvider
}

func newHarness(t *testing.T, opts ...Option) *harness {
	h := &harness{
		mapView:  &fakeMap{},
		form:     &fakeForm{},
		list:     &fakeList{},
		notice:   &fakeNotice{},
		provider: &manualProvider{},
	}
	ctrl, err := New(Collaborators{Map: h.mapView, Form: h.form, List: h.list, Notice: h.notice}, opts...)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	h.ctrl = ctrl
	return h
}

// ready resolves the location at (40.7, -74.0).
func (h *harness) ready(t *testing.T) {
	if _, err := h.ctrl.Locate(h.provider); err != nil {
		t.Fatalf("locate: %v", err)
	}
	h.provider.onSuccess(geo.Coords{Lat: 40.7, Lng: -74.0})
	if h.ctrl.State() != MapReady {
		t.Fatalf("expected map ready, got %v", h.ctrl.State())
	}
}
