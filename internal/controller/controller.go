package controller

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/iamFear/mapty/internal/location"
	"github.com/iamFear/mapty/internal/render"
	"github.com/iamFear/mapty/internal/shared/geo"
	"github.com/iamFear/mapty/internal/workout"
)

const (
	NoticeLocationFailed = "Sorry, we couldn't get your address."
	NoticeInvalidInput   = "Inputs have to be positive numbers."

	DefaultZoom        = 13
	DefaultPanDuration = time.Second
)

var (
	ErrMapNotReady     = errors.New("map is not ready")
	ErrNoPendingClick  = errors.New("no pending map click")
	ErrFormClosed      = errors.New("form is not open")
	ErrAlreadyLocating = errors.New("location already requested")
	ErrMissingSurface  = errors.New("collaborator missing")
)

type State int

const (
	AwaitingLocation State = iota
	MapReady
	FormOpen
)

func (s State) String() string {
	switch s {
	case MapReady:
		return "map_ready"
	case FormOpen:
		return "form_open"
	default:
		return "awaiting_location"
	}
}

type Option func(*Controller)

func WithZoom(zoom int) Option {
	return func(c *Controller) { c.zoom = zoom }
}

func WithPanDuration(d time.Duration) Option {
	return func(c *Controller) { c.panDuration = d }
}

// WithStrictInvariants makes invariant violations such as duplicate
// workout ids panic instead of being logged and rejected.
func WithStrictInvariants(strict bool) Option {
	return func(c *Controller) { c.strict = strict }
}

// WithWorkoutOptions passes clock and id overrides to workout construction.
func WithWorkoutOptions(opts ...workout.Option) Option {
	return func(c *Controller) { c.workoutOpts = append(c.workoutOpts, opts...) }
}

type Controller struct {
	mu sync.Mutex

	mapView MapView
	form    Form
	list    List
	notice  Notice

	zoom        int
	panDuration time.Duration
	strict      bool
	workoutOpts []workout.Option

	state   State
	session *location.Session
	home    *geo.Coords
	pending *geo.Coords
	store   *workout.Store
	markers map[string]MarkerHandle
}

func New(collab Collaborators, opts ...Option) (*Controller, error) {
	if collab.Map == nil || collab.Form == nil || collab.List == nil || collab.Notice == nil {
		return nil, ErrMissingSurface
	}
	c := &Controller{
		mapView:     collab.Map,
		form:        collab.Form,
		list:        collab.List,
		notice:      collab.Notice,
		zoom:        DefaultZoom,
		panDuration: DefaultPanDuration,
		store:       workout.NewStore(),
		markers:     map[string]MarkerHandle{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Locate starts the controller's only location request. A nil provider
// means the platform has no geolocation at all.
func (c *Controller) Locate(p location.Provider) (*location.Session, error) {
	c.mu.Lock()
	if c.session != nil {
		c.mu.Unlock()
		return nil, ErrAlreadyLocating
	}
	session := location.NewSession()
	c.session = session
	c.mu.Unlock()

	session.OnSettled(c.onLocation)
	session.Request(p)
	return session, nil
}

func (c *Controller) onLocation(s *location.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != AwaitingLocation {
		return
	}
	coords, ok := s.Coords()
	if !ok {
		log.Printf("location request failed: %s", s.Reason())
		c.notice.Show(NoticeLocationFailed)
		return
	}
	c.home = &coords
	c.mapView.InitView(coords, c.zoom)
	c.state = MapReady
}

// MapClick remembers the clicked point and opens the form. A click while
// the form is open replaces the pending point.
func (c *Controller) MapClick(at geo.Coords) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == AwaitingLocation {
		return ErrMapNotReady
	}
	if err := at.Validate(); err != nil {
		return err
	}
	c.pending = &at
	c.form.SetFieldsVisible(true)
	c.form.FocusFirstField()
	c.state = FormOpen
	return nil
}

// Submit turns the form values and the pending click into a workout.
// Validation failures keep the form open with its values and return the
// *workout.ValidationError after showing a notice.
func (c *Controller) Submit() (*workout.Workout, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != FormOpen || c.pending == nil {
		return nil, ErrNoPendingClick
	}

	w, err := c.form.FieldValues().build(*c.pending, c.workoutOpts)
	if err != nil {
		c.notice.Show(NoticeInvalidInput)
		return nil, err
	}

	if err := c.store.Add(w); err != nil {
		var dup *workout.DuplicateIDError
		if errors.As(err, &dup) && c.strict {
			panic(fmt.Sprintf("controller: %v", err))
		}
		log.Printf("rejecting workout: %v", err)
		return nil, err
	}

	c.markers[w.ID()] = c.mapView.AddMarker(w.Coords(), MarkerOptions{
		Icon:      render.Icon(w.Kind()),
		PopupText: render.PopupText(w),
		CSSClass:  render.PopupClass(w.Kind()),
	})
	c.list.AppendEntry(render.Entry(w, c.home))

	c.closeForm()
	return w, nil
}

// Cancel dismisses the form without creating a workout.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != FormOpen {
		return ErrFormClosed
	}
	c.closeForm()
	return nil
}

func (c *Controller) closeForm() {
	c.form.ClearFields()
	c.form.SetFieldsVisible(false)
	c.pending = nil
	c.state = MapReady
}

// ChangeType projects the selected workout type onto the auxiliary fields.
func (c *Controller) ChangeType(kind workout.Kind) FieldGroups {
	groups := FieldGroupsFor(kind)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.SetFieldGroups(groups)
	return groups
}

// ActivateEntry handles a click on a list entry: the workout's counter is
// bumped and the map pans to it. Unknown ids are ignored.
func (c *Controller) ActivateEntry(id string) (*workout.Workout, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, err := c.store.FindByID(id)
	if err != nil {
		return nil, false
	}
	w.Activate()
	c.mapView.PanTo(w.Coords(), c.zoom, PanOptions{Animate: true, Duration: c.panDuration})
	return w, true
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) PendingClick() (geo.Coords, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return geo.Coords{}, false
	}
	return *c.pending, true
}

func (c *Controller) Workout(id string) (workout.View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	w, err := c.store.FindByID(id)
	if err != nil {
		return workout.View{}, err
	}
	return w.View(), nil
}

func (c *Controller) Workouts() []workout.View {
	c.mu.Lock()
	defer c.mu.Unlock()

	all := c.store.All()
	views := make([]workout.View, 0, len(all))
	for _, w := range all {
		views = append(views, w.View())
	}
	return views
}

type Snapshot struct {
	State          string      `json:"state"`
	Location       string      `json:"location"`
	LocationReason string      `json:"location_reason,omitempty"`
	Home           *geo.Coords `json:"home,omitempty"`
	PendingClick   *geo.Coords `json:"pending_click,omitempty"`
	Workouts       int         `json:"workouts"`
	Markers        int         `json:"markers"`
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State:    c.state.String(),
		Location: location.Pending.String(),
		Workouts: c.store.Len(),
		Markers:  len(c.markers),
	}
	if c.session != nil {
		snap.Location = c.session.Status().String()
		snap.LocationReason = c.session.Reason()
	}
	if c.home != nil {
		home := *c.home
		snap.Home = &home
	}
	if c.pending != nil {
		pending := *c.pending
		snap.PendingClick = &pending
	}
	return snap
}
