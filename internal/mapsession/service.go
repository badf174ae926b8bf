package mapsession

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/iamFear/mapty/internal/controller"
	"github.com/iamFear/mapty/internal/remote"
	"github.com/iamFear/mapty/internal/shared/geo"
	"github.com/iamFear/mapty/internal/workout"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("map session not found")

type Settings struct {
	Zoom        int
	PanDuration time.Duration
	Strict      bool
	TTL         time.Duration
	PublicURL   string
}

type mapSession struct {
	// mu keeps a buffered form write and the submit reading it together.
	mu sync.Mutex

	id        string
	ctrl      *controller.Controller
	form      *remote.Form
	locator   *remote.Locator
	createdAt time.Time
	lastSeen  time.Time
}

// Service hosts one controller per map session. Sessions live in memory
// only and are swept after TTL of inactivity.
type Service struct {
	out      remote.Broadcaster
	settings Settings
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*mapSession
}

func NewService(out remote.Broadcaster, settings Settings) *Service {
	if settings.Zoom == 0 {
		settings.Zoom = controller.DefaultZoom
	}
	if settings.PanDuration == 0 {
		settings.PanDuration = controller.DefaultPanDuration
	}
	return &Service{
		out:      out,
		settings: settings,
		now:      time.Now,
		sessions: map[string]*mapSession{},
	}
}

// Create opens a map session and issues its location request. Without
// geolocation the request fails at once and the session stays waiting.
func (s *Service) Create(geolocation bool) (Info, error) {
	id := uuid.NewString()
	ch := remote.NewChannel(s.out, id)

	sess := &mapSession{
		id:      id,
		form:    remote.NewForm(ch),
		locator: remote.NewLocator(ch),
	}
	ctrl, err := controller.New(controller.Collaborators{
		Map:    remote.NewMap(ch),
		Form:   sess.form,
		List:   remote.NewList(ch),
		Notice: remote.NewNotice(ch),
	},
		controller.WithZoom(s.settings.Zoom),
		controller.WithPanDuration(s.settings.PanDuration),
		controller.WithStrictInvariants(s.settings.Strict),
	)
	if err != nil {
		return Info{}, err
	}
	sess.ctrl = ctrl
	sess.createdAt = s.now()
	sess.lastSeen = sess.createdAt

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	if geolocation {
		_, err = ctrl.Locate(sess.locator)
	} else {
		_, err = ctrl.Locate(nil)
	}
	if err != nil {
		return Info{}, err
	}
	return s.info(sess), nil
}

func (s *Service) get(id string) (*mapSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = s.now()
	return sess, nil
}

func (s *Service) info(sess *mapSession) Info {
	s.mu.Lock()
	lastSeen := sess.lastSeen
	s.mu.Unlock()
	return Info{
		ID:         sess.id,
		StreamPath: "/stream/ws/" + sess.id,
		ShareURL:   s.shareURL(sess.id),
		CreatedAt:  sess.createdAt,
		LastSeen:   lastSeen,
		Snapshot:   sess.ctrl.Snapshot(),
	}
}

func (s *Service) shareURL(id string) string {
	return strings.TrimRight(s.settings.PublicURL, "/") + "/?session=" + id
}

func (s *Service) Exists(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	return ok
}

func (s *Service) Get(id string) (Info, error) {
	sess, err := s.get(id)
	if err != nil {
		return Info{}, err
	}
	return s.info(sess), nil
}

// ShareURL is the public link a second device opens to follow the session.
func (s *Service) ShareURL(id string) (string, error) {
	if _, err := s.get(id); err != nil {
		return "", err
	}
	return s.shareURL(id), nil
}

// ReportPosition answers the session's location request. Out-of-range
// coordinates are rejected without consuming the request.
func (s *Service) ReportPosition(id string, c geo.Coords) (controller.Snapshot, error) {
	sess, err := s.get(id)
	if err != nil {
		return controller.Snapshot{}, err
	}
	if err := c.Validate(); err != nil {
		return controller.Snapshot{}, err
	}
	if err := sess.locator.Report(c); err != nil {
		return controller.Snapshot{}, err
	}
	return sess.ctrl.Snapshot(), nil
}

func (s *Service) ReportLocationError(id, reason string) (controller.Snapshot, error) {
	sess, err := s.get(id)
	if err != nil {
		return controller.Snapshot{}, err
	}
	if err := sess.locator.Fail(reason); err != nil {
		return controller.Snapshot{}, err
	}
	return sess.ctrl.Snapshot(), nil
}

func (s *Service) Click(id string, c geo.Coords) (controller.Snapshot, error) {
	sess, err := s.get(id)
	if err != nil {
		return controller.Snapshot{}, err
	}
	if err := sess.ctrl.MapClick(c); err != nil {
		return controller.Snapshot{}, err
	}
	return sess.ctrl.Snapshot(), nil
}

func (s *Service) ChangeType(id, kind string) (controller.FieldGroups, error) {
	sess, err := s.get(id)
	if err != nil {
		return controller.FieldGroups{}, err
	}
	k, err := workout.ParseKind(kind)
	if err != nil {
		return controller.FieldGroups{}, err
	}
	return sess.ctrl.ChangeType(k), nil
}

// Submit buffers the raw form values and submits them in one step.
func (s *Service) Submit(id string, values controller.FieldValues) (workout.View, error) {
	sess, err := s.get(id)
	if err != nil {
		return workout.View{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.form.SetValues(values)
	w, err := sess.ctrl.Submit()
	if err != nil {
		return workout.View{}, err
	}
	// the workout is live once listed; read it back under the controller lock
	return sess.ctrl.Workout(w.ID())
}

func (s *Service) Cancel(id string) error {
	sess, err := s.get(id)
	if err != nil {
		return err
	}
	return sess.ctrl.Cancel()
}

func (s *Service) Activate(id, workoutID string) (workout.View, error) {
	sess, err := s.get(id)
	if err != nil {
		return workout.View{}, err
	}
	if _, ok := sess.ctrl.ActivateEntry(workoutID); !ok {
		return workout.View{}, workout.ErrNotFound
	}
	return sess.ctrl.Workout(workoutID)
}

func (s *Service) Workouts(id string) ([]workout.View, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return sess.ctrl.Workouts(), nil
}

func (s *Service) Workout(id, workoutID string) (workout.View, error) {
	sess, err := s.get(id)
	if err != nil {
		return workout.View{}, err
	}
	return sess.ctrl.Workout(workoutID)
}

const (
	closeReasonClosed  = "closed"
	closeReasonExpired = "expired"
)

// Close removes a map session and disconnects its stream clients.
func (s *Service) Close(id string) error {
	s.mu.Lock()
	if _, ok := s.sessions[id]; !ok {
		s.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	s.mu.Unlock()

	remote.NewChannel(s.out, id).Close(closeReasonClosed)
	return nil
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were removed. A zero TTL keeps sessions forever.
func (s *Service) Sweep(now time.Time) int {
	if s.settings.TTL <= 0 {
		return 0
	}
	s.mu.Lock()
	var expired []string
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.settings.TTL {
			delete(s.sessions, id)
			expired = append(expired, id)
		}
	}
	s.mu.Unlock()

	for _, id := range expired {
		remote.NewChannel(s.out, id).Close(closeReasonExpired)
	}
	return len(expired)
}

func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
