package location

import (
	"context"
	"fmt"
	"sync"

	"github.com/iamFear/mapty/internal/shared/geo"
)

const ReasonUnsupported = "geolocation unsupported"

// Provider asks the platform for the current position. Exactly one of the
// callbacks is expected to fire; extra calls are ignored by Session.
type Provider interface {
	GetCurrentPosition(onSuccess func(geo.Coords), onFailure func(reason string))
}

type Status int

const (
	Pending Status = iota
	Resolved
	Failed
)

func (s Status) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	default:
		return "pending"
	}
}

// Failure is the terminal error of a failed session.
type Failure struct {
	Reason string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("location unavailable: %s", f.Reason)
}

// Session settles at most once, from Pending to Resolved or Failed.
type Session struct {
	mu        sync.Mutex
	status    Status
	coords    geo.Coords
	reason    string
	requested bool
	done      chan struct{}
	listeners []func(*Session)
}

func NewSession() *Session {
	return &Session{done: make(chan struct{})}
}

// Request creates a session and asks p for a position.
func Request(p Provider) *Session {
	s := NewSession()
	s.Request(p)
	return s
}

// Request invokes the provider once. A nil provider fails the session
// immediately without any lookup. Subsequent calls are no-ops.
func (s *Session) Request(p Provider) {
	s.mu.Lock()
	if s.requested {
		s.mu.Unlock()
		return
	}
	s.requested = true
	s.mu.Unlock()

	if p == nil {
		s.fail(ReasonUnsupported)
		return
	}
	p.GetCurrentPosition(s.resolve, s.fail)
}

func (s *Session) resolve(c geo.Coords) {
	if err := c.Validate(); err != nil {
		s.settle(Failed, geo.Coords{}, err.Error())
		return
	}
	s.settle(Resolved, c, "")
}

func (s *Session) fail(reason string) {
	if reason == "" {
		reason = "unknown error"
	}
	s.settle(Failed, geo.Coords{}, reason)
}

func (s *Session) settle(status Status, c geo.Coords, reason string) {
	s.mu.Lock()
	if s.status != Pending {
		s.mu.Unlock()
		return
	}
	s.status = status
	s.coords = c
	s.reason = reason
	listeners := s.listeners
	s.listeners = nil
	close(s.done)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
}

// OnSettled registers fn to run once the session settles. If it already
// has, fn runs immediately on the caller's goroutine.
func (s *Session) OnSettled(fn func(*Session)) {
	s.mu.Lock()
	if s.status == Pending {
		s.listeners = append(s.listeners, fn)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	fn(s)
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Coords returns the resolved position, or false while pending or failed.
func (s *Session) Coords() (geo.Coords, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coords, s.status == Resolved
}

func (s *Session) Reason() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reason
}

func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the session settles or ctx ends. A failed session
// returns a *Failure.
func (s *Session) Wait(ctx context.Context) (geo.Coords, error) {
	select {
	case <-s.done:
	case <-ctx.Done():
		return geo.Coords{}, ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == Failed {
		return geo.Coords{}, &Failure{Reason: s.reason}
	}
	return s.coords, nil
}
