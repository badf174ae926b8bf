package remote

import (
	"errors"
	"sync"

	"github.com/iamFear/mapty/internal/location"
	"github.com/iamFear/mapty/internal/shared/geo"
)

var (
	ErrNotRequested = errors.New("position was not requested")
	ErrReported     = errors.New("position already reported")
)

var _ location.Provider = (*Locator)(nil)

// Locator is a location provider answered by the client: the request is
// pushed as a command and the client reports back with Report or Fail.
type Locator struct {
	ch Channel

	mu        sync.Mutex
	onSuccess func(geo.Coords)
	onFailure func(string)
	reported  bool
}

func NewLocator(ch Channel) *Locator {
	return &Locator{ch: ch}
}

func (l *Locator) GetCurrentPosition(onSuccess func(geo.Coords), onFailure func(reason string)) {
	l.mu.Lock()
	l.onSuccess = onSuccess
	l.onFailure = onFailure
	l.mu.Unlock()
	l.ch.emit(CmdLocationRequest, struct{}{})
}

// Report delivers the client's position fix.
func (l *Locator) Report(c geo.Coords) error {
	onSuccess, _, err := l.take()
	if err != nil {
		return err
	}
	onSuccess(c)
	return nil
}

// Fail delivers the client's geolocation error, e.g. "denied" or "timeout".
func (l *Locator) Fail(reason string) error {
	_, onFailure, err := l.take()
	if err != nil {
		return err
	}
	onFailure(reason)
	return nil
}

func (l *Locator) take() (func(geo.Coords), func(string), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.onSuccess == nil {
		return nil, nil, ErrNotRequested
	}
	if l.reported {
		return nil, nil, ErrReported
	}
	l.reported = true
	return l.onSuccess, l.onFailure, nil
}
