package remote

import (
	"encoding/json"
	"log"

	"github.com/iamFear/mapty/internal/controller"
	"github.com/iamFear/mapty/internal/render"
	"github.com/iamFear/mapty/internal/shared/geo"

	"github.com/google/uuid"
)

const (
	CmdLocationRequest = "location.request"
	CmdMapInit         = "map.init"
	CmdMapPan          = "map.pan"
	CmdMapMarker       = "map.marker"
	CmdFormVisible     = "form.visible"
	CmdFormFocus       = "form.focus"
	CmdFormClear       = "form.clear"
	CmdFormGroups      = "form.groups"
	CmdListAppend      = "list.append"
	CmdNotice          = "notice"
	CmdSessionClosed   = "session.closed"
)

// Broadcaster delivers a payload to the clients of a map session.
// *stream.Hub satisfies it.
type Broadcaster interface {
	Broadcast(sessionID string, payload []byte)
}

// SessionCloser is implemented by broadcasters that can disconnect the
// clients of a map session.
type SessionCloser interface {
	CloseSession(sessionID string)
}

var (
	_ controller.MapView = (*Map)(nil)
	_ controller.Form    = (*Form)(nil)
	_ controller.List    = (*List)(nil)
	_ controller.Notice  = (*Notice)(nil)
)

type Command struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Channel addresses the clients of one map session.
type Channel struct {
	out       Broadcaster
	sessionID string
}

func NewChannel(out Broadcaster, sessionID string) Channel {
	return Channel{out: out, sessionID: sessionID}
}

func (ch Channel) emit(kind string, payload any) {
	data, err := json.Marshal(Command{Type: kind, Payload: payload})
	if err != nil {
		log.Printf("encode %s command: %v", kind, err)
		return
	}
	ch.out.Broadcast(ch.sessionID, data)
}

// Close tells the clients the map session is gone and disconnects them
// when the broadcaster supports it.
func (ch Channel) Close(reason string) {
	ch.emit(CmdSessionClosed, map[string]string{"reason": reason})
	if closer, ok := ch.out.(SessionCloser); ok {
		closer.CloseSession(ch.sessionID)
	}
}

type Map struct {
	ch Channel
}

func NewMap(ch Channel) *Map {
	return &Map{ch: ch}
}

type viewPayload struct {
	Center geo.Coords `json:"center"`
	Zoom   int        `json:"zoom"`
}

type panPayload struct {
	Center      geo.Coords `json:"center"`
	Zoom        int        `json:"zoom"`
	Animate     bool       `json:"animate"`
	DurationSec float64    `json:"duration_sec"`
}

type markerPayload struct {
	ID string     `json:"id"`
	At geo.Coords `json:"at"`
	controller.MarkerOptions
}

func (m *Map) InitView(center geo.Coords, zoom int) {
	m.ch.emit(CmdMapInit, viewPayload{Center: center, Zoom: zoom})
}

func (m *Map) PanTo(center geo.Coords, zoom int, opts controller.PanOptions) {
	m.ch.emit(CmdMapPan, panPayload{
		Center:      center,
		Zoom:        zoom,
		Animate:     opts.Animate,
		DurationSec: opts.Duration.Seconds(),
	})
}

func (m *Map) AddMarker(at geo.Coords, opts controller.MarkerOptions) controller.MarkerHandle {
	id := uuid.NewString()
	m.ch.emit(CmdMapMarker, markerPayload{ID: id, At: at, MarkerOptions: opts})
	return controller.MarkerHandle(id)
}

type List struct {
	ch Channel
}

func NewList(ch Channel) *List {
	return &List{ch: ch}
}

func (l *List) AppendEntry(entry render.ListEntry) {
	l.ch.emit(CmdListAppend, entry)
}

type Notice struct {
	ch Channel
}

func NewNotice(ch Channel) *Notice {
	return &Notice{ch: ch}
}

func (n *Notice) Show(message string) {
	n.ch.emit(CmdNotice, map[string]string{"message": message})
}
