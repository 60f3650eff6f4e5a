package mirror

import (
	"sync"

	"TraceBoard/internal/character"
	"TraceBoard/internal/trace"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/kataras/golog"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var logger = golog.Child("[mirror]")

const (
	EventSegment   = "segment"
	EventClear     = "clear"
	EventCharacter = "character"
	EventText      = "text"
	EventSnapshot  = "snapshot"
)

// sendBuffer is how many events a slow viewer may lag before it is dropped.
const sendBuffer = 256

// Event is one message pushed to viewers.
type Event struct {
	Type      string               `json:"type"`
	Segment   *trace.Segment       `json:"segment,omitempty"`
	Strokes   []trace.Stroke       `json:"strokes,omitempty"`
	Character *character.Character `json:"character,omitempty"`
	Text      string               `json:"text,omitempty"`
}

// viewer is a connected websocket client. Viewers only watch; anything they
// send is read and discarded.
type viewer struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub fans events out to every connected viewer.
type Hub struct {
	viewers map[string]*viewer
	mu      sync.RWMutex

	// shown is what the host last displayed, replayed to new viewers.
	shown Event

	// Strokes supplies the ink a new viewer starts from.
	Strokes func() []trace.Stroke
}

func NewHub() *Hub {
	return &Hub{
		viewers: make(map[string]*viewer),
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

// Serve registers conn and blocks until the viewer disconnects.
func (h *Hub) Serve(conn *websocket.Conn) {
	v := &viewer{id: uuid.NewString(), conn: conn, send: make(chan []byte, sendBuffer)}

	// Broadcasts wait for the lock, so nothing falls between the snapshot
	// and the first live event.
	h.mu.Lock()
	if data, err := json.Marshal(h.snapshot()); err == nil {
		v.send <- data
	} else {
		logger.Errorf("Error encoding snapshot for %s: %v", v.id, err)
	}
	h.viewers[v.id] = v
	h.mu.Unlock()
	logger.Infof("Viewer %s connected from %s", v.id, conn.RemoteAddr())

	done := make(chan struct{})
	go h.writeLoop(v, done)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			logger.Infof("Viewer %s disconnected: %v", v.id, err)
			break
		}
	}
	h.remove(v.id)
	<-done
}

// snapshot requires h.mu.
func (h *Hub) snapshot() Event {
	snap := h.shown
	snap.Type = EventSnapshot
	if h.Strokes != nil {
		snap.Strokes = h.Strokes()
	}
	return snap
}

func (h *Hub) writeLoop(v *viewer, done chan struct{}) {
	defer close(done)
	defer v.conn.Close()
	for data := range v.send {
		if err := v.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			logger.Warnf("Error sending to %s: %v", v.id, err)
			h.remove(v.id)
			return
		}
	}
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if v, ok := h.viewers[id]; ok {
		delete(h.viewers, id)
		close(v.send)
	}
}

// Broadcast sends ev to every viewer. Viewers that fall too far behind are
// disconnected instead of stalling the drawing loop.
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		logger.Errorf("Error encoding %s event: %v", ev.Type, err)
		return
	}

	h.mu.RLock()
	var slow []string
	for id, v := range h.viewers {
		select {
		case v.send <- data:
		default:
			slow = append(slow, id)
		}
	}
	h.mu.RUnlock()

	for _, id := range slow {
		logger.Warnf("Dropping slow viewer %s", id)
		h.remove(id)
	}
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, v := range h.viewers {
		delete(h.viewers, id)
		close(v.send)
	}
}

// Segment, Clear, ShowCharacter and ShowText adapt the hub to the
// callbacks exposed by the drawing surface and the host window.
func (h *Hub) Segment(seg trace.Segment) { h.Broadcast(Event{Type: EventSegment, Segment: &seg}) }
func (h *Hub) Clear()                    { h.Broadcast(Event{Type: EventClear}) }

func (h *Hub) ShowCharacter(c character.Character) {
	h.show(Event{Type: EventCharacter, Character: &c, Text: c.Name})
}

func (h *Hub) ShowText(text string) {
	h.show(Event{Type: EventText, Text: text})
}

func (h *Hub) show(ev Event) {
	h.mu.Lock()
	h.shown = ev
	h.mu.Unlock()
	h.Broadcast(ev)
}
