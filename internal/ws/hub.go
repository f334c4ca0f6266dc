// Package ws streams lead-import decisions to connected dashboard sessions.
package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"diveops-console/internal/leadimport"

	"github.com/gorilla/websocket"
)

const sendQueueSize = 64

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dashboard origin checks happen at the reverse proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type session struct {
	conn  *websocket.Conn
	queue chan []byte
}

// Hub fans broadcast payloads out to every connected dashboard session. All
// session bookkeeping happens on the Run goroutine; a session that cannot
// keep up with the feed is dropped rather than allowed to stall the rest.
type Hub struct {
	sessions  map[*session]struct{}
	broadcast chan []byte
	attach    chan *session
	detach    chan *session
}

func NewHub() *Hub {
	return &Hub{
		sessions:  make(map[*session]struct{}),
		broadcast: make(chan []byte, 16),
		attach:    make(chan *session),
		detach:    make(chan *session),
	}
}

// Run owns the session set. Call it on its own goroutine before serving.
func (h *Hub) Run() {
	for {
		select {
		case s := <-h.attach:
			h.sessions[s] = struct{}{}
		case s := <-h.detach:
			if _, ok := h.sessions[s]; ok {
				delete(h.sessions, s)
				close(s.queue)
			}
		case payload := <-h.broadcast:
			for s := range h.sessions {
				select {
				case s.queue <- payload:
				default:
					delete(h.sessions, s)
					close(s.queue)
				}
			}
		}
	}
}

type event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

func (h *Hub) emit(eventType string, data any) {
	payload, err := json.Marshal(event{Type: eventType, Data: data})
	if err != nil {
		log.Printf("ws: marshal %s event: %v", eventType, err)
		return
	}
	h.broadcast <- payload
}

// DecisionEvent is the payload pushed to the dashboard for every processed
// lead when notify-on-import is enabled.
type DecisionEvent struct {
	MessageID  string    `json:"message_id"`
	From       string    `json:"from"`
	Name       string    `json:"name"`
	Decision   string    `json:"decision"`
	Reason     string    `json:"reason,omitempty"`
	Confidence int       `json:"confidence"`
	Source     string    `json:"source"`
	At         time.Time `json:"at"`
}

// NotifyDecision satisfies the pipeline's Notifier port.
func (h *Hub) NotifyDecision(msg leadimport.InboundMessage, p leadimport.Profile, score int, d leadimport.Decision) {
	h.emit("lead_decision", DecisionEvent{
		MessageID:  msg.ID,
		From:       msg.FromAddress,
		Name:       p.Name,
		Decision:   d.Kind.String(),
		Reason:     d.Reason,
		Confidence: score,
		Source:     string(msg.Channel),
		At:         time.Now(),
	})
}

// ServeWs upgrades the request and attaches the session to the feed.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade: %v", err)
		return
	}
	s := &session{conn: conn, queue: make(chan []byte, sendQueueSize)}
	h.attach <- s

	go s.writeLoop()
	go s.readLoop(h)
}

// readLoop drains the connection so close frames are processed; the dashboard
// never sends application data.
func (s *session) readLoop(h *Hub) {
	defer func() {
		h.detach <- s
		s.conn.Close()
	}()
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *session) writeLoop() {
	defer s.conn.Close()
	for payload := range s.queue {
		if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
	s.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
