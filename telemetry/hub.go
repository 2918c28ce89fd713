// Package telemetry publishes a running match to the outside world: a
// websocket feed of game events, JSON counters and the process logger.
// Nothing received over the network reaches the game.
package telemetry

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/plus3/pong/game"
	"github.com/plus3/pong/pong"
)

const (
	sendBuffer   = 64
	writeTimeout = 5 * time.Second
	readTimeout  = 60 * time.Second
)

// Message is the JSON form of a game event on the feed.
type Message struct {
	Kind  string `json:"kind"`
	Side  string `json:"side,omitempty"`
	Left  int    `json:"left"`
	Right int    `json:"right"`
	AtMs  int64  `json:"at_ms"`
}

// NewMessage converts a game event. Side is only set for paddle hits and
// points.
func NewMessage(ev game.Event) Message {
	msg := Message{
		Kind:  ev.Outcome.Kind.String(),
		Left:  ev.Left,
		Right: ev.Right,
		AtMs:  ev.At.Milliseconds(),
	}
	if ev.Outcome.Kind == pong.HitPaddle || ev.Outcome.Kind == pong.Scored {
		msg.Side = ev.Outcome.Side.String()
	}
	return msg
}

type client struct {
	ws   *websocket.Conn
	send chan []byte
}

// enqueue queues b without blocking. A full queue drops the message.
func (c *client) enqueue(b []byte) bool {
	select {
	case c.send <- b:
		return true
	default:
		return false
	}
}

func (c *client) writePump() {
	defer c.ws.Close()
	for msg := range c.send {
		_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeTimeout))
}

// Hub fans game events out to websocket clients. It implements
// game.EventSink.
type Hub struct {
	metrics *Metrics
	log     *zap.SugaredLogger

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

func NewHub(metrics *Metrics, log *zap.SugaredLogger) *Hub {
	return &Hub{
		metrics: metrics,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// Publish records ev and sends it to every connected client. Clients that
// are not keeping up miss the message.
func (h *Hub) Publish(ev game.Event) {
	h.metrics.Record(ev.Outcome)

	b, err := json.Marshal(NewMessage(ev))
	if err != nil {
		h.log.Errorw("encode event", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if !c.enqueue(b) {
			h.metrics.incDropped()
		}
	}
}

// ServeHTTP upgrades the request to a websocket and streams events to it
// until either side closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{ws: ws, send: make(chan []byte, sendBuffer)}
	if !h.add(c) {
		_ = ws.Close()
		return
	}
	h.log.Infow("feed client connected", "remote", r.RemoteAddr)

	go c.writePump()
	go h.readPump(c, r.RemoteAddr)
}

// readPump discards client frames so control messages are processed and a
// dropped connection is noticed.
func (h *Hub) readPump(c *client, remote string) {
	defer h.remove(c)

	c.ws.SetReadLimit(512)
	_ = c.ws.SetReadDeadline(time.Now().Add(readTimeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(readTimeout))
	})
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			h.log.Infow("feed client disconnected", "remote", remote)
			return
		}
	}
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	h.metrics.addClient(1)
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.metrics.addClient(-1)
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
		h.metrics.addClient(-1)
	}
}
