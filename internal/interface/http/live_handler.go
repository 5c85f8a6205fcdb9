package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-builder/internal/application"
)

const (
	liveSendBuffer = 16
	liveWriteWait  = 10 * time.Second
	livePongWait   = 60 * time.Second
	livePingPeriod = livePongWait * 9 / 10
)

// LiveFrame is one websocket message. Every frame carries the full state,
// so a client that missed frames catches up on the next one.
type LiveFrame struct {
	Type  string                `json:"type"`
	State application.StateView `json:"state"`
}

type liveClient struct {
	conn *websocket.Conn
	send chan []byte
}

// LiveHub fans state changes out to preview connections. Broadcast never
// blocks: a client whose buffer is full loses that frame.
type LiveHub struct {
	Svc      *application.PortfolioService
	Logger   *logrus.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*liveClient]struct{}
	dropped atomic.Uint64
	stop    func()
}

func NewLiveHub(svc *application.PortfolioService, logger *logrus.Logger, allowedOrigins []string) *LiveHub {
	h := &LiveHub{
		Svc:     svc,
		Logger:  logger,
		clients: make(map[*liveClient]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
	h.stop = svc.Subscribe(h.Broadcast)
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}

func (h *LiveHub) Broadcast(view application.StateView) {
	b, err := json.Marshal(LiveFrame{Type: "state", State: view})
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- b:
		default:
			h.dropped.Add(1)
		}
	}
}

// Clients is the number of open preview connections.
func (h *LiveHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *LiveHub) Dropped() uint64 { return h.dropped.Load() }

// Close detaches the hub from the service and disconnects every client.
func (h *LiveHub) Close() {
	if h.stop != nil {
		h.stop()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// Serve upgrades the request and streams state frames until the client
// goes away. The first frame is the current state.
func (h *LiveHub) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Debug("websocket upgrade failed")
		}
		return
	}
	cl := &liveClient{conn: conn, send: make(chan []byte, liveSendBuffer)}
	h.attach(cl)

	go h.writePump(cl)
	h.readPump(cl)
}

// attach queues the current state as the first frame of cl and registers
// it. Both happen under the service lock, so every broadcast cl receives
// is newer than that frame.
func (h *LiveHub) attach(cl *liveClient) {
	h.Svc.WithState(func(view application.StateView) {
		b, err := json.Marshal(LiveFrame{Type: "state", State: view})
		h.mu.Lock()
		defer h.mu.Unlock()
		if err == nil {
			select {
			case cl.send <- b:
			default:
			}
		}
		h.clients[cl] = struct{}{}
	})
}

func (h *LiveHub) remove(cl *liveClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[cl]; ok {
		delete(h.clients, cl)
		close(cl.send)
	}
}

// readPump only services control frames; previews never send data.
func (h *LiveHub) readPump(cl *liveClient) {
	defer func() {
		h.remove(cl)
		_ = cl.conn.Close()
	}()
	cl.conn.SetReadLimit(512)
	_ = cl.conn.SetReadDeadline(time.Now().Add(livePongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(livePongWait))
	})
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *LiveHub) writePump(cl *liveClient) {
	ticker := time.NewTicker(livePingPeriod)
	defer func() {
		ticker.Stop()
		_ = cl.conn.Close()
	}()
	for {
		select {
		case b, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
