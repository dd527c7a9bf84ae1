package steps

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPingPeriod = 25 * time.Second
	// events queued for one slow client before newer ones are dropped
	wsEventsBuffer = 16
)

// checkOrigin lets through requests without an Origin header (the mobile
// app) and browser requests from one of the allowed origins.
func checkOrigin(allowedOrigins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, allowed := range allowedOrigins {
			if allowed == "*" || strings.EqualFold(allowed, origin) {
				return true
			}
		}
		return false
	}
}

type eventMessage struct {
	Event Event `json:"event"`
}

// HandleEvents pushes {"event": "..."} for every change event until the
// client goes away.
func (h *Handler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	// subscribed before the handshake completes, so the client misses nothing
	// published after it is connected
	events := make(chan Event, wsEventsBuffer)
	unsubscribe := h.aggregator.Subscribe(func(event Event) {
		// never block the publisher
		select {
		case events <- event:
		default:
			log.Warnf("steps events, client %s is slow, dropping [%s]", r.RemoteAddr, event)
		}
	})
	defer unsubscribe()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("steps events, upgrade: %s", err)
		return
	}
	h.metrics.GaugeWSClients.Inc()
	defer h.metrics.GaugeWSClients.Dec()
	defer conn.Close()

	closed := readUntilClosed(conn)

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case event := <-events:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(eventMessage{Event: event}); err != nil {
				log.Debugf("steps events, write: %s", err)
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}

// HandleLive pushes today's stats every time they change.
func (h *Handler) HandleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("steps live, upgrade: %s", err)
		return
	}
	h.metrics.GaugeWSClients.Inc()
	defer h.metrics.GaugeWSClients.Dec()
	defer conn.Close()

	// the request context is not cancelled when a hijacked connection closes
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	closed := readUntilClosed(conn)
	updates := h.aggregator.WatchToday(ctx, h.liveInterval)
	defer func() {
		cancel()
		for range updates {
		}
	}()

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case stats, ok := <-updates:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(stats); err != nil {
				log.Debugf("steps live, write: %s", err)
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}

// readUntilClosed drains incoming frames (the clients send none that matter)
// so control frames get processed; the returned channel closes with the
// connection.
func readUntilClosed(conn *websocket.Conn) <-chan struct{} {
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return closed
}
