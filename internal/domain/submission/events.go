package submission

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/libraryhall/hallbook-api/internal/pkg/logger"
)

// WebSocket constants
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

// Events handles WS /forms/{id}/events
// The stream starts with the current state and follows every change.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	form, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	// Subscribe first so no change between handshake and stream start is missed
	updates, cancel := form.Subscribe()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		cancel()
		logger.FromContext(r.Context()).Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	done := make(chan struct{})

	go h.wsReader(conn, cancel, done)
	go h.wsWriter(conn, updates, done)
}

// wsReader only drains control frames; clients have nothing to send
func (h *Handler) wsReader(conn *websocket.Conn, cancel func(), done chan<- struct{}) {
	defer func() {
		cancel()
		close(done)
	}()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) wsWriter(conn *websocket.Conn, updates <-chan Snapshot, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case snap, ok := <-updates:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Form discarded or subscription cancelled
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			payload, err := json.Marshal(Event{Type: eventFormState, Form: snap})
			if err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-done:
			return
		}
	}
}
