package net

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The prototype serves its own front end; no cross-origin policy yet.
		return true
	},
}

// wsConn serializes writes: the ping loop and the command responses share the
// connection, and gorilla allows only one concurrent writer.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) writeJSON(payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(payload)
}

func (c *wsConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

// wsHandler runs the read loop for one client connection. Commands arrive as
// JSON text frames and every command is answered with a full state snapshot.
type wsHandler struct {
	hub    *Hub
	logger *log.Logger
}

func (h *wsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("id")
	if sessionID == "" || !h.hub.Session(sessionID) {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}

	raw, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("websocket upgrade failed: %v", err)
		return
	}
	conn := &wsConn{conn: raw}
	defer raw.Close()

	raw.SetReadLimit(maxMessageSize)
	raw.SetReadDeadline(time.Now().Add(pongWait))
	raw.SetPongHandler(func(string) error {
		raw.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	stop := make(chan struct{})
	defer close(stop)
	go pingLoop(conn, stop)

	// Initial snapshot so a reconnecting client can redraw immediately.
	if state, ok := h.hub.Snapshot(sessionID); ok {
		if err := conn.writeJSON(state); err != nil {
			h.hub.Disconnect(sessionID, "write_failed")
			return
		}
	}

	for {
		_, data, err := raw.ReadMessage()
		if err != nil {
			reason := "closed"
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				reason = "read_error"
			}
			h.hub.Disconnect(sessionID, reason)
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			conn.writeJSON(errorMessage{Type: "error", Ver: ProtocolVersion, Reason: "malformed message"})
			continue
		}

		state, ok := h.hub.HandleCommand(sessionID, msg)
		if !ok {
			h.hub.Disconnect(sessionID, "session_lost")
			return
		}
		if err := conn.writeJSON(state); err != nil {
			h.hub.Disconnect(sessionID, "write_failed")
			return
		}
	}
}

func pingLoop(conn *wsConn, stop <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := conn.ping(); err != nil {
				return
			}
		case <-stop:
			return
		}
	}
}
