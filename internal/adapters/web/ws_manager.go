package web

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/dmriera/fleetdash/internal/core/domain"
	"github.com/dmriera/fleetdash/internal/core/ports"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Read-only dashboard, same-origin deployment
		return true
	},
}

// WSMessage is the envelope for every websocket push.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// WSManager pushes each freshly reconciled snapshot to connected dashboard
// clients so counters update without polling.
type WSManager struct {
	clients map[*websocket.Conn]struct{}
	mu      sync.Mutex
}

// NewWSManager creates a new websocket manager.
func NewWSManager() *WSManager {
	return &WSManager{
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// HandleWebSocket upgrades the connection and tracks the client until it
// disconnects.
func (m *WSManager) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}

	m.mu.Lock()
	m.clients[conn] = struct{}{}
	m.mu.Unlock()

	// Clean up on disconnect; the read loop only exists to detect it.
	go func() {
		defer func() {
			m.mu.Lock()
			delete(m.clients, conn)
			m.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// NotifySnapshot implements ports.SnapshotNotifier.
func (m *WSManager) NotifySnapshot(snap domain.Snapshot) {
	m.broadcast(WSMessage{Type: "snapshot", Payload: snap})
}

func (m *WSManager) broadcast(msg WSMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for conn := range m.clients {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("WebSocket write failed, dropping client: %v", err)
			conn.Close()
			delete(m.clients, conn)
		}
	}
}

// Ensure interface compliance
var _ ports.SnapshotNotifier = (*WSManager)(nil)
