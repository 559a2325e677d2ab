// Package ws pushes order lifecycle events to connected admin dashboards.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type OrderEvent struct {
	Type    string `json:"type"` // order_created | order_completed
	OrderID uint   `json:"order_id"`
	UserID  uint   `json:"user_id"`
	Total   int64  `json:"total"`
	Status  string `json:"status"`
}

type OrderFeed struct {
	mu       sync.Mutex
	conns    map[*websocket.Conn]bool
	upgrader websocket.Upgrader
}

func NewOrderFeed() *OrderFeed {
	return &OrderFeed{
		conns: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handle upgrades the connection and keeps it registered until the client
// goes away.
func (f *OrderFeed) Handle(c *gin.Context) {
	conn, err := f.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	f.mu.Lock()
	f.conns[conn] = true
	f.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			f.mu.Lock()
			delete(f.conns, conn)
			f.mu.Unlock()
			return
		}
	}
}

// Publish broadcasts the event to every connected client, dropping the ones
// that fail to write. Safe on a nil feed so services can run without one.
func (f *OrderFeed) Publish(ev OrderEvent) {
	if f == nil {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		logrus.WithField("error", err.Error()).Warn("order feed marshal failed")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for conn := range f.conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(f.conns, conn)
		}
	}
}
