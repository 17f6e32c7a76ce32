package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/coachassist/backend/internal/strategy"
	"github.com/coachassist/backend/internal/workspace"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	readLimit  = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Origins are checked by middleware.WebSocketOriginCheck.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one connected editor.
type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	workspaceID string
	send        chan []byte
}

// HandleWebSocket streams the change events of a workspace. The first
// message is a snapshot of the current model.
func HandleWebSocket(hub *Hub, workspaces *workspace.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, err := workspaces.Get(c.Param("id"), c.GetInt("coach_id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "workspace not found"})
			return
		}

		var snap strategy.Snapshot
		_ = w.Do(func(m *strategy.Model) error {
			snap = m.Snapshot()
			return nil
		})
		data, err := json.Marshal(snap)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		first, _ := json.Marshal(Message{Type: "snapshot", WorkspaceID: w.ID, Data: data})

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] Upgrade error: %v", err)
			return
		}

		client := &Client{
			hub:         hub,
			conn:        conn,
			workspaceID: w.ID,
			send:        make(chan []byte, 256),
		}
		client.send <- first
		hub.register <- client

		go client.writePump()
		go client.readPump()
	}
}

// writePump writes messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WS] Write error for workspace %s: %v", c.workspaceID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] Ping error for workspace %s: %v", c.workspaceID, err)
				return
			}
		}
	}
}

// readPump only keeps the connection alive; editors change the model
// through the HTTP API.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(readLimit)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Unexpected close for workspace %s: %v", c.workspaceID, err)
			}
			return
		}
	}
}
