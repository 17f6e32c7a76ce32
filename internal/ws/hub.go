package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/coachassist/backend/internal/metrics"
)

// Message is what editors receive. Type is a strategy event type, "snapshot"
// on connect, or "workspace_closed".
type Message struct {
	Type        string          `json:"type"`
	WorkspaceID string          `json:"workspace_id"`
	Name        string          `json:"name,omitempty"`
	Player      *int            `json:"player,omitempty"`
	Reason      string          `json:"reason,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`
}

// Hub maintains the editors connected to each workspace.
type Hub struct {
	rooms      map[string]map[*Client]struct{} // workspaceID -> clients
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes registrations until ctx ends.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for id, room := range h.rooms {
				for c := range room {
					close(c.send)
				}
				delete(h.rooms, id)
			}
			h.mu.Unlock()
			metrics.WSClients.Set(0)
			return

		case client := <-h.register:
			h.mu.Lock()
			room, ok := h.rooms[client.workspaceID]
			if !ok {
				room = make(map[*Client]struct{})
				h.rooms[client.workspaceID] = room
			}
			room[client] = struct{}{}
			h.mu.Unlock()
			metrics.WSClients.Inc()
			log.Printf("[WS] Editor connected to workspace %s (room_size=%d)", client.workspaceID, h.RoomSize(client.workspaceID))

		case client := <-h.unregister:
			h.mu.Lock()
			if room, ok := h.rooms[client.workspaceID]; ok {
				if _, ok := room[client]; ok {
					delete(room, client)
					close(client.send)
					metrics.WSClients.Dec()
					if len(room) == 0 {
						delete(h.rooms, client.workspaceID)
					}
				}
			}
			h.mu.Unlock()
			log.Printf("[WS] Editor disconnected from workspace %s", client.workspaceID)
		}
	}
}

// Broadcast sends msg to every editor of its workspace. Slow editors drop
// the message rather than block the caller.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[WS] Error marshaling message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[msg.WorkspaceID] {
		select {
		case client.send <- data:
		default:
			log.Printf("[WS] Send buffer full for editor in workspace %s, dropping %s", msg.WorkspaceID, msg.Type)
		}
	}
}

// RoomSize returns the number of editors connected to a workspace.
func (h *Hub) RoomSize(workspaceID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[workspaceID])
}
