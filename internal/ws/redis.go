package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/coachassist/backend/internal/metrics"
	"github.com/coachassist/backend/internal/strategy"
	"github.com/redis/go-redis/v9"
)

// EventsChannel carries change events between server instances.
const EventsChannel = "strategy_events"

// Notifier publishes workspace events to editors. With a redis client the
// events go through EventsChannel, and StartRelay delivers them on every
// instance; without one they are broadcast on the local hub directly.
type Notifier struct {
	hub *Hub
	rdb *redis.Client
}

func NewNotifier(hub *Hub, rdb *redis.Client) *Notifier {
	return &Notifier{hub: hub, rdb: rdb}
}

func (n *Notifier) Publish(workspaceID string, ev strategy.Event) {
	msg := Message{Type: string(ev.Type), WorkspaceID: workspaceID, Name: ev.Name}
	if ev.Player >= 0 {
		p := ev.Player
		msg.Player = &p
	}
	metrics.EventsPublished.WithLabelValues(msg.Type).Inc()
	n.send(msg)
}

func (n *Notifier) Closed(workspaceID, reason string) {
	n.send(Message{Type: "workspace_closed", WorkspaceID: workspaceID, Reason: reason})
}

func (n *Notifier) send(msg Message) {
	if n.rdb == nil {
		n.hub.Broadcast(msg)
		return
	}

	b, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[WS] invalid event: %v", err)
		return
	}
	if err := n.rdb.Publish(context.Background(), EventsChannel, b).Err(); err != nil {
		log.Printf("[WS] publish %s for workspace %s failed, broadcasting locally: %v", msg.Type, msg.WorkspaceID, err)
		n.hub.Broadcast(msg)
	}
}

// StartRelay subscribes to EventsChannel and broadcasts incoming events to
// the local editors of each workspace.
func (n *Notifier) StartRelay(ctx context.Context) {
	if n.rdb == nil {
		log.Println("[WS] Redis client not set; event relay not started")
		return
	}

	pubsub := n.rdb.Subscribe(ctx, EventsChannel)
	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		log.Printf("[WS] %s subscriber started", EventsChannel)
		for {
			select {
			case <-ctx.Done():
				return
			case raw, ok := <-ch:
				if !ok {
					return
				}
				var msg Message
				if err := json.Unmarshal([]byte(raw.Payload), &msg); err != nil {
					log.Printf("[WS] invalid event payload: %v", err)
					continue
				}
				if msg.WorkspaceID == "" {
					log.Printf("[WS] event %s without workspace", msg.Type)
					continue
				}
				n.hub.Broadcast(msg)
			}
		}
	}()
}
