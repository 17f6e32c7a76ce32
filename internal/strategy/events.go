package strategy

// EventType classifies a change notification.
type EventType string

const (
	RegionsChanged    EventType = "regions_changed"
	PartitionsChanged EventType = "partitions_changed"
	CoefsChanged      EventType = "coefs_changed"

	// StrategyChanged follows every classified event.
	StrategyChanged EventType = "strategy_changed"
)

// Event describes a committed mutation. Name is the region or partition
// involved, empty for whole-model changes. Player is the player index for
// CoefsChanged and -1 otherwise.
type Event struct {
	Type   EventType `json:"type"`
	Name   string    `json:"name,omitempty"`
	Player int       `json:"player"`
}

// Listener receives events synchronously, after the mutation is applied.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Subscribe registers l and returns a function that removes it. Listeners
// run in registration order on the goroutine performing the mutation.
func (m *Model) Subscribe(l Listener) func() {
	m.nextSubID++
	id := m.nextSubID
	m.listeners = append(m.listeners, subscription{id: id, fn: l})

	return func() {
		for i, s := range m.listeners {
			if s.id == id {
				m.listeners = append(m.listeners[:i:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

func (m *Model) raise(t EventType, name string, player int) {
	// snapshot so a listener may unsubscribe while being notified
	subs := m.listeners
	ev := Event{Type: t, Name: name, Player: player}
	for _, s := range subs {
		s.fn(ev)
	}
	changed := Event{Type: StrategyChanged, Name: name, Player: player}
	for _, s := range subs {
		s.fn(changed)
	}
}
