package workspace

import (
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/coachassist/backend/internal/metrics"
	"github.com/coachassist/backend/internal/strategy"
	"github.com/google/uuid"
)

// Publisher receives the change events of every workspace.
type Publisher interface {
	Publish(workspaceID string, ev strategy.Event)
	Closed(workspaceID, reason string)
}

type Manager struct {
	mu         sync.RWMutex
	workspaces map[string]*Workspace
	pub        Publisher
}

// NewManager returns an empty manager. pub may be nil.
func NewManager(pub Publisher) *Manager {
	return &Manager{
		workspaces: make(map[string]*Workspace),
		pub:        pub,
	}
}

// Create opens an empty workspace for the coach.
func (m *Manager) Create(coachID int, name string) (*Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	w := &Workspace{
		ID:         uuid.NewString(),
		CoachID:    coachID,
		name:       name,
		model:      strategy.NewModel(),
		lastActive: time.Now(),
	}
	if m.pub != nil {
		id := w.ID
		w.model.Subscribe(func(ev strategy.Event) {
			m.pub.Publish(id, ev)
		})
	}

	m.mu.Lock()
	m.workspaces[w.ID] = w
	n := len(m.workspaces)
	m.mu.Unlock()

	metrics.WorkspacesActive.Set(float64(n))
	log.Printf("[WORKSPACE] Opened %s (%q) for coach %d", w.ID, name, coachID)
	return w, nil
}

// Get returns the workspace if it exists and belongs to the coach.
func (m *Manager) Get(id string, coachID int) (*Workspace, error) {
	m.mu.RLock()
	w, ok := m.workspaces[id]
	m.mu.RUnlock()
	if !ok || w.CoachID != coachID {
		return nil, ErrNotFound
	}
	return w, nil
}

// List returns the coach's workspaces ordered by name.
func (m *Manager) List(coachID int) []Info {
	m.mu.RLock()
	var list []*Workspace
	for _, w := range m.workspaces {
		if w.CoachID == coachID {
			list = append(list, w)
		}
	}
	m.mu.RUnlock()

	infos := make([]Info, 0, len(list))
	for _, w := range list {
		infos = append(infos, w.Info())
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Name != infos[j].Name {
			return infos[i].Name < infos[j].Name
		}
		return infos[i].ID < infos[j].ID
	})
	return infos
}

// Close discards the workspace and its unsaved model.
func (m *Manager) Close(id string, coachID int) error {
	if _, err := m.Get(id, coachID); err != nil {
		return err
	}
	m.remove(id, "closed")
	return nil
}

func (m *Manager) remove(id, reason string) {
	m.mu.Lock()
	w, ok := m.workspaces[id]
	delete(m.workspaces, id)
	n := len(m.workspaces)
	m.mu.Unlock()
	if !ok {
		return
	}

	w.close()
	metrics.WorkspacesActive.Set(float64(n))
	if m.pub != nil {
		m.pub.Closed(id, reason)
	}
	log.Printf("[WORKSPACE] Closed %s (%s)", id, reason)
}

// Len returns the number of open workspaces.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.workspaces)
}
