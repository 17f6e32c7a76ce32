// Package workspace hosts the editing sessions of the server. Each workspace
// owns one strategy model; the model is not safe for concurrent use, so every
// access goes through Workspace.Do, which holds the workspace lock.
package workspace

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/coachassist/backend/internal/strategy"
)

var (
	ErrNotFound    = errors.New("workspace not found")
	ErrInvalidName = errors.New("workspace name required")
)

type Workspace struct {
	ID      string
	CoachID int

	mu         sync.Mutex
	name       string
	libraryID  string
	model      *strategy.Model
	lastActive time.Time
	closed     bool
}

// Do runs fn with exclusive access to the model and marks the workspace
// active.
func (w *Workspace) Do(fn func(m *strategy.Model) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrNotFound
	}
	w.lastActive = time.Now()
	return fn(w.model)
}

// Info is a consistent copy of the workspace metadata.
type Info struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	LibraryID  string    `json:"library_id,omitempty"`
	LastActive time.Time `json:"last_active"`
}

func (w *Workspace) Info() Info {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Info{ID: w.ID, Name: w.name, LibraryID: w.libraryID, LastActive: w.lastActive}
}

func (w *Workspace) Name() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.name
}

// SetLibrary records the library entry the workspace was saved to or opened
// from, and the name it is stored under.
func (w *Workspace) SetLibrary(publicID, name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.libraryID = publicID
	if name = strings.TrimSpace(name); name != "" {
		w.name = name
	}
}

func (w *Workspace) idleSince(now time.Time) time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return now.Sub(w.lastActive)
}

func (w *Workspace) close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}
