package workspace

import (
	"context"
	"log"
	"time"

	"github.com/coachassist/backend/internal/metrics"
)

// EvictIdle closes every workspace untouched for at least maxIdle and returns
// their IDs.
func (m *Manager) EvictIdle(now time.Time, maxIdle time.Duration) []string {
	m.mu.RLock()
	var stale []string
	for id, w := range m.workspaces {
		if w.idleSince(now) >= maxIdle {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	for _, id := range stale {
		m.remove(id, "idle")
		metrics.WorkspacesEvicted.Inc()
	}
	return stale
}

// StartIdleWorker evicts idle workspaces every poll interval until ctx ends.
func (m *Manager) StartIdleWorker(ctx context.Context, poll, maxIdle time.Duration) {
	if poll <= 0 || maxIdle <= 0 {
		log.Println("[IDLE] Idle eviction disabled")
		return
	}

	log.Printf("[IDLE] Idle worker started (poll=%s max_idle=%s)", poll, maxIdle)
	go func() {
		ticker := time.NewTicker(poll)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Println("[IDLE] Idle worker stopping")
				return
			case now := <-ticker.C:
				if evicted := m.EvictIdle(now, maxIdle); len(evicted) > 0 {
					log.Printf("[IDLE] Evicted %d idle workspaces", len(evicted))
				}
			}
		}
	}()
}
