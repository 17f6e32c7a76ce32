// Package strategy holds the in-memory positioning strategy edited by a coach:
// named regions, the subset of regions used as ball-position partitions, and
// per-player linear maps from ball position to player position.
//
// Region rectangles are stored in internal (display) coordinates; see the
// geometry package for the conversion to field coordinates.
//
// A Model is not safe for concurrent use. Callers that share one across
// goroutines must serialize every call.
package strategy

import (
	"fmt"
	"sort"

	"github.com/coachassist/backend/internal/geometry"
)

// Model is the strategy being edited.
type Model struct {
	regions    map[string]geometry.Rect
	partitions map[string]struct{}
	coefs      [NumPlayers]map[string]geometry.Coefs

	listeners []subscription
	nextSubID int
}

func NewModel() *Model {
	m := &Model{
		regions:    make(map[string]geometry.Rect),
		partitions: make(map[string]struct{}),
	}
	for i := range m.coefs {
		m.coefs[i] = make(map[string]geometry.Coefs)
	}
	return m
}

// AddRegion inserts or overwrites a region. An overwritten region keeps its
// partition mark.
func (m *Model) AddRegion(name string, rect geometry.Rect) error {
	if name == "" {
		return ErrInvalidName
	}
	m.regions[name] = geometry.NewRect(rect.X1, rect.Y1, rect.X2, rect.Y2)
	m.raise(RegionsChanged, name, -1)
	return nil
}

// RemoveRegion deletes a region and its partition mark. Coefficients keyed by
// the name are left in place; they are ignored until the name becomes a
// partition again. Removing an unknown region is a no-op.
func (m *Model) RemoveRegion(name string) {
	if _, ok := m.regions[name]; !ok {
		return
	}
	delete(m.regions, name)
	_, wasPartition := m.partitions[name]
	delete(m.partitions, name)

	m.raise(RegionsChanged, name, -1)
	if wasPartition {
		m.raise(PartitionsChanged, name, -1)
	}
}

func (m *Model) RegionExists(name string) bool {
	_, ok := m.regions[name]
	return ok
}

// Region returns the rectangle of a region in internal coordinates.
func (m *Model) Region(name string) (geometry.Rect, bool) {
	r, ok := m.regions[name]
	return r, ok
}

// FieldRegion returns the rectangle of a region in field coordinates.
func (m *Model) FieldRegion(name string) (geometry.Rect, bool) {
	r, ok := m.regions[name]
	if !ok {
		return geometry.Rect{}, false
	}
	return geometry.ToField(r), true
}

// RegionNames returns every region name, sorted.
func (m *Model) RegionNames() []string {
	return sortedKeys(m.regions)
}

// MarkPartition flags an existing region as a partition.
func (m *Model) MarkPartition(name string) error {
	if _, ok := m.regions[name]; !ok {
		return fmt.Errorf("mark partition %q: %w", name, ErrUnknownRegion)
	}
	m.partitions[name] = struct{}{}
	m.raise(PartitionsChanged, name, -1)
	return nil
}

// UnmarkPartition clears the partition flag. It is idempotent.
func (m *Model) UnmarkPartition(name string) {
	delete(m.partitions, name)
	m.raise(PartitionsChanged, name, -1)
}

func (m *Model) IsPartition(name string) bool {
	_, ok := m.partitions[name]
	return ok
}

// PartitionNames returns the partition names in lexicographic order.
func (m *Model) PartitionNames() []string {
	return sortedKeys(m.partitions)
}

func (m *Model) HasPartitions() bool {
	return len(m.partitions) > 0
}

// SetPlayerCoefs stores the map used by player index when the ball is in the
// named partition. The partition is not required to exist yet.
func (m *Model) SetPlayerCoefs(player int, partition string, c geometry.Coefs) error {
	if err := validPlayer(player); err != nil {
		return err
	}
	if partition == "" {
		return ErrInvalidName
	}
	m.coefs[player][partition] = c
	m.raise(CoefsChanged, partition, player)
	return nil
}

func (m *Model) HasPlayerCoefs(player int, partition string) bool {
	if validPlayer(player) != nil {
		return false
	}
	_, ok := m.coefs[player][partition]
	return ok
}

func (m *Model) PlayerCoefs(player int, partition string) (geometry.Coefs, bool) {
	if validPlayer(player) != nil {
		return geometry.Coefs{}, false
	}
	c, ok := m.coefs[player][partition]
	return c, ok
}

// PlayerCoefNames returns, sorted, every partition name the player has
// coefficients for, including stale ones.
func (m *Model) PlayerCoefNames(player int) []string {
	if validPlayer(player) != nil {
		return nil
	}
	return sortedKeys(m.coefs[player])
}

// Clear empties the model. Listeners are told only after everything is gone.
func (m *Model) Clear() {
	m.regions = make(map[string]geometry.Rect)
	m.partitions = make(map[string]struct{})
	for i := range m.coefs {
		m.coefs[i] = make(map[string]geometry.Coefs)
	}
	m.raiseAll()
}

// Replace takes over the contents of other, which must not be used afterward.
// Listeners of m are kept and notified once the swap is complete.
func (m *Model) Replace(other *Model) {
	m.regions = other.regions
	m.partitions = other.partitions
	m.coefs = other.coefs
	m.raiseAll()
}

func (m *Model) raiseAll() {
	m.raise(RegionsChanged, "", -1)
	m.raise(PartitionsChanged, "", -1)
	m.raise(CoefsChanged, "", -1)
}

func sortedKeys[V any](in map[string]V) []string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
