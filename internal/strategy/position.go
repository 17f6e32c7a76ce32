package strategy

import "github.com/coachassist/backend/internal/geometry"

// PositionFor returns where a player stands when the ball is at ball (field
// coordinates). The first partition, in name order, that contains the ball
// and has coefficients for the player decides. ok is false when no partition
// applies.
func (m *Model) PositionFor(player int, ball geometry.Point) (pos geometry.Point, partition string, ok bool) {
	if validPlayer(player) != nil {
		return geometry.Point{}, "", false
	}
	for _, name := range m.PartitionNames() {
		r, exists := m.FieldRegion(name)
		if !exists || !r.ContainsPoint(ball) {
			continue
		}
		c, has := m.coefs[player][name]
		if !has {
			continue
		}
		return c.Apply(ball), name, true
	}
	return geometry.Point{}, "", false
}

// PartitionAt returns the first partition, in name order, whose region
// contains the field point p.
func (m *Model) PartitionAt(p geometry.Point) (string, bool) {
	for _, name := range m.PartitionNames() {
		if r, ok := m.FieldRegion(name); ok && r.ContainsPoint(p) {
			return name, true
		}
	}
	return "", false
}
