package strategy

import "github.com/coachassist/backend/internal/geometry"

// RegionView is a region in field coordinates.
type RegionView struct {
	Name        string        `json:"name"`
	Rect        geometry.Rect `json:"rect"`
	IsPartition bool          `json:"is_partition"`
}

// PlayerView lists the live coefficient entries of one player.
type PlayerView struct {
	Index   int                       `json:"index"`
	Label   string                    `json:"label"`
	Uniform int                       `json:"uniform"`
	Coefs   map[string]geometry.Coefs `json:"coefs"`
}

// Snapshot is a read-only copy of the model for clients.
type Snapshot struct {
	Regions    []RegionView `json:"regions"`
	Partitions []string     `json:"partitions"`
	Players    []PlayerView `json:"players"`
}

// Snapshot copies the model. Coefficient entries whose partition is gone are
// left out.
func (m *Model) Snapshot() Snapshot {
	s := Snapshot{
		Regions:    make([]RegionView, 0, len(m.regions)),
		Partitions: m.PartitionNames(),
		Players:    make([]PlayerView, 0, NumPlayers),
	}
	for _, name := range m.RegionNames() {
		r, _ := m.FieldRegion(name)
		s.Regions = append(s.Regions, RegionView{Name: name, Rect: r, IsPartition: m.IsPartition(name)})
	}
	for i := 0; i < NumPlayers; i++ {
		label, _ := PlayerLabel(i)
		pv := PlayerView{Index: i, Label: string(label), Uniform: UniformNumber(i), Coefs: map[string]geometry.Coefs{}}
		for name, c := range m.coefs[i] {
			if m.IsPartition(name) {
				pv.Coefs[name] = c
			}
		}
		s.Players = append(s.Players, pv)
	}
	return s
}
