package clang

import (
	"fmt"
	"io"
	"strings"

	"github.com/coachassist/backend/internal/geometry"
	"github.com/coachassist/backend/internal/strategy"
)

// Home is the fallback position of one player.
type Home struct {
	Player int            `json:"player"`
	Pos    geometry.Point `json:"pos"`
}

// HomePositions derives home positions from the partition containing the
// center spot (the first one in name order). Each player with coefficients
// there is placed where the player would stand with the ball at the center, then
// the x values are stretched linearly into [HomeBackX, HomeFrontX], the
// furthest forward player landing on HomeFrontX.
//
// Player index 0, the goalkeeper, never gets a home position. When all x
// values coincide the band cannot be stretched and the players are only
// shifted so they sit on HomeFrontX.
//
// ok is false when no partition contains the center or no player has
// coefficients for it.
func HomePositions(m *strategy.Model) (homes []Home, partition string, ok bool) {
	center := geometry.Point{X: 0, Y: 0}
	partition, found := m.PartitionAt(center)
	if !found {
		return nil, "", false
	}

	for i := 1; i < strategy.NumPlayers; i++ {
		c, has := m.PlayerCoefs(i, partition)
		if !has {
			continue
		}
		homes = append(homes, Home{Player: i, Pos: c.Apply(center)})
	}
	if len(homes) == 0 {
		return nil, partition, false
	}

	minX, maxX := homes[0].Pos.X, homes[0].Pos.X
	for _, h := range homes[1:] {
		if h.Pos.X < minX {
			minX = h.Pos.X
		}
		if h.Pos.X > maxX {
			maxX = h.Pos.X
		}
	}

	spread := maxX - minX
	for i := range homes {
		x := homes[i].Pos.X - maxX
		if spread != 0 {
			x *= (HomeFrontX - HomeBackX) / spread
		}
		homes[i].Pos.X = x + HomeFrontX
	}
	return homes, partition, true
}

func (g *Generator) writeHomes(w io.Writer) {
	homes, _, ok := HomePositions(g.model)
	if !ok {
		return
	}

	line(w, "# Home Positionings")
	var sb strings.Builder
	sb.WriteString("(say (define (definerule RULE_HOMES direc ((true) ")
	for _, h := range homes {
		fmt.Fprintf(&sb, "(do our {%d} (home (pt %s %s))) ",
			strategy.UniformNumber(h.Player), geometry.FormatNumber(h.Pos.X), geometry.FormatNumber(h.Pos.Y))
	}
	sb.WriteString(" ) ) ) )")
	line(w, sb.String())
	line(w, "")
}
