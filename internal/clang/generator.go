// Package clang compiles a strategy into CLang, the rule language understood
// by RoboCup soccer-simulator coaches.
//
// Output order is fixed: region definitions, the non-play-on condition, home
// positions, positioning rules grouped by partition, the passing rules, the
// optional shooting rule and finally the statement activating every rule.
// Regions and partitions are emitted in name order so the same model and
// options always give the same text.
package clang

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/coachassist/backend/internal/geometry"
	"github.com/coachassist/backend/internal/strategy"
)

const (
	// ShootingRegion is the region added when shooting is enabled.
	ShootingRegion = "CACR_ShootingReg"

	// NonPlayOnCondition names the "play is not live" condition.
	NonPlayOnCondition = "cnd_nonplayons"

	// Home x band the players are fanned out into.
	HomeBackX  = -30.0
	HomeFrontX = -5.0
)

// Generator writes the rules for one model. It only reads the model.
type Generator struct {
	model *strategy.Model
	opts  Options
}

func NewGenerator(m *strategy.Model, opts Options) *Generator {
	return &Generator{model: m, opts: opts}
}

// Generate returns the complete rule document.
func (g *Generator) Generate() string {
	var sb strings.Builder
	g.write(&sb)
	return sb.String()
}

// WriteTo writes the rule document to w.
func (g *Generator) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	cw := &countingWriter{w: bw}
	g.write(cw)
	if err := bw.Flush(); err != nil {
		return cw.n, fmt.Errorf("write rules: %w", err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func line(w io.Writer, s string) {
	io.WriteString(w, s+"\n")
}

func (g *Generator) write(w io.Writer) {
	g.writeRegions(w)

	line(w, "")
	line(w, fmt.Sprintf(`(say (define (definec "%s" (not (playm play_on)) )))`, NonPlayOnCondition))
	line(w, "")

	g.writeHomes(w)
	line(w, "")

	g.writePositionings(w)

	line(w, "# A Simple Passing")
	line(w, "(say (define (definerule RULE_GENERAL_PASSING direc ((true) (do our {0} (pass {0})) ))))")
	line(w, "")
	line(w, "# Play when it is not play on")
	line(w, fmt.Sprintf(`(say (define (definerule RULE_PASS_NONPLAYONS direc ("%s" (do our {0} (pass {0}))) )))`, NonPlayOnCondition))
	line(w, "")

	if g.opts.EnableShooting {
		line(w, "# A Simple Shooting")
		line(w, fmt.Sprintf(`(say (define (definerule RULE_SHOOT direc ((and (bowner our {X}) (bpos "%s")) (do our {X} (shoot))) )))`, ShootingRegion))
		line(w, "")
	}

	line(w, "")
	line(w, "(say (rule (on all)))")
}

func (g *Generator) writeRegions(w io.Writer) {
	line(w, "# Regions Definitions")
	for _, name := range g.model.RegionNames() {
		r, _ := g.model.FieldRegion(name)
		line(w, fmt.Sprintf(`(say (define (definer "%s" %s )))`, name, rectExpr(r)))
	}

	if g.opts.EnableShooting {
		line(w, "")
		line(w, "# CACR: Coach Assistant Created Region")
		line(w, fmt.Sprintf(`(say (define (definer "%s" (rec (pt 40 -18)(pt 52.5 18)) )))`, ShootingRegion))
	}
}

func (g *Generator) writePositionings(w io.Writer) {
	line(w, "# Positionings")
	for _, part := range g.model.PartitionNames() {
		line(w, "# "+part)
		for i := 0; i < strategy.NumPlayers; i++ {
			c, ok := g.model.PlayerCoefs(i, part)
			if !ok {
				continue
			}
			line(w, g.positioningRule(part, i, c))
		}
		line(w, "")
	}
}

// RuleName returns the name of the positioning rule for a partition and player index.
func RuleName(prefix, partition string, player int) string {
	return fmt.Sprintf("RULE_%s%s%02d", prefix, partition, strategy.UniformNumber(player))
}

func (g *Generator) positioningRule(part string, player int, c geometry.Coefs) string {
	unum := strategy.UniformNumber(player)

	var sb strings.Builder
	sb.WriteString("(say (define (definerule ")
	sb.WriteString(RuleName(g.opts.RulePrefix, part, player))
	sb.WriteString(" direc (")

	ballIn := fmt.Sprintf(`(bpos "%s")`, part)
	if g.opts.plainCondition() {
		sb.WriteString(ballIn)
	} else {
		sb.WriteString("(and ")
		if g.opts.AddPlayOn {
			sb.WriteString("(playm play_on)")
		}
		sb.WriteString(ballIn)
		if g.opts.hasFreedomRadius() {
			fmt.Fprintf(&sb, "(not (bpos (arc (pt our %d) 0 %s 0 360 )))", unum, geometry.FormatNumber(g.opts.FreedomRadius))
		}
		if g.opts.hasCustomCondition() {
			sb.WriteString(g.opts.CustomCondition)
		}
		sb.WriteString(") ")
	}

	if g.opts.hasPositioningRadius() {
		fmt.Fprintf(&sb, "(do our {%d} (pos (arc %s 0 %s 0 360 ))) ))))", unum, coefsExpr(c), geometry.FormatNumber(g.opts.PositioningRadius))
	} else {
		fmt.Fprintf(&sb, "(do our {%d} (pos %s )) ))))", unum, coefsExpr(c))
	}
	return sb.String()
}

func rectExpr(r geometry.Rect) string {
	return fmt.Sprintf("(rec (pt %s  %s) (pt %s  %s) )",
		geometry.FormatNumber(r.X1), geometry.FormatNumber(r.Y1),
		geometry.FormatNumber(r.X2), geometry.FormatNumber(r.Y2))
}

func coefsExpr(c geometry.Coefs) string {
	return fmt.Sprintf("(((pt ball) * (pt  %s  %s)) + (pt  %s  %s))",
		geometry.FormatNumber(c.C1), geometry.FormatNumber(c.C2),
		geometry.FormatNumber(c.O1), geometry.FormatNumber(c.O2))
}
