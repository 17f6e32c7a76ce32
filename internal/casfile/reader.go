package casfile

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/coachassist/backend/internal/geometry"
	"github.com/coachassist/backend/internal/strategy"
)

// section is the parser state: the part of the file the reader is in.
type section int

const (
	sectionNone section = iota
	sectionRegions
	sectionPartitions
	sectionPlayer
	sectionInvalid
)

func (s section) String() string {
	switch s {
	case sectionNone:
		return "none"
	case sectionRegions:
		return HeaderRegions
	case sectionPartitions:
		return HeaderPartitions
	case sectionPlayer:
		return HeaderPlayer
	}
	return "invalid"
}

const maxLineSize = 1024 * 1024

// parser is a forward-only, single-pass reader. Player lines are kept only if
// their partition was already declared above them, so a file listing player
// sections before [PARTITIONS] loses those entries.
type parser struct {
	model   *strategy.Model
	section section
	player  int
	diags   Diagnostics
}

// Read parses a .cas document and, once the whole input has been read,
// replaces the contents of m with the result. Malformed lines are reported in
// the returned Diagnostics and skipped. A read error is returned as-is and
// leaves m untouched.
func Read(r io.Reader, m *strategy.Model) (Diagnostics, error) {
	p := &parser{model: strategy.NewModel(), player: -1}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		p.parseLine(lineNo, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return p.diags, fmt.Errorf("read strategy: %w", err)
	}

	m.Replace(p.model)
	return p.diags, nil
}

// ReadString is Read over an in-memory document.
func ReadString(doc string, m *strategy.Model) (Diagnostics, error) {
	return Read(strings.NewReader(doc), m)
}

func (p *parser) parseLine(lineNo int, line string) {
	tokens := tokenize(line)
	for i, tok := range tokens {
		switch {
		case tok == "#":
			return
		case tok == "[":
			p.parseHeader(lineNo, line, tokens[i+1:])
			return
		case isNameStart(tok):
			p.parseContent(lineNo, line, tok, tokens[i+1:])
			return
		}
	}
}

func (p *parser) fail(lineNo int, line, reason string) {
	p.diags = append(p.diags, &ParseError{Line: lineNo, Text: strings.TrimSpace(line), Reason: reason})
}

func (p *parser) parseHeader(lineNo int, line string, rest []string) {
	if len(rest) == 0 {
		p.enterInvalid()
		p.fail(lineNo, line, ReasonBadHeader)
		return
	}

	name := rest[0]
	switch {
	case name == HeaderRegions:
		p.enterRegions()
	case name == HeaderPartitions:
		p.enterPartitions()
	case strings.HasPrefix(name, HeaderPlayer):
		suffix := []rune(strings.TrimPrefix(name, HeaderPlayer))
		if len(suffix) != 1 {
			p.enterInvalid()
			p.fail(lineNo, line, ReasonBadHeader)
			return
		}
		index, ok := strategy.ParsePlayerLabel(suffix[0])
		if !ok {
			p.enterInvalid()
			p.fail(lineNo, line, ReasonBadHeader)
			return
		}
		p.enterPlayer(index)
	default:
		p.enterInvalid()
		p.fail(lineNo, line, ReasonBadHeader)
	}
}

func (p *parser) enterRegions() {
	p.section = sectionRegions
	p.player = -1
}

func (p *parser) enterPartitions() {
	p.section = sectionPartitions
	p.player = -1
}

func (p *parser) enterPlayer(index int) {
	p.section = sectionPlayer
	p.player = index
}

func (p *parser) enterInvalid() {
	p.section = sectionInvalid
	p.player = -1
}

func (p *parser) parseContent(lineNo int, line, name string, rest []string) {
	switch p.section {
	case sectionPartitions:
		// unknown regions are skipped silently
		if p.model.RegionExists(name) {
			if err := p.model.MarkPartition(name); err != nil {
				p.fail(lineNo, line, ReasonRejected)
			}
		}
		return
	case sectionRegions, sectionPlayer:
	default:
		p.fail(lineNo, line, ReasonNoSection)
		return
	}

	values, reason := parseNumbers(rest)
	if reason != "" {
		p.fail(lineNo, line, reason)
		return
	}

	if p.section == sectionRegions {
		rect := geometry.ToInternal(geometry.NewRect(values[0], values[1], values[2], values[3]))
		if err := p.model.AddRegion(name, rect); err != nil {
			p.fail(lineNo, line, ReasonBadName)
		}
		return
	}

	if !p.model.IsPartition(name) {
		return
	}
	coefs := geometry.NewCoefs(values[0], values[1], values[2], values[3])
	if err := p.model.SetPlayerCoefs(p.player, name, coefs); err != nil {
		p.fail(lineNo, line, ReasonRejected)
	}
}

// parseNumbers reads exactly four finite numbers, stopping at a comment.
func parseNumbers(tokens []string) ([]float64, string) {
	values := make([]float64, 0, 4)
	for _, tok := range tokens {
		if tok == "#" {
			break
		}
		if tok == "," {
			continue
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ReasonInvalidNumber
		}
		values = append(values, v)
	}
	if len(values) != 4 {
		return nil, ReasonFieldCount
	}
	return values, ""
}
