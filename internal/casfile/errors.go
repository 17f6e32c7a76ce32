package casfile

import (
	"fmt"
	"strings"
)

// Reasons reported in ParseError.
const (
	ReasonNoSection     = "content outside a known section"
	ReasonBadHeader     = "unknown section header"
	ReasonFieldCount    = "expected a name and 4 numbers"
	ReasonInvalidNumber = "invalid number"
	ReasonBadName       = "invalid name"
	ReasonRejected      = "rejected by model"
)

// ParseError describes one malformed line. Parsing continues past it.
type ParseError struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Diagnostics collects the per-line errors of one load.
type Diagnostics []*ParseError

func (d Diagnostics) Error() string {
	msgs := make([]string, 0, len(d))
	for _, e := range d {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Err returns d as an error, or nil when there is nothing to report.
func (d Diagnostics) Err() error {
	if len(d) == 0 {
		return nil
	}
	return d
}
