package casfile

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/coachassist/backend/internal/strategy"
)

// Section header names.
const (
	HeaderRegions    = "REGIONS"
	HeaderPartitions = "PARTITIONS"
	HeaderPlayer     = "PLAYER"
)

// Write serializes m as a .cas document: regions in field coordinates,
// partition names, then the eleven player sections in fixed order. Names are
// written sorted and numbers are rounded to two decimals. Coefficients whose
// partition no longer exists are not written.
func Write(w io.Writer, m *strategy.Model) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "[%s]\n", HeaderRegions)
	for _, name := range m.RegionNames() {
		r, _ := m.FieldRegion(name)
		fmt.Fprintf(bw, "%s %s\n", name, r)
	}

	fmt.Fprintf(bw, "[%s]\n", HeaderPartitions)
	for _, name := range m.PartitionNames() {
		fmt.Fprintf(bw, "%s\n", name)
	}

	for i := 0; i < strategy.NumPlayers; i++ {
		label, err := strategy.PlayerLabel(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(bw, "[%s%c]\n", HeaderPlayer, label)

		for _, name := range m.PlayerCoefNames(i) {
			if !m.IsPartition(name) {
				continue
			}
			c, _ := m.PlayerCoefs(i, name)
			fmt.Fprintf(bw, "%s %s\n", name, c)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write strategy: %w", err)
	}
	return nil
}

// WriteString returns the .cas document for m.
func WriteString(m *strategy.Model) (string, error) {
	var sb strings.Builder
	if err := Write(&sb, m); err != nil {
		return "", err
	}
	return sb.String(), nil
}
