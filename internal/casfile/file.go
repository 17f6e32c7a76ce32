package casfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/coachassist/backend/internal/strategy"
)

// Extension of strategy files.
const Extension = ".cas"

// ReadFile loads a strategy file into m. See Read.
func ReadFile(path string, m *strategy.Model) (Diagnostics, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open strategy: %w", err)
	}
	defer f.Close()

	return Read(f, m)
}

// WriteFile saves m to path, replacing any existing file only after the
// document has been fully written.
func WriteFile(path string, m *strategy.Model) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create strategy file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, m); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close strategy file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save strategy file: %w", err)
	}
	return nil
}

// ExportName derives the default rule file name from a strategy file name:
// "plans/442.cas" -> "plans/442.clang".
func ExportName(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".clang"
}
