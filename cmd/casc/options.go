package main

import (
	"fmt"
	"os"

	"github.com/coachassist/backend/internal/clang"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// loadOptions reads generation options from a YAML file. Keys missing from
// the file keep their default values.
func loadOptions(path string) (clang.Options, error) {
	opts := clang.DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read options: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse options %s: %w", path, err)
	}
	return opts, nil
}

// generateOptions merges the --options file with explicitly set flags.
func generateOptions(cmd *cobra.Command) (clang.Options, error) {
	opts := clang.DefaultOptions()
	if genOptionsFile != "" {
		loaded, err := loadOptions(genOptionsFile)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("add-play-on") {
		opts.AddPlayOn = genAddPlayOn
	}
	if flags.Changed("shooting") {
		opts.EnableShooting = genEnableShooting
	}
	if flags.Changed("freedom-radius") {
		opts.FreedomRadius = genFreedomRadius
	}
	if flags.Changed("positioning-radius") {
		opts.PositioningRadius = genPositioningRadius
	}
	if flags.Changed("prefix") {
		opts.RulePrefix = genRulePrefix
	}
	if flags.Changed("condition") {
		opts.CustomCondition = genCondition
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}
