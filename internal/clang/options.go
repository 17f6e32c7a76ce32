package clang

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Unset is the sentinel for radius options that are turned off.
const Unset = -1.0

// Options controls rule generation.
type Options struct {
	// CustomCondition is raw CLang ANDed into every positioning condition.
	CustomCondition string `json:"custom_condition" yaml:"custom_condition" validate:"max=4096"`

	// AddPlayOn requires play_on mode for positioning rules.
	AddPlayOn bool `json:"add_play_on" yaml:"add_play_on"`

	// FreedomRadius releases a player from positioning when the ball is
	// within this distance of the player. Values <= 0 disable it.
	FreedomRadius float64 `json:"freedom_radius" yaml:"freedom_radius" validate:"lte=200"`

	// EnableShooting adds the shooting region and rule.
	EnableShooting bool `json:"enable_shooting" yaml:"enable_shooting"`

	// RulePrefix is inserted after "RULE_" in positioning rule names.
	RulePrefix string `json:"rule_prefix" yaml:"rule_prefix" validate:"max=64,excludesall=()\"{}"`

	// PositioningRadius turns an exact target into a disc of this radius.
	// Values <= 0 disable it.
	PositioningRadius float64 `json:"positioning_radius" yaml:"positioning_radius" validate:"lte=200"`
}

// DefaultOptions returns the options used when the caller sets nothing.
func DefaultOptions() Options {
	return Options{
		FreedomRadius:     Unset,
		EnableShooting:    true,
		PositioningRadius: Unset,
	}
}

var validate = validator.New()

// Validate rejects options that would produce broken rule text.
func (o Options) Validate() error {
	for name, v := range map[string]float64{
		"freedom_radius":     o.FreedomRadius,
		"positioning_radius": o.PositioningRadius,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("invalid options: %s must be a finite number", name)
		}
	}
	if strings.ContainsAny(o.RulePrefix, " \t\r\n") {
		return fmt.Errorf("invalid options: rule_prefix must not contain whitespace")
	}
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

func (o Options) hasFreedomRadius() bool {
	return o.FreedomRadius > 0
}

func (o Options) hasPositioningRadius() bool {
	return o.PositioningRadius > 0
}

func (o Options) hasCustomCondition() bool {
	return len(o.CustomCondition) > 0
}

// plainCondition reports whether positioning conditions are just the ball
// region test.
func (o Options) plainCondition() bool {
	return !o.AddPlayOn && !o.hasFreedomRadius() && !o.hasCustomCondition()
}
