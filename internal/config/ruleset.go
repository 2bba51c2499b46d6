// Package config provides the game ruleset, the built-in mode presets and
// YAML-based overrides.
package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/hexpop/internal/board"
	"github.com/vovakirdan/hexpop/internal/core"
	"github.com/vovakirdan/hexpop/internal/fixed"
)

// Mode selects one of the built-in rulesets.
type Mode int

const (
	ModePuzzle Mode = iota
	ModeArcade
	ModeSurvival
	ModeTimeAttack
	ModeVersus
	ModeCoop
	ModeZen
	numModes
)

var modeNames = [numModes]string{"puzzle", "arcade", "survival", "time-attack", "versus", "coop", "zen"}

// String returns the mode's config name.
func (m Mode) String() string {
	if m >= 0 && m < numModes {
		return modeNames[m]
	}
	return "unknown"
}

// Modes lists every built-in mode.
func Modes() []Mode {
	out := make([]Mode, numModes)
	for i := range out {
		out[i] = Mode(i)
	}
	return out
}

// ParseMode resolves a mode by name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if s == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("config: unknown mode %q: %w", s, core.ErrInvalidArgument)
}

// MarshalYAML writes the mode by name.
func (m Mode) MarshalYAML() (any, error) {
	return m.String(), nil
}

// UnmarshalYAML reads the mode by name.
func (m *Mode) UnmarshalYAML(value *yaml.Node) error {
	mode, err := ParseMode(value.Value)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// LoseOn selects the optional loss conditions.
type LoseOn struct {
	Overflow bool `yaml:"overflow"` // row insertion pushes bubbles off the bottom
	Timeout  bool `yaml:"timeout"`  // time_limit_frames elapsed
}

// Ruleset is the full set of gameplay options for one session.
type Ruleset struct {
	Mode Mode `yaml:"mode"`

	MatchThreshold        int               `yaml:"match_threshold"`
	ColsEven              int               `yaml:"cols_even"`
	ColsOdd               int               `yaml:"cols_odd"`
	Rows                  int               `yaml:"rows"`
	MaxBounces            int               `yaml:"max_bounces"`
	ShotsPerRowInsert     int               `yaml:"shots_per_row_insert"` // 0 disables pressure
	InitialRows           int               `yaml:"initial_rows"`
	BubbleRadius          int               `yaml:"bubble_radius"` // pixels
	LoseOn                LoseOn            `yaml:"lose_on"`
	AllowColorSwitch      bool              `yaml:"allow_color_switch"`
	RestrictColorsToBoard bool              `yaml:"restrict_colors_to_board"`
	AllowedColors         board.ColorMask   `yaml:"allowed_colors"`
	AllowedSpecials       board.SpecialMask `yaml:"allowed_specials"`

	ShotSpeed       int  `yaml:"shot_speed"`        // pixels per tick
	AimStep         int  `yaml:"aim_step"`          // degrees per aim input
	HurryFrames     int  `yaml:"hurry_frames"`      // 0 disables
	AutoFireFrames  int  `yaml:"auto_fire_frames"`  // 0 disables
	TimeLimitFrames int  `yaml:"time_limit_frames"` // used with lose_on.timeout
	SettleFrames    int  `yaml:"settle_frames"`     // animation hold after pops
	SpecialChance   int  `yaml:"special_chance"`    // per mille
	Garbage         bool `yaml:"garbage"`           // versus garbage accounting
}

// Radius returns the bubble radius in fixed-point pixels.
func (r Ruleset) Radius() fixed.Fixed {
	return fixed.FromInt(r.BubbleRadius)
}

// Speed returns the shot speed in fixed-point pixels per tick.
func (r Ruleset) Speed() fixed.Fixed {
	return fixed.FromInt(r.ShotSpeed)
}

// Validate checks every option against its permitted range.
func (r Ruleset) Validate() error {
	checks := []struct {
		name     string
		val      int
		min, max int
	}{
		{"match_threshold", r.MatchThreshold, 2, 10},
		{"rows", r.Rows, 4, board.MaxRows},
		{"cols_even", r.ColsEven, 2, board.MaxCols},
		{"cols_odd", r.ColsOdd, 1, r.ColsEven},
		{"max_bounces", r.MaxBounces, 0, 16},
		{"shots_per_row_insert", r.ShotsPerRowInsert, 0, 100},
		{"initial_rows", r.InitialRows, 0, board.MaxRows},
		{"bubble_radius", r.BubbleRadius, 2, 64},
		{"shot_speed", r.ShotSpeed, 1, 2 * r.BubbleRadius},
		{"aim_step", r.AimStep, 1, 45},
		{"hurry_frames", r.HurryFrames, 0, 1 << 20},
		{"auto_fire_frames", r.AutoFireFrames, 0, 1 << 20},
		{"time_limit_frames", r.TimeLimitFrames, 0, 1 << 24},
		{"settle_frames", r.SettleFrames, 0, 600},
		{"special_chance", r.SpecialChance, 0, 1000},
	}
	for _, c := range checks {
		if c.val < c.min || c.val > c.max {
			return fmt.Errorf("config: %s = %d not in [%d, %d]: %w", c.name, c.val, c.min, c.max, core.ErrInvalidArgument)
		}
	}

	if r.AllowedColors == 0 {
		return fmt.Errorf("config: allowed_colors is empty: %w", core.ErrInvalidArgument)
	}
	if r.HurryFrames > 0 && r.AutoFireFrames > 0 && r.AutoFireFrames <= r.HurryFrames {
		return fmt.Errorf("config: auto_fire_frames %d must exceed hurry_frames %d: %w",
			r.AutoFireFrames, r.HurryFrames, core.ErrInvalidArgument)
	}
	if r.LoseOn.Timeout && r.TimeLimitFrames == 0 {
		return fmt.Errorf("config: lose_on.timeout needs time_limit_frames: %w", core.ErrInvalidArgument)
	}
	return nil
}

// Marshal encodes the ruleset as YAML.
func Marshal(r Ruleset) ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("config: marshal %s: %w", r.Mode, err)
	}
	return data, nil
}
