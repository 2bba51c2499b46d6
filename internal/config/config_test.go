package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/hexpop/internal/board"
	"github.com/vovakirdan/hexpop/internal/core"
)

func TestPresetsValidate(t *testing.T) {
	for _, m := range Modes() {
		r := Preset(m)
		if r.Mode != m {
			t.Errorf("Preset(%s).Mode = %s", m, r.Mode)
		}
		if err := r.Validate(); err != nil {
			t.Errorf("Preset(%s) invalid: %v", m, err)
		}
	}
}

func TestPresetIsFresh(t *testing.T) {
	a := Preset(ModeArcade)
	a.Rows = 4
	if Preset(ModeArcade).Rows == 4 {
		t.Error("mutating a preset copy changed the registry")
	}
}

func TestArcadeInsertsEveryEightShots(t *testing.T) {
	if got := Preset(ModeArcade).ShotsPerRowInsert; got != 8 {
		t.Errorf("arcade shots_per_row_insert = %d, want 8", got)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMode("Time-Attack"); err != nil {
		t.Errorf("ParseMode should be case-insensitive: %v", err)
	}
	if _, err := ParseMode("deathmatch"); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("ParseMode(unknown) err = %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Ruleset)
	}{
		{"threshold", func(r *Ruleset) { r.MatchThreshold = 1 }},
		{"rows", func(r *Ruleset) { r.Rows = board.MaxRows + 1 }},
		{"cols_odd", func(r *Ruleset) { r.ColsOdd = r.ColsEven + 1 }},
		{"colors", func(r *Ruleset) { r.AllowedColors = 0 }},
		{"speed", func(r *Ruleset) { r.ShotSpeed = 0 }},
		{"autofire", func(r *Ruleset) { r.HurryFrames, r.AutoFireFrames = 100, 50 }},
		{"timeout", func(r *Ruleset) { r.LoseOn.Timeout, r.TimeLimitFrames = true, 0 }},
		{"chance", func(r *Ruleset) { r.SpecialChance = 1001 }},
	}
	for _, tt := range tests {
		r := Preset(ModeArcade)
		tt.mutate(&r)
		if err := r.Validate(); !errors.Is(err, core.ErrInvalidArgument) {
			t.Errorf("%s: err = %v, want ErrInvalidArgument", tt.name, err)
		}
	}
}

func TestParseOverlay(t *testing.T) {
	data := []byte("mode: zen\nmatch_threshold: 4\nlose_on:\n  overflow: false\nallowed_colors: 7\n")
	r, err := Parse(data, ModeArcade)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if r.Mode != ModeArcade {
		t.Errorf("mode = %s, file must not change it", r.Mode)
	}
	if r.MatchThreshold != 4 || r.LoseOn.Overflow || r.AllowedColors != 7 {
		t.Errorf("overlay not applied: %+v", r)
	}
	if r.ShotsPerRowInsert != 8 {
		t.Errorf("absent key lost its preset value: %d", r.ShotsPerRowInsert)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("rows: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := Load(path, ModePuzzle)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r.Rows != 10 || r.MaxBounces != Preset(ModePuzzle).MaxBounces {
		t.Errorf("Load = %+v", r)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), ModePuzzle); err == nil {
		t.Error("missing custom file should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	_ = os.WriteFile(bad, []byte("match_threshold: 99\n"), 0o644)
	if _, err := Load(bad, ModePuzzle); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("out-of-range file err = %v", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	want := Preset(ModeSurvival)
	data, err := Marshal(want)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Parse(data, ModeSurvival)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != want {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestApplyDifficulty(t *testing.T) {
	easy := Preset(ModeArcade)
	ApplyDifficulty(&easy, DifficultyEasy)
	if easy.AllowedColors.Count() != 4 || easy.ShotsPerRowInsert != 10 {
		t.Errorf("easy = colors %d, shots %d", easy.AllowedColors.Count(), easy.ShotsPerRowInsert)
	}

	hard := Preset(ModeArcade)
	ApplyDifficulty(&hard, DifficultyHard)
	if hard.AllowedColors.Count() != 6 || hard.ShotsPerRowInsert != 6 {
		t.Errorf("hard = colors %d, shots %d", hard.AllowedColors.Count(), hard.ShotsPerRowInsert)
	}
	for _, r := range []Ruleset{easy, hard} {
		if err := r.Validate(); err != nil {
			t.Errorf("adjusted ruleset invalid: %v", err)
		}
	}

	if _, err := ParseDifficulty("nightmare"); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("ParseDifficulty err = %v", err)
	}
}
