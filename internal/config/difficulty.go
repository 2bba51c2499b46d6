package config

import (
	"fmt"

	"github.com/vovakirdan/hexpop/internal/board"
	"github.com/vovakirdan/hexpop/internal/core"
)

// Difficulty represents a named difficulty adjustment applied on top of a
// mode preset.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty validates a difficulty name. Empty means normal.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return Difficulty(s), nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q: %w", s, core.ErrInvalidArgument)
}

// ApplyDifficulty adjusts color count and pressure for a difficulty.
// Easy drops the highest color (keeping at least three) and slows row
// insertion; hard adds a color and speeds up insertion and hurry-up.
func ApplyDifficulty(r *Ruleset, d Difficulty) {
	switch d {
	case DifficultyEasy:
		if r.AllowedColors.Count() > 3 {
			r.AllowedColors &^= highestColor(r.AllowedColors).Bit()
		}
		if r.ShotsPerRowInsert > 0 {
			r.ShotsPerRowInsert += 2
		}
		r.HurryFrames, r.AutoFireFrames = scaleFrames(r.HurryFrames, 5, 4), scaleFrames(r.AutoFireFrames, 5, 4)

	case DifficultyHard:
		for c := board.Color(0); c < board.NumColors; c++ {
			if !r.AllowedColors.Has(c) {
				r.AllowedColors |= c.Bit()
				break
			}
		}
		if r.ShotsPerRowInsert > 0 {
			r.ShotsPerRowInsert = max(3, r.ShotsPerRowInsert-2)
		}
		r.HurryFrames, r.AutoFireFrames = scaleFrames(r.HurryFrames, 3, 4), scaleFrames(r.AutoFireFrames, 3, 4)
	}
}

func highestColor(m board.ColorMask) board.Color {
	for c := board.NumColors - 1; c > 0; c-- {
		if m.Has(c) {
			return c
		}
	}
	return 0
}

func scaleFrames(frames, num, den int) int {
	return frames * num / den
}
