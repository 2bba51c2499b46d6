package config

import "github.com/vovakirdan/hexpop/internal/board"

const (
	fiveColors = board.ColorMask(0x1F)
	sixColors  = board.ColorMask(0x3F)
	fourColors = board.ColorMask(0x0F)
)

// base holds the values shared by every mode.
func base(m Mode) Ruleset {
	return Ruleset{
		Mode:             m,
		MatchThreshold:   3,
		ColsEven:         8,
		ColsOdd:          7,
		Rows:             12,
		MaxBounces:       2,
		InitialRows:      5,
		BubbleRadius:     8,
		LoseOn:           LoseOn{Overflow: true},
		AllowColorSwitch: true,
		AllowedColors:    fiveColors,
		ShotSpeed:        6,
		AimStep:          1,
	}
}

// Preset returns a fresh copy of the built-in ruleset for a mode. Unknown
// modes fall back to Arcade.
func Preset(m Mode) Ruleset {
	r := base(m)
	switch m {
	case ModePuzzle:
		r.MaxBounces = 4
		r.InitialRows = 6
		r.AllowedColors = sixColors
		r.RestrictColorsToBoard = true

	case ModeSurvival:
		r.Rows = 14
		r.ShotsPerRowInsert = 5
		r.InitialRows = 4
		r.AllowedColors = sixColors
		r.AllowedSpecials = board.Rainbow.Bit() | board.Bomb.Bit()
		r.SpecialChance = 30
		r.HurryFrames = 240
		r.AutoFireFrames = 360

	case ModeTimeAttack:
		r.InitialRows = 6
		r.LoseOn = LoseOn{Overflow: true, Timeout: true}
		r.TimeLimitFrames = 120 * 60
		r.RestrictColorsToBoard = true
		r.AllowedSpecials = board.Star.Bit()
		r.SpecialChance = 15
		r.ShotSpeed = 8

	case ModeVersus:
		r.ShotsPerRowInsert = 10
		r.Garbage = true
		r.HurryFrames = 300
		r.AutoFireFrames = 480

	case ModeCoop:
		r.Rows = 16
		r.ColsEven = 12
		r.ColsOdd = 11
		r.ShotsPerRowInsert = 12
		r.InitialRows = 6
		r.AllowedColors = sixColors
		r.AllowedSpecials = board.Bomb.Bit() | board.Lightning.Bit()
		r.SpecialChance = 20
		r.SettleFrames = 12

	case ModeZen:
		r.LoseOn = LoseOn{}
		r.AllowedColors = fourColors
		r.RestrictColorsToBoard = true

	default:
		r.Mode = ModeArcade
		r.ShotsPerRowInsert = 8
		r.AllowedSpecials = board.Bomb.Bit() | board.Lightning.Bit()
		r.SpecialChance = 20
		r.HurryFrames = 300
		r.AutoFireFrames = 480
	}
	return r
}
