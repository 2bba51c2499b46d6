package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexpop/internal/fixed"
	"github.com/vovakirdan/hexpop/internal/game"
	"github.com/vovakirdan/hexpop/internal/platform/headless"
	"github.com/vovakirdan/hexpop/internal/rng"
)

var flagAngle int

var previewCmd = &cobra.Command{
	Use:   "preview [mode]",
	Short: "Draw the predicted path of a shot",
	Long: `Build the opening board for a mode (or load one with --layout) and
draw where a shot fired at --angle degrees would travel and land.
90 is straight up; smaller angles aim right.

Examples:
  hexpop preview --angle 60
  hexpop preview puzzle --seed 3 --angle 120
  hexpop preview --layout ./level1.txt --angle 75 --color=false`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPreview,
}

func init() {
	addRulesetFlags(previewCmd)
	previewCmd.Flags().IntVar(&flagAngle, "angle", 90, "Launcher angle in degrees (9-171)")
	previewCmd.Flags().StringVar(&flagLayout, "layout", "", "ASCII starting layout file")
	previewCmd.Flags().BoolVar(&flagColor, "color", true, "Color the board")
}

func runPreview(cmd *cobra.Command, args []string) {
	rules, _, err := loadRules(modeArg(args), flagConfig, flagDifficulty)
	if err != nil {
		exitf("%v", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = 1
	}
	g, err := game.New(rules, rng.New(seed))
	if err != nil {
		exitf("%v", err)
	}
	if flagLayout != "" {
		layout, err := readLayout(flagLayout)
		if err != nil {
			exitf("%v", err)
		}
		if err := g.LoadLayout(layout); err != nil {
			exitf("%v", err)
		}
	}

	angle := fixed.FromDegrees(flagAngle)
	if angle < game.MinAim || angle > game.MaxAim {
		exitf("angle %d outside 9-171 degrees", flagAngle)
	}

	path := g.Preview(angle)
	fmt.Println(headless.Snapshot(g, &path, flagColor))
	fmt.Println()
	if path.Landing.Valid() {
		fmt.Printf("Lands at row %d, col %d after %d bounce(s)", path.Landing.Row, path.Landing.Col, path.N-1)
		if path.Forced {
			fmt.Print(" (bounce budget spent)")
		}
		fmt.Println()
	} else {
		fmt.Printf("No landing cell within %d segments.\n", path.N)
	}
}
