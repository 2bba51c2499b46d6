package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexpop/internal/core"
	"github.com/vovakirdan/hexpop/internal/platform/headless"
	"github.com/vovakirdan/hexpop/internal/storage"
)

var (
	flagFrames int
	flagPaced  bool
	flagLayout string
	flagShow   bool
	flagColor  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [mode]",
	Short: "Autoplay a session",
	Long: `Run one session driven by the autoplayer and record it.

The autoplayer scans launcher angles with the trajectory preview and fires
where the landing cell touches the most matching bubbles. The score and a
session record (seed, frames, checksum) are saved to the database so the
run can be replayed later with 'hexpop verify'.

Examples:
  hexpop simulate
  hexpop simulate survival --difficulty hard --seed 7
  hexpop simulate puzzle --layout ./level1.txt --show
  hexpop simulate arcade --paced --fps 30`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSimulate,
}

func init() {
	addRulesetFlags(simulateCmd)
	simulateCmd.Flags().IntVar(&flagFrames, "frames", core.DefaultConfig().MaxFrames, "Frame limit (0 = until the game ends)")
	simulateCmd.Flags().BoolVar(&flagPaced, "paced", false, "Tick at --fps instead of as fast as possible")
	simulateCmd.Flags().StringVar(&flagLayout, "layout", "", "ASCII starting layout file")
	simulateCmd.Flags().BoolVar(&flagShow, "show", false, "Print the final board")
	simulateCmd.Flags().BoolVar(&flagColor, "color", true, "Color the printed board")
}

func runSimulate(cmd *cobra.Command, args []string) {
	logger := newLogger()

	rules, difficulty, err := loadRules(modeArg(args), flagConfig, flagDifficulty)
	if err != nil {
		exitf("%v", err)
	}

	opts := headless.Options{
		Rules:      rules,
		Difficulty: difficulty,
		Runtime: core.RuntimeConfig{
			TickRate:  flagFPS,
			Seed:      flagSeed,
			MaxFrames: flagFrames,
		},
		Logger: logger,
		Paced:  flagPaced,
	}
	if flagLayout != "" {
		if opts.Layout, err = readLayout(flagLayout); err != nil {
			exitf("%v", err)
		}
	}

	// Continue without storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
	} else {
		defer store.Close()
		opts.Store = store
	}

	runner, err := headless.NewRunner(opts)
	if err != nil {
		exitf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sum, err := runner.Run(ctx)
	if err != nil {
		logger.Warn("session interrupted", "error", err)
	}

	if flagShow {
		fmt.Println(headless.Snapshot(runner.Game(), nil, flagColor))
		fmt.Println()
	}
	printSummary(sum)
}

func printSummary(sum headless.Summary) {
	fmt.Printf("Mode:      %s (%s)\n", sum.Mode, sum.Difficulty)
	fmt.Printf("Seed:      %d\n", sum.Seed)
	fmt.Printf("Outcome:   %s\n", sum.Outcome)
	fmt.Printf("Frames:    %s\n", humanize.Comma(int64(sum.Frames)))
	fmt.Printf("Shots:     %s\n", humanize.Comma(int64(sum.Shots)))
	fmt.Printf("Score:     %s\n", humanize.Comma(sum.Score))
	fmt.Printf("Checksum:  %016x\n", sum.Checksum)
	if sum.SessionID != "" {
		fmt.Printf("Session:   %s\n", sum.SessionID)
	}
}
