package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexpop/internal/config"
	"github.com/vovakirdan/hexpop/internal/multiplayer"
	"github.com/vovakirdan/hexpop/internal/platform/headless"
	"github.com/vovakirdan/hexpop/internal/storage"
)

var (
	flagMatchFrames uint64
	flagDelay1      int
	flagDelay2      int
)

var versusCmd = &cobra.Command{
	Use:   "versus",
	Short: "Autoplay a versus match",
	Long: `Run two autoplayed boards side by side on the versus ruleset.
Both boards use the same seed. Bubbles a player drops are sent to the
opponent as garbage rows at the end of each tick. The match ends when a
board is won or lost, or when --frames ticks have passed.

Examples:
  hexpop versus --seed 9
  hexpop versus --delay1 10 --delay2 30 --show
  hexpop versus --difficulty hard --frames 50000`,
	Args: cobra.NoArgs,
	Run:  runVersus,
}

func init() {
	addRulesetFlags(versusCmd)
	versusCmd.Flags().Uint64Var(&flagMatchFrames, "frames", 36000, "Tick limit (0 = until a board ends)")
	versusCmd.Flags().IntVar(&flagDelay1, "delay1", headless.DefaultDelay, "Player 1 frames between shots")
	versusCmd.Flags().IntVar(&flagDelay2, "delay2", headless.DefaultDelay+5, "Player 2 frames between shots")
	versusCmd.Flags().BoolVar(&flagPaced, "paced", false, "Tick at --fps instead of as fast as possible")
	versusCmd.Flags().BoolVar(&flagShow, "show", false, "Print both final boards")
	versusCmd.Flags().BoolVar(&flagColor, "color", true, "Color the printed boards")
}

func runVersus(cmd *cobra.Command, args []string) {
	logger := newLogger()

	rules, _, err := loadRules(config.ModeVersus.String(), flagConfig, flagDifficulty)
	if err != nil {
		exitf("%v", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := []multiplayer.MatchOption{
		multiplayer.WithEventSink(headless.MatchSink(logger)),
		multiplayer.WithFrameLimit(flagMatchFrames),
	}
	if flagPaced {
		opts = append(opts, multiplayer.WithTickRate(flagFPS))
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
	} else {
		defer store.Close()
		opts = append(opts, multiplayer.WithResultSaver(store))
	}

	match, err := multiplayer.NewVersusMatch(rules, seed, opts...)
	if err != nil {
		exitf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("match start", "match", match.ID(), "seed", seed)
	res, err := match.Play(ctx,
		headless.NewAutoPlayer(flagDelay1),
		headless.NewAutoPlayer(flagDelay2))
	if err != nil {
		logger.Warn("match result", "error", err)
	}

	if flagShow {
		for _, p := range []multiplayer.PlayerID{multiplayer.Player1, multiplayer.Player2} {
			fmt.Println(p)
			fmt.Println(headless.Snapshot(match.Game(p), nil, flagColor))
			fmt.Println()
		}
	}

	fmt.Printf("Match:     %s\n", res.MatchID)
	fmt.Printf("Seed:      %d\n", seed)
	fmt.Printf("Ended:     %s after %s ticks\n", res.Reason, humanize.Comma(int64(res.Ticks)))
	if res.Winner == 0 {
		fmt.Println("Winner:    draw")
	} else {
		fmt.Printf("Winner:    %s\n", res.Winner)
	}
	fmt.Printf("  %-4s  %-12s  %s\n", "", "Score", "Garbage sent")
	fmt.Printf("  %-4s  %-12s  %s\n", "P1", humanize.Comma(res.Score1), humanize.Comma(int64(match.GarbageSent(multiplayer.Player1))))
	fmt.Printf("  %-4s  %-12s  %s\n", "P2", humanize.Comma(res.Score2), humanize.Comma(int64(match.GarbageSent(multiplayer.Player2))))
	fmt.Printf("Checksum:  %016x\n", res.Checksum)
}
