package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexpop/internal/config"
	"github.com/vovakirdan/hexpop/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show high scores for a mode",
	Long: `Display the top 10 high scores for the specified mode.

Examples:
  hexpop scores arcade
  hexpop scores survival
  hexpop scores puzzle --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores for the mode")
}

func runScores(cmd *cobra.Command, args []string) {
	mode, err := config.ParseMode(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'hexpop modes' to see available modes.")
		os.Exit(1)
	}
	name := mode.String()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening scores database: %v", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(name); err != nil {
			exitf("clearing scores: %v", err)
		}
		fmt.Printf("Cleared scores for %s.\n", name)
		return
	}

	scores, err := store.TopScores(name, 10)
	if err != nil {
		exitf("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", name)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'hexpop simulate %s' to set the first high score!\n", name)
		return
	}

	fmt.Printf("  %-4s  %-12s  %s\n", "Rank", "Score", "When")
	fmt.Printf("  %-4s  %-12s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		fmt.Printf("  %-4d  %-12s  %s\n", i+1, humanize.Comma(entry.Score), humanize.Time(entry.CreatedAt))
	}

	fmt.Println()
	if stats, err := store.Stats(name); err == nil {
		fmt.Printf("Best: %s  Games: %d  Average: %s\n",
			humanize.Comma(stats.HighScore), stats.GamesCount, humanize.CommafWithDigits(stats.AvgScore, 1))
	}
}
