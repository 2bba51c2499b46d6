// hexpop is a headless driver for the hex bubble-shooter simulation.
//
// Usage:
//
//	hexpop modes                 - List built-in mode rulesets
//	hexpop simulate [mode]       - Run an autoplayed session
//	hexpop preview [mode]        - Draw the aim preview for one angle
//	hexpop versus                - Run an autoplayed versus match
//	hexpop scores <mode>         - Show high scores for a mode
//	hexpop verify <session-id>   - Replay a recorded session and compare checksums
//
// Global flags:
//
//	--fps <rate>    - Set tick rate for paced runs (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.hexpop/hexpop.db)
//	--verbose       - Log every game event
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexpop/internal/board"
	"github.com/vovakirdan/hexpop/internal/config"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagVerbose bool

	// Shared by the commands that build a ruleset
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hexpop",
	Short: "Hexpop - deterministic hex bubble-shooter simulation",
	Long: `Hexpop runs the hex-grid bubble-shooter simulation without a UI.
Sessions are deterministic: the same mode, difficulty and seed always
produce the same game, which 'verify' checks against recorded checksums.

Available commands:
  modes     - Show the built-in rulesets
  simulate  - Autoplay a session and record it
  preview   - Draw the predicted path of a shot
  versus    - Autoplay a versus match with garbage exchange
  scores    - View high scores
  verify    - Replay a recorded session

Examples:
  hexpop modes --dump survival
  hexpop simulate arcade --seed 42
  hexpop preview puzzle --angle 60
  hexpop versus --frames 20000
  hexpop scores arcade
  hexpop verify 1f0c...`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second) for paced runs")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.hexpop/hexpop.db", "Path to scores database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every game event")

	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(versusCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(verifyCmd)
}

// addRulesetFlags registers --config and --difficulty on cmd.
func addRulesetFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom ruleset YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "hexpop",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadRules resolves the mode ruleset, applies the difficulty and
// validates the result.
func loadRules(modeName, cfgPath, difficulty string) (config.Ruleset, config.Difficulty, error) {
	mode, err := config.ParseMode(modeName)
	if err != nil {
		return config.Ruleset{}, "", err
	}
	rules, err := config.Load(cfgPath, mode)
	if err != nil {
		return config.Ruleset{}, "", err
	}
	d, err := config.ParseDifficulty(difficulty)
	if err != nil {
		return config.Ruleset{}, "", err
	}
	config.ApplyDifficulty(&rules, d)
	if err := rules.Validate(); err != nil {
		return config.Ruleset{}, "", err
	}
	return rules, d, nil
}

// readLayout parses an ASCII board file, one row per line.
func readLayout(path string) ([][]board.Bubble, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	var lines []string
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		lines = append(lines, strings.TrimRight(line, "\r"))
	}
	return board.ParseRows(lines)
}

// modeArg returns the optional mode argument, defaulting to arcade.
func modeArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return config.ModeArcade.String()
}

func exitf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", a...)
	os.Exit(1)
}
