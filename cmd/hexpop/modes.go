package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexpop/internal/config"
)

var flagDump string

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the built-in mode rulesets",
	Long: `Shows every built-in mode with its main settings.
Use --dump to print a mode's full ruleset as YAML, ready to edit and pass
back with --config.`,
	Run: runModes,
}

func init() {
	modesCmd.Flags().StringVar(&flagDump, "dump", "", "Print the full ruleset of a mode as YAML")
}

func runModes(cmd *cobra.Command, args []string) {
	if flagDump != "" {
		mode, err := config.ParseMode(flagDump)
		if err != nil {
			exitf("%v", err)
		}
		data, err := config.Marshal(config.Preset(mode))
		if err != nil {
			exitf("%v", err)
		}
		os.Stdout.Write(data)
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()
	fmt.Printf("  %-12s  %-6s  %-7s  %-7s  %-8s  %s\n", "Mode", "Board", "Colors", "Bounce", "Pressure", "Lose on")
	fmt.Printf("  %-12s  %-6s  %-7s  %-7s  %-8s  %s\n", "----", "-----", "------", "------", "--------", "-------")

	for _, m := range config.Modes() {
		r := config.Preset(m)
		pressure := "-"
		if r.ShotsPerRowInsert > 0 {
			pressure = fmt.Sprintf("%d shots", r.ShotsPerRowInsert)
		}
		lose := "nothing"
		switch {
		case r.LoseOn.Overflow && r.LoseOn.Timeout:
			lose = "overflow, timeout"
		case r.LoseOn.Overflow:
			lose = "overflow"
		case r.LoseOn.Timeout:
			lose = "timeout"
		}
		fmt.Printf("  %-12s  %-6s  %-7d  %-7d  %-8s  %s\n",
			m, fmt.Sprintf("%dx%d", r.ColsEven, r.Rows), r.AllowedColors.Count(), r.MaxBounces, pressure, lose)
	}

	fmt.Println()
	fmt.Println("Run 'hexpop simulate <mode>' to autoplay a session.")
}
