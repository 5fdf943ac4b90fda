// Command harness is the snakepilot test harness binary: it runs many
// independent autopilot-driven games and reports whether the autopilot
// clears its survival targets. Flags mirror spec.md §6, plus --width and
// --height for the board size and the ambient --config and --stream
// extensions described in SPEC_FULL.md §6.2.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "snakepilot-harness:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		runs        int
		steps       int
		threshold   float64
		difficulty  string
		seed        int64
		requireFill bool
		width       int
		height      int
		configPath  string
		streamAddr  string
	)

	cmd := &cobra.Command{
		Use:           "snakepilot-harness",
		Short:         "Run many autopilot-driven games and report a pass/fail summary",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHarness(runOptions{
				runs:        runs,
				steps:       steps,
				threshold:   threshold,
				difficulty:  difficulty,
				seed:        seed,
				requireFill: requireFill,
				width:       width,
				height:      height,
				configPath:  configPath,
				streamAddr:  streamAddr,
			})
		},
	}

	cmd.Flags().IntVar(&runs, "runs", 200, "number of independent games to simulate")
	cmd.Flags().IntVar(&steps, "steps", 15000, "maximum ticks per game before declaring survival")
	cmd.Flags().Float64Var(&threshold, "threshold", 0.95, "minimum pass rate required for a zero exit code")
	cmd.Flags().StringVar(&difficulty, "difficulty", "default", "opaque difficulty tag forwarded to the autopilot")
	cmd.Flags().Int64Var(&seed, "seed", 1, "base PRNG seed; each run derives seed+index")
	cmd.Flags().BoolVar(&requireFill, "require-fill", false, "require filling the board to count as a pass")
	cmd.Flags().IntVar(&width, "width", 20, "board width")
	cmd.Flags().IntVar(&height, "height", 20, "board height")
	cmd.Flags().StringVar(&configPath, "config", "", "optional YAML file overriding autopilot tuning thresholds")
	cmd.Flags().StringVar(&streamAddr, "stream", "", "optional host:port to serve the debug websocket endpoint; runs do not publish board snapshots to it")

	return cmd
}
