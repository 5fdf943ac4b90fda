package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/gerd03/snakepilot/internal/harness"
	"github.com/gerd03/snakepilot/internal/stream"
)

type runOptions struct {
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
}

func runHarness(opts runOptions) error {
	autopilotCfg, err := loadAutopilotConfig(opts.configPath)
	if err != nil {
		return err
	}

	cfg := harness.Config{
		Runs:        opts.runs,
		Steps:       opts.steps,
		Threshold:   opts.threshold,
		Difficulty:  opts.difficulty,
		Seed:        opts.seed,
		RequireFill: opts.requireFill,
		Width:       opts.width,
		Height:      opts.height,
		Autopilot:   autopilotCfg,
	}

	if opts.streamAddr != "" {
		broadcaster := stream.NewBroadcaster(nil)
		go func() {
			if err := http.ListenAndServe(opts.streamAddr, broadcaster); err != nil {
				fmt.Fprintln(os.Stderr, "snakepilot-harness: stream server stopped:", err)
			}
		}()
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = fmt.Sprintf(" running %d games (up to %d steps each)...", cfg.Runs, cfg.Steps)
	s.Start()

	summary, err := harness.Run(context.Background(), cfg)
	s.Stop()
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))

	passed := summary.Results.PassRate >= cfg.Threshold
	printSummaryLine(summary, passed)

	if !passed {
		return fmt.Errorf("pass_rate %.4f below threshold %.4f", summary.Results.PassRate, cfg.Threshold)
	}
	return nil
}

func printSummaryLine(summary harness.Summary, passed bool) {
	line := fmt.Sprintf(
		"pass_rate=%.4f full_win_rate=%.4f avg_steps=%.1f avg_fruits=%.1f",
		summary.Results.PassRate, summary.Results.FullWinRate, summary.Results.AvgSteps, summary.Results.AvgFruits,
	)
	if passed {
		color.New(color.FgGreen).Fprintln(os.Stderr, line)
	} else {
		color.New(color.FgRed).Fprintln(os.Stderr, line)
	}
}
