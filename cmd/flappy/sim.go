package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/logging"
	"github.com/vovakirdan/tui-flappy/internal/sim"
)

var (
	flagTicks  int
	flagMargin float64
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless autopilot game",
	Long: `Play one game without a terminal UI. The autopilot flaps whenever
the bird falls below the centre of the next gap. Time is simulated, so a
given --seed always produces the same result.

Examples:
  flappy sim --seed 42
  flappy sim --seed 42 --ticks 20000 --margin 30
  flappy sim --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", sim.DefaultMaxTicks, "Stop after this many frames")
	simCmd.Flags().Float64Var(&flagMargin, "margin", 20, "Autopilot dead zone around the gap centre, in px")
}

func runSim(_ *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, flagLogLevel, "sim")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sum, err := sim.Run(ctx, sim.Options{
		Config:   cfg,
		Seed:     flagSeed,
		MaxTicks: flagTicks,
		Pilot:    sim.Autopilot{Margin: flagMargin},
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	fmt.Printf("seed %d: score %d, %d collisions, %d flaps, %d ticks (%s)\n",
		sum.Seed, sum.Score, sum.Collisions, sum.Flaps, sum.Ticks, sum.Elapsed)
	return nil
}
