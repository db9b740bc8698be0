package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/logging"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Space/Up/W - Flap (starts the game)
  Enter/S    - Start without flapping
  R          - Restart (after game over)
  Tab        - Runs of this session
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  flappy play
  flappy play --difficulty hard
  flappy play --mute --seed 7
  flappy play --config ./my-flappy.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	// The alternate screen owns stdout, so logs only go to a file.
	logger, logFile, err := logging.OpenFile(flagLogFile, flagLogLevel, "flappy")
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	journal, err := storage.OpenJournal("local")
	if err != nil {
		// The game still works without a journal.
		logger.Warn("run journal unavailable", "err", err)
		journal = nil
	}
	if journal != nil {
		defer journal.Close()
	}

	out := audio.OpenOutput(flagMute, logger)
	defer out.Close()

	runErr := tui.Run(tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Player:  playerName(),
		Journal: journal,
		Sink:    out,
		Logger:  logger,
	})
	if runErr != nil {
		return fmt.Errorf("error running game: %w", runErr)
	}
	return nil
}

func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "player"
}
