// flappy is a terminal Flappy Bird with an optional SSH server.
//
// Usage:
//
//	flappy play              - Play in this terminal
//	flappy serve             - Start SSH server for remote play
//	flappy sim               - Run a headless autopilot game
//	flappy config            - Print the effective game config
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible gameplay
//	--config <path>        - Game config YAML
//	--difficulty <preset>  - easy, normal, hard or fixed
//	--log-level <level>    - debug, info, warn or error
//
// Every global flag can also be set through a FLAPPY_* environment variable
// or a .env file in the working directory. Flags win.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - flap through pipes in your terminal",
	Long: `Flappy is a terminal rendition of Flappy Bird.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  sim      - Run a headless autopilot game
  config   - Print the effective game config

Examples:
  flappy play
  flappy play --difficulty hard
  flappy serve --ssh :2222
  flappy sim --seed 42 --ticks 5000`,
	SilenceUsage:      true,
	PersistentPreRunE: applyEnv,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	flags.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	flags.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	flags.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	flags.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// applyEnv fills every flag the user did not pass from FLAPPY_* variables.
func applyEnv(cmd *cobra.Command, _ []string) error {
	env, err := config.LoadEnv(".env")
	if err != nil {
		return err
	}

	fromEnv := func(name string) bool { return !cmd.Flags().Changed(name) }
	if env.FPS != nil && fromEnv("fps") {
		flagFPS = *env.FPS
	}
	if env.Seed != nil && fromEnv("seed") {
		flagSeed = *env.Seed
	}
	if env.ConfigPath != "" && fromEnv("config") {
		flagConfig = env.ConfigPath
	}
	if env.Difficulty != "" && fromEnv("difficulty") {
		flagDifficulty = env.Difficulty
	}
	if env.LogLevel != "" && fromEnv("log-level") {
		flagLogLevel = env.LogLevel
	}
	if env.LogFile != "" && fromEnv("log-file") {
		flagLogFile = env.LogFile
	}
	if env.Mute != nil && cmd.Flags().Lookup("mute") != nil && fromEnv("mute") {
		flagMute = *env.Mute
	}
	if env.SSHAddr != "" && cmd.Flags().Lookup("ssh") != nil && fromEnv("ssh") {
		flagSSHAddr = env.SSHAddr
	}
	if env.HostKey != "" && cmd.Flags().Lookup("host-key") != nil && fromEnv("host-key") {
		flagHostKey = env.HostKey
	}

	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	return nil
}

// loadGameConfig resolves --config and --difficulty into a validated config.
func loadGameConfig() (config.FlappyConfig, error) {
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return config.FlappyConfig{}, err
	}
	config.ApplyPreset(&cfg, config.ParsePreset(flagDifficulty))
	if err := cfg.Validate(); err != nil {
		return config.FlappyConfig{}, err
	}
	return cfg, nil
}
