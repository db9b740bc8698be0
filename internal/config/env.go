package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every variable read by LoadEnv.
const EnvPrefix = "FLAPPY_"

// Env holds settings that may come from the process environment.
// Pointer fields distinguish "unset" from a zero value.
type Env struct {
	FPS        *int   `env:"FPS"`
	Seed       *int64 `env:"SEED"`
	ConfigPath string `env:"CONFIG"`
	Difficulty string `env:"DIFFICULTY"`
	Mute       *bool  `env:"MUTE"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile    string `env:"LOG_FILE"`
	SSHAddr    string `env:"SSH_ADDR"`
	HostKey    string `env:"HOST_KEY"`
}

// LoadEnv reads an optional dotenv file, then parses FLAPPY_* variables.
// A missing dotenv file is not an error. Variables already present in the
// environment win over the file.
func LoadEnv(dotenvPath string) (Env, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, fmt.Errorf("config: cannot load %s: %w", dotenvPath, err)
		}
	}

	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Prefix: EnvPrefix}); err != nil {
		return Env{}, fmt.Errorf("config: cannot parse environment: %w", err)
	}
	return e, nil
}
