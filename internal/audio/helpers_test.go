package audio

import (
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var testStart = time.Unix(1_700_000_000, 0)

func flappyTestConfig() config.FlappyConfig {
	return config.DefaultFlappyConfig()
}
