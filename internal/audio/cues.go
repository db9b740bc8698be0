package audio

import (
	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// Cues turns engine events into sounds: music while playing, a buzz on
// each counted collision, a blip per point and a looping motif after the
// last life.
type Cues struct {
	sink     Sink
	rate     beep.SampleRate
	music    *beep.Ctrl
	gameOver *beep.Ctrl
}

// NewCues creates cues playing into sink.
func NewCues(sink Sink) *Cues {
	return &Cues{sink: sink, rate: SampleRate}
}

// Hooks returns the engine hooks driving the cues.
func (c *Cues) Hooks() flappy.Hooks {
	return flappy.Hooks{
		OnPhaseChange:    c.onPhaseChange,
		OnCollision:      func(flappy.CollisionEvent) { c.sink.Play(Buzz(c.rate)) },
		OnScoreIncrement: func(flappy.ScoreEvent) { c.sink.Play(Blip(c.rate)) },
	}
}

func (c *Cues) onPhaseChange(ev flappy.PhaseChangeEvent) {
	c.stopLoops()

	switch ev.To {
	case flappy.PhasePlaying:
		c.music = &beep.Ctrl{Streamer: Music(c.rate)}
		c.sink.Play(c.music)
	case flappy.PhaseGameOver:
		c.gameOver = &beep.Ctrl{Streamer: GameOverMotif(c.rate)}
		c.sink.Play(c.gameOver)
	}
}

// Stop silences the looping cues.
func (c *Cues) Stop() {
	c.stopLoops()
}

func (c *Cues) stopLoops() {
	c.sink.Update(func() {
		if c.music != nil {
			c.music.Paused = true
			c.music.Streamer = nil
		}
		if c.gameOver != nil {
			c.gameOver.Paused = true
			c.gameOver.Streamer = nil
		}
	})
	c.music = nil
	c.gameOver = nil
}

// MusicPlaying reports whether the background loop is running.
func (c *Cues) MusicPlaying() bool {
	return c.music != nil && !c.music.Paused
}

// GameOverPlaying reports whether the game-over loop is running.
func (c *Cues) GameOverPlaying() bool {
	return c.gameOver != nil && !c.gameOver.Paused
}
