// Package audio synthesizes the game's sound cues and plays them through
// the system speaker.
package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Sink accepts streamers for playback.
type Sink interface {
	// Play starts s alongside anything already playing.
	Play(s beep.Streamer)
	// Update runs fn while no samples are being pulled, so fn may mutate
	// controls of streamers handed to Play.
	Update(fn func())
}

// Output mixes cues onto the speaker. A muted Output accepts everything
// and plays nothing.
type Output struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	enabled bool
}

// Muted returns an output that never touches the audio device.
func Muted() *Output {
	return &Output{}
}

// OpenOutput initializes the speaker. When mute is set, or the device can't
// be opened, the returned output is muted and the game carries on silently.
func OpenOutput(mute bool, logger *log.Logger) *Output {
	if mute {
		return Muted()
	}

	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		if logger != nil {
			logger.Warn("audio disabled", "error", err)
		}
		return Muted()
	}

	o := &Output{mixer: &beep.Mixer{}, enabled: true}
	speaker.Play(o.mixer)
	return o
}

// Enabled reports whether the output reaches a device.
func (o *Output) Enabled() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.enabled
}

// Play adds s to the mix.
func (o *Output) Play(s beep.Streamer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.enabled {
		return
	}
	speaker.Lock()
	o.mixer.Add(s)
	speaker.Unlock()
}

// Update runs fn under the speaker lock.
func (o *Output) Update(fn func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.enabled {
		fn()
		return
	}
	speaker.Lock()
	fn()
	speaker.Unlock()
}

// Close stops playback and releases the device.
func (o *Output) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.enabled {
		return
	}
	speaker.Lock()
	o.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	o.enabled = false
}
