package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// SampleRate is the rate every cue is synthesized at.
const SampleRate = beep.SampleRate(44100)

// Note frequencies in Hz.
const (
	noteC3 = 130.81
	noteE3 = 164.81
	noteG3 = 196.00
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
	noteC6 = 1046.50
	noteE6 = 1318.51
)

const (
	buzzDuration  = 180 * time.Millisecond
	blipNote      = 60 * time.Millisecond
	arpeggioStep  = 150 * time.Millisecond
	gameOverStep  = 400 * time.Millisecond
	fadeInSeconds = 0.01
)

// sequencer plays a repeating list of notes forever. A zero frequency is a
// rest.
type sequencer struct {
	sr     beep.SampleRate
	notes  []float64
	step   int
	amp    float64
	pos    int
	phase  float64
	square bool
}

func newSequencer(sr beep.SampleRate, notes []float64, step time.Duration, amp float64, square bool) *sequencer {
	return &sequencer{
		sr:     sr,
		notes:  notes,
		step:   sr.N(step),
		amp:    amp,
		square: square,
	}
}

func (s *sequencer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		idx := (s.pos / s.step) % len(s.notes)
		freq := s.notes[idx]

		var val float64
		if freq > 0 {
			// Short decay per note keeps the loop from droning.
			into := float64(s.pos%s.step) / float64(s.step)
			env := 1 - 0.7*into
			if s.square {
				if s.phase < 0.5 {
					val = 1
				} else {
					val = -1
				}
			} else {
				val = math.Sin(2 * math.Pi * s.phase)
			}
			val *= s.amp * env
			s.phase += freq / float64(s.sr)
			s.phase -= math.Floor(s.phase)
		}

		samples[i][0] = val
		samples[i][1] = val
		s.pos++
	}
	return len(samples), true
}

func (s *sequencer) Err() error { return nil }

// buzzGenerator is a harsh low tone with a few harmonics.
type buzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func (g *buzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		val := 0.3 * math.Sin(2*math.Pi*g.freq*t)
		val += 0.15 * math.Sin(2*math.Pi*g.freq*2*t)
		val += 0.075 * math.Sin(2*math.Pi*g.freq*3*t)
		val *= math.Min(t/fadeInSeconds, 1) * 0.5

		samples[i][0] = val
		samples[i][1] = val
		g.pos++
	}
	return len(samples), true
}

func (g *buzzGenerator) Err() error { return nil }

// Music is the background arpeggio played while a game is running.
// It never ends.
func Music(sr beep.SampleRate) beep.Streamer {
	return newSequencer(sr, []float64{noteC5, noteE5, noteG5, noteC6, noteG5, noteE5}, arpeggioStep, 0.06, true)
}

// GameOverMotif is the slow falling figure looped after the last life.
// It never ends.
func GameOverMotif(sr beep.SampleRate) beep.Streamer {
	return newSequencer(sr, []float64{noteG3, noteE3, noteC3, 0}, gameOverStep, 0.12, false)
}

// Buzz is the warning sound for a counted collision.
func Buzz(sr beep.SampleRate) beep.Streamer {
	return beep.Take(sr.N(buzzDuration), &buzzGenerator{sr: sr, freq: 110})
}

// Blip is the two-note chime for a point.
func Blip(sr beep.SampleRate) beep.Streamer {
	first, err := generators.SineTone(sr, noteC6)
	if err != nil {
		return beep.Silence(sr.N(2 * blipNote))
	}
	second, err := generators.SineTone(sr, noteE6)
	if err != nil {
		return beep.Silence(sr.N(2 * blipNote))
	}
	seq := beep.Seq(beep.Take(sr.N(blipNote), first), beep.Take(sr.N(blipNote), second))
	return withVolume(seq, 0.25)
}

// withVolume scales s linearly. Zero or negative volume silences it.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
