package flappy

// CancelFunc stops a scheduled frame loop. Calling it more than once is safe.
type CancelFunc func()

// Scheduler drives the engine's frame loop while a game is in progress.
type Scheduler interface {
	Schedule(frame func()) CancelFunc
}

// FrameScheduler is a Scheduler pulsed by a host loop. Each Schedule call
// starts a new generation; the host stamps its pulses with the generation it
// saw and Fire ignores pulses from older generations, so a host loop that
// outlives its game stops on its own.
type FrameScheduler struct {
	frame  func()
	gen    uint64
	active bool
}

// NewFrameScheduler creates an idle scheduler.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

// Schedule registers frame as the current loop and returns its cancel func.
func (s *FrameScheduler) Schedule(frame func()) CancelFunc {
	s.gen++
	gen := s.gen
	s.frame = frame
	s.active = true
	return func() {
		if s.gen == gen {
			s.active = false
			s.frame = nil
		}
	}
}

// Active reports whether a loop is scheduled.
func (s *FrameScheduler) Active() bool { return s.active }

// Generation returns the generation of the most recent Schedule call.
func (s *FrameScheduler) Generation() uint64 { return s.gen }

// Fire runs one frame if gen is the current, still active generation.
// It reports whether a frame ran.
func (s *FrameScheduler) Fire(gen uint64) bool {
	if !s.active || gen != s.gen || s.frame == nil {
		return false
	}
	s.frame()
	return true
}
