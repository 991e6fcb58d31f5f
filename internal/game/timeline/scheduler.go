// Package timeline maps a looping global clock onto per-effect progress.
//
// Every effect owns a window [Start, Start+Duration) inside one loop of the
// shared timeline. The loop period is the latest end time of all effects.
// Each frame the scheduler computes the local loop time and ticks the
// effects whose window contains it, in registration order.
package timeline

import (
	"time"

	"go.uber.org/zap"
)

// Window is an effect's slot inside one loop.
type Window struct {
	Start    time.Duration
	Duration time.Duration
}

// End is the first instant after the window.
func (w Window) End() time.Duration { return w.Start + w.Duration }

// Contains reports whether local falls in [Start, End). Zero-length windows
// contain nothing.
func (w Window) Contains(local time.Duration) bool {
	return w.Duration > 0 && local >= w.Start && local < w.End()
}

// Effect is anything the scheduler can drive.
//
// Tick receives the normalized progress in [0,1), the time elapsed since the
// window opened, and the wall-clock time of the frame.
type Effect interface {
	Window() Window
	Tick(normalized float64, elapsed time.Duration, now time.Time)
}

// Frame summarises one scheduler step.
type Frame struct {
	Now    time.Time
	Local  time.Duration // position inside the current loop
	Loop   uint64        // completed loops since Start
	Active int           // effects ticked this frame
}

type Scheduler struct {
	clock Clock
	log   *zap.Logger

	effects []Effect
	total   time.Duration

	period  time.Duration // total as of Start/Restart
	origin  time.Time
	running bool

	frames      uint64
	warnedEmpty bool
}

func New(clock Clock, log *zap.Logger) *Scheduler {
	if clock == nil {
		clock = WallClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		clock:   clock,
		log:     log,
		effects: make([]Effect, 0, 64),
	}
}

// AddEffect registers e and extends TotalDuration to cover its window. A
// running loop keeps its period until Restart.
func (s *Scheduler) AddEffect(e Effect) {
	if end := e.Window().End(); end > s.total {
		s.total = end
	}
	s.effects = append(s.effects, e)
}

// TotalDuration is the latest end time of any registered effect.
func (s *Scheduler) TotalDuration() time.Duration { return s.total }

// Period is the loop length the running loop uses.
func (s *Scheduler) Period() time.Duration { return s.period }

func (s *Scheduler) Len() int { return len(s.effects) }

func (s *Scheduler) Running() bool { return s.running }

// Frames counts Frame calls that ran while started.
func (s *Scheduler) Frames() uint64 { return s.frames }

// Start records the clock origin, fixes the loop period and marks the loop
// running. Calling it again simply restarts the clock.
func (s *Scheduler) Start() {
	s.origin = s.clock.Now()
	s.period = s.total
	s.running = true
	s.warnedEmpty = false
	s.log.Info("timeline started",
		zap.Int("effects", len(s.effects)),
		zap.Duration("period", s.period))
}

// Stop clears the running flag. The frame in progress, if any, completes.
func (s *Scheduler) Stop() {
	if !s.running {
		return
	}
	s.running = false
	s.log.Info("timeline stopped", zap.Uint64("frames", s.frames))
}

// Restart re-derives the period from the current effect set and starts a
// fresh loop.
func (s *Scheduler) Restart() {
	s.Start()
}

// LocalTime maps now onto the current loop. ok is false when the period is
// zero, where no loop position exists.
func (s *Scheduler) LocalTime(now time.Time) (local time.Duration, loop uint64, ok bool) {
	if s.period <= 0 {
		return 0, 0, false
	}
	since := now.Sub(s.origin)
	if since < 0 {
		since = 0
	}
	return since % s.period, uint64(since / s.period), true
}

// Frame runs one step: sample the clock and tick every effect whose window
// contains the local loop time. It returns false when nothing was evaluated
// (stopped, or an empty timeline).
func (s *Scheduler) Frame() (Frame, bool) {
	if !s.running {
		return Frame{}, false
	}
	s.frames++
	now := s.clock.Now()
	local, loop, ok := s.LocalTime(now)
	if !ok {
		if !s.warnedEmpty {
			s.warnedEmpty = true
			s.log.Debug("timeline has zero period, skipping frames",
				zap.Int("effects", len(s.effects)))
		}
		return Frame{Now: now}, false
	}

	f := Frame{Now: now, Local: local, Loop: loop}
	for _, e := range s.effects {
		w := e.Window()
		if !w.Contains(local) {
			continue
		}
		elapsed := local - w.Start
		e.Tick(float64(elapsed)/float64(w.Duration), elapsed, now)
		f.Active++
	}
	return f, true
}
