package timeline

import (
	"math"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// recorder is a test Effect that remembers every tick it receives.
type recorder struct {
	win   Window
	ticks []tickCall
}

type tickCall struct {
	nt      float64
	elapsed time.Duration
	now     time.Time
}

func (r *recorder) Window() Window { return r.win }
func (r *recorder) Tick(nt float64, elapsed time.Duration, now time.Time) {
	r.ticks = append(r.ticks, tickCall{nt, elapsed, now})
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestScheduler() (*Scheduler, *ManualClock) {
	clock := NewManualClock(epoch)
	return New(clock, zap.NewNop()), clock
}

func TestTotalDurationIsMaxEnd(t *testing.T) {
	s, _ := newTestScheduler()
	s.AddEffect(&recorder{win: Window{Start: 0, Duration: ms(5000)}})
	s.AddEffect(&recorder{win: Window{Start: ms(4000), Duration: ms(2000)}})
	if got := s.TotalDuration(); got != ms(6000) {
		t.Fatalf("want 6000ms, got %v", got)
	}
	s.AddEffect(&recorder{win: Window{Start: ms(100), Duration: ms(100)}})
	if got := s.TotalDuration(); got != ms(6000) {
		t.Fatalf("shorter effect must not shrink total, got %v", got)
	}
}

func TestWindowIsHalfOpen(t *testing.T) {
	s, clock := newTestScheduler()
	e := &recorder{win: Window{Start: ms(1000), Duration: ms(2000)}}
	s.AddEffect(e)
	s.AddEffect(&recorder{win: Window{Start: 0, Duration: ms(4000)}}) // period 4000
	s.Start()

	cases := []struct {
		at     int
		active bool
	}{
		{0, false}, {999, false}, {1000, true}, {2000, true},
		{2999, true}, {3000, false}, {3999, false},
		{5000, true}, // wraps to 1000
	}
	for _, c := range cases {
		before := len(e.ticks)
		clock.Set(epoch.Add(ms(c.at)))
		s.Frame()
		got := len(e.ticks) > before
		if got != c.active {
			t.Errorf("t=%dms: active=%v, want %v", c.at, got, c.active)
		}
	}
}

func TestThreeStaggeredEffects(t *testing.T) {
	s, clock := newTestScheduler()
	effs := []*recorder{
		{win: Window{Start: 0, Duration: ms(300)}},
		{win: Window{Start: ms(100), Duration: ms(300)}},
		{win: Window{Start: ms(200), Duration: ms(300)}},
	}
	for _, e := range effs {
		s.AddEffect(e)
	}
	s.Start()
	clock.Advance(ms(250))

	f, ok := s.Frame()
	if !ok || f.Active != 3 || f.Local != ms(250) {
		t.Fatalf("unexpected frame %+v ok=%v", f, ok)
	}
	wantElapsed := []time.Duration{ms(250), ms(150), ms(50)}
	for i, e := range effs {
		if len(e.ticks) != 1 {
			t.Fatalf("effect %d: want 1 tick, got %d", i, len(e.ticks))
		}
		tc := e.ticks[0]
		want := float64(ms(250)-e.win.Start) / float64(e.win.Duration)
		if tc.elapsed != wantElapsed[i] || math.Abs(tc.nt-want) > 1e-12 {
			t.Errorf("effect %d: got nt=%v elapsed=%v, want nt=%v elapsed=%v",
				i, tc.nt, tc.elapsed, want, wantElapsed[i])
		}
		if !tc.now.Equal(epoch.Add(ms(250))) {
			t.Errorf("effect %d: now=%v", i, tc.now)
		}
	}
	if math.Abs(effs[1].ticks[0].nt-0.5) > 1e-12 {
		t.Fatalf("middle effect should be half way, got %v", effs[1].ticks[0].nt)
	}
}

func TestNormalizedStaysBelowOne(t *testing.T) {
	s, clock := newTestScheduler()
	e := &recorder{win: Window{Start: 0, Duration: ms(300)}}
	s.AddEffect(e)
	s.Start()
	for i := 0; i < 1000; i++ {
		clock.Advance(time.Millisecond + 7*time.Microsecond)
		s.Frame()
	}
	for _, tc := range e.ticks {
		if tc.nt < 0 || tc.nt >= 1 {
			t.Fatalf("normalized out of [0,1): %v", tc.nt)
		}
	}
}

func TestEmptyTimelineIsSafe(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	clock := NewManualClock(epoch)
	s := New(clock, zap.New(core))

	if s.TotalDuration() != 0 {
		t.Fatalf("want zero total, got %v", s.TotalDuration())
	}
	s.Start()
	for i := 0; i < 3; i++ {
		clock.Advance(ms(16))
		f, ok := s.Frame()
		if ok || f.Active != 0 || f.Local != 0 {
			t.Fatalf("empty frame should be inactive, got %+v ok=%v", f, ok)
		}
	}
	if n := logs.FilterMessage("timeline has zero period, skipping frames").Len(); n != 1 {
		t.Fatalf("want one zero-period log, got %d", n)
	}
}

func TestZeroDurationEffectNeverTicks(t *testing.T) {
	s, clock := newTestScheduler()
	z := &recorder{win: Window{Start: ms(100), Duration: 0}}
	s.AddEffect(z)
	s.AddEffect(&recorder{win: Window{Start: 0, Duration: ms(500)}})
	s.Start()
	for i := 0; i < 50; i++ {
		clock.Advance(ms(10))
		s.Frame()
	}
	if len(z.ticks) != 0 {
		t.Fatalf("zero-length window ticked %d times", len(z.ticks))
	}
}

func TestStopIsCooperative(t *testing.T) {
	s, clock := newTestScheduler()
	e := &recorder{win: Window{Start: 0, Duration: ms(1000)}}
	s.AddEffect(e)

	if _, ok := s.Frame(); ok {
		t.Fatal("frame before Start must be a no-op")
	}
	s.Start()
	clock.Advance(ms(10))
	s.Frame()
	s.Stop()
	clock.Advance(ms(10))
	if _, ok := s.Frame(); ok {
		t.Fatal("frame after Stop must be a no-op")
	}
	if len(e.ticks) != 1 || s.Running() {
		t.Fatalf("want exactly one tick and stopped, got %d running=%v", len(e.ticks), s.Running())
	}
	if s.Frames() != 1 {
		t.Fatalf("want 1 counted frame, got %d", s.Frames())
	}
}

func TestPeriodFixedUntilRestart(t *testing.T) {
	s, clock := newTestScheduler()
	s.AddEffect(&recorder{win: Window{Start: 0, Duration: ms(1000)}})
	s.Start()

	late := &recorder{win: Window{Start: ms(1500), Duration: ms(500)}}
	s.AddEffect(late)
	if s.TotalDuration() != ms(2000) || s.Period() != ms(1000) {
		t.Fatalf("total=%v period=%v", s.TotalDuration(), s.Period())
	}
	clock.Advance(ms(1600))
	if f, _ := s.Frame(); f.Local != ms(600) || f.Loop != 1 {
		t.Fatalf("old period should still apply, got %+v", f)
	}
	if len(late.ticks) != 0 {
		t.Fatal("late effect lies outside the running period")
	}

	s.Restart()
	clock.Advance(ms(1600))
	s.Frame()
	if s.Period() != ms(2000) || len(late.ticks) != 1 {
		t.Fatalf("restart should pick up the new period: period=%v ticks=%d", s.Period(), len(late.ticks))
	}
}

func TestClockBeforeOriginClampsToZero(t *testing.T) {
	s, clock := newTestScheduler()
	e := &recorder{win: Window{Start: 0, Duration: ms(100)}}
	s.AddEffect(e)
	s.Start()
	clock.Advance(-ms(50))
	f, ok := s.Frame()
	if !ok || f.Local != 0 || len(e.ticks) != 1 || e.ticks[0].nt != 0 {
		t.Fatalf("got %+v ok=%v ticks=%v", f, ok, e.ticks)
	}
}
