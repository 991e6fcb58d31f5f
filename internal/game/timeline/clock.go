package timeline

import "time"

// Clock is the time source the scheduler samples once per frame.
type Clock interface {
	Now() time.Time
}

// WallClock reads time.Now, monotonic reading included.
type WallClock struct{}

func (WallClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to. Single goroutine use.
type ManualClock struct {
	t time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{t: start}
}

func (c *ManualClock) Now() time.Time { return c.t }

func (c *ManualClock) Set(t time.Time) { c.t = t }

func (c *ManualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
