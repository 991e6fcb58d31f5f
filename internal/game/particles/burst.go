package particles

import (
	"time"

	"coinburst/internal/game/scene"
	"coinburst/internal/game/timeline"
)

// Burst is a staggered group of coins: coin i starts at Offset + i*Interval.
type Burst struct {
	Name     string
	Texture  string
	Coins    int
	Interval time.Duration
	Duration time.Duration
	Offset   time.Duration
}

// End is when the last coin of the burst finishes, relative to the loop.
func (b Burst) End() time.Duration {
	if b.Coins <= 0 {
		return 0
	}
	d := b.Duration
	if d <= 0 {
		d = DefaultDuration
	}
	return b.Offset + time.Duration(b.Coins-1)*b.Interval + d
}

// Registrar accepts effects; *timeline.Scheduler satisfies it.
type Registrar interface {
	AddEffect(timeline.Effect)
}

// Spawn creates the burst's coins, registers each with sched and attaches
// its sprite to stage. opts supplies everything the burst does not set.
func Spawn(b Burst, tex Textures, sched Registrar, stage *scene.Container, opts Options) []*Coin {
	if b.Duration > 0 {
		opts.Duration = b.Duration
	}
	if b.Texture != "" {
		opts.Texture = b.Texture
	}
	coins := make([]*Coin, 0, max(b.Coins, 0))
	for i := 0; i < b.Coins; i++ {
		c := New(tex, opts)
		c.Start = b.Offset + time.Duration(i)*b.Interval
		sched.AddEffect(c)
		c.Attach(stage)
		coins = append(coins, c)
	}
	return coins
}
