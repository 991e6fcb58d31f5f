// Package particles holds the coin burst effect: sprites thrown out of an
// anchor point along a fixed random heading, growing, spinning and fading as
// their normalized time runs from 0 to 1.
package particles

import (
	"math"
	"math/rand"
	"time"

	"coinburst/internal/game/scene"
	"coinburst/internal/game/textures"
	"coinburst/internal/game/timeline"
)

const (
	DefaultDuration   = 6000 * time.Millisecond
	DefaultMinSpeed   = 100.0
	DefaultSpeedRange = 300.0
	DefaultFrameSteps = 8
	DefaultTexture    = "CoinsGold"

	// Full turns a coin makes over one playthrough.
	Turns = 2
)

// DefaultAnchor is the centre of the 800x450 canvas.
var DefaultAnchor = Point{X: 400, Y: 225}

type Point struct{ X, Y float64 }

// Textures is the texture service a coin binds its frames through.
type Textures interface {
	Sprite(name string) *scene.Sprite
	SetTexture(sp *scene.Sprite, name string) bool
}

// Options configure a coin. Zero fields take the defaults above.
type Options struct {
	Duration   time.Duration
	Anchor     *Point
	MinSpeed   float64
	SpeedRange float64
	FrameSteps int // frame = floor(nt * FrameSteps)
	FrameCount int // frames available in the sheet; 0 leaves the index unclamped above
	Texture    string
	Rand       *rand.Rand // nil uses the math/rand global source
}

func (o Options) withDefaults() Options {
	if o.Duration <= 0 {
		o.Duration = DefaultDuration
	}
	if o.Anchor == nil {
		a := DefaultAnchor
		o.Anchor = &a
	}
	if o.MinSpeed == 0 && o.SpeedRange == 0 {
		o.MinSpeed, o.SpeedRange = DefaultMinSpeed, DefaultSpeedRange
	}
	if o.FrameSteps <= 0 {
		o.FrameSteps = DefaultFrameSteps
	}
	if o.Texture == "" {
		o.Texture = DefaultTexture
	}
	return o
}

func (o Options) random() float64 {
	if o.Rand != nil {
		return o.Rand.Float64()
	}
	return rand.Float64()
}

// Pose is the visual state of a coin at one instant.
type Pose struct {
	X, Y     float64
	Scale    float64
	Alpha    float64
	Rotation float64
	Frame    int
}

// Coin is one particle of the burst. Angle and Speed are fixed at creation;
// everything else is recomputed from normalized time on each tick.
type Coin struct {
	Start    time.Duration
	Duration time.Duration
	Angle    float64 // radians, [0, 2π)
	Speed    float64 // px travelled at nt = 1

	anchor     Point
	frameSteps int
	frameCount int
	texture    string

	tex    Textures
	sprite *scene.Sprite
	pose   Pose
}

// New creates a coin parked on the anchor, invisible until its first tick.
func New(tex Textures, opts Options) *Coin {
	opts = opts.withDefaults()
	c := &Coin{
		Duration:   opts.Duration,
		Angle:      opts.random() * 2 * math.Pi,
		Speed:      opts.MinSpeed + opts.random()*opts.SpeedRange,
		anchor:     *opts.Anchor,
		frameSteps: opts.FrameSteps,
		frameCount: opts.FrameCount,
		texture:    opts.Texture,
		tex:        tex,
	}
	c.sprite = tex.Sprite(textures.TextureName(c.texture, 0))
	c.pose = Pose{X: c.anchor.X, Y: c.anchor.Y}
	c.apply()
	return c
}

func (c *Coin) Window() timeline.Window {
	return timeline.Window{Start: c.Start, Duration: c.Duration}
}

// Tick poses the coin for normalized time nt. Only nt matters; the elapsed
// and wall-clock times are accepted for effects that need them.
func (c *Coin) Tick(nt float64, _ time.Duration, _ time.Time) {
	c.pose = c.Evaluate(nt)
	c.tex.SetTexture(c.sprite, textures.TextureName(c.texture, c.pose.Frame))
	c.apply()
}

// Evaluate computes the pose at nt without touching the sprite.
func (c *Coin) Evaluate(nt float64) Pose {
	p := Position(c.anchor, c.Angle, c.Speed, nt)
	return Pose{
		X:        p.X,
		Y:        p.Y,
		Scale:    Scale(nt),
		Alpha:    Alpha(nt),
		Rotation: Rotation(nt),
		Frame:    FrameIndex(nt, c.frameSteps, c.frameCount),
	}
}

func (c *Coin) apply() {
	sp := c.sprite
	sp.X, sp.Y = c.pose.X, c.pose.Y
	sp.SetScale(c.pose.Scale)
	sp.Alpha = c.pose.Alpha
	sp.Rotation = c.pose.Rotation
}

// Attach adds the coin's sprite to parent.
func (c *Coin) Attach(parent *scene.Container) { parent.AddChild(c.sprite) }

func (c *Coin) Sprite() *scene.Sprite { return c.sprite }

// Pose is the state applied by the last tick (or the initial parked pose).
func (c *Coin) Pose() Pose { return c.pose }

// FrameIndex is floor(nt*steps), kept within [0, count-1] when count > 0.
func FrameIndex(nt float64, steps, count int) int {
	i := int(math.Floor(nt * float64(steps)))
	if i < 0 {
		i = 0
	}
	if count > 0 && i > count-1 {
		i = count - 1
	}
	return i
}

// Position is anchor + (cos, sin)(angle) * nt * speed.
func Position(anchor Point, angle, speed, nt float64) Point {
	d := nt * speed
	return Point{
		X: anchor.X + math.Cos(angle)*d,
		Y: anchor.Y + math.Sin(angle)*d,
	}
}

func Scale(nt float64) float64    { return nt }
func Alpha(nt float64) float64    { return 1 - nt }
func Rotation(nt float64) float64 { return nt * Turns * 2 * math.Pi }
