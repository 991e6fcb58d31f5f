// Package scene is a minimal retained drawable tree on top of ebiten: sprites
// hold transform and alpha, containers hold children in draw order.
package scene

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Texture is a named, uploaded image. Width and Height come from the decoded
// source so they are known even when Image is not.
type Texture struct {
	Name          string
	Image         *ebiten.Image
	Width, Height int
}

// Drawable is anything that can paint itself onto a target image.
type Drawable interface {
	Draw(dst *ebiten.Image)
}

// Attacher is implemented by entities that own drawables and put them into a
// container themselves.
type Attacher interface {
	Attach(parent *Container)
}

// Sprite is a textured quad. Rotation is in radians, clockwise on screen.
// PivotX/PivotY are in texture pixels and land on (X, Y).
type Sprite struct {
	X, Y           float64
	ScaleX, ScaleY float64
	Rotation       float64
	Alpha          float64
	PivotX, PivotY float64
	Texture        *Texture
}

// NewSprite returns a visible, unscaled sprite pivoting on the texture centre.
func NewSprite(tex *Texture) *Sprite {
	sp := &Sprite{ScaleX: 1, ScaleY: 1, Alpha: 1, Texture: tex}
	sp.CenterPivot()
	return sp
}

// CenterPivot moves the pivot to the middle of the current texture.
func (sp *Sprite) CenterPivot() {
	if sp.Texture == nil {
		return
	}
	sp.PivotX = float64(sp.Texture.Width) / 2
	sp.PivotY = float64(sp.Texture.Height) / 2
}

// SetScale sets a uniform scale.
func (sp *Sprite) SetScale(s float64) { sp.ScaleX, sp.ScaleY = s, s }

// Visible reports whether drawing would put any pixels on screen.
func (sp *Sprite) Visible() bool {
	return sp.Texture != nil && sp.Texture.Image != nil &&
		sp.Alpha > 0 && sp.ScaleX != 0 && sp.ScaleY != 0
}

// GeoM is the texture-to-screen transform: pivot, scale, rotate, translate.
func (sp *Sprite) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-sp.PivotX, -sp.PivotY)
	g.Scale(sp.ScaleX, sp.ScaleY)
	g.Rotate(sp.Rotation)
	g.Translate(sp.X, sp.Y)
	return g
}

func (sp *Sprite) Draw(dst *ebiten.Image) {
	if !sp.Visible() {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM = sp.GeoM()
	op.ColorScale.ScaleAlpha(float32(clamp01(sp.Alpha)))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(sp.Texture.Image, op)
}

// Container draws its children in insertion order.
type Container struct {
	children []Drawable
}

func NewContainer() *Container {
	return &Container{children: make([]Drawable, 0, 64)}
}

func (c *Container) AddChild(d Drawable) { c.children = append(c.children, d) }

func (c *Container) Len() int { return len(c.children) }

func (c *Container) Children() []Drawable { return c.children }

func (c *Container) Draw(dst *ebiten.Image) {
	for _, d := range c.children {
		d.Draw(dst)
	}
}

// Renderer paints a root drawable onto the screen once per frame.
type Renderer struct {
	Background color.Color
	frames     uint64
}

func NewRenderer(bg color.Color) *Renderer {
	return &Renderer{Background: bg}
}

func (r *Renderer) Render(dst *ebiten.Image, root Drawable) {
	if r.Background != nil {
		dst.Fill(r.Background)
	}
	root.Draw(dst)
	r.frames++
}

// Frames is the number of Render calls so far.
func (r *Renderer) Frames() uint64 { return r.frames }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
