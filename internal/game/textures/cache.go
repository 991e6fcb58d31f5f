package textures

import (
	"image"
	"sort"

	"coinburst/internal/game/scene"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Cache is the name-keyed texture store sprites are bound from. It is owned
// by the frame goroutine.
type Cache struct {
	log    *zap.Logger
	upload func(image.Image) *ebiten.Image
	byName map[string]*scene.Texture
	warned map[string]bool
}

type CacheOption func(*Cache)

// WithUploader replaces ebiten.NewImageFromImage, mostly for tests that run
// without a graphics context.
func WithUploader(fn func(image.Image) *ebiten.Image) CacheOption {
	return func(c *Cache) { c.upload = fn }
}

func NewCache(log *zap.Logger, opts ...CacheOption) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Cache{
		log:    log,
		upload: ebiten.NewImageFromImage,
		byName: make(map[string]*scene.Texture),
		warned: make(map[string]bool),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Put uploads img under name, replacing any previous texture.
func (c *Cache) Put(name string, img image.Image) *scene.Texture {
	b := img.Bounds()
	tex := &scene.Texture{
		Name:   name,
		Image:  c.upload(img),
		Width:  b.Dx(),
		Height: b.Dy(),
	}
	c.byName[name] = tex
	delete(c.warned, name)
	return tex
}

func (c *Cache) Get(name string) (*scene.Texture, bool) {
	tex, ok := c.byName[name]
	return tex, ok
}

func (c *Cache) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

func (c *Cache) Len() int { return len(c.byName) }

// Names returns the cached texture names, sorted.
func (c *Cache) Names() []string {
	out := make([]string, 0, len(c.byName))
	for n := range c.byName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Sprite creates a sprite bound to the named texture. A missing texture
// yields an untextured sprite and a warning.
func (c *Cache) Sprite(name string) *scene.Sprite {
	tex, ok := c.byName[name]
	if !ok {
		c.warnMissing(name)
	}
	return scene.NewSprite(tex)
}

// SetTexture binds the named texture to sp. When the name is unknown the
// sprite keeps whatever it had and false is returned. An untextured sprite
// gets its pivot centred on the first texture it receives.
func (c *Cache) SetTexture(sp *scene.Sprite, name string) bool {
	if sp.Texture != nil && sp.Texture.Name == name {
		return true
	}
	tex, ok := c.byName[name]
	if !ok {
		c.warnMissing(name)
		return false
	}
	first := sp.Texture == nil
	sp.Texture = tex
	if first {
		sp.CenterPivot()
	}
	return true
}

func (c *Cache) warnMissing(name string) {
	if c.warned[name] {
		return
	}
	c.warned[name] = true
	c.log.Warn("texture does not exist", zap.String("texture", name))
}
