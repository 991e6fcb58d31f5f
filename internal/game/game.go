package game

import (
	"context"
	"image/color"
	"io/fs"
	"math/rand"
	"time"

	"coinburst/internal/assets"
	"coinburst/internal/config"
	"coinburst/internal/data"
	"coinburst/internal/game/particles"
	"coinburst/internal/game/scene"
	"coinburst/internal/game/textures"
	"coinburst/internal/game/timeline"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"
)

type gameState int

const (
	stateLoading gameState = iota
	stateRunning
)

// Game hosts the coin burst inside ebiten: it waits for the textures, builds
// the bursts, then drives the timeline once per frame and renders the stage.
type Game struct {
	cfg    *config.Config
	log    *zap.Logger
	bursts []data.Burst

	assets   fs.FS
	clock    timeline.Clock
	cacheOpt []textures.CacheOption

	cache    *textures.Cache
	sched    *timeline.Scheduler
	stage    *scene.Container
	renderer *scene.Renderer
	rng      *rand.Rand

	st      gameState
	pending *textures.Pending
	coins   []*particles.Coin
	last    timeline.Frame
}

type Option func(*Game)

// WithClock replaces the wall clock the timeline samples.
func WithClock(c timeline.Clock) Option { return func(g *Game) { g.clock = c } }

// WithAssets reads sprite sheets from fsys instead of the embedded files.
func WithAssets(fsys fs.FS) Option { return func(g *Game) { g.assets = fsys } }

// WithCacheOptions passes options through to the texture cache.
func WithCacheOptions(opts ...textures.CacheOption) Option {
	return func(g *Game) { g.cacheOpt = append(g.cacheOpt, opts...) }
}

// New builds the game and starts loading textures in the background.
func New(cfg *config.Config, bursts []data.Burst, log *zap.Logger, opts ...Option) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Game{
		cfg:    cfg,
		log:    log,
		bursts: bursts,
		assets: assets.FS(),
		clock:  timeline.WallClock{},
		st:     stateLoading,
	}
	for _, o := range opts {
		o(g)
	}

	seed := cfg.Effect.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.cache = textures.NewCache(log.Named("textures"), g.cacheOpt...)
	g.sched = timeline.New(g.clock, log.Named("timeline"))
	g.stage = scene.NewContainer()
	g.renderer = scene.NewRenderer(cfg.BackgroundColor())

	reqs := textures.SheetRequests(sheets(cfg)...)
	g.log.Info("loading textures",
		zap.Int("textures", len(reqs)),
		zap.Int64("seed", seed),
		zap.String("platform", platform))
	g.pending = textures.NewLoader(log.Named("loader"), 0).Load(context.Background(), g.assets, reqs)
	return g
}

func sheets(cfg *config.Config) []textures.Sheet {
	out := make([]textures.Sheet, 0, len(cfg.Assets.Sheets))
	for _, s := range cfg.Assets.Sheets {
		out = append(out, textures.Sheet{Base: s.Base, Dir: s.Dir, Frames: s.Frames})
	}
	return out
}

func (g *Game) frameCount(base string) int {
	for _, s := range g.cfg.Assets.Sheets {
		if s.Base == base {
			return s.Frames
		}
	}
	return 0
}

func (g *Game) effectOptions() particles.Options {
	e := g.cfg.Effect
	return particles.Options{
		Duration:   e.DefaultDuration,
		Anchor:     &particles.Point{X: e.AnchorX, Y: e.AnchorY},
		MinSpeed:   e.MinSpeed,
		SpeedRange: e.SpeedRange,
		FrameSteps: e.FrameSteps,
		Rand:       g.rng,
	}
}

// finishLoading installs whatever decoded, builds the bursts and starts the
// timeline. Failed files only cost their frames.
func (g *Game) finishLoading(res *textures.Result) {
	n := res.Install(g.cache)
	for _, err := range res.Errors() {
		g.log.Warn("texture load failed", zap.Error(err))
	}

	base := g.effectOptions()
	for _, b := range g.bursts {
		opts := base
		opts.FrameCount = g.frameCount(b.Texture)
		coins := particles.Spawn(particles.Burst{
			Name:     b.Name,
			Texture:  b.Texture,
			Coins:    b.Coins,
			Interval: b.Interval,
			Duration: b.Duration,
			Offset:   b.Offset,
		}, g.cache, g.sched, g.stage, opts)
		g.coins = append(g.coins, coins...)
		g.log.Debug("burst spawned", zap.String("burst", b.Name), zap.Int("coins", len(coins)))
	}

	g.log.Info("textures ready",
		zap.Int("installed", n),
		zap.Int("failed", len(res.Failed)),
		zap.Int("coins", len(g.coins)))
	g.sched.Start()
	g.st = stateRunning
}

func (g *Game) Update() error {
	switch g.st {
	case stateLoading:
		// Poll the background load (non-blocking)
		if res, ok := g.pending.Poll(); ok {
			g.finishLoading(res)
		}
	case stateRunning:
		if f, ok := g.sched.Frame(); ok {
			g.last = f
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Render(screen, g.stage)

	if g.st == stateLoading {
		text.Draw(screen, "loading textures...", basicfont.Face7x13, 12, 24, color.White)
		return
	}
	if g.cfg.Debug.HUD {
		line := hudLine(g.last, g.sched.Period(), len(g.coins), ebiten.ActualTPS(), ebiten.ActualFPS())
		text.Draw(screen, line, basicfont.Face7x13, 8, g.cfg.Window.Height-10, color.NRGBA{200, 200, 210, 255})
	}
}

func (g *Game) Layout(w, h int) (int, int) { return g.cfg.Window.Width, g.cfg.Window.Height }

// Stop halts the timeline; the stage keeps its last pose.
func (g *Game) Stop() { g.sched.Stop() }

func (g *Game) Running() bool { return g.st == stateRunning && g.sched.Running() }

func (g *Game) LastFrame() timeline.Frame { return g.last }

func (g *Game) Coins() []*particles.Coin { return g.coins }

func (g *Game) Textures() *textures.Cache { return g.cache }

func (g *Game) Timeline() *timeline.Scheduler { return g.sched }
