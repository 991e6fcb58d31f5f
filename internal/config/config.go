package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Effect  EffectConfig  `toml:"effect"`
	Assets  AssetsConfig  `toml:"assets"`
	Logging LoggingConfig `toml:"logging"`
	Debug   DebugConfig   `toml:"debug"`
}

type WindowConfig struct {
	Title      string `toml:"title"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"` // "#rrggbb" or "#rrggbbaa"
}

type EffectConfig struct {
	AnchorX         float64       `toml:"anchor_x"`
	AnchorY         float64       `toml:"anchor_y"`
	MinSpeed        float64       `toml:"min_speed"`   // px travelled at normalized time 1
	SpeedRange      float64       `toml:"speed_range"` // uniform extra speed on top of MinSpeed
	FrameSteps      int           `toml:"frame_steps"` // frame = floor(nt * FrameSteps)
	DefaultDuration time.Duration `toml:"default_duration"`
	Seed            int64         `toml:"seed"` // 0 = seed from the clock
}

type AssetsConfig struct {
	Sheets []SheetConfig `toml:"sheets"`
}

// SheetConfig describes one numbered frame sequence: textures
// Base000..Base(Frames-1) read from Dir/000.png.. Dir defaults to gfx/<Base>.
type SheetConfig struct {
	Base   string `toml:"base"`
	Dir    string `toml:"dir"`
	Frames int    `toml:"frames"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type DebugConfig struct {
	HUD bool `toml:"hud"`
}

// Load reads a TOML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes TOML data on top of the defaults. source is only used in
// error messages.
func Parse(data []byte, source string) (*Config, error) {
	cfg := Default()
	// Decoding into the default slice would merge user sheets field by
	// field with the built-in one; a file that names sheets replaces them.
	cfg.Assets.Sheets = nil
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", source, err)
	}
	if !md.IsDefined("assets", "sheets") {
		cfg.Assets.Sheets = Default().Assets.Sheets
	}
	for i := range cfg.Assets.Sheets {
		if s := &cfg.Assets.Sheets[i]; s.Dir == "" && s.Base != "" {
			s.Dir = path.Join("gfx", s.Base)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", source, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration: an 800x450 canvas with the
// coin sheet radiating from its centre.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Coin Burst",
			Width:      800,
			Height:     450,
			Background: "#141418",
		},
		Effect: EffectConfig{
			AnchorX:         400,
			AnchorY:         225,
			MinSpeed:        100,
			SpeedRange:      300,
			FrameSteps:      8,
			DefaultDuration: 6000 * time.Millisecond,
		},
		Assets: AssetsConfig{
			Sheets: []SheetConfig{
				{Base: "CoinsGold", Dir: "gfx/CoinsGold", Frames: 9},
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Debug: DebugConfig{
			HUD: true,
		},
	}
}

func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Effect.FrameSteps <= 0:
		return errors.New("effect.frame_steps must be positive")
	case c.Effect.MinSpeed < 0 || c.Effect.SpeedRange < 0:
		return errors.New("effect speeds must not be negative")
	case c.Effect.DefaultDuration <= 0:
		return errors.New("effect.default_duration must be positive")
	}
	if _, err := ParseColor(c.Window.Background); err != nil {
		return fmt.Errorf("window.background: %w", err)
	}
	for i, s := range c.Assets.Sheets {
		if s.Base == "" || s.Frames <= 0 || s.Frames > 1000 {
			return fmt.Errorf("assets.sheets[%d]: need a base name and 1..1000 frames", i)
		}
	}
	return nil
}

// BackgroundColor returns the parsed window background, black on error.
func (c *Config) BackgroundColor() color.NRGBA {
	col, err := ParseColor(c.Window.Background)
	if err != nil {
		return color.NRGBA{A: 255}
	}
	return col
}

// ParseColor accepts "#rrggbb" and "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("bad colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("bad colour %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
