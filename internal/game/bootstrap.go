//go:build !android

package game

import (
	"coinburst/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
)

// Bootstrap applies window settings before RunGame.
func Bootstrap(cfg config.WindowConfig) {
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(cfg.Width/2, cfg.Height/2, -1, -1)

	// Update once per displayed frame instead of at a fixed 60 TPS.
	ebiten.SetTPS(ebiten.SyncWithFPS)
}
