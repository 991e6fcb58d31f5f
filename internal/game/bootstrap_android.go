//go:build android

package game

import (
	"coinburst/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
)

// Bootstrap only syncs the update rate; Android has no window to size.
func Bootstrap(config.WindowConfig) {
	ebiten.SetTPS(ebiten.SyncWithFPS)
}
