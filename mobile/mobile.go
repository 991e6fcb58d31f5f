// Package mobile is the ebitenmobile bind target.
package mobile

import (
	"coinburst/internal/game"

	"github.com/hajimehoshi/ebiten/v2/mobile"
)

func init() {
	game.SetPlatform("android")
	g, _, err := game.Setup()
	if err != nil {
		panic("coinburst: " + err.Error())
	}
	mobile.SetGame(g)
}

// Dummy is exported so gomobile generates a binding for this package.
func Dummy() {}
