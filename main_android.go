//go:build android

package main

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

func main() {}
