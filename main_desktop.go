//go:build !android

package main

import (
	"fmt"
	"os"
	"runtime"

	"coinburst/internal/game"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	game.SetPlatform(runtime.GOOS) // "js" in the browser
	g, log, err := game.Setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Info("coin burst starting", zap.String("platform", game.Platform()))
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
