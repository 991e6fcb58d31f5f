package game

import (
	"fmt"
	"time"

	"coinburst/internal/game/timeline"
)

func hudLine(f timeline.Frame, period time.Duration, coins int, tps, fps float64) string {
	return fmt.Sprintf("loop %d  %5d/%dms  active %d/%d  tps %.0f  fps %.0f",
		f.Loop, f.Local.Milliseconds(), period.Milliseconds(), f.Active, coins, tps, fps)
}
