package game

import (
	"fmt"
	"runtime"

	"coinburst/internal/config"
	"coinburst/internal/data"
	"coinburst/internal/logging"

	"go.uber.org/zap"
)

// Setup resolves the config, builds the logger and loads the burst table,
// then returns a ready Game. Desktop builds also drop a default config file
// into the per-user config dir the first time they run.
func Setup() (*Game, *zap.Logger, error) {
	cfg, cfgSrc, err := config.Resolve()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logging.New(cfg.Logging, Platform())
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	log.Info("config loaded", zap.String("source", cfgSrc))

	if cfgSrc == config.SourceEmbedded && hasConfigDir() {
		p := config.ConfigPath(config.FileName)
		if wrote, err := config.WriteDefault(p); err != nil {
			log.Warn("could not write default config", zap.Error(err))
		} else if wrote {
			log.Info("wrote default config", zap.String("path", p))
		}
	}

	tbl, tblSrc, err := data.ResolveBurstTable()
	if err != nil {
		return nil, log, fmt.Errorf("load bursts: %w", err)
	}
	log.Info("bursts loaded",
		zap.String("source", tblSrc),
		zap.Int("bursts", tbl.Count()),
		zap.Int("coins", tbl.Coins()))

	Bootstrap(cfg.Window)
	return New(cfg, tbl.All(), log), log, nil
}

// hasConfigDir is false where there is no user-writable config dir.
func hasConfigDir() bool {
	if runtime.GOOS == "js" {
		return false
	}
	switch platform {
	case "android", "ios":
		return false
	}
	return true
}
