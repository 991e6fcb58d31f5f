package logging

import (
	"coinburst/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Name is the root logger name; packages hang their own names off it.
const Name = "coinburst"

// New builds the process logger for platform (runtime.GOOS or the value set
// through game.SetPlatform). Unknown levels fall back to info. Console output
// on android drops ANSI colours since logcat prints them raw.
func New(cfg config.LoggingConfig, platform string) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	zc := zap.NewProductionConfig()
	if cfg.Format != "json" {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = consoleLevel(platform)
		zc.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		zc.EncoderConfig.ConsoleSeparator = "  "
		zc.DisableCaller = true
		zc.DisableStacktrace = true
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	log, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return log.Named(Name).With(zap.String("platform", platform)), nil
}

func consoleLevel(platform string) zapcore.LevelEncoder {
	if platform == "android" {
		return zapcore.CapitalLevelEncoder
	}
	return zapcore.CapitalColorLevelEncoder
}
