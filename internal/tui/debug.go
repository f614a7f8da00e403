package tui

import (
	"github.com/javiermolinar/skema/internal/config"
	"github.com/javiermolinar/skema/internal/logx"
)

// DebugLogPath is the fixed path for debug logs.
const DebugLogPath = "skema-debug.log"

// OpenDebugLog returns the logger for a TUI session. The terminal belongs to
// the TUI, so logs only ever go to a file: DebugLogPath at debug level when
// debug is set, else cfg.File at cfg.Level, else nowhere.
// The returned close func is never nil.
func OpenDebugLog(debug bool, cfg config.LogConfig) (logx.Logger, func(), error) {
	path, level := cfg.File, cfg.Level
	if debug {
		path, level = DebugLogPath, "debug"
	}
	if path == "" {
		return logx.Nop(), func() {}, nil
	}

	log, closer, err := logx.OpenFile(path, level)
	if err != nil {
		return logx.Nop(), func() {}, err
	}
	log.Info("log opened", logx.String("path", path), logx.String("level", level))
	return log, func() {
		log.Info("log closed")
		_ = closer.Close()
	}, nil
}
