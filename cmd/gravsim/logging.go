package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/gravsim/config"
)

const (
	logDir      = "logs"
	logFileName = "gravsim.log"
	maxLogSize  = 10 << 20
)

// setupLogging installs the default slog logger
// The terminal belongs to the UI, so output goes to logs/gravsim.log when enabled and nowhere otherwise
// Returns the open log file, or nil when logging is disabled
func setupLogging(cfg config.LoggingConfig) (*os.File, error) {
	if !cfg.Debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return nil, nil
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("gravsim-%s.log", time.Now().Format("20060102-150405")))
		if err := os.Rename(logPath, rotated); err != nil {
			return nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.JSONFormat {
		h = slog.NewJSONHandler(f, opts)
	} else {
		h = slog.NewTextHandler(f, opts)
	}
	slog.SetDefault(slog.New(h))
	slog.Info("logging started", "component", "main", "level", level.String(), "pid", os.Getpid())
	return f, nil
}
