package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/gravsim/config"
)

// chdirTemp runs the test in a scratch directory so logs/ does not touch the repo
func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	chdirTemp(t)

	logFile, err := setupLogging(config.LoggingConfig{Level: "info"})
	if err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	if logFile != nil {
		t.Error("Expected nil log file when debug=false")
		logFile.Close()
	}

	slog.Info("dropped")
	if _, err := os.Stat(logDir); !os.IsNotExist(err) {
		t.Error("Expected no logs directory when logging is disabled")
	}
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	chdirTemp(t)

	logFile, err := setupLogging(config.LoggingConfig{Level: "info", Debug: true})
	if err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	if logFile == nil {
		t.Fatal("Expected non-nil log file when debug=true")
	}
	defer logFile.Close()

	slog.Debug("test debug message", "component", "test")

	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "test debug message") {
		t.Errorf("Expected debug message in log, got %q", data)
	}
}

func TestSetupLogging_JSON(t *testing.T) {
	chdirTemp(t)

	logFile, err := setupLogging(config.LoggingConfig{Level: "info", Debug: true, JSONFormat: true})
	if err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	defer logFile.Close()

	slog.Info("json line")
	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"msg":"json line"`) {
		t.Errorf("Expected JSON record, got %q", data)
	}
}

func TestSetupLogging_Rotation(t *testing.T) {
	chdirTemp(t)

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		t.Fatalf("Failed to create logs directory: %v", err)
	}
	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0o644); err != nil {
		t.Fatalf("Failed to write large log: %v", err)
	}

	logFile, err := setupLogging(config.LoggingConfig{Debug: true})
	if err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	defer logFile.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("Failed to read logs directory: %v", err)
	}
	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != logFileName && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
		}
	}
	if !rotatedFound {
		t.Error("Expected to find rotated log file")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat new log file: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("Expected new log file smaller than %d bytes, got %d", maxLogSize, info.Size())
	}
}

func TestSetupLogging_BadLevel(t *testing.T) {
	chdirTemp(t)
	if _, err := setupLogging(config.LoggingConfig{Level: "loud", Debug: false}); err != nil {
		t.Errorf("Expected level ignored when disabled, got %v", err)
	}
}
