package observability

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestInitLoggerRejectsUnknownLevel(t *testing.T) {
	oldLogger := Logger
	t.Cleanup(func() { Logger = oldLogger })

	if err := InitLogger(LogOptions{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestInitLoggerWritesToConfiguredPath(t *testing.T) {
	oldLogger := Logger
	t.Cleanup(func() { Logger = oldLogger })

	path := filepath.Join(t.TempDir(), "calc.log")
	if err := InitLogger(LogOptions{Level: "debug", OutputPaths: []string{path}}); err != nil {
		t.Fatalf("init logger: %v", err)
	}

	if !Logger.Core().Enabled(zap.DebugLevel) {
		t.Fatal("expected debug level to be enabled")
	}
}
