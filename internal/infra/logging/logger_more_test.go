package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitLoggerWritesFileAndFallsBackToInfo(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "rns-image.log")
	InitLogger(logFile, 1, 1, 1, false, "invalid")
	SetLogLevel("invalid")

	Debug("not written")
	Info("hello", "k", "v")
	Warn("warn")
	Error("error")

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"k":"v"`) {
		t.Errorf("expected info line in log file, got %q", data)
	}
	if strings.Contains(string(data), "not written") {
		t.Errorf("debug line should be filtered at the fallback level")
	}
}
