package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	Sync()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	return string(content)
}

func TestLoggingBeforeInit(t *testing.T) {
	Log = zap.NewNop()
	Sugar = Log.Sugar()

	// Must not panic.
	Debug("debug message")
	Info("info message", zap.Int("n", 1))
	Sugar.Warnf("warn %d", 2)
	Sync()
}

func TestLogLevels(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warn", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"info", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"debug", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(dir, tt.level+".log")
			cfg := FileConfig{Path: logFile, MaxSizeMB: 10, MaxBackups: 1, MaxAgeDays: 1}
			if err := InitWithFileConfig(tt.level, cfg, false); err != nil {
				t.Fatalf("failed to init logger: %v", err)
			}

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")

			content := readLog(t, logFile)
			for _, exp := range tt.expected {
				if !strings.Contains(content, exp) {
					t.Errorf("expected %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(content, exc) {
					t.Errorf("unexpected %s in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestSetLevel(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "level.log")
	if err := InitWithFileConfig("warn", FileConfig{Path: logFile, MaxSizeMB: 1}, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}

	Info("hidden message")
	SetLevel("debug")
	if Level() != zapcore.DebugLevel {
		t.Errorf("expected debug level, got %s", Level())
	}
	Debug("visible message")

	content := readLog(t, logFile)
	if strings.Contains(content, "hidden message") {
		t.Error("info message logged at warn level")
	}
	if !strings.Contains(content, "visible message") {
		t.Error("debug message missing after SetLevel")
	}
}

func TestStructuredFields(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "fields.log")
	if err := InitWithFileConfig("info", FileConfig{Path: logFile, MaxSizeMB: 1}, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}

	Info("built chunk meshes", zap.Int("chunks", 113), zap.String("face", "+y"))

	content := readLog(t, logFile)
	for _, want := range []string{"built chunk meshes", `"chunks": 113`, `"face": "+y"`, "logger_test.go"} {
		if !strings.Contains(content, want) {
			t.Errorf("expected %q in log output, got %q", want, content)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"verbose", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %s, expected %s", tt.in, got, tt.want)
		}
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("planet.log")

	if cfg.Path != "planet.log" {
		t.Errorf("expected path planet.log, got %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 20 {
		t.Errorf("expected MaxSizeMB 20, got %d", cfg.MaxSizeMB)
	}
	if cfg.MaxBackups != 3 {
		t.Errorf("expected MaxBackups 3, got %d", cfg.MaxBackups)
	}
	if cfg.MaxAgeDays != 7 {
		t.Errorf("expected MaxAgeDays 7, got %d", cfg.MaxAgeDays)
	}
	if !cfg.Compress {
		t.Error("expected Compress to be true")
	}
}
