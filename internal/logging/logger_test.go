package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/config"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/logging/adapters"
)

func newBufferLogger(t *testing.T, format string) (*MultiLogger, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	logger := NewMultiLogger()
	if err := logger.AddAdapter(adapters.NewStdoutAdapter("buffer", adapters.StdoutConfig{Format: format, Out: &buf})); err != nil {
		t.Fatalf("AddAdapter failed: %v", err)
	}
	return logger, &buf
}

func TestMultiLoggerMergesFields(t *testing.T) {
	logger, buf := newBufferLogger(t, "json")

	logger.WithField("request_id", "req-1").Info("resume built", map[string]interface{}{
		"job_id": 12,
	})

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("Expected JSON log line, got %q: %v", buf.String(), err)
	}

	if line["message"] != "resume built" {
		t.Errorf("Expected message 'resume built', got '%v'", line["message"])
	}
	if line["request_id"] != "req-1" {
		t.Errorf("Expected request_id 'req-1', got '%v'", line["request_id"])
	}
	if line["job_id"] != float64(12) {
		t.Errorf("Expected job_id 12, got '%v'", line["job_id"])
	}
	if line["level"] != "info" {
		t.Errorf("Expected level 'info', got '%v'", line["level"])
	}
}

func TestMultiLoggerLevelFilter(t *testing.T) {
	logger, buf := newBufferLogger(t, "text")
	logger.SetLevel(WarnLevel)

	child := logger.WithField("component", "compiler")
	child.Info("dropped")
	child.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("Expected info line to be filtered, got %q", out)
	}
	if !strings.Contains(out, "[WARN] kept component=compiler") {
		t.Errorf("Expected warn line with field, got %q", out)
	}
}

func TestAddAdapterRejectsDuplicateName(t *testing.T) {
	logger, _ := newBufferLogger(t, "json")

	err := logger.AddAdapter(adapters.NewStdoutAdapter("buffer", adapters.StdoutConfig{}))
	if err == nil {
		t.Fatal("Expected error for duplicate adapter name")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"fatal", FatalLevel},
		{"bogus", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLogLevel(tt.in); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestManagerInitializeFileAdapter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	cfg := config.Default()
	cfg.Logging.Level = "debug"
	cfg.Logging.Adapters = append(cfg.Logging.Adapters, struct {
		Name    string                 `yaml:"name"`
		Type    string                 `yaml:"type"`
		Enabled bool                   `yaml:"enabled"`
		Options map[string]interface{} `yaml:"options"`
	}{
		Name:    "file",
		Type:    "file",
		Enabled: true,
		Options: map[string]interface{}{"file_path": path, "format": "text"},
	})

	manager := NewManager()
	if err := manager.Initialize(cfg); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	manager.GetLogger().Debug("compiled", map[string]interface{}{"pass": 2})
	if err := manager.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected log file to exist: %v", err)
	}
	if !strings.Contains(string(data), "[DEBUG] compiled pass=2") {
		t.Errorf("Expected debug line in file, got %q", string(data))
	}
}

func TestFileAdapterRotatesBySize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rotate.log")

	adapter, err := adapters.NewFileAdapter("file", adapters.FileConfig{
		FilePath:   path,
		Format:     "json",
		MaxSize:    1,
		MaxBackups: 1,
	})
	if err != nil {
		t.Fatalf("NewFileAdapter failed: %v", err)
	}
	defer adapter.Close()

	logger := NewMultiLogger()
	if err := logger.AddAdapter(adapter); err != nil {
		t.Fatalf("AddAdapter failed: %v", err)
	}
	for i := 0; i < 4; i++ {
		logger.Info("line")
	}

	backups, _ := filepath.Glob(path + ".*")
	if len(backups) != 1 {
		t.Errorf("Expected 1 backup after pruning, got %d", len(backups))
	}
}
