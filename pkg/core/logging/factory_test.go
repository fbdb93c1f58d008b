package logging

import (
	"bytes"
	"io"
	"strings"
	"testing"

	helog "github.com/lwd-temp/helang/foundation/core/log"
	"github.com/lwd-temp/helang/pkg/core/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected helog.Level
	}{
		{"trace", helog.LevelTrace},
		{"debug", helog.LevelDebug},
		{"info", helog.LevelInfo},
		{" warn ", helog.LevelWarn},
		{"error", helog.LevelError},
		{"nonsense", helog.DefaultLevel()},
		{"", helog.DefaultLevel()},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var out, extra bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Name:              "test",
		Level:             "info",
		Format:            "json",
		Output:            &out,
		AdditionalOutputs: []io.Writer{&extra},
	})

	logger.Debug("hidden")
	logger.Info("shown", helog.Fields{"session": "abc"})

	if strings.Contains(out.String(), "hidden") {
		t.Error("debug entry written at info level")
	}
	if !strings.Contains(out.String(), `"shown"`) || !strings.Contains(out.String(), `"abc"`) {
		t.Errorf("Expected JSON entry, got %q", out.String())
	}
	if out.String() != extra.String() {
		t.Error("additional output did not receive the same entries")
	}
}

func TestFromConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	logger := FromConfig(cfg, "helang", false)
	if logger.GetLevel() != helog.LevelWarn {
		t.Errorf("GetLevel() = %v, want warn", logger.GetLevel())
	}

	verbose := FromConfig(cfg, "helang", true)
	if verbose.GetLevel() != helog.LevelDebug {
		t.Errorf("verbose GetLevel() = %v, want debug", verbose.GetLevel())
	}
}

func TestSetup(t *testing.T) {
	previous := helog.GetDefault()
	defer helog.SetDefault(previous)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	logger := Setup(cfg, "helang", true)
	if helog.GetDefault() != logger {
		t.Error("Setup() did not install the default logger")
	}
}
