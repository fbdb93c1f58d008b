// File: logger_test.go
// Title: Logger Tests
// Description: Tests for logger configuration, context fields, formats and
//              error integration.
// Author: lwd-temp
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-13
//
// Change History:
// - 2026-10-12 v0.1.0: Initial implementation

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	heerror "github.com/lwd-temp/helang/foundation/core/error"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewWithConfig(Config{Level: level, Format: format, Output: &buf, Name: "test"}), &buf
}

func TestNew(t *testing.T) {
	logger := New()

	if logger.GetLevel() != DefaultLevel() {
		t.Errorf("New() level = %v, want %v", logger.GetLevel(), DefaultLevel())
	}
	if logger.contextFields == nil {
		t.Error("New() should initialize context fields")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, FormatText)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("filtered messages were written: %q", out)
	}
	if !strings.Contains(out, "[WRN] {test} visible") {
		t.Errorf("Expected warning line, got %q", out)
	}
}

func TestLogger_WithFieldDoesNotLeak(t *testing.T) {
	base, buf := newBufferLogger(LevelDebug, FormatLogfmt)
	derived := base.WithField("component", "lexer")

	base.Debug("from base")
	derived.Debug("from derived", Fields{"tokens": 3})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if strings.Contains(lines[0], "component=") {
		t.Errorf("base logger gained a derived field: %q", lines[0])
	}
	if !strings.Contains(lines[1], `component="lexer"`) || !strings.Contains(lines[1], "tokens=3") {
		t.Errorf("derived line missing fields: %q", lines[1])
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatJSON)

	logger.ErrorWithErr("run failed", errors.New("boom"), Fields{"file": "great.he"})

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if decoded["message"] != "run failed" || decoded["error"] != "boom" || decoded["file"] != "great.he" {
		t.Errorf("unexpected JSON entry: %v", decoded)
	}
	if decoded["level"] != "error" {
		t.Errorf("level = %v, want error", decoded["level"])
	}
}

func TestLogger_LogErrorUsesSeverity(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
	}{
		{"syntax error is info", heerror.New("bad token").WithCode(heerror.CodeBadToken), "[INF]"},
		{"runtime error is warn", heerror.New("a is not defined").WithCode(heerror.CodeCyberName), "[WRN]"},
		{"network error is error", heerror.New("offline").WithCode(heerror.CodeNetworkError), "[ERR]"},
		{"plain error is error", errors.New("boom"), "[ERR]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(LevelTrace, FormatText)
			logger.LogError(tt.err)
			if !strings.Contains(buf.String(), tt.wantLevel) {
				t.Errorf("Expected %s in %q", tt.wantLevel, buf.String())
			}
		})
	}
}

func TestLogger_LogErrorCategory(t *testing.T) {
	logger, buf := newBufferLogger(LevelTrace, FormatText)
	logger.LogError(heerror.New("a is not defined").WithCode(heerror.CodeCyberName))

	for _, want := range []string{"error_category=runtime", "error_code=CYBER_NAME"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("Expected %s in %q", want, buf.String())
		}
	}
}

func TestLogger_Discard(t *testing.T) {
	logger := Discard()
	if logger.IsLevelEnabled(LevelFatal) {
		t.Error("Discard() should disable every level")
	}
	logger.Error("nothing")
}

func TestTimer_Stop(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatText)

	timer := logger.StartTimer("run")
	time.Sleep(time.Millisecond)
	first := timer.Stop(Fields{"statements": 2})
	second := timer.Stop()

	if first <= 0 || first != second {
		t.Errorf("Stop() = %v then %v; want equal positive durations", first, second)
	}
	if strings.Count(buf.String(), "run completed") != 1 {
		t.Errorf("Expected exactly one timing line, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "statements=2") {
		t.Errorf("Expected timer fields in %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{" WARNING ", LevelWarn, false},
		{"trc", LevelTrace, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("logfmt"); err != nil || f != FormatLogfmt {
		t.Errorf("ParseFormat(logfmt) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); !heerror.HasCode(err, heerror.CodeInvalidConfig) {
		t.Errorf("ParseFormat(xml) error = %v, want INVALID_CONFIG", err)
	}
}

func TestLevel_Names(t *testing.T) {
	if LevelWarn.String() != "warn" || LevelWarn.ShortString() != "WRN" {
		t.Errorf("LevelWarn names = %s, %s", LevelWarn, LevelWarn.ShortString())
	}
	if Level(42).String() != "unknown" || Level(-1).ShortString() != "???" {
		t.Error("out of range levels should be unknown")
	}
}

func TestDefaultLogger(t *testing.T) {
	original := GetDefault()
	defer SetDefault(original)

	logger, _ := newBufferLogger(LevelDebug, FormatText)
	SetDefault(logger)
	if GetDefault() != logger {
		t.Error("SetDefault() did not replace the default logger")
	}
}
