package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	heerror "github.com/lwd-temp/helang/foundation/core/error"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "10s", 10 * time.Second, false},
		{"milliseconds", "25ms", 25 * time.Millisecond, false},
		{"complex", "1m30s", 90 * time.Second, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{10 * time.Second}
	result, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(result) != "10s" {
		t.Errorf("MarshalText() = %v, want 10s", string(result))
	}
}

func TestConfig_applyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.General.LogLevel != "warn" {
		t.Errorf("General.LogLevel = %v, want warn", cfg.General.LogLevel)
	}
	if cfg.Interpreter.LogoPath != "./lib/logo.he" {
		t.Errorf("Interpreter.LogoPath = %v, want ./lib/logo.he", cfg.Interpreter.LogoPath)
	}
	if cfg.Interpreter.MaxSourceLength != 65536 {
		t.Errorf("Interpreter.MaxSourceLength = %v, want 65536", cfg.Interpreter.MaxSourceLength)
	}
	if cfg.Shell.Prompt != "Speak to Saint He > " {
		t.Errorf("Shell.Prompt = %q", cfg.Shell.Prompt)
	}
	if cfg.Cyberspaces.Timeout.Duration != 10*time.Second {
		t.Errorf("Cyberspaces.Timeout = %v, want 10s", cfg.Cyberspaces.Timeout.Duration)
	}
	if len(cfg.Cyberspaces.Regions) != 2 {
		t.Errorf("Cyberspaces.Regions = %v", cfg.Cyberspaces.Regions)
	}
	if cfg.SpeedTest.MinSizeMB != 5 || cfg.SpeedTest.MaxSizeMB != 25 {
		t.Errorf("SpeedTest sizes = %d..%d, want 5..25", cfg.SpeedTest.MinSizeMB, cfg.SpeedTest.MaxSizeMB)
	}
	if cfg.ServerAddress() != "127.0.0.1:8964" {
		t.Errorf("ServerAddress() = %v, want 127.0.0.1:8964", cfg.ServerAddress())
	}
	if cfg.Server.ParseCacheSize != 1024 {
		t.Errorf("Server.ParseCacheSize = %v, want 1024", cfg.Server.ParseCacheSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should be valid: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source() != "" {
		t.Errorf("Source() = %q, want empty", cfg.Source())
	}
	if cfg.Store.Path != "./data/helang.db" {
		t.Errorf("Store.Path = %v, want ./data/helang.db", cfg.Store.Path)
	}
	if cfg.SpeedTest.MinDelay.Duration != time.Millisecond {
		t.Errorf("SpeedTest.MinDelay = %v, want 1ms", cfg.SpeedTest.MinDelay)
	}
	if cfg.Shell.HistoryFile != ".helang_history" {
		t.Errorf("Shell.HistoryFile = %v", cfg.Shell.HistoryFile)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/helang.toml")
	if !heerror.HasCode(err, heerror.CodeNotFound) {
		t.Errorf("Load() expected NOT_FOUND, got %v", err)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "helang.toml",
			content: `
[shell]
prompt = "he> "

[server]
port = 9999

[cyberspaces]
regions = ["CHINA"]
timeout = "2s"
`,
		},
		{
			name: "yaml",
			file: "helang.yaml",
			content: `
shell:
  prompt: "he> "
server:
  port: 9999
cyberspaces:
  regions: ["CHINA"]
  timeout: 2s
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write test config: %v", err)
			}

			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			if cfg.Shell.Prompt != "he> " {
				t.Errorf("Shell.Prompt = %q, want he> ", cfg.Shell.Prompt)
			}
			if cfg.Server.Port != 9999 {
				t.Errorf("Server.Port = %v, want 9999", cfg.Server.Port)
			}
			if len(cfg.Cyberspaces.Regions) != 1 || cfg.Cyberspaces.Regions[0] != "CHINA" {
				t.Errorf("Cyberspaces.Regions = %v, want [CHINA]", cfg.Cyberspaces.Regions)
			}
			if cfg.Cyberspaces.Timeout.Duration != 2*time.Second {
				t.Errorf("Cyberspaces.Timeout = %v, want 2s", cfg.Cyberspaces.Timeout)
			}

			// Check defaults were applied for missing values
			if cfg.Server.Host != "127.0.0.1" {
				t.Errorf("Server.Host = %v, want 127.0.0.1 (default)", cfg.Server.Host)
			}
			if cfg.Source() != path {
				t.Errorf("Source() = %v, want %v", cfg.Source(), path)
			}
		})
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HELANG_SHELL_PROMPT", "env> ")
	t.Setenv("HELANG_SERVER_PORT", "7000")
	t.Setenv("HELANG_CYBERSPACES_REGIONS", "CHINA, JAPAN")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Shell.Prompt != "env> " {
		t.Errorf("Shell.Prompt = %q, want env> ", cfg.Shell.Prompt)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %v, want 7000", cfg.Server.Port)
	}
	if strings.Join(cfg.Cyberspaces.Regions, ",") != "CHINA,JAPAN" {
		t.Errorf("Cyberspaces.Regions = %v", cfg.Cyberspaces.Regions)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"port", "[server]\nport = 70000\n"},
		{"sizes", "[speedtest]\nmin_size_mb = 30\nmax_size_mb = 10\n"},
		{"delays", "[speedtest]\nmin_delay = \"1s\"\nmax_delay = \"1ms\"\n"},
		{"syntax", "[server\nport = 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.name+".toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write test config: %v", err)
			}

			_, err := Load(path)
			if !heerror.HasCode(err, heerror.CodeInvalidConfig) {
				t.Errorf("Load() expected INVALID_CONFIG, got %v", err)
			}
		})
	}
}

func TestConfig_expandEnvVars(t *testing.T) {
	t.Setenv("HELANG_TEST_DIR", "/tmp/helang")

	cfg := &Config{Store: StoreConfig{Path: "$HELANG_TEST_DIR/helang.db"}}
	cfg.expandEnvVars()

	if cfg.Store.Path != "/tmp/helang/helang.db" {
		t.Errorf("Store.Path = %v, want /tmp/helang/helang.db", cfg.Store.Path)
	}
}

func TestConfig_Encode(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"[shell]", `prompt = "Speak to Saint He > "`, `timeout = "10s"`, "port = 8964"} {
		if !strings.Contains(out, want) {
			t.Errorf("Encode() output missing %q:\n%s", want, out)
		}
	}
}

func TestLoadFromEnv_NoConfigFound(t *testing.T) {
	t.Setenv("HELANG_CONFIG", "")
	t.Setenv("HOME", t.TempDir())

	originalWd, _ := os.Getwd()
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	defer os.Chdir(originalWd)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Source() != "" {
		t.Errorf("Source() = %q, want defaults", cfg.Source())
	}
}
