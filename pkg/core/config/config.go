package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	heconfig "github.com/lwd-temp/helang/foundation/core/config"
	heerror "github.com/lwd-temp/helang/foundation/core/error"
)

// EnvPrefix prefixes environment overrides: HELANG_SHELL_PROMPT sets shell.prompt
const EnvPrefix = "HELANG"

// Config holds the complete application configuration
type Config struct {
	General     GeneralConfig     `toml:"general"`
	Interpreter InterpreterConfig `toml:"interpreter"`
	Shell       ShellConfig       `toml:"shell"`
	Cyberspaces CyberspacesConfig `toml:"cyberspaces"`
	SpeedTest   SpeedTestConfig   `toml:"speedtest"`
	Store       StoreConfig       `toml:"store"`
	Server      ServerConfig      `toml:"server"`

	source string
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// InterpreterConfig holds interpreter settings
type InterpreterConfig struct {
	LogoPath        string `toml:"logo_path"`
	GreatPath       string `toml:"great_path"`
	MaxSourceLength int    `toml:"max_source_length"`
}

// ShellConfig holds interactive shell settings
type ShellConfig struct {
	Prompt      string `toml:"prompt"`
	HistoryFile string `toml:"history_file"`
}

// CyberspacesConfig holds region lookup settings
type CyberspacesConfig struct {
	Endpoint string   `toml:"endpoint"`
	Timeout  Duration `toml:"timeout"`
	Regions  []string `toml:"regions"`
}

// SpeedTestConfig holds 5G speed test settings
type SpeedTestConfig struct {
	MinSizeMB int      `toml:"min_size_mb"`
	MaxSizeMB int      `toml:"max_size_mb"`
	MinDelay  Duration `toml:"min_delay"`
	MaxDelay  Duration `toml:"max_delay"`
}

// StoreConfig holds session store settings
type StoreConfig struct {
	Path string `toml:"path"`
}

// ServerConfig holds playground server settings
type ServerConfig struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	ParseCacheSize int      `toml:"parse_cache_size"`
	ParseCacheTTL  Duration `toml:"parse_cache_ttl"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns the default settings in the nested form of a config file
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"general": map[string]interface{}{
			"log_level":  "warn",
			"log_format": "text",
		},
		"interpreter": map[string]interface{}{
			"logo_path":         "./lib/logo.he",
			"great_path":        "./great.he",
			"max_source_length": 65536,
		},
		"shell": map[string]interface{}{
			"prompt":       "Speak to Saint He > ",
			"history_file": ".helang_history",
		},
		"cyberspaces": map[string]interface{}{
			"endpoint": "https://pv.sohu.com/cityjson?ie=utf-8",
			"timeout":  "10s",
			"regions":  []interface{}{"UNITED STATES", "JAPAN"},
		},
		"speedtest": map[string]interface{}{
			"min_size_mb": 5,
			"max_size_mb": 25,
			"min_delay":   "1ms",
			"max_delay":   "25ms",
		},
		"store": map[string]interface{}{
			"path": "./data/helang.db",
		},
		"server": map[string]interface{}{
			"host":             "127.0.0.1",
			"port":             8964,
			"parse_cache_size": 1024,
			"parse_cache_ttl":  "10m",
		},
	}
}

// Load loads configuration from a TOML or YAML file. An empty path yields
// the defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	var src *heconfig.Config
	if path == "" {
		src = heconfig.FromDefaults(Defaults(), EnvPrefix)
	} else {
		var err error
		src, err = heconfig.LoadWithOptions(path, heconfig.LoadOptions{
			EnvPrefix: EnvPrefix,
			Defaults:  Defaults(),
		})
		if err != nil {
			return nil, err
		}
	}

	cfg := FromSource(src)
	cfg.source = path
	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from the file named by HELANG_CONFIG or
// from the first default location that exists.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvPrefix + "_CONFIG")
	if path == "" {
		home, _ := os.UserHomeDir()
		defaultPaths := []string{
			"./helang.toml",
			"./configs/helang.toml",
			"./helang.yaml",
			filepath.Join(home, ".config/helang/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	return Load(path)
}

// FromSource maps a loaded key/value configuration onto typed settings
func FromSource(src *heconfig.Config) *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel:  src.GetString("general.log_level"),
			LogFormat: src.GetString("general.log_format"),
		},
		Interpreter: InterpreterConfig{
			LogoPath:        src.GetString("interpreter.logo_path"),
			GreatPath:       src.GetString("interpreter.great_path"),
			MaxSourceLength: src.GetInt("interpreter.max_source_length"),
		},
		Shell: ShellConfig{
			Prompt:      src.GetString("shell.prompt"),
			HistoryFile: src.GetString("shell.history_file"),
		},
		Cyberspaces: CyberspacesConfig{
			Endpoint: src.GetString("cyberspaces.endpoint"),
			Timeout:  Duration{src.GetDuration("cyberspaces.timeout")},
			Regions:  src.GetStringSlice("cyberspaces.regions"),
		},
		SpeedTest: SpeedTestConfig{
			MinSizeMB: src.GetInt("speedtest.min_size_mb"),
			MaxSizeMB: src.GetInt("speedtest.max_size_mb"),
			MinDelay:  Duration{src.GetDuration("speedtest.min_delay")},
			MaxDelay:  Duration{src.GetDuration("speedtest.max_delay")},
		},
		Store: StoreConfig{
			Path: src.GetString("store.path"),
		},
		Server: ServerConfig{
			Host:           src.GetString("server.host"),
			Port:           src.GetInt("server.port"),
			ParseCacheSize: src.GetInt("server.parse_cache_size"),
			ParseCacheTTL:  Duration{src.GetDuration("server.parse_cache_ttl")},
		},
	}
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Interpreter
	if c.Interpreter.LogoPath == "" {
		c.Interpreter.LogoPath = "./lib/logo.he"
	}
	if c.Interpreter.GreatPath == "" {
		c.Interpreter.GreatPath = "./great.he"
	}
	if c.Interpreter.MaxSourceLength == 0 {
		c.Interpreter.MaxSourceLength = 65536
	}

	// Shell
	if c.Shell.Prompt == "" {
		c.Shell.Prompt = "Speak to Saint He > "
	}

	// Cyberspaces
	if c.Cyberspaces.Endpoint == "" {
		c.Cyberspaces.Endpoint = "https://pv.sohu.com/cityjson?ie=utf-8"
	}
	if c.Cyberspaces.Timeout.Duration == 0 {
		c.Cyberspaces.Timeout.Duration = 10 * time.Second
	}
	if len(c.Cyberspaces.Regions) == 0 {
		c.Cyberspaces.Regions = []string{"UNITED STATES", "JAPAN"}
	}

	// Speed test
	if c.SpeedTest.MinSizeMB == 0 {
		c.SpeedTest.MinSizeMB = 5
	}
	if c.SpeedTest.MaxSizeMB == 0 {
		c.SpeedTest.MaxSizeMB = 25
	}
	if c.SpeedTest.MaxDelay.Duration == 0 {
		c.SpeedTest.MaxDelay.Duration = 25 * time.Millisecond
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8964
	}
	if c.Server.ParseCacheSize == 0 {
		c.Server.ParseCacheSize = 1024
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.Interpreter.LogoPath = os.ExpandEnv(c.Interpreter.LogoPath)
	c.Interpreter.GreatPath = os.ExpandEnv(c.Interpreter.GreatPath)
	c.Shell.HistoryFile = os.ExpandEnv(c.Shell.HistoryFile)
	c.Store.Path = os.ExpandEnv(c.Store.Path)
}

// Validate checks value ranges that defaults cannot repair
func (c *Config) Validate() error {
	invalid := func(key string, format string, args ...interface{}) error {
		return heerror.Newf(heerror.CodeInvalidConfig, format, args...).
			WithOperation("config.Validate").
			WithDetail("key", key)
	}

	if c.Interpreter.MaxSourceLength < 0 {
		return invalid("interpreter.max_source_length", "max_source_length must not be negative")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return invalid("server.port", "port %d out of range", c.Server.Port)
	}
	if c.SpeedTest.MinSizeMB < 1 || c.SpeedTest.MinSizeMB > c.SpeedTest.MaxSizeMB {
		return invalid("speedtest.min_size_mb", "size range %d..%d MB is invalid",
			c.SpeedTest.MinSizeMB, c.SpeedTest.MaxSizeMB)
	}
	if c.SpeedTest.MinDelay.Duration < 0 || c.SpeedTest.MinDelay.Duration > c.SpeedTest.MaxDelay.Duration {
		return invalid("speedtest.min_delay", "delay range %s..%s is invalid",
			c.SpeedTest.MinDelay, c.SpeedTest.MaxDelay)
	}
	if c.Server.ParseCacheSize < 0 {
		return invalid("server.parse_cache_size", "parse_cache_size must not be negative")
	}
	if c.Cyberspaces.Timeout.Duration < 0 {
		return invalid("cyberspaces.timeout", "timeout must not be negative")
	}
	return nil
}

// Source returns the file the configuration was loaded from, or "" for defaults
func (c *Config) Source() string {
	return c.source
}

// ServerAddress returns the listen address of the playground server
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Encode writes the effective configuration as TOML
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
