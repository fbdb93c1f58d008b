// File: config.go
// Title: Core Configuration Management Implementation
// Description: Implements the Config type for loading, parsing and accessing
//              configuration data from TOML and YAML files. Keys are read with
//              dot notation; environment variables override file values.
// Author: lwd-temp
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-12 v0.1.0: Initial implementation with TOML/YAML support
// - 2026-10-13 v0.1.0: Defaults merge recursively into nested tables
// - 2026-10-18 v0.1.0: Typed getters share one lookup path

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	heerror "github.com/lwd-temp/helang/foundation/core/error"
)

// Format represents the configuration file format
type Format int

const (
	// FormatTOML represents TOML format (default)
	FormatTOML Format = iota

	// FormatYAML represents YAML format
	FormatYAML

	// FormatAuto auto-detects format from file extension
	FormatAuto
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// Config represents a configuration instance with thread-safe access
type Config struct {
	mu        sync.RWMutex
	data      map[string]interface{}
	filePath  string
	format    Format
	envPrefix string
	lookupEnv func(string) (string, bool)
}

// LoadOptions defines options for loading configuration
type LoadOptions struct {
	Format    Format                 // File format (default: auto-detect)
	EnvPrefix string                 // Environment variable prefix (default: none)
	Defaults  map[string]interface{} // Default values, nested like the file
}

// Load loads configuration from a file with default options
func Load(filePath string) (*Config, error) {
	return LoadWithOptions(filePath, LoadOptions{Format: FormatAuto})
}

// LoadWithOptions loads configuration from a file with custom options
func LoadWithOptions(filePath string, options LoadOptions) (*Config, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, heerror.New("config file path cannot be empty").
			WithCode(heerror.CodeInvalidInput).
			WithOperation("config.LoadWithOptions")
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		code := heerror.CodeConfigError
		if os.IsNotExist(err) {
			code = heerror.CodeNotFound
		}
		return nil, heerror.Wrap(err, "failed to read config file").
			WithCode(code).
			WithOperation("config.LoadWithOptions").
			WithDetail("filePath", filePath)
	}

	format := options.Format
	if format == FormatAuto {
		format = detectFormat(filePath)
	}

	data, err := parseContent(content, format)
	if err != nil {
		return nil, heerror.Wrap(err, "failed to parse config file").
			WithCode(heerror.CodeInvalidConfig).
			WithOperation("config.LoadWithOptions").
			WithDetail("filePath", filePath).
			WithDetail("format", format.String())
	}

	return newConfig(mergeDefaults(data, options.Defaults), filePath, format, options.EnvPrefix), nil
}

// LoadFromString loads configuration from a string with specified format
func LoadFromString(content string, format Format) (*Config, error) {
	if format == FormatAuto {
		format = FormatTOML
	}

	data, err := parseContent([]byte(content), format)
	if err != nil {
		return nil, heerror.Wrap(err, "failed to parse config from string").
			WithCode(heerror.CodeInvalidConfig).
			WithOperation("config.LoadFromString").
			WithDetail("format", format.String())
	}

	return newConfig(data, "", format, ""), nil
}

// FromDefaults builds a configuration from defaults only, honoring the
// environment prefix. It is used when no configuration file exists.
func FromDefaults(defaults map[string]interface{}, envPrefix string) *Config {
	return newConfig(mergeDefaults(nil, defaults), "", FormatAuto, envPrefix)
}

func newConfig(data map[string]interface{}, filePath string, format Format, envPrefix string) *Config {
	if data == nil {
		data = make(map[string]interface{})
	}
	return &Config{
		data:      data,
		filePath:  filePath,
		format:    format,
		envPrefix: envPrefix,
		lookupEnv: os.LookupEnv,
	}
}

// detectFormat determines the configuration format from file extension
func detectFormat(filePath string) Format {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// parseContent parses configuration content based on format
func parseContent(content []byte, format Format) (map[string]interface{}, error) {
	var data map[string]interface{}

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(content, &data); err != nil {
			return nil, heerror.Wrap(err, "TOML parse error").
				WithCode(heerror.CodeInvalidConfig).
				WithOperation("config.parseContent")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, heerror.Wrap(err, "YAML parse error").
				WithCode(heerror.CodeInvalidConfig).
				WithOperation("config.parseContent")
		}
	default:
		return nil, heerror.New(fmt.Sprintf("unsupported format: %s", format)).
			WithCode(heerror.CodeInvalidInput).
			WithOperation("config.parseContent")
	}

	return data, nil
}

// mergeDefaults merges default values into configuration data; nested
// tables are merged key by key so that a file may override a single entry.
func mergeDefaults(data, defaults map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(defaults)+len(data))

	for k, v := range defaults {
		if nested, ok := v.(map[string]interface{}); ok {
			result[k] = mergeDefaults(nil, nested)
		} else {
			result[k] = v
		}
	}

	for k, v := range data {
		nested, isMap := v.(map[string]interface{})
		existing, hasMap := result[k].(map[string]interface{})
		if isMap && hasMap {
			result[k] = mergeDefaults(nested, existing)
			continue
		}
		result[k] = v
	}

	return result
}

// lookup resolves key to a typed value: the environment override wins,
// then the stored value, then the caller's default.
func lookup[T any](c *Config, key string, parseEnv func(string) (T, bool), convert func(interface{}) (T, bool), fallback []T) T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if raw, ok := c.getEnvValue(key); ok {
		if v, ok := parseEnv(raw); ok {
			return v
		}
	}
	if v, ok := convert(c.getValue(key)); ok {
		return v
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	var zero T
	return zero
}

func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return n, err == nil
}

func parseBool(s string) (bool, bool) {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return b, err == nil
}

func parseDuration(s string) (time.Duration, bool) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	return d, err == nil
}

// GetString returns a string value; non-string values are formatted
func (c *Config) GetString(key string, defaultValue ...string) string {
	return lookup(c, key,
		func(s string) (string, bool) { return s, true },
		func(v interface{}) (string, bool) {
			switch v := v.(type) {
			case nil:
				return "", false
			case string:
				return v, true
			default:
				return fmt.Sprint(v), true
			}
		},
		defaultValue)
}

// GetInt returns an integer value
func (c *Config) GetInt(key string, defaultValue ...int) int {
	return lookup(c, key, parseInt, func(v interface{}) (int, bool) {
		switch v := v.(type) {
		case int:
			return v, true
		case int64:
			return int(v), true
		case float64:
			return int(v), true
		case string:
			return parseInt(v)
		}
		return 0, false
	}, defaultValue)
}

// GetBool returns a boolean value
func (c *Config) GetBool(key string, defaultValue ...bool) bool {
	return lookup(c, key, parseBool, func(v interface{}) (bool, bool) {
		switch v := v.(type) {
		case bool:
			return v, true
		case string:
			return parseBool(v)
		}
		return false, false
	}, defaultValue)
}

// GetDuration returns a duration value. Strings use time.ParseDuration
// syntax, bare integers count nanoseconds.
func (c *Config) GetDuration(key string, defaultValue ...time.Duration) time.Duration {
	return lookup(c, key, parseDuration, func(v interface{}) (time.Duration, bool) {
		switch v := v.(type) {
		case string:
			return parseDuration(v)
		case time.Duration:
			return v, true
		case int:
			return time.Duration(v), true
		case int64:
			return time.Duration(v), true
		}
		return 0, false
	}, defaultValue)
}

// GetStringSlice returns a list value. An environment override is split
// on commas.
func (c *Config) GetStringSlice(key string, defaultValue ...[]string) []string {
	return lookup(c, key,
		func(s string) ([]string, bool) {
			parts := strings.Split(s, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return parts, true
		},
		func(v interface{}) ([]string, bool) {
			switch v := v.(type) {
			case []string:
				return append([]string(nil), v...), true
			case []interface{}:
				result := make([]string, len(v))
				for i, item := range v {
					result[i] = fmt.Sprint(item)
				}
				return result, true
			case string:
				return []string{v}, true
			}
			return nil, false
		},
		defaultValue)
}

// getValue retrieves a configuration value by key (supports dot notation)
func (c *Config) getValue(key string) interface{} {
	keys := strings.Split(key, ".")
	current := c.data

	for i, k := range keys {
		if i == len(keys)-1 {
			return current[k]
		}
		next, ok := current[k].(map[string]interface{})
		if !ok {
			return nil
		}
		current = next
	}

	return nil
}

// getEnvValue looks up the environment override for a key. Overrides are
// only consulted when a prefix is configured.
func (c *Config) getEnvValue(key string) (string, bool) {
	if c.envPrefix == "" || c.lookupEnv == nil {
		return "", false
	}
	value, ok := c.lookupEnv(c.formatEnvKey(key))
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// formatEnvKey converts a config key to environment variable format:
// shell.prompt with prefix HELANG becomes HELANG_SHELL_PROMPT.
func (c *Config) formatEnvKey(key string) string {
	envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if c.envPrefix != "" {
		envKey = strings.ToUpper(c.envPrefix) + "_" + envKey
	}
	return envKey
}

// Has checks if a configuration key exists
func (c *Config) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.getValue(key) != nil
}

// Set sets a configuration value (runtime only, not persisted)
func (c *Config) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := strings.Split(key, ".")
	current := c.data

	for i, k := range keys {
		if i == len(keys)-1 {
			current[k] = value
			return
		}
		next, ok := current[k].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			current[k] = next
		}
		current = next
	}
}

// FilePath returns the path of the loaded configuration file
func (c *Config) FilePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// Format returns the configuration file format
func (c *Config) Format() Format {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.format
}

// String provides a readable representation of the configuration
func (c *Config) String() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	parts := []string{fmt.Sprintf("Config{format: %s", c.format.String())}
	if c.filePath != "" {
		parts = append(parts, fmt.Sprintf("path: %s", c.filePath))
	}
	if c.envPrefix != "" {
		parts = append(parts, fmt.Sprintf("envPrefix: %s", c.envPrefix))
	}
	parts = append(parts, fmt.Sprintf("keys: %d}", len(c.data)))

	return strings.Join(parts, ", ")
}
