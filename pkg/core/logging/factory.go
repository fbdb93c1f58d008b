// ============================================================================
// HeLang - Saint He's programming language
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating loggers from settings
// Author:      lwd-temp
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"strings"

	helog "github.com/lwd-temp/helang/foundation/core/log"
	"github.com/lwd-temp/helang/pkg/core/config"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Logger name shown in every entry
	Name string

	// Log level (trace, debug, info, warn, error, fatal)
	Level string

	// Output format (text, json, console, logfmt; default: text)
	Format string

	// Output defaults to stderr so that logs never mix with program output
	Output io.Writer

	// Additional outputs besides Output
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "warn",
		Format: "text",
	}
}

// NewLogger creates a new foundation logger
func NewLogger(cfg LoggerConfig) *helog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	format, err := helog.ParseFormat(cfg.Format)
	if err != nil {
		format = helog.FormatText
	}

	return helog.NewWithConfig(helog.Config{
		Level:  parseLevel(cfg.Level),
		Format: format,
		Output: output,
		Name:   cfg.Name,
	})
}

// FromConfig creates the application logger from loaded settings. Verbose
// lowers the level to debug.
func FromConfig(cfg *config.Config, name string, verbose bool) *helog.Logger {
	lc := DefaultLoggerConfig(name)
	lc.Level = cfg.General.LogLevel
	lc.Format = cfg.General.LogFormat
	if verbose {
		lc.Level = "debug"
	}
	return NewLogger(lc)
}

// Setup creates the application logger and installs it as the default
func Setup(cfg *config.Config, name string, verbose bool) *helog.Logger {
	logger := FromConfig(cfg, name, verbose)
	helog.SetDefault(logger)
	return logger
}

// parseLevel converts a string level to helog.Level
func parseLevel(level string) helog.Level {
	parsed, err := helog.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return helog.DefaultLevel()
	}
	return parsed
}
