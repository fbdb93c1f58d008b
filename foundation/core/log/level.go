// File: level.go
// Title: Log Level Definitions
// Description: Defines log levels for filtering log output, with their long
//              and short names and console colors.
// Author: lwd-temp
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-12 v0.1.0: Initial implementation
// - 2026-10-18 v0.1.0: Level table, parse errors carry INVALID_CONFIG

package log

import (
	"strings"

	heerror "github.com/lwd-temp/helang/foundation/core/error"
)

// Level represents the importance level of a log message
type Level int

const (
	LevelTrace Level = iota // token and node dumps
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

type levelInfo struct {
	name    string
	short   string
	color   string
	aliases []string
}

var levels = [...]levelInfo{
	LevelTrace: {"trace", "TRC", "\033[37m", []string{"trc"}},
	LevelDebug: {"debug", "DBG", "\033[36m", []string{"dbg"}},
	LevelInfo:  {"info", "INF", "\033[32m", []string{"inf", "information"}},
	LevelWarn:  {"warn", "WRN", "\033[33m", []string{"wrn", "warning"}},
	LevelError: {"error", "ERR", "\033[31m", []string{"err"}},
	LevelFatal: {"fatal", "FTL", "\033[35m", []string{"ftl"}},
}

func (l Level) info() (levelInfo, bool) {
	if l < LevelTrace || l > LevelFatal {
		return levelInfo{"unknown", "???", "\033[0m", nil}, false
	}
	return levels[l], true
}

// String returns the lower-case level name
func (l Level) String() string {
	info, _ := l.info()
	return info.name
}

// ShortString returns the three letter level tag used by text output
func (l Level) ShortString() string {
	info, _ := l.info()
	return info.short
}

// Color returns the ANSI color sequence for console output
func (l Level) Color() string {
	info, _ := l.info()
	return info.color
}

// ShouldLog returns true if this level passes the minimum level
func (l Level) ShouldLog(minLevel Level) bool {
	return l >= minLevel
}

// ParseLevel parses a level name or alias. Unknown names yield LevelInfo
// and an INVALID_CONFIG error.
func ParseLevel(level string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(level))
	for l, info := range levels {
		if info.name == name {
			return Level(l), nil
		}
		for _, alias := range info.aliases {
			if alias == name {
				return Level(l), nil
			}
		}
	}
	return LevelInfo, invalidSetting("level", level)
}

// DefaultLevel returns the level used when nothing is configured
func DefaultLevel() Level {
	return LevelWarn
}

func invalidSetting(kind, value string) error {
	return heerror.Newf(heerror.CodeInvalidConfig, "invalid log %s: %q", kind, value).
		WithOperation("log.Parse" + strings.ToUpper(kind[:1]) + kind[1:])
}
