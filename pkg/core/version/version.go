// ============================================================================
// HeLang - Saint He's programming language
// ============================================================================
//
// Package:     version
// Description: Central version management for the interpreter and its tools
// Author:      lwd-temp
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package version

import "fmt"

// Version constants for HeLang components
const (
	// Language version
	Language = "0.1.0"

	// Component versions
	Shell      = "0.1.0"
	Editor     = "0.1.0"
	Playground = "0.1.0"
	Store      = "0.1.0"
)

// Build metadata, set with -ldflags "-X github.com/lwd-temp/helang/pkg/core/version.Commit=..."
var (
	Commit = "unknown"
	Date   = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "shell":
		return Shell
	case "editor":
		return Editor
	case "playground":
		return Playground
	case "store":
		return Store
	default:
		return Language
	}
}

// String returns the full version line printed by "helang version"
func String() string {
	return fmt.Sprintf("HeLang %s (commit %s, built %s)", Language, Commit, Date)
}
