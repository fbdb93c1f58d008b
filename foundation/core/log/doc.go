// Package log provides structured logging for the HeLang interpreter.
//
// Package: log
// Title: HeLang Structured Logging
// Description: This package implements a small structured logger with levels,
//              persistent context fields and several output formats. It knows
//              about the interpreter's error type and picks the log level of
//              an error from its severity.
// Author: lwd-temp
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial implementation with structured logging and error integration
//
// Logs never go to the program output. The default logger writes warnings and
// above to stderr in text format.
//
// Usage:
//
//	import helog "github.com/lwd-temp/helang/foundation/core/log"
//
//	logger := helog.GetDefault().WithField("component", "lexer")
//	logger.Debug("Tokenizing input", helog.Fields{"length": len(src)})
//
//	timer := logger.StartTimer("run")
//	// ... evaluate a program
//	timer.Stop()
package log
