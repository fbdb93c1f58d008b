// Package error provides structured error handling for the HeLang interpreter.
//
// Package: error
// Title: HeLang Error Handling
// Description: This package implements the error type shared by every stage of
//              the interpreter. Errors carry a Code that classifies them
//              (BAD_TOKEN, CYBER_NAME, ...), a Severity derived from the code,
//              the failing operation and free-form details such as the source
//              position.
// Author: lwd-temp
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial implementation with contextual errors and codes
//
// Usage:
//
//	import heerror "github.com/lwd-temp/helang/foundation/core/error"
//
//	err := heerror.New("a is not defined").
//	  WithCode(heerror.CodeCyberName).
//	  WithDetail("name", "a")
//
//	if heerror.IsHeLang(err) {
//	  // report and keep the session alive
//	}
package error
