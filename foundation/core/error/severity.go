// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors so that drivers can decide
//              how loudly to report them and at which log level.
// Author: lwd-temp
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial implementation with severity levels

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a mistake in the user's program text
	SeverityLow Severity = iota

	// SeverityMedium indicates a failure while evaluating a program
	SeverityMedium

	// SeverityHigh indicates a failing external collaborator
	SeverityHigh

	// SeverityCritical indicates the interpreter cannot continue
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should be surfaced prominently
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeEnvironmentError, CodeInternal:
		return SeverityCritical

	case CodeNetworkError, CodeDatabaseError, CodeConfigError, CodeInvalidConfig:
		return SeverityHigh

	case CodeCyberName, CodeCyberArithmetic, CodeCyberU8Comparing, CodeCyberNotSupported,
		CodeTimeout:
		return SeverityMedium

	case CodeBadToken, CodeBadStatement, CodeInvalidInput, CodeNotFound:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
