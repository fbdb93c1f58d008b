// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used to classify interpreter failures.
//              Domain codes cover the lexer, parser and evaluator; generic
//              codes cover configuration, storage and transport surfaces.
// Author: lwd-temp
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial implementation with interpreter error codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Lexing and parsing
	CodeBadToken     Code = "BAD_TOKEN"
	CodeBadStatement Code = "BAD_STATEMENT"

	// Evaluation
	CodeCyberName         Code = "CYBER_NAME"
	CodeCyberArithmetic   Code = "CYBER_ARITHMETIC"
	CodeCyberU8Comparing  Code = "CYBER_U8_COMPARING"
	CodeCyberNotSupported Code = "CYBER_NOT_SUPPORTED"

	// Service and network
	CodeNetworkError Code = "NETWORK_ERROR"

	// Storage
	CodeDatabaseError Code = "DATABASE_ERROR"

	// Configuration and environment
	CodeConfigError      Code = "CONFIG_ERROR"
	CodeInvalidConfig    Code = "INVALID_CONFIG"
	CodeEnvironmentError Code = "ENVIRONMENT_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsHeLang reports whether the code belongs to the language itself. Errors
// carrying such a code are recoverable in interactive sessions.
func (c Code) IsHeLang() bool {
	switch c {
	case CodeBadToken, CodeBadStatement,
		CodeCyberName, CodeCyberArithmetic, CodeCyberU8Comparing, CodeCyberNotSupported,
		CodeNetworkError:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeBadToken, CodeBadStatement:
		return "syntax"
	case CodeCyberName, CodeCyberArithmetic, CodeCyberU8Comparing, CodeCyberNotSupported:
		return "runtime"
	case CodeNetworkError:
		return "service"
	case CodeDatabaseError:
		return "database"
	case CodeConfigError, CodeInvalidConfig, CodeEnvironmentError:
		return "configuration"
	default:
		return "generic"
	}
}

// Title returns the display name used when an error is reported to a user,
// e.g. "CyberName" for CYBER_NAME.
func (c Code) Title() string {
	switch c {
	case CodeBadToken:
		return "BadTokenException"
	case CodeBadStatement:
		return "BadStatementException"
	case CodeCyberName:
		return "CyberNameException"
	case CodeCyberArithmetic:
		return "CyberArithmeticException"
	case CodeCyberU8Comparing:
		return "CyberU8ComparingException"
	case CodeCyberNotSupported:
		return "CyberNotSupportedException"
	case CodeNetworkError:
		return "CyberNetworkException"
	default:
		return string(c)
	}
}
