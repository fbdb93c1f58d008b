// File: session.go
// Title: Interactive Session
// Description: Keeps one environment across a sequence of inputs the way
//              an interactive prompt evaluates them.
// Author: lwd-temp
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-16 v0.1.0: Initial session
// - 2026-10-19 v0.1.0: Semicolon goes before a trailing comment

package helang

import (
	"context"
	"strings"

	"github.com/lwd-temp/helang/foundation/helang/env"
	"github.com/lwd-temp/helang/foundation/helang/u8"
)

// Session evaluates inputs one after another against a shared environment.
// A failing input leaves the effects of earlier inputs in place.
type Session struct {
	engine *Engine
	env    *env.Environment
}

// NewSession starts a session with an empty environment
func (en *Engine) NewSession() *Session {
	return &Session{engine: en, env: env.New()}
}

// Execute runs one input. A missing trailing semicolon is added.
func (s *Session) Execute(ctx context.Context, input string) (*u8.U8, error) {
	return s.engine.Run(ctx, Terminate(input), s.env)
}

// Env returns the session environment
func (s *Session) Env() *env.Environment {
	return s.env
}

// Engine returns the engine the session runs on
func (s *Session) Engine() *Engine {
	return s.engine
}

// Reset clears every variable
func (s *Session) Reset() {
	s.env.Reset()
}

// Terminate trims input and appends a semicolon when it lacks one. A
// trailing line comment stays last, after the added semicolon.
func Terminate(input string) string {
	input = strings.TrimSpace(input)

	code, comment := input, ""
	lastLine := strings.LastIndex(input, "\n") + 1
	if i := strings.Index(input[lastLine:], "//"); i >= 0 {
		code, comment = input[:lastLine+i], input[lastLine+i:]
	}

	code = strings.TrimSpace(code)
	if !strings.HasSuffix(code, ";") {
		code += ";"
	}
	if comment == "" {
		return code
	}
	return code + " " + comment
}
