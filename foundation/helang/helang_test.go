// File: helang_test.go
// Title: HeLang Engine Tests
// Description: End-to-end tests running programs, script files and
//              interactive sessions through the engine.
// Author: lwd-temp
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-14 v0.1.0: Initial engine tests

package helang

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	heerror "github.com/lwd-temp/helang/foundation/core/error"
	helog "github.com/lwd-temp/helang/foundation/core/log"
	"github.com/lwd-temp/helang/foundation/helang/ast"
	"github.com/lwd-temp/helang/foundation/helang/env"
)

func newTestEngine(out *bytes.Buffer) *Engine {
	return New(Options{Logger: helog.Discard(), Output: out})
}

func writeScript(t *testing.T, dir, name, source string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestEngine_Run(t *testing.T) {
	var out bytes.Buffer
	engine := newTestEngine(&out)
	e := env.New()

	source := `
// Saint He's favourite numbers
u8 a = 1 | 2;
u8 b = 3 | 4;
u8 c = 5 | 8;
print a + b * c + b;
sprint 72 | 101 | 76 | 97 | 110 | 103;
`
	if _, err := engine.Run(context.Background(), source, e); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	expected := "51 | 53\nHeLang\n"
	if out.String() != expected {
		t.Errorf("Expected output %q, got %q", expected, out.String())
	}
	if !reflect.DeepEqual(e.Names(), []string{"a", "b", "c"}) {
		t.Errorf("Expected variables a b c, got %v", e.Names())
	}
}

func TestEngine_RunStopsAtFirstError(t *testing.T) {
	var out bytes.Buffer
	engine := newTestEngine(&out)
	e := env.New()

	_, err := engine.Run(context.Background(), "u8 a = 1; print a; print b; print a;", e)
	if !heerror.HasCode(err, heerror.CodeCyberName) {
		t.Fatalf("Expected CYBER_NAME, got %v", err)
	}
	if out.String() != "1\n" {
		t.Errorf("Expected only the first print, got %q", out.String())
	}
	if !e.Has("a") {
		t.Error("effects before the failing statement were lost")
	}
}

func TestEngine_FrontEndErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		code   heerror.Code
	}{
		{"bad token", "u8 a = 1 / 2;", heerror.CodeBadToken},
		{"bad statement", "u8 = 1;", heerror.CodeBadStatement},
		{"too long", strings.Repeat(";", DefaultMaxSourceLength+1), heerror.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestEngine(&bytes.Buffer{}).Run(context.Background(), tt.source, env.New())
			if !heerror.HasCode(err, tt.code) {
				t.Errorf("Expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestEngine_RunFile(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "main.he", "u8 a = 1 | 2 | 3;\na[1 | 3] = 12;\nprint a;\n")

	var out bytes.Buffer
	e := env.New()
	if _, err := newTestEngine(&out).RunFile(context.Background(), path, e); err != nil {
		t.Fatalf("RunFile() error = %v", err)
	}
	if out.String() != "12 | 2 | 12\n" {
		t.Errorf("Expected 12 | 2 | 12, got %q", out.String())
	}

	_, err := newTestEngine(&out).RunFile(context.Background(), filepath.Join(dir, "missing.he"), e)
	if !heerror.HasCode(err, heerror.CodeNotFound) {
		t.Errorf("Expected NOT_FOUND, got %v", err)
	}
	if heerror.IsHeLang(err) {
		t.Error("a missing file is not a language error")
	}
}

func TestEngine_Logo(t *testing.T) {
	dir := t.TempDir()
	logo := writeScript(t, dir, "logo.he", "sprint 72 | 101;\nu8 fromLogo = 1;\n")

	var out bytes.Buffer
	engine := New(Options{Logger: helog.Discard(), Output: &out, LogoPath: logo})
	e := env.New()

	if _, err := engine.Run(context.Background(), "u8 a = 1; logo; print fromLogo + a;", e); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.String() != "He\n2\n" {
		t.Errorf("Expected logo output then 2, got %q", out.String())
	}
}

func TestEngine_RecursiveLogo(t *testing.T) {
	dir := t.TempDir()
	logo := writeScript(t, dir, "logo.he", "logo;\n")

	engine := New(Options{Logger: helog.Discard(), Output: &bytes.Buffer{}, LogoPath: logo})
	_, err := engine.Run(context.Background(), "logo;", env.New())
	if !heerror.HasCode(err, heerror.CodeCyberNotSupported) {
		t.Errorf("Expected CYBER_NOT_SUPPORTED, got %v", err)
	}
}

func TestEngine_NoScripts(t *testing.T) {
	dir := t.TempDir()
	logo := writeScript(t, dir, "logo.he", "print 1;\n")

	var out bytes.Buffer
	engine := New(Options{Logger: helog.Discard(), Output: &out, LogoPath: logo, NoScripts: true})
	_, err := engine.Run(context.Background(), "logo;", env.New())
	if !heerror.HasCode(err, heerror.CodeCyberNotSupported) {
		t.Errorf("Expected CYBER_NOT_SUPPORTED, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("logo script ran: %q", out.String())
	}
}

type mapCache struct {
	nodes map[string]ast.Node
	hits  int
}

func (c *mapCache) Get(source string) (ast.Node, bool) {
	node, ok := c.nodes[source]
	if ok {
		c.hits++
	}
	return node, ok
}

func (c *mapCache) Set(source string, node ast.Node) { c.nodes[source] = node }

func TestEngine_ParseCache(t *testing.T) {
	cache := &mapCache{nodes: make(map[string]ast.Node)}
	var out bytes.Buffer
	engine := New(Options{Logger: helog.Discard(), Output: &out, ParseCache: cache})

	for i := 0; i < 3; i++ {
		if _, err := engine.Run(context.Background(), "u8 a = 1 | 2; print a;", env.New()); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	}
	if out.String() != "1 | 2\n1 | 2\n1 | 2\n" {
		t.Errorf("Unexpected output %q", out.String())
	}
	if len(cache.nodes) != 1 || cache.hits != 2 {
		t.Errorf("Expected 1 entry and 2 hits, got %d and %d", len(cache.nodes), cache.hits)
	}

	if _, err := engine.Run(context.Background(), "u8 = 1;", env.New()); err == nil {
		t.Fatal("Expected a parse error")
	}
	if len(cache.nodes) != 1 {
		t.Error("Failed parse was cached")
	}
}

func TestEngine_LogsNodeCount(t *testing.T) {
	var logs bytes.Buffer
	logger := helog.NewWithConfig(helog.Config{Level: helog.LevelDebug, Format: helog.FormatText, Output: &logs})
	engine := New(Options{Logger: logger, Output: &bytes.Buffer{}})

	if _, err := engine.Run(context.Background(), "print 1;", env.New()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(logs.String(), "nodes=2") {
		t.Errorf("Expected nodes=2 in %q", logs.String())
	}
}

func TestEngine_WithOutput(t *testing.T) {
	var first, second bytes.Buffer
	engine := newTestEngine(&first)
	other := engine.WithOutput(&second)

	if _, err := other.Run(context.Background(), "print 7;", env.New()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if first.Len() != 0 || second.String() != "7\n" {
		t.Errorf("Expected output only in the second buffer, got %q and %q", first.String(), second.String())
	}
	if other.Output() != &second {
		t.Error("Output() does not report the new writer")
	}
}

func TestSession_Execute(t *testing.T) {
	var out bytes.Buffer
	session := newTestEngine(&out).NewSession()
	ctx := context.Background()

	steps := []struct {
		input   string
		wantErr heerror.Code
	}{
		{input: "u8 a = 1 | 2"},
		{input: "  a++  "},
		{input: "print b", wantErr: heerror.CodeCyberName},
		{input: "a = 3 / 4", wantErr: heerror.CodeBadToken},
		{input: "print a;"},
		{input: ""},
		{input: "// only a comment"},
	}

	for _, step := range steps {
		_, err := session.Execute(ctx, step.input)
		if step.wantErr != "" {
			if !heerror.HasCode(err, step.wantErr) {
				t.Errorf("%q: expected %s, got %v", step.input, step.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", step.input, err)
		}
	}

	if out.String() != "2 | 3\n" {
		t.Errorf("Expected 2 | 3, got %q", out.String())
	}

	session.Reset()
	if session.Env().Len() != 0 {
		t.Error("Reset() left variables behind")
	}
}

func TestSession_ExecuteTrailingComment(t *testing.T) {
	var out bytes.Buffer
	session := newTestEngine(&out).NewSession()

	if _, err := session.Execute(context.Background(), "print 1 | 2 // Saint He"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.String() != "1 | 2\n" {
		t.Errorf("Expected %q, got %q", "1 | 2\n", out.String())
	}
}

func TestTerminate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"print a", "print a;"},
		{"print a;", "print a;"},
		{"  a++ \n", "a++;"},
		{"", ";"},
		{"print a // Saint He", "print a; // Saint He"},
		{"print a; // done", "print a; // done"},
		{"u8 a = 1;\nprint a // twice", "u8 a = 1;\nprint a; // twice"},
		{"// just a note", "; // just a note"},
	}

	for _, tt := range tests {
		if got := Terminate(tt.input); got != tt.expected {
			t.Errorf("Terminate(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
