// File: nodes_test.go
// Title: HeLang AST Tests
// Description: Tests for node rendering and tree traversal.
// Author: lwd-temp
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-13 v0.1.0: Initial AST tests

package ast

import (
	"strings"
	"testing"

	"github.com/lwd-temp/helang/foundation/helang/token"
)

func TestNode_String(t *testing.T) {
	tests := []struct {
		name     string
		node     Node
		expected string
	}{
		{"declare", &VarDef{Name: "a"}, "u8 a;"},
		{"define", &VarDef{Name: "a", Init: &OrU8Init{Values: []int{1, 2, 3}}}, "u8 a = 1 | 2 | 3;"},
		{"assign empty", &VarAssign{Name: "b", Value: &EmptyU8Init{Length: 3}}, "b = [3];"},
		{"increment", &VarIncrement{Name: "a"}, "a++;"},
		{"get", &Print{Value: &U8Get{Target: &VarRef{Name: "a"}, Index: &OrU8Init{Values: []int{1, 3}}}}, "print a[1 | 3];"},
		{"set", &U8Set{Target: &VarRef{Name: "a"}, Index: &OrU8Init{Values: []int{0}}, Value: &OrU8Init{Values: []int{7}}}, "a[0] = 7"},
		{
			"binary",
			&Binary{Op: token.Add, Left: &VarRef{Name: "a"}, Right: &Binary{Op: token.Mul, Left: &VarRef{Name: "b"}, Right: &VarRef{Name: "c"}}},
			"(a + (b * c))",
		},
		{"comparison", &Binary{Op: token.NEQ, Left: &VarRef{Name: "a"}, Right: &OrU8Init{Values: []int{1}}}, "(a != 1)"},
		{"launchers", &Block{Statements: []Node{&Logo{}, &Test5G{}, &Cyberspaces{}, &Void{}}}, "logo;\ntest5g;\ncyberspaces;\n;"},
		{"expression statement", &Block{Statements: []Node{&VarRef{Name: "a"}}}, "a;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestAtToken(t *testing.T) {
	at := AtToken(token.Token{Kind: token.Ident, Content: "a", Offset: 8, Line: 2, Column: 3})
	ref := &VarRef{At: at, Name: "a"}

	if got := ref.Position(); got.Line != 2 || got.Column != 3 || got.Offset != 8 {
		t.Errorf("Position() = %+v", got)
	}
	if ref.Position().String() != "2:3" {
		t.Errorf("Position().String() = %q", ref.Position().String())
	}
}

func TestInspect(t *testing.T) {
	tree := &Block{Statements: []Node{
		&VarDef{Name: "a", Init: &OrU8Init{Values: []int{1}}},
		&Print{Value: &Binary{Op: token.Add, Left: &VarRef{Name: "a"}, Right: &VarRef{Name: "a"}}},
	}}

	var refs int
	Inspect(tree, func(n Node) bool {
		if _, ok := n.(*VarRef); ok {
			refs++
		}
		return true
	})
	if refs != 2 {
		t.Errorf("Expected 2 variable references, got %d", refs)
	}

	var visited int
	Inspect(tree, func(n Node) bool {
		visited++
		_, isPrint := n.(*Print)
		return !isPrint
	})
	if visited != 4 {
		t.Errorf("Expected 4 visited nodes when skipping print children, got %d", visited)
	}
}

func TestDump(t *testing.T) {
	tree := &Block{Statements: []Node{
		&VarDef{Name: "a"},
		&U8Set{Target: &VarRef{Name: "a"}, Index: &OrU8Init{Values: []int{0}}, Value: &OrU8Init{Values: []int{1}}},
	}}

	lines := strings.Split(strings.TrimSpace(Dump(tree)), "\n")
	expected := []string{
		"Block (2) @0:0",
		"  VarDef a @0:0",
		"  U8Set @0:0",
		"    VarRef a @0:0",
		"    OrU8Init 0 @0:0",
		"    OrU8Init 1 @0:0",
	}
	if len(lines) != len(expected) {
		t.Fatalf("Expected %d lines, got %d:\n%s", len(expected), len(lines), Dump(tree))
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("line %d: expected %q, got %q", i, expected[i], lines[i])
		}
	}
}
