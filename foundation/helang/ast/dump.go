// File: dump.go
// Title: HeLang AST Traversal
// Description: Provides Inspect for depth-first traversal and Dump, an
//              indented tree rendering used by the tokens command.
// Author: lwd-temp
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-13
//
// Change History:
// - 2026-10-13 v0.1.0: Initial traversal helpers

package ast

import (
	"fmt"
	"strings"
)

// Children returns the direct children of a node in source order
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Block:
		return n.Statements
	case *VarDef:
		if n.Init != nil {
			return []Node{n.Init}
		}
	case *VarAssign:
		return []Node{n.Value}
	case *U8Get:
		return []Node{n.Target, n.Index}
	case *U8Set:
		return []Node{n.Target, n.Index, n.Value}
	case *Print:
		return []Node{n.Value}
	case *Sprint:
		return []Node{n.Value}
	case *Binary:
		return []Node{n.Left, n.Right}
	}
	return nil
}

// Inspect traverses the tree depth-first. If f returns false the children
// of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, child := range Children(n) {
		Inspect(child, f)
	}
}

// Dump renders the tree with one node per line, indented by depth
func Dump(n Node) string {
	var b strings.Builder
	dump(&b, n, 0)
	return b.String()
}

func dump(b *strings.Builder, n Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(label(n))
	b.WriteString(fmt.Sprintf(" @%s\n", n.Position()))
	for _, child := range Children(n) {
		dump(b, child, depth+1)
	}
}

func label(n Node) string {
	switch n := n.(type) {
	case *Block:
		return fmt.Sprintf("Block (%d)", len(n.Statements))
	case *Void:
		return "Void"
	case *VarDef:
		return "VarDef " + n.Name
	case *VarAssign:
		return "VarAssign " + n.Name
	case *VarIncrement:
		return "VarIncrement " + n.Name
	case *VarRef:
		return "VarRef " + n.Name
	case *EmptyU8Init:
		return fmt.Sprintf("EmptyU8Init %d", n.Length)
	case *OrU8Init:
		return "OrU8Init " + n.String()
	case *U8Get:
		return "U8Get"
	case *U8Set:
		return "U8Set"
	case *Print:
		return "Print"
	case *Sprint:
		return "Sprint"
	case *Binary:
		return "Binary " + OperatorSymbol(n.Op)
	case *Logo:
		return "Logo"
	case *Test5G:
		return "Test5G"
	case *Cyberspaces:
		return "Cyberspaces"
	default:
		return fmt.Sprintf("%T", n)
	}
}
