// File: nodes.go
// Title: HeLang AST Node Definitions
// Description: Defines the closed set of syntax tree nodes produced by the
//              parser. Every node renders back to source-like text and
//              carries the position of its first token.
// Author: lwd-temp
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-13 v0.1.0: Initial AST node definitions
// - 2026-10-15 v0.1.0: Binary replaces separate arithmetic and comparison nodes

package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lwd-temp/helang/foundation/helang/token"
)

// Node is implemented by every syntax tree node. The set of nodes is closed:
// the unexported marker keeps other packages from adding new ones.
type Node interface {
	// String returns source-like text for the node
	String() string

	// Position returns the source position of the node
	Position() Position

	node()
}

// Position represents a position in the source code
type Position struct {
	Line   int // Line number (1-based)
	Column int // Column number (1-based)
	Offset int // Byte offset (0-based)
}

// At is embedded by every node and records where it starts
type At struct {
	Pos Position
}

// AtToken returns the location of a token
func AtToken(t token.Token) At {
	return At{Pos: Position{Line: t.Line, Column: t.Column, Offset: t.Offset}}
}

// Position returns the source position of the node
func (a At) Position() Position {
	return a.Pos
}

// String formats the position as line:column
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Block is a sequence of statements
type Block struct {
	At
	Statements []Node
}

// Void is the empty statement ";"
type Void struct {
	At
}

// VarDef declares a variable, with or without an initializer.
// Init is nil for "u8 a;".
type VarDef struct {
	At
	Name string
	Init Node
}

// VarAssign assigns to an existing variable
type VarAssign struct {
	At
	Name  string
	Value Node
}

// VarIncrement is "a++;"
type VarIncrement struct {
	At
	Name string
}

// VarRef reads a variable
type VarRef struct {
	At
	Name string
}

// EmptyU8Init is "[n]", a vector of n zeros
type EmptyU8Init struct {
	At
	Length int
}

// OrU8Init is "1 | 2 | 3"
type OrU8Init struct {
	At
	Values []int
}

// U8Get is "target[index]"
type U8Get struct {
	At
	Target Node
	Index  Node
}

// U8Set is "target[index] = value"
type U8Set struct {
	At
	Target Node
	Index  Node
	Value  Node
}

// Print writes the elements of a vector
type Print struct {
	At
	Value Node
}

// Sprint writes a vector as characters
type Sprint struct {
	At
	Value Node
}

// Binary is an arithmetic (+ - *) or comparison (< <= > >= == !=) operation.
// The parser nests chains to the right; the evaluator regroups them by
// operator priority.
type Binary struct {
	At
	Op    token.Kind
	Left  Node
	Right Node
}

// Logo runs the logo script
type Logo struct {
	At
}

// Test5G runs the 5G speed test
type Test5G struct {
	At
}

// Cyberspaces checks whether the user is in the Cyber Spaces
type Cyberspaces struct {
	At
}

func (*Block) node()        {}
func (*Void) node()         {}
func (*VarDef) node()       {}
func (*VarAssign) node()    {}
func (*VarIncrement) node() {}
func (*VarRef) node()       {}
func (*EmptyU8Init) node()  {}
func (*OrU8Init) node()     {}
func (*U8Get) node()        {}
func (*U8Set) node()        {}
func (*Print) node()        {}
func (*Sprint) node()       {}
func (*Binary) node()       {}
func (*Logo) node()         {}
func (*Test5G) node()       {}
func (*Cyberspaces) node()  {}

func (n *Block) String() string {
	lines := make([]string, len(n.Statements))
	for i, s := range n.Statements {
		lines[i] = statement(s)
	}
	return strings.Join(lines, "\n")
}

func (n *Void) String() string { return ";" }

func (n *VarDef) String() string {
	if n.Init == nil {
		return fmt.Sprintf("u8 %s;", n.Name)
	}
	return fmt.Sprintf("u8 %s = %s;", n.Name, n.Init)
}

func (n *VarAssign) String() string {
	return fmt.Sprintf("%s = %s;", n.Name, n.Value)
}

func (n *VarIncrement) String() string {
	return n.Name + "++;"
}

func (n *VarRef) String() string { return n.Name }

func (n *EmptyU8Init) String() string {
	return fmt.Sprintf("[%d]", n.Length)
}

func (n *OrU8Init) String() string {
	parts := make([]string, len(n.Values))
	for i, v := range n.Values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " | ")
}

func (n *U8Get) String() string {
	return fmt.Sprintf("%s[%s]", n.Target, n.Index)
}

func (n *U8Set) String() string {
	return fmt.Sprintf("%s[%s] = %s", n.Target, n.Index, n.Value)
}

func (n *Print) String() string {
	return fmt.Sprintf("print %s;", n.Value)
}

func (n *Sprint) String() string {
	return fmt.Sprintf("sprint %s;", n.Value)
}

func (n *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, OperatorSymbol(n.Op), n.Right)
}

func (n *Logo) String() string        { return "logo;" }
func (n *Test5G) String() string      { return "test5g;" }
func (n *Cyberspaces) String() string { return "cyberspaces;" }

// statement renders a node as a complete statement, adding the terminator
// that bare expression statements lack.
func statement(n Node) string {
	s := n.String()
	if strings.HasSuffix(s, ";") {
		return s
	}
	return s + ";"
}

// OperatorSymbol returns the source spelling of a binary operator kind
func OperatorSymbol(op token.Kind) string {
	switch op {
	case token.Add:
		return "+"
	case token.Sub:
		return "-"
	case token.Mul:
		return "*"
	case token.LT:
		return "<"
	case token.LEQ:
		return "<="
	case token.GT:
		return ">"
	case token.GEQ:
		return ">="
	case token.EQ:
		return "=="
	case token.NEQ:
		return "!="
	default:
		return op.String()
	}
}
