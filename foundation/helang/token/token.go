// File: token.go
// Title: HeLang Token Model
// Description: Defines token kinds, the token value produced by the lexer and
//              the lookup tables the lexer is driven by: reserved words,
//              single-character operators and comparison operators.
// Author: lwd-temp
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-12 v0.1.0: Initial token model
// - 2026-10-15 v0.1.0: Comparison operators and reserved words for launchers

package token

import "fmt"

// Kind represents the kind of a lexical token
type Kind int

const (
	// Literals and names
	Number Kind = iota // 42
	Ident              // a, $cyber_1

	// Delimiters
	Or        // |
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Comma     // ,
	Semicolon // ;

	// Operators
	Assign    // =
	Add       // +
	Sub       // -
	Mul       // *
	Increment // ++
	LT        // <
	LEQ       // <=
	GT        // >
	GEQ       // >=
	EQ        // ==
	NEQ       // !=

	// Keywords
	U8
	Print
	Sprint
	Test5G
	Cyberspaces
	Music
	App
	Logo
	Tiny
	Medium
	Large
)

var kindNames = [...]string{
	Number:      "NUMBER",
	Ident:       "IDENT",
	Or:          "OR",
	LParen:      "LEFT_PAREN",
	RParen:      "RIGHT_PAREN",
	LBrace:      "LEFT_BRACE",
	RBrace:      "RIGHT_BRACE",
	LBracket:    "LEFT_BRACKET",
	RBracket:    "RIGHT_BRACKET",
	Comma:       "COMMA",
	Semicolon:   "SEMICOLON",
	Assign:      "ASSIGN",
	Add:         "ADD",
	Sub:         "SUB",
	Mul:         "MUL",
	Increment:   "INCREMENT",
	LT:          "LESS",
	LEQ:         "LESS_EQ",
	GT:          "GREATER",
	GEQ:         "GREATER_EQ",
	EQ:          "EQUALS",
	NEQ:         "NOT_EQUALS",
	U8:          "U8",
	Print:       "PRINT",
	Sprint:      "SPRINT",
	Test5G:      "TEST_5G",
	Cyberspaces: "CYBERSPACES",
	Music:       "MUSIC",
	App:         "APP",
	Logo:        "LOGO",
	Tiny:        "TINY",
	Medium:      "MEDIUM",
	Large:       "LARGE",
}

// String returns a string representation of the token kind
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("KIND(%d)", int(k))
}

// IsKeyword reports whether the kind is a reserved word
func (k Kind) IsKeyword() bool {
	return k >= U8 && k <= Large
}

// IsComparison reports whether the kind is a comparison operator
func (k Kind) IsComparison() bool {
	switch k {
	case LT, LEQ, GT, GEQ, EQ, NEQ:
		return true
	}
	return false
}

// IsArithmetic reports whether the kind is a binary arithmetic operator
func (k Kind) IsArithmetic() bool {
	return k == Add || k == Sub || k == Mul
}

// Token represents a lexical token with position information.
// Tokens are values and never change after the lexer produced them.
type Token struct {
	Kind    Kind   // Token kind
	Content string // Token text exactly as written
	Offset  int    // Byte offset in input
	Line    int    // Line number (1-based)
	Column  int    // Column number (1-based)
}

// New creates a token without position information
func New(kind Kind, content string) Token {
	return Token{Kind: kind, Content: content}
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("%s(%s)", t.Kind, t.Content)
}

// Equal compares kind and content, ignoring position
func (t Token) Equal(other Token) bool {
	return t.Kind == other.Kind && t.Content == other.Content
}

// Keywords maps reserved words to their kinds
var Keywords = map[string]Kind{
	"u8":          U8,
	"print":       Print,
	"sprint":      Sprint,
	"test5g":      Test5G,
	"cyberspaces": Cyberspaces,
	"music":       Music,
	"app":         App,
	"logo":        Logo,
	"tiny":        Tiny,
	"medium":      Medium,
	"large":       Large,
}

// SingleChars maps characters that always form a token on their own
var SingleChars = map[byte]Kind{
	'|': Or,
	'(': LParen,
	')': RParen,
	'{': LBrace,
	'}': RBrace,
	'[': LBracket,
	']': RBracket,
	',': Comma,
	';': Semicolon,
	'-': Sub,
	'*': Mul,
}

// Comparators maps comparison and assignment spellings to their kinds.
// A lone '!' is not a token.
var Comparators = map[string]Kind{
	"=":  Assign,
	"<":  LT,
	">":  GT,
	"==": EQ,
	"<=": LEQ,
	">=": GEQ,
	"!=": NEQ,
}

// LookupIdent returns the keyword kind for ident, or Ident
func LookupIdent(ident string) Kind {
	if kind, ok := Keywords[ident]; ok {
		return kind
	}
	return Ident
}
