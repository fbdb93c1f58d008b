// File: lexer.go
// Title: HeLang Lexical Analyzer
// Description: Implements the lexical analysis phase as a finite-state
//              machine. Each state has one step function that inspects the
//              current character and either consumes it or hands it back to
//              the Wait state. Position information is kept for every token.
// Author: lwd-temp
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-12 v0.1.0: Initial lexer implementation
// - 2026-10-15 v0.1.0: Comparator state for == <= >= !=

package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	heerror "github.com/lwd-temp/helang/foundation/core/error"
	helog "github.com/lwd-temp/helang/foundation/core/log"
	"github.com/lwd-temp/helang/foundation/helang/token"
)

// State is a state of the lexer automaton
type State int

const (
	StateWait State = iota
	StateIdent
	StateNumber
	StateIncrement
	StateComment
	StateComparator
)

// String returns a string representation of the state
func (s State) String() string {
	switch s {
	case StateWait:
		return "WAIT"
	case StateIdent:
		return "IDENT"
	case StateNumber:
		return "NUMBER"
	case StateIncrement:
		return "INCREMENT"
	case StateComment:
		return "COMMENT"
	case StateComparator:
		return "COMPARATOR"
	default:
		return "UNKNOWN"
	}
}

// Options configures a Lexer
type Options struct {
	Logger *helog.Logger
}

// Lexer converts source text into tokens. A Lexer is single-use.
type Lexer struct {
	src    string // source with the terminating newline
	pos    int    // offset of the current character
	line   int    // line of the current character (1-based)
	column int    // column of the current character (1-based)

	state State
	cache strings.Builder

	// start of the token being accumulated
	startPos    int
	startLine   int
	startColumn int

	tokens []token.Token
	logger *helog.Logger
}

// New creates a lexer for source. A newline is appended so that every
// accumulating state flushes before the input ends.
func New(source string, opts Options) *Lexer {
	logger := opts.Logger
	if logger == nil {
		logger = helog.GetDefault()
	}
	return &Lexer{
		src:    source + "\n",
		line:   1,
		column: 1,
		state:  StateWait,
		logger: logger.WithField("component", "lexer"),
	}
}

// Lex tokenizes source with default options
func Lex(source string) ([]token.Token, error) {
	return New(source, Options{}).Tokenize()
}

// Tokenize runs the automaton over the whole input
func (l *Lexer) Tokenize() ([]token.Token, error) {
	l.logger.Trace("Tokenizing input", helog.Fields{"length": len(l.src) - 1})

	for l.pos < len(l.src) {
		c := l.src[l.pos]

		var consumed bool
		var err error
		switch l.state {
		case StateWait:
			consumed, err = l.stepWait(c)
		case StateIdent:
			consumed = l.stepIdent(c)
		case StateNumber:
			consumed = l.stepNumber(c)
		case StateIncrement:
			consumed = l.stepIncrement(c)
		case StateComment:
			consumed, err = l.stepComment(c)
		case StateComparator:
			consumed, err = l.stepComparator(c)
		}
		if err != nil {
			l.logger.Debug("Tokenizing failed", helog.Fields{"error": err.Error()})
			return nil, err
		}
		if consumed {
			l.advance(c)
		}
	}

	l.logger.Trace("Tokenizing finished", helog.Fields{"tokens": len(l.tokens)})
	return l.tokens, nil
}

func (l *Lexer) stepWait(c byte) (bool, error) {
	l.cache.Reset()
	l.markStart()

	switch {
	case isSpace(c):
		return true, nil
	case c == '/':
		l.cache.WriteByte(c)
		l.state = StateComment
	case isDigit(c):
		l.cache.WriteByte(c)
		l.state = StateNumber
	case isIdentStart(c):
		l.cache.WriteByte(c)
		l.state = StateIdent
	case c == '+':
		l.cache.WriteByte(c)
		l.state = StateIncrement
	case c == '<' || c == '>' || c == '=' || c == '!':
		l.cache.WriteByte(c)
		l.state = StateComparator
	default:
		kind, ok := token.SingleChars[c]
		if !ok {
			return false, l.badToken(l.unexpected())
		}
		l.cache.WriteByte(c)
		l.emit(kind)
	}
	return true, nil
}

func (l *Lexer) stepIdent(c byte) bool {
	if isIdentPart(c) {
		l.cache.WriteByte(c)
		return true
	}
	l.emit(token.LookupIdent(l.cache.String()))
	l.state = StateWait
	return false
}

func (l *Lexer) stepNumber(c byte) bool {
	if isDigit(c) {
		l.cache.WriteByte(c)
		return true
	}
	l.emit(token.Number)
	l.state = StateWait
	return false
}

func (l *Lexer) stepIncrement(c byte) bool {
	l.state = StateWait
	if c == '+' {
		l.cache.WriteByte(c)
		l.emit(token.Increment)
		return true
	}
	l.emit(token.Add)
	return false
}

func (l *Lexer) stepComment(c byte) (bool, error) {
	if l.cache.Len() == 1 {
		if c != '/' {
			return false, l.badToken("/")
		}
		l.cache.WriteByte(c)
		return true, nil
	}
	if c == '\n' {
		l.state = StateWait
	}
	return true, nil
}

func (l *Lexer) stepComparator(c byte) (bool, error) {
	l.state = StateWait
	if kind, ok := token.Comparators[l.cache.String()+string(c)]; ok {
		l.cache.WriteByte(c)
		l.emit(kind)
		return true, nil
	}
	if kind, ok := token.Comparators[l.cache.String()]; ok {
		l.emit(kind)
		return false, nil
	}
	return false, l.badToken(l.cache.String())
}

func (l *Lexer) emit(kind token.Kind) {
	l.tokens = append(l.tokens, token.Token{
		Kind:    kind,
		Content: l.cache.String(),
		Offset:  l.startPos,
		Line:    l.startLine,
		Column:  l.startColumn,
	})
}

func (l *Lexer) markStart() {
	l.startPos, l.startLine, l.startColumn = l.pos, l.line, l.column
}

func (l *Lexer) advance(c byte) {
	l.pos++
	if c == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

// unexpected returns the full character at the current offset, which may
// span several bytes.
func (l *Lexer) unexpected() string {
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return string(r)
}

func (l *Lexer) badToken(content string) error {
	return heerror.New(fmt.Sprintf("bad token %q at line %d, column %d", content, l.startLine, l.startColumn)).
		WithCode(heerror.CodeBadToken).
		WithOperation("lexer.Tokenize").
		WithPosition(l.startLine, l.startColumn).
		WithDetail("token", content)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isIdentStart(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_' || c == '$'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
