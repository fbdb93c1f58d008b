// ============================================================================
// HeLang - Saint He's programming language
// ============================================================================
//
// Package:     shell
// Description: Line readers for the interactive shell
// Author:      lwd-temp
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

// lineReader reads one line per prompt. io.EOF ends the session.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

// plainReader reads lines from any reader without line editing
type plainReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newPlainReader(in io.Reader, out io.Writer) *plainReader {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)
	return &plainReader{scanner: scanner, out: out}
}

func (r *plainReader) Prompt(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

func (r *plainReader) AppendHistory(string) {}

func (r *plainReader) Close() error { return nil }

// linerReader edits lines on a terminal and keeps a history file
type linerReader struct {
	state       *liner.State
	historyFile string
}

func newLinerReader(historyFile string) *linerReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			_, _ = state.ReadHistory(f)
			_ = f.Close()
		}
	}
	return &linerReader{state: state, historyFile: historyFile}
}

func (r *linerReader) Prompt(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	return line, err
}

func (r *linerReader) AppendHistory(line string) {
	r.state.AppendHistory(line)
}

func (r *linerReader) Close() error {
	if r.historyFile != "" {
		if f, err := os.Create(r.historyFile); err == nil {
			_, _ = r.state.WriteHistory(f)
			_ = f.Close()
		}
	}
	return r.state.Close()
}

// isTerminal reports whether both ends of the shell are the process terminal
func isTerminal(in io.Reader, out io.Writer) bool {
	fin, ok := in.(*os.File)
	if !ok || fin != os.Stdin {
		return false
	}
	fout, ok := out.(*os.File)
	if !ok || fout != os.Stdout {
		return false
	}
	return term.IsTerminal(int(fin.Fd())) && term.IsTerminal(int(fout.Fd()))
}
