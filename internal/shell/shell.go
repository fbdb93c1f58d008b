// ============================================================================
// HeLang - Saint He's programming language
// ============================================================================
//
// Package:     shell
// Description: Interactive prompt evaluating one line at a time
// Author:      lwd-temp
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	heerror "github.com/lwd-temp/helang/foundation/core/error"
	helog "github.com/lwd-temp/helang/foundation/core/log"
	"github.com/lwd-temp/helang/foundation/helang"
	"github.com/lwd-temp/helang/internal/store"
)

// DefaultPrompt is shown before every line
const DefaultPrompt = "Speak to Saint He > "

const (
	farewell     = "Saint He bless you."
	fatalMessage = "Fatal Error! Revise Saint He's videos!"
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
)

// Options configures a shell
type Options struct {
	Engine      *helang.Engine
	Store       *store.Store // optional
	In          io.Reader
	Out         io.Writer
	Prompt      string
	HistoryFile string
	Logger      *helog.Logger
}

// Shell evaluates lines against one environment until .exit or end of input
type Shell struct {
	session   *helang.Session
	store     *store.Store
	sessionID string
	reader    lineReader
	out       io.Writer
	prompt    string
	logger    *helog.Logger
}

// New creates a shell. Line editing is used when In and Out are the
// process terminal.
func New(opts Options) *Shell {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}
	if opts.Logger == nil {
		opts.Logger = helog.GetDefault()
	}
	if opts.Engine == nil {
		opts.Engine = helang.New(helang.Options{Logger: opts.Logger})
	}

	var reader lineReader
	if isTerminal(opts.In, opts.Out) {
		reader = newLinerReader(opts.HistoryFile)
	} else {
		reader = newPlainReader(opts.In, opts.Out)
	}

	return &Shell{
		session: opts.Engine.WithOutput(opts.Out).NewSession(),
		store:   opts.Store,
		reader:  reader,
		out:     opts.Out,
		prompt:  opts.Prompt,
		logger:  opts.Logger.WithField("component", "shell"),
	}
}

// Run reads and evaluates lines. It returns nil on .exit or end of input and
// the error itself when evaluation fails with something other than a
// language error.
func (s *Shell) Run(ctx context.Context) error {
	defer s.reader.Close()

	for {
		line, err := s.reader.Prompt(s.prompt)
		if err == io.EOF {
			fmt.Fprintln(s.out)
			fmt.Fprintln(s.out, farewell)
			return nil
		}
		if err != nil {
			return heerror.Wrap(err, "failed to read input").
				WithCode(heerror.CodeInvalidInput).
				WithOperation("shell.Run")
		}

		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		s.reader.AppendHistory(text)

		if strings.HasPrefix(text, ".") {
			if s.command(ctx, text[1:]) {
				return nil
			}
			continue
		}

		if err := s.execute(ctx, text); err != nil {
			return err
		}
	}
}

// SessionID returns the store session this shell writes to, if any
func (s *Shell) SessionID() string {
	return s.sessionID
}

func (s *Shell) execute(ctx context.Context, text string) error {
	_, err := s.session.Execute(ctx, text)
	s.record(ctx, text)

	if err == nil {
		return nil
	}
	if heerror.IsHeLang(err) {
		s.logger.LogError(err)
		s.printError(err)
		return nil
	}

	fmt.Fprintln(s.out, errorStyle.Render(fatalMessage))
	return err
}

// record appends the line to the store history when a store is attached
func (s *Shell) record(ctx context.Context, text string) {
	if s.store == nil {
		return
	}
	if err := s.ensureSession(ctx, ""); err != nil {
		s.logger.WarnWithErr("Failed to create store session", err)
		return
	}
	if _, err := s.store.AppendHistory(ctx, s.sessionID, helang.Terminate(text)); err != nil {
		s.logger.WarnWithErr("Failed to record history", err)
	}
}

func (s *Shell) ensureSession(ctx context.Context, name string) error {
	if s.sessionID != "" {
		return nil
	}
	session, err := s.store.CreateSession(ctx, name)
	if err != nil {
		return err
	}
	s.sessionID = session.ID
	s.logger.Debug("Store session created", helog.Fields{"session_id": session.ID})
	return nil
}

func (s *Shell) printError(err error) {
	fmt.Fprintln(s.out, errorStyle.Render(Describe(err)))
}

func (s *Shell) printInfo(format string, args ...interface{}) {
	fmt.Fprintln(s.out, infoStyle.Render(fmt.Sprintf(format, args...)))
}

// Describe formats an error as "<CODE>: <message>"
func Describe(err error) string {
	return fmt.Sprintf("%s: %s", heerror.GetCode(err), err.Error())
}
