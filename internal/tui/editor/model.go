// ============================================================================
// HeLang - Saint He's programming language
// ============================================================================
//
// Package:     editor
// Description: LTCode, a Bubbletea editor that runs HeLang code
// Author:      lwd-temp
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package editor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	heerror "github.com/lwd-temp/helang/foundation/core/error"
	helog "github.com/lwd-temp/helang/foundation/core/log"
	"github.com/lwd-temp/helang/foundation/helang"
	"github.com/lwd-temp/helang/foundation/helang/env"
)

// Config holds editor configuration
type Config struct {
	Engine *helang.Engine
	Path   string // file opened into the buffer and written by Ctrl+S
	Logger *helog.Logger
}

// Model is the Bubbletea model of the editor
type Model struct {
	width  int
	height int
	ready  bool

	running bool
	status  string

	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	output   []string

	engine *helang.Engine
	path   string
	logger *helog.Logger
}

// New creates the editor model. A missing file starts an empty buffer.
func New(cfg Config) (Model, error) {
	if cfg.Logger == nil {
		cfg.Logger = helog.GetDefault()
	}
	if cfg.Engine == nil {
		cfg.Engine = helang.New(helang.Options{Logger: cfg.Logger})
	}

	ta := textarea.New()
	ta.Placeholder = "print 20320 | 22909;"
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = true
	ta.SetWidth(80)
	ta.SetHeight(12)

	if cfg.Path != "" {
		data, err := os.ReadFile(cfg.Path)
		switch {
		case err == nil:
			ta.SetValue(string(data))
		case !os.IsNotExist(err):
			return Model{}, heerror.Wrap(err, "failed to open file").
				WithCode(heerror.CodeInternal).
				WithDetail("path", cfg.Path)
		}
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	return Model{
		textarea: ta,
		viewport: viewport.New(80, 8),
		spinner:  sp,
		status:   "Ready",
		engine:   cfg.Engine,
		path:     cfg.Path,
		logger:   cfg.Logger.WithField("component", "editor"),
	}, nil
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyF5:
			if m.running {
				m.status = "A run is already in progress"
				return m, nil
			}
			m.running = true
			m.output = nil
			m.status = "Running..."
			m.updateViewport()
			return m, tea.Batch(m.spinner.Tick, m.run(m.textarea.Value()))

		case tea.KeyCtrlL:
			m.output = nil
			m.updateViewport()
			return m, nil

		case tea.KeyCtrlS:
			if m.path == "" {
				m.status = "No file to save to"
				return m, nil
			}
			return m, m.save(m.path, m.textarea.Value())

		case tea.KeyPgUp, tea.KeyPgDown:
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true

	case spinner.TickMsg:
		if m.running {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case runFinishedMsg:
		m.running = false
		m.output = splitOutput(msg.output)
		if msg.err != nil {
			m.output = append(m.output, ErrorStyle.Render(describe(msg.err)))
			m.status = "Failed"
		} else {
			m.status = fmt.Sprintf("Finished in %s", msg.duration.Round(time.Millisecond))
		}
		m.updateViewport()
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.status = "Save failed: " + msg.err.Error()
		} else {
			m.status = "Saved " + msg.path
		}
		return m, nil
	}

	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// run evaluates code in a fresh environment off the UI goroutine
func (m Model) run(code string) tea.Cmd {
	engine := m.engine
	logger := m.logger
	return func() tea.Msg {
		var out bytes.Buffer
		start := time.Now()

		_, err := engine.WithOutput(&out).Run(context.Background(), code, env.New())
		if err != nil {
			logger.LogError(err)
		}
		return runFinishedMsg{output: out.String(), err: err, duration: time.Since(start)}
	}
}

func (m Model) save(path, code string) tea.Cmd {
	return func() tea.Msg {
		err := os.WriteFile(path, []byte(code), 0644)
		return savedMsg{path: path, err: err}
	}
}

func (m *Model) resize() {
	editorHeight := (m.height - 6) / 2
	if editorHeight < 3 {
		editorHeight = 3
	}
	outputHeight := m.height - editorHeight - 8
	if outputHeight < 3 {
		outputHeight = 3
	}

	m.textarea.SetWidth(m.width - 4)
	m.textarea.SetHeight(editorHeight)
	m.viewport.Width = m.width - 4
	m.viewport.Height = outputHeight
	m.updateViewport()
}

func (m *Model) updateViewport() {
	m.viewport.SetContent(OutputStyle.Render(strings.Join(m.output, "\n")))
	m.viewport.GotoBottom()
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading LTCode..."
	}

	var b strings.Builder

	title := "LTCode"
	if m.path != "" {
		title += "  " + StatusStyle.Render(m.path)
	}
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n")

	b.WriteString(FocusedPanelStyle.Render(m.textarea.View()))
	b.WriteString("\n")
	b.WriteString(PanelStyle.Render(m.viewport.View()))
	b.WriteString("\n")

	status := StatusStyle.Render(m.status)
	if m.running {
		status = m.spinner.View() + " " + status
	}
	b.WriteString(status)
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHelp() string {
	keys := []struct{ key, desc string }{
		{"F5", "run"},
		{"Ctrl+L", "clear"},
		{"Ctrl+S", "save"},
		{"Esc", "quit"},
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = HelpKeyStyle.Render(k.key) + " " + HelpDescStyle.Render(k.desc)
	}
	return strings.Join(parts, "  ")
}

// Output returns the lines currently shown in the output pane
func (m Model) Output() []string {
	return m.output
}

// Running reports whether a run is in progress
func (m Model) Running() bool {
	return m.running
}

// Run starts the editor on the terminal
func Run(cfg Config) error {
	model, err := New(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func splitOutput(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// describe formats an error the way the error's class is named,
// e.g. "CyberNameException: a is not defined"
func describe(err error) string {
	return fmt.Sprintf("%s: %s", heerror.GetCode(err).Title(), err.Error())
}
