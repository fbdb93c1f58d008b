package editor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	helog "github.com/lwd-temp/helang/foundation/core/log"
	"github.com/lwd-temp/helang/foundation/helang"
)

func newTestModel(t *testing.T, path string) Model {
	t.Helper()
	m, err := New(Config{
		Engine: helang.New(helang.Options{Logger: helog.Discard()}),
		Path:   path,
		Logger: helog.Discard(),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return m
}

// runBuffer presses F5 on code and delivers the run result
func runBuffer(t *testing.T, m Model, code string) Model {
	t.Helper()
	m.textarea.SetValue(code)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyF5})
	m = updated.(Model)
	if !m.Running() {
		t.Fatal("F5 should start a run")
	}
	if cmd == nil {
		t.Fatal("F5 should return a command")
	}

	updated, _ = m.Update(m.run(code)())
	return updated.(Model)
}

func TestModel_Run(t *testing.T) {
	tests := []struct {
		name string
		code string
		want []string
	}{
		{
			name: "prints output",
			code: "u8 a = 1 | 2;\nu8 b = 3 | 4;\nu8 c = 5 | 8;\nprint a + b * c + b;",
			want: []string{"51 | 53"},
		},
		{
			name: "sprint",
			code: "sprint 72 | 101 | 76 | 97 | 110 | 103;",
			want: []string{"HeLang"},
		},
		{
			name: "error after output",
			code: "print 1;\nprint a;",
			want: []string{"1", "CyberNameException: a is not defined"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := runBuffer(t, newTestModel(t, ""), tt.code)

			if m.Running() {
				t.Error("run should have finished")
			}
			output := strings.Join(m.Output(), "\n")
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q:\n%s", want, output)
				}
			}
		})
	}
}

func TestModel_FreshEnvironmentPerRun(t *testing.T) {
	m := newTestModel(t, "")
	m = runBuffer(t, m, "u8 a = 1;")
	m = runBuffer(t, m, "print a;")

	output := strings.Join(m.Output(), "\n")
	if !strings.Contains(output, "CyberNameException") {
		t.Errorf("variables leaked between runs:\n%s", output)
	}
}

func TestModel_OneRunAtATime(t *testing.T) {
	m := newTestModel(t, "")
	m.textarea.SetValue("print 1;")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyF5})
	m = updated.(Model)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyF5})
	m = updated.(Model)
	if cmd != nil {
		t.Error("a second run should not start while one is in flight")
	}
	if !strings.Contains(m.status, "already") {
		t.Errorf("status = %q", m.status)
	}
}

func TestModel_Clear(t *testing.T) {
	m := runBuffer(t, newTestModel(t, ""), "print 1;")
	if len(m.Output()) == 0 {
		t.Fatal("expected output before clearing")
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = updated.(Model)
	if len(m.Output()) != 0 {
		t.Errorf("output not cleared: %v", m.Output())
	}
}

func TestModel_Quit(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		m := newTestModel(t, "")
		_, cmd := m.Update(tea.KeyMsg{Type: key})
		if cmd == nil {
			t.Fatalf("%v should quit", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v did not return tea.Quit", key)
		}
	}
}

func TestModel_OpenAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.he")
	if err := os.WriteFile(path, []byte("print 7;"), 0644); err != nil {
		t.Fatal(err)
	}

	m := newTestModel(t, path)
	if m.textarea.Value() != "print 7;" {
		t.Fatalf("buffer = %q", m.textarea.Value())
	}

	m.textarea.SetValue("print 8;")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("Ctrl+S should return a command")
	}
	msg, ok := cmd().(savedMsg)
	if !ok || msg.err != nil {
		t.Fatalf("save failed: %+v", msg)
	}

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "print 8;" {
		t.Errorf("file = %q, %v", data, err)
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, "")
	if m.View() != "Loading LTCode..." {
		t.Errorf("View() before sizing = %q", m.View())
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(Model)
	view := m.View()
	for _, want := range []string{"LTCode", "F5", "run"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
