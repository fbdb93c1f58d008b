package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		tokensAST = false
		runWatch = false
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func writeScript(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.he")
	if err := os.WriteFile(path, []byte(source), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	path := writeScript(t, "u8 a = 1 | 2;\nu8 b = 3 | 4;\nu8 c = 5 | 8;\nprint a + b * c + b;\n")

	out, err := execute(t, "run", path)
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if out != "51 | 53\n" {
		t.Errorf("output = %q", out)
	}
}

func TestRun_Error(t *testing.T) {
	path := writeScript(t, "print a;\n")

	_, err := execute(t, "run", path)
	if err == nil || describe(err) != "CYBER_NAME: a is not defined" {
		t.Errorf("run error = %v", err)
	}
}

func TestTokens(t *testing.T) {
	path := writeScript(t, "u8 a = 1 | 2; // vector\n")

	out, err := execute(t, "tokens", path)
	if err != nil {
		t.Fatalf("tokens error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("Expected 7 tokens, got %q", out)
	}
	if !strings.HasSuffix(lines[0], " u8") || !strings.HasSuffix(lines[1], " a") || !strings.HasSuffix(lines[6], " ;") {
		t.Errorf("unexpected tokens:\n%s", out)
	}
}

func TestTokens_AST(t *testing.T) {
	path := writeScript(t, "print 1 | 2;\n")

	out, err := execute(t, "tokens", "--ast", path)
	if err != nil {
		t.Fatalf("tokens --ast error = %v", err)
	}
	if !strings.Contains(out, "Print") {
		t.Errorf("tree missing Print node:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "HeLang ") {
		t.Errorf("output = %q", out)
	}
}

func TestConfig(t *testing.T) {
	out, err := execute(t, "config")
	if err != nil {
		t.Fatalf("config error = %v", err)
	}
	for _, want := range []string{"[shell]", "Speak to Saint He > ", "[server]"} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q:\n%s", want, out)
		}
	}
}
