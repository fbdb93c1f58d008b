package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/lwd-temp/helang/internal/tui/editor"
)

var editorCmd = &cobra.Command{
	Use:     "editor [file]",
	Aliases: []string{"ltcode"},
	Short:   "Start LTCode, the terminal editor",
	Long: `Starts LTCode. The buffer runs in a fresh environment on every run.

Keys:
  F5          Run
  Ctrl+L      Clear output
  Ctrl+S      Save to file
  Esc/Ctrl+C  Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEditor,
}

func init() {
	rootCmd.AddCommand(editorCmd)
}

func runEditor(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	}

	return editor.Run(editor.Config{
		Engine: newEngine(io.Discard),
		Path:   path,
		Logger: logger,
	})
}
