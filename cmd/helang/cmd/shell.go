package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/lwd-temp/helang/internal/shell"
)

var shellNoStore bool

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Speak to Saint He",
	Long: `Starts the interactive shell. Each line is one program; a missing
trailing semicolon is added. Type .help for the shell commands.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
	shellCmd.Flags().BoolVar(&shellNoStore, "no-store", false, "do not record the session")
}

func runShell(cmd *cobra.Command, args []string) error {
	opts := shell.Options{
		Engine:      newEngine(cmd.OutOrStdout()),
		In:          os.Stdin,
		Out:         cmd.OutOrStdout(),
		Prompt:      appConfig.Shell.Prompt,
		HistoryFile: appConfig.Shell.HistoryFile,
		Logger:      logger,
	}
	if !shellNoStore {
		if st := openStore(); st != nil {
			defer st.Close()
			opts.Store = st
		}
	}

	return shell.New(opts).Run(context.Background())
}
