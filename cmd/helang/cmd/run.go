package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lwd-temp/helang/internal/runner"
)

var runWatch bool

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a HeLang script",
	Long: `Runs a script with a fresh environment.

With --watch the script is run again every time it changes until
interrupted. Failed runs are reported and watching continues.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVarP(&runWatch, "watch", "w", false, "re-run the script on change")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := runner.New(runner.Config{
		Engine: newEngine(cmd.OutOrStdout()),
		ErrOut: cmd.ErrOrStderr(),
		Watch:  runWatch,
		Logger: logger,
	})
	return r.Run(ctx, args[0])
}
