package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/lwd-temp/helang/pkg/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, version.String())
		fmt.Fprintf(out, "  Shell:      %s\n", version.ComponentVersion("shell"))
		fmt.Fprintf(out, "  Editor:     %s\n", version.ComponentVersion("editor"))
		fmt.Fprintf(out, "  Playground: %s\n", version.ComponentVersion("playground"))
		fmt.Fprintf(out, "  Go Version: %s\n", runtime.Version())
		fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
